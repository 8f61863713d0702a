package normalize

import "strings"

// timeModelSynonyms maps canonical time models to trigger phrases. Matching
// is plain substring search so compound words ("Vollzeitstelle") hit too.
// Order matters for deterministic output.
var timeModelSynonyms = []struct {
	model    string
	synonyms []string
}{
	{"Vollzeit", []string{
		"vollzeit", "vollzeitstelle",
		"ganztags", "40 stunden", "vollbeschäftigung",
		"vollzeitjob", "vollzeitarbeit", "voll- und teilzeit",
		"voll und teilzeit", "voll- oder teilzeit",
		"voll oder teilzeit", "voll- & teilzeit",
		"voll & teilzeit",
		"full- and part time", "full and part time",
		"full- & part time", "full & part time",
		"full time", "full-time",
		"full or part time", "full- or part time",
		"40 h",
	}},
	{"Teilzeit", []string{
		"teilzeit", "teilzeitstelle", "halbtags",
		"20 stunden", "teilbeschäftigung",
		"teilzeitjob", "teilzeitarbeit", "reduzierte stunden",
		"voll- und teilzeit", "voll und teilzeit",
		"voll- oder teilzeit", "voll oder teilzeit",
		"voll- & teilzeit", "voll & teilzeit",
		"full- and part time", "full and part time",
		"full- & part time", "full & part time",
		"part time", "part-time",
		"full or part time", "full- or part time",
		"20 h",
	}},
}

// permanentSynonyms signal a permanent contract; the default without any
// signal is fixed-term.
var permanentSynonyms = []string{
	"unbefristet", "dauerhaft", "festanstellung", "festangestellt",
	"unbefristeter vertrag", "dauerstelle", "festvertrag", "feste anstellung",
	"permanent", "full-time", "regular employment", "indefinite contract",
}

// senioritySynonyms maps seniority levels to trigger words, checked in
// order; the first hit wins.
var senioritySynonyms = []struct {
	level    string
	synonyms []string
}{
	{"Praktikant", []string{
		"praktikum", "praktikant", "trainee", "praktikantin", "volontär",
		"internship",
	}},
	{"Werkstudent", []string{
		"werkstudent", "werkstudentin", "studentische hilfskraft",
		"student assistant", "student worker", "working student",
	}},
}

const (
	// DefaultTimeModel applies when no time model is mentioned at all.
	DefaultTimeModel = "Vollzeit"
	// DefaultSeniority is everything that is neither intern nor working
	// student.
	DefaultSeniority = "Normaler Angestellter"
	// DefaultEmploymentType applies without an explicit permanence signal.
	DefaultEmploymentType = "befristet"
	// PermanentEmployment is the canonical permanent contract value.
	PermanentEmployment = "Feste Anstellung"
)

// TimeModels detects the time models mentioned in the listing text. Both
// can apply at once ("Voll- oder Teilzeit"); none defaults to full time.
func TimeModels(searchText string) []string {
	searchText = strings.ToLower(searchText)
	var models []string
	for _, entry := range timeModelSynonyms {
		for _, syn := range entry.synonyms {
			if strings.Contains(searchText, syn) {
				models = append(models, entry.model)
				break
			}
		}
	}
	if len(models) == 0 {
		return []string{DefaultTimeModel}
	}
	return models
}

// Seniority detects intern or working-student positions by whole-word
// matching.
func Seniority(searchText string) string {
	searchText = strings.ToLower(searchText)
	for _, entry := range senioritySynonyms {
		for _, syn := range entry.synonyms {
			if containsWord(searchText, syn) {
				return entry.level
			}
		}
	}
	return DefaultSeniority
}

// EmploymentType decides between permanent and fixed-term. The company
// section's explicit terms win; otherwise whole-word synonym matching over
// the full text.
func EmploymentType(searchText string, companyInfo []string) string {
	if len(companyInfo) >= 3 && strings.Contains(companyInfo[2], PermanentEmployment) {
		return PermanentEmployment
	}
	searchText = strings.ToLower(searchText)
	for _, syn := range permanentSynonyms {
		if containsWord(searchText, syn) {
			return PermanentEmployment
		}
	}
	return DefaultEmploymentType
}

// containsWord checks if text contains needle as a whole word (bounded by
// non-alphanumeric characters or string boundaries). Case-insensitive — both
// text and needle should already be lowercased.
func containsWord(text, needle string) bool {
	if needle == "" || text == "" {
		return false
	}
	start := 0
	for {
		idx := strings.Index(text[start:], needle)
		if idx < 0 {
			return false
		}
		absIdx := start + idx
		endIdx := absIdx + len(needle)

		leftOK := absIdx == 0 || !isAlphaNum(text[absIdx-1])
		rightOK := endIdx == len(text) || !isAlphaNum(text[endIdx])

		if leftOK && rightOK {
			return true
		}
		start = absIdx + 1
	}
}

func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
