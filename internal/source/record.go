// Package source reads raw job listings and normalizes their heterogeneous
// shapes behind typed accessors. Two portal schemas are recognized: one
// carries structured section lists, the other free paragraphs plus a
// benefits array. Unknown shapes degrade to best-effort probing.
package source

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Format identifies which portal schema a record follows.
type Format string

const (
	// FormatSections is the schema with named section lists
	// ("lists"), including content/benefits and CompanyInfo.
	FormatSections Format = "sections"
	// FormatParagraphs is the schema with free paragraphs, a direct
	// benefits array and jobLocationText.
	FormatParagraphs Format = "paragraphs"
	// FormatUnknown is anything else; accessors still probe all fields.
	FormatUnknown Format = "unknown"
)

// notFoundPlaceholder marks scraper misses inside the direct benefits array.
const notFoundPlaceholder = "nicht gefunden"

// Record is one raw job listing. All accessors tolerate missing fields and
// return zero values instead of errors; intake data is too messy for
// anything stricter.
type Record struct {
	raw map[string]any
}

// Parse decodes one JSON document into a Record.
func Parse(data []byte) (*Record, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &Record{raw: raw}, nil
}

// NewRecord wraps an already-decoded document.
func NewRecord(raw map[string]any) *Record {
	return &Record{raw: raw}
}

// Format probes the record shape once so callers can log and dispatch on it.
func (r *Record) Format() Format {
	if _, ok := r.raw["lists"]; ok {
		return FormatSections
	}
	if _, ok := r.raw["paragraphs"]; ok {
		return FormatParagraphs
	}
	return FormatUnknown
}

// SourceID returns the upstream document identity used for duplicate skip.
func (r *Record) SourceID() string {
	return r.stringField("_id")
}

// Title returns the job title, or "Kein Titel" when absent.
func (r *Record) Title() string {
	title := strings.TrimSpace(r.stringField("Job Title"))
	if title == "" {
		return "Kein Titel"
	}
	return title
}

// URL returns the listing URL, accepting both casings seen upstream.
func (r *Record) URL() string {
	if u := r.stringField("url"); u != "" {
		return u
	}
	return r.stringField("URL")
}

var (
	wwwDomainRe  = regexp.MustCompile(`www\.(.*?)\.`)
	bareDomainRe = regexp.MustCompile(`https?://(?:[\w-]+\.)*([\w-]+)\.com`)
)

// Portal derives the portal name from the listing URL, or "Unknown".
func (r *Record) Portal() string {
	u := r.URL()
	if m := wwwDomainRe.FindStringSubmatch(u); m != nil {
		return m[1]
	}
	if m := bareDomainRe.FindStringSubmatch(u); m != nil {
		return m[1]
	}
	return "Unknown"
}

// BenefitText collects the prose handed to the generative extraction stage.
// The benefits section list wins when present; otherwise all paragraphs are
// joined. Empty when the record has neither.
func (r *Record) BenefitText() string {
	if lists, ok := r.raw["lists"].(map[string]any); ok {
		if benefits, ok := lists["content/benefits"].([]any); ok && len(benefits) > 0 {
			return joinAny(benefits, "\n")
		}
	}

	var parts []string
	switch desc := r.raw["paragraphs"].(type) {
	case []any:
		for _, p := range desc {
			parts = append(parts, toString(p))
		}
	case map[string]any:
		for _, section := range sortedValues(desc) {
			switch s := section.(type) {
			case []any:
				for _, p := range s {
					parts = append(parts, toString(p))
				}
			case string:
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, "\n")
}

// DirectBenefits returns benefit phrases the scraper already isolated,
// filtering placeholder values. These bypass the generative stage and go
// straight to classification.
func (r *Record) DirectBenefits() []string {
	items, ok := r.raw["benefits"].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		s := toString(item)
		if s == "" || strings.ToLower(s) == notFoundPlaceholder {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FullText joins every section list and paragraph into one search string for
// synonym matching and the experience prompt.
func (r *Record) FullText() string {
	var parts []string
	if lists, ok := r.raw["lists"].(map[string]any); ok {
		for _, section := range sortedValues(lists) {
			if items, ok := section.([]any); ok {
				for _, item := range items {
					parts = append(parts, toString(item))
				}
			}
		}
	}
	switch desc := r.raw["paragraphs"].(type) {
	case []any:
		for _, p := range desc {
			parts = append(parts, toString(p))
		}
	case map[string]any:
		for _, section := range sortedValues(desc) {
			if items, ok := section.([]any); ok {
				for _, item := range items {
					parts = append(parts, toString(item))
				}
			}
		}
	}
	return strings.Join(parts, " ")
}

// CompanyInfo returns the flattened company section list: name first, then
// location, then employment terms.
func (r *Record) CompanyInfo() []string {
	lists, ok := r.raw["lists"].(map[string]any)
	if !ok {
		return nil
	}
	items, ok := lists["company"].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if nested, ok := item.([]any); ok {
			for _, n := range nested {
				out = append(out, toString(n))
			}
			continue
		}
		out = append(out, toString(item))
	}
	return out
}

// CompanyName returns the explicit company field when present; callers fall
// back to CompanyInfo.
func (r *Record) CompanyName() string {
	return r.stringField("Company Name")
}

// LocationText returns the dedicated location field of the paragraph
// schema. Empty for the section schema, where location sits in CompanyInfo.
func (r *Record) LocationText() string {
	return r.stringField("jobLocationText")
}

// CompanySizeText returns the raw company size phrase, or "" when the
// record's schema does not carry one.
func (r *Record) CompanySizeText() string {
	lists, ok := r.raw["lists"].(map[string]any)
	if !ok {
		return ""
	}
	infoLists, ok := lists["CompanyInfo"].([]any)
	if !ok {
		return ""
	}
	for _, entry := range infoLists {
		items, ok := entry.([]any)
		if !ok || len(items) == 0 {
			continue
		}
		if s, ok := items[len(items)-1].(string); ok {
			return s
		}
	}
	return ""
}

// PostedDate formats the posting date as DD.MM.YYYY, falling back to now
// when the field is missing or unparsable.
func (r *Record) PostedDate(now time.Time) string {
	raw := strings.TrimSpace(r.stringField("datePosted"))
	if raw != "" {
		normalized := strings.ReplaceAll(raw, "Z", "+00:00")
		for _, layout := range []string{"2006-01-02T15:04:05-07:00", "2006-01-02T15:04:05", "2006-01-02"} {
			if dt, err := time.Parse(layout, normalized); err == nil {
				return dt.Format("02.01.2006")
			}
		}
	}
	return now.Format("02.01.2006")
}

func (r *Record) stringField(key string) string {
	s, _ := r.raw[key].(string)
	return s
}

// joinAny joins list items, stringified via toString, with sep.
func joinAny(items []any, sep string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, toString(item))
	}
	return strings.Join(parts, sep)
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// sortedValues returns map values in key order. Raw documents decode to
// maps, and joined text must come out the same on every run.
func sortedValues(m map[string]any) []any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	vals := make([]any, len(keys))
	for i, k := range keys {
		vals[i] = m[k]
	}
	return vals
}
