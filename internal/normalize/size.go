package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// NoSizeInformation is the sentinel for listings without a usable company
// size.
const NoSizeInformation = "Keine Angaben"

var (
	thousandsSepRe = regexp.MustCompile(`(\d)[.,](\d{3})\b`)
	digitsRe       = regexp.MustCompile(`\d+`)
)

var sizeBuckets = []struct {
	upper int
	label string
}{
	{10, "0-10"},
	{50, "11-50"},
	{250, "51-250"},
	{500, "251-500"},
	{1000, "501-1000"},
	{2500, "1001-2500"},
	{10000, "2501-10000"},
}

// CategorizeCompanySize buckets a raw size phrase ("2.501 bis 10.000
// Mitarbeiter") by its largest number. Thousands separators are collapsed
// first so "10.000" reads as ten thousand, not ten.
func CategorizeCompanySize(sizeText string) string {
	for {
		collapsed := thousandsSepRe.ReplaceAllString(sizeText, "$1$2")
		if collapsed == sizeText {
			break
		}
		sizeText = collapsed
	}
	sizeText = strings.ReplaceAll(sizeText, ",", "")

	var largest int
	for _, m := range digitsRe.FindAllString(sizeText, -1) {
		if n, err := strconv.Atoi(m); err == nil && n > largest {
			largest = n
		}
	}
	if largest == 0 {
		return NoSizeInformation
	}

	for _, bucket := range sizeBuckets {
		if largest <= bucket.upper {
			return bucket.label
		}
	}
	return "10000+"
}
