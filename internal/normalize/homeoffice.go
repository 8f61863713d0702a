package normalize

import (
	"strings"

	"github.com/hirelens/incentive-cli/internal/source"
)

// homeofficePatterns are the phrasings portals use for the explicit remote
// flag. Matching is case-insensitive substring search.
var homeofficePatterns = []string{
	"homeoffice möglich",
}

// DetectHomeoffice looks for an explicit remote-work mention, first in the
// company section where portals put the flag, then anywhere in the text.
// This rule-based signal is OR-combined with the classifier's category.
func DetectHomeoffice(rec *source.Record) bool {
	companyText := strings.ToLower(strings.Join(rec.CompanyInfo(), " "))
	for _, pattern := range homeofficePatterns {
		if strings.Contains(companyText, pattern) {
			return true
		}
	}

	fullText := strings.ToLower(rec.FullText())
	for _, pattern := range homeofficePatterns {
		if strings.Contains(fullText, pattern) {
			return true
		}
	}
	return false
}
