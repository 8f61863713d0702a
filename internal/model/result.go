package model

// CategoryScore pairs a category with a similarity score.
type CategoryScore struct {
	Category string
	Score    float64
}

// PhraseScore is the per-category similarity breakdown for a single benefit
// phrase, kept for the audit trail.
type PhraseScore struct {
	Phrase       string
	Scores       map[string]float64
	BestCategory string
	BestScore    float64
	Assigned     bool
}

// ClassificationResult is the outcome of classifying one record's benefit
// phrases: the per-category flags (output categories only, 0 or 1), the
// phrases that cleared no threshold, and the per-phrase score breakdown.
type ClassificationResult struct {
	Flags     map[string]int
	Unmatched []string
	Phrases   []PhraseScore
}
