// Package extract runs the generative stages: benefit phrase extraction,
// experience detection and industry categorization, plus the resilient
// parsing of their output.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseStage names which fallback produced the benefits list, for logging
// and tuning.
type ParseStage string

const (
	StageFullRepair    ParseStage = "full_repair"
	StageObjectRepair  ParseStage = "object_repair"
	StageArrayRepair   ParseStage = "array_repair"
	StageQuotedStrings ParseStage = "quoted_strings"
	StageBullets       ParseStage = "bullets"
)

// ParseOutcome is the result of parsing a benefits response: the phrases in
// first-seen order and the stage that produced them.
type ParseOutcome struct {
	Benefits []string
	Stage    ParseStage
}

var (
	hexEscapeRe     = regexp.MustCompile(`\\x[0-9A-Fa-f]{2}`)
	jsonObjectRe    = regexp.MustCompile(`(?s)(\{.*\})`)
	benefitsArrayRe = regexp.MustCompile(`(?s)"benefits":\s*\[(.*?)(?:\]|}|$)`)
	quotedStringRe  = regexp.MustCompile(`"([^"]*)"`)
	bulletLineRe    = regexp.MustCompile(`^(\s*[-*•]|\d+\.)\s*`)
	bulletMarkerRe  = regexp.MustCompile(`^(\s*[-*•]+|\s*\d+\.)\s*`)
	lazyObjectRe    = regexp.MustCompile(`(?s)\{.*?\}`)
)

// ParseBenefits extracts the benefit phrases from a model response, trying
// progressively cruder strategies until one yields something. It never
// fails; a response with nothing recognizable yields an empty outcome.
func ParseBenefits(response string) ParseOutcome {
	// Models occasionally emit raw \xNN escapes, which are not valid JSON.
	response = hexEscapeRe.ReplaceAllString(response, "")

	// Stage 1: repair and parse the entire response.
	if benefits, ok := repairAndExtract(response); ok {
		return ParseOutcome{Benefits: dedupe(benefits), Stage: StageFullRepair}
	}

	// Stage 2: locate an embedded JSON object and repair that.
	if m := jsonObjectRe.FindStringSubmatch(response); m != nil {
		if benefits, ok := repairAndExtract(m[1]); ok {
			return ParseOutcome{Benefits: dedupe(benefits), Stage: StageObjectRepair}
		}
	}

	// Stage 3: cut out the benefits array body and repair it as a
	// standalone array, falling back to its quoted strings.
	if m := benefitsArrayRe.FindStringSubmatch(response); m != nil {
		body := m[1]
		if repaired, err := jsonrepair.JSONRepair("[" + body + "]"); err == nil {
			var arr []any
			if err := json.Unmarshal([]byte(repaired), &arr); err == nil {
				return ParseOutcome{Benefits: dedupe(anyToStrings(arr)), Stage: StageArrayRepair}
			}
		}
		var quoted []string
		for _, qm := range quotedStringRe.FindAllStringSubmatch(body, -1) {
			quoted = append(quoted, qm[1])
		}
		return ParseOutcome{Benefits: dedupe(quoted), Stage: StageQuotedStrings}
	}

	// Stage 4: scrape bulleted or numbered lines.
	return ParseOutcome{Benefits: dedupe(bulletItems(response)), Stage: StageBullets}
}

// repairAndExtract repairs the input as JSON and pulls benefits out of the
// two shapes models actually produce: {"benefits": [...]} and a bare list
// of {"benefit": ...} objects.
func repairAndExtract(input string) ([]string, bool) {
	repaired, err := jsonrepair.JSONRepair(input)
	if err != nil {
		return nil, false
	}

	var parsed any
	if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
		return nil, false
	}

	switch v := parsed.(type) {
	case map[string]any:
		arr, ok := v["benefits"].([]any)
		if !ok {
			return nil, false
		}
		return anyToStrings(arr), true
	case []any:
		benefits := make([]string, 0, len(v))
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			b, ok := obj["benefit"].(string)
			if !ok {
				return nil, false
			}
			benefits = append(benefits, b)
		}
		return benefits, true
	default:
		return nil, false
	}
}

func bulletItems(response string) []string {
	var items []string
	for _, line := range strings.Split(response, "\n") {
		if !bulletLineRe.MatchString(line) {
			continue
		}
		cleaned := strings.TrimSpace(bulletMarkerRe.ReplaceAllString(line, ""))
		if cleaned != "" {
			items = append(items, cleaned)
		}
	}
	return items
}

func anyToStrings(arr []any) []string {
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// dedupe drops repeated phrases, keeping first-seen order.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// ParseFirstJSON extracts the first JSON object of a response. Used for the
// experience answer, which is a single tiny object.
func ParseFirstJSON(response string) map[string]any {
	m := lazyObjectRe.FindString(response)
	if m == "" {
		return map[string]any{}
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(m), &parsed); err != nil {
		return map[string]any{}
	}
	return parsed
}

// ParseLastJSON extracts the last JSON object of a response. The industry
// answer sometimes repeats the example object before the real one, so the
// last wins.
func ParseLastJSON(response string) map[string]any {
	matches := lazyObjectRe.FindAllString(response, -1)
	if len(matches) == 0 {
		return map[string]any{}
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(matches[len(matches)-1]), &parsed); err != nil {
		return map[string]any{}
	}
	return parsed
}
