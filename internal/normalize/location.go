// Package normalize derives structured entities from raw listing fields:
// locations, employment terms, seniority, company size and the rule-based
// homeoffice signal.
package normalize

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/hirelens/incentive-cli/internal/geo"
	"github.com/hirelens/incentive-cli/internal/model"
	"github.com/hirelens/incentive-cli/pkg/translate"
)

var (
	separatorRe  = regexp.MustCompile(`[;/\x{2022}]| und | oder `)
	nearPhraseRe = regexp.MustCompile(`(?i)\bbei\b.*`)
	parentheseRe = regexp.MustCompile(`\(.*?\)`)
	commaSpaceRe = regexp.MustCompile(`\s*,\s*`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	postalCodeRe = regexp.MustCompile(`^\d+\s*`)
)

// NormalizeLocationString rewrites separators and strips annotations so the
// string splits cleanly: semicolons, slashes, bullets and the conjunctions
// "und"/"oder" become commas, "bei X" qualifiers and parenthetical content
// go away.
func NormalizeLocationString(location string) string {
	location = separatorRe.ReplaceAllString(location, ", ")
	location = nearPhraseRe.ReplaceAllString(location, "")
	location = parentheseRe.ReplaceAllString(location, "")
	return strings.TrimSpace(commaSpaceRe.ReplaceAllString(location, ", "))
}

// SplitLocations splits on commas outside parentheses, so names like
// "Frankfurt (Oder, Brandenburg)" survive intact.
func SplitLocations(normalized string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(normalized); i++ {
		switch normalized[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(normalized[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(normalized[start:]))
	return parts
}

// StripPostalCode removes a leading postal code ("10115 Berlin" → "Berlin").
func StripPostalCode(location string) string {
	return postalCodeRe.ReplaceAllString(location, "")
}

// nationwide is the pseudo-city some listings use instead of a location.
const nationwide = "bundesweit"

// Resolver turns raw location strings into resolved city/state/country
// triples using the offline gazetteer, with translation as fallback for
// names the gazetteer only knows in another language.
type Resolver struct {
	gazetteer  *geo.Gazetteer
	translator translate.Client
}

// NewResolver creates a Resolver. translator may be nil; resolution then
// skips the translation fallbacks.
func NewResolver(gazetteer *geo.Gazetteer, translator translate.Client) *Resolver {
	return &Resolver{gazetteer: gazetteer, translator: translator}
}

// ResolveAll expands one raw location string into resolved locations, one
// per city. Unresolvable cities keep their name with unknown state and
// country rather than dropping the row.
func (r *Resolver) ResolveAll(ctx context.Context, rawLocation string) []model.Location {
	var out []model.Location
	for _, part := range SplitLocations(NormalizeLocationString(rawLocation)) {
		city := StripPostalCode(whitespaceRe.ReplaceAllString(part, " "))
		city = strings.TrimSpace(city)
		if city == "" {
			continue
		}
		out = append(out, r.resolve(ctx, city))
	}
	return out
}

func (r *Resolver) resolve(ctx context.Context, city string) model.Location {
	if strings.EqualFold(city, nationwide) {
		return model.Location{City: city, State: nationwide, Country: "Deutschland"}
	}

	place, found := r.gazetteer.Lookup(city)
	if !found {
		// The gazetteer is English; retry with the translated name but
		// keep the original spelling in the output.
		if en := r.translate(ctx, city, "de", "en"); en != "" && en != city {
			place, found = r.gazetteer.Lookup(en)
		}
		if !found {
			zap.L().Debug("city not in gazetteer", zap.String("city", city))
			return model.Location{City: city, State: model.Unknown, Country: model.Unknown}
		}
	}

	return model.Location{
		City:    city,
		State:   r.localizeState(ctx, place.State),
		Country: r.localizeCountry(ctx, place.Country),
	}
}

func (r *Resolver) localizeState(ctx context.Context, state string) string {
	if de, ok := geo.StateDE(state); ok {
		return de
	}
	if de := r.translate(ctx, state, "en", "de"); de != "" {
		return de
	}
	return state
}

func (r *Resolver) localizeCountry(ctx context.Context, country string) string {
	if country == r.gazetteer.Home() {
		return "Deutschland"
	}
	if de := r.translate(ctx, country, "en", "de"); de != "" {
		return de
	}
	return country
}

// translate wraps the client, treating every failure as "no translation".
func (r *Resolver) translate(ctx context.Context, text, src, dst string) string {
	if r.translator == nil {
		return ""
	}
	translated, err := r.translator.Translate(ctx, text, src, dst)
	if err != nil {
		zap.L().Warn("translation failed, keeping original",
			zap.String("text", text),
			zap.Error(err),
		)
		return ""
	}
	return translated
}
