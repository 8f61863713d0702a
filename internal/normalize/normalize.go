package normalize

import (
	"context"
	"strings"

	"github.com/hirelens/incentive-cli/internal/model"
	"github.com/hirelens/incentive-cli/internal/source"
)

// Normalizer derives the structured entities of a record.
type Normalizer struct {
	resolver *Resolver
}

// New creates a Normalizer around a location resolver.
func New(resolver *Resolver) *Normalizer {
	return &Normalizer{resolver: resolver}
}

// Entities extracts and normalizes everything that does not need a model
// call: title, company, locations, employment terms, seniority and company
// size.
func (n *Normalizer) Entities(ctx context.Context, rec *source.Record) model.NormalizedEntities {
	companyInfo := rec.CompanyInfo()

	company := rec.CompanyName()
	rawLocation := ""
	if company == "" && len(companyInfo) > 0 {
		company = companyInfo[0]
	}
	if len(companyInfo) > 1 {
		rawLocation = companyInfo[1]
	}
	if loc := rec.LocationText(); loc != "" {
		rawLocation = StripPostalCode(loc)
	}

	fullText := rec.FullText()

	locations := n.resolver.ResolveAll(ctx, rawLocation)
	if len(locations) == 0 {
		locations = []model.Location{{City: "Unspecified", State: model.Unknown, Country: model.Unknown}}
	}

	return model.NormalizedEntities{
		JobTitle:       rec.Title(),
		Locations:      locations,
		StateSummary:   uniqueJoin(locations, func(l model.Location) string { return l.State }),
		CountrySummary: uniqueJoin(locations, func(l model.Location) string { return l.Country }),
		Company:        company,
		CompanySize:    CategorizeCompanySize(rec.CompanySizeText()),
		EmploymentType: EmploymentType(fullText, companyInfo),
		TimeModels:     TimeModels(fullText),
		Seniority:      Seniority(fullText),
	}
}

// uniqueJoin joins one field over all locations, deduplicated in first-seen
// order.
func uniqueJoin(locations []model.Location, field func(model.Location) string) string {
	seen := make(map[string]struct{}, len(locations))
	var parts []string
	for _, loc := range locations {
		v := field(loc)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		parts = append(parts, v)
	}
	if len(parts) == 0 {
		return model.Unknown
	}
	return strings.Join(parts, ", ")
}
