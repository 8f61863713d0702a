package pipeline

import (
	"strings"
	"time"

	"github.com/hirelens/incentive-cli/internal/model"
	"github.com/hirelens/incentive-cli/internal/normalize"
)

// homeofficeCategory is the taxonomy category the rule-based remote-work
// detector feeds into.
const homeofficeCategory = "Homeoffice"

// buildRows fans one enriched record out into persisted rows: one per
// location and time model. All rows share the record's incentives and
// normalized entities; only the identity columns vary.
func buildRows(enr *enrichment, entities model.NormalizedEntities, classification model.ClassificationResult, now time.Time) []model.JobRow {
	incentives := make(map[string]int, len(classification.Flags))
	for category, flag := range classification.Flags {
		incentives[category] = flag
	}

	base := model.JobRow{
		SourceID:           enr.rec.SourceID(),
		URL:                enr.rec.URL(),
		Portal:             enr.rec.Portal(),
		JobTitle:           entities.JobTitle,
		PostedDate:         enr.rec.PostedDate(now),
		Company:            entities.Company,
		CompanySize:        entities.CompanySize,
		Seniority:          entities.Seniority,
		EmploymentType:     entities.EmploymentType,
		ExperienceRequired: enr.experience,
		Industry:           enr.industry,
		Incentives:         incentives,
		Unmatched:          strings.Join(classification.Unmatched, ", "),
		UpdatedAt:          now,
	}

	timeModels := entities.TimeModels
	if len(timeModels) == 0 {
		timeModels = []string{normalize.DefaultTimeModel}
	}

	rows := make([]model.JobRow, 0, len(entities.Locations)*len(timeModels))
	for _, loc := range entities.Locations {
		for _, timeModel := range timeModels {
			row := base
			row.City = loc.City
			row.State = loc.State
			row.Country = loc.Country
			row.TimeModel = timeModel
			rows = append(rows, row)
		}
	}
	return rows
}
