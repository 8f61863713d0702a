// Package model defines the core domain types for the incentive pipeline.
package model

import "time"

// Location is one resolved {city, state, country} triple. One raw location
// string may expand to several of these.
type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Unknown marks location parts the gazetteer and translation fallbacks could
// not resolve. Persisted as-is so downstream analysis can filter on it.
const Unknown = "Unbekannt"

// NormalizedEntities holds the structured fields derived from a source record
// independently of the incentive classification.
type NormalizedEntities struct {
	JobTitle       string     `json:"job_title"`
	Locations      []Location `json:"locations"`
	StateSummary   string     `json:"state_summary"`
	CountrySummary string     `json:"country_summary"`
	Company        string     `json:"company"`
	CompanySize    string     `json:"company_size"`
	EmploymentType string     `json:"employment_type"`
	TimeModels     []string   `json:"time_models"`
	Seniority      string     `json:"seniority"`
}

// JobRow is one persisted row: a single (location, time model, seniority)
// combination of a processed source record. Natural key: (URL, City,
// TimeModel, Seniority). SourceID is the upstream document identity used only
// for duplicate-processing skip.
type JobRow struct {
	ID                 string         `json:"id"`
	SourceID           string         `json:"source_id"`
	URL                string         `json:"url"`
	Portal             string         `json:"portal"`
	JobTitle           string         `json:"job_title"`
	PostedDate         string         `json:"posted_date"`
	City               string         `json:"city"`
	State              string         `json:"state"`
	Country            string         `json:"country"`
	Company            string         `json:"company"`
	CompanySize        string         `json:"company_size"`
	TimeModel          string         `json:"time_model"`
	Seniority          string         `json:"seniority"`
	EmploymentType     string         `json:"employment_type"`
	ExperienceRequired int            `json:"experience_required"`
	Industry           string         `json:"industry"`
	Incentives         map[string]int `json:"incentives"`
	Unmatched          string         `json:"unmatched"`
	UpdatedAt          time.Time      `json:"updated_at"`
}
