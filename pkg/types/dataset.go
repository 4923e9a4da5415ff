// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the catalog data structures shared between the
// loader, the dashboard index, and the CLI.
//
// A Dataset is built only by internal/dataset after validation; consumers
// read its fields and must not modify them.
package types

// DefaultLicense is used when an entry omits license.
const DefaultLicense = "unknown"

// TimeCoverage is the time span a dataset covers. Dates are "YYYY-MM" or
// "YYYY-MM-DD" strings; their format is not checked.
type TimeCoverage struct {
	StartDate *string `json:"start_date" yaml:"start_date"`
	EndDate   *string `json:"end_date" yaml:"end_date"`
}

// Access describes where a dataset can be obtained.
type Access struct {
	// URL is the landing page or download location. Required.
	URL string `json:"url" yaml:"url"`

	// AccessNotes holds free-text notes on registration, quotas, etc.
	AccessNotes string `json:"access_notes" yaml:"access_notes"`
}

// Citation is how the dataset asks to be cited.
type Citation struct {
	PreferredCitation string  `json:"preferred_citation" yaml:"preferred_citation"`
	BibTeX            *string `json:"bibtex" yaml:"bibtex"`
}

// SourcePaper records whether the dataset appeared in the Baur et al. 2024
// survey and how often it was used there.
type SourcePaper struct {
	InBaur2024         bool `json:"in_baur_2024" yaml:"in_baur_2024"`
	Baur2024UsageCount *int `json:"baur_2024_usage_count" yaml:"baur_2024_usage_count"`
}

// Dataset is one validated catalog entry.
type Dataset struct {
	// DatasetID is a stable slug matching ^[a-z0-9_-]+$. Uniqueness across
	// the catalog is not enforced.
	DatasetID    string  `json:"dataset_id" yaml:"dataset_id"`
	Name         string  `json:"name" yaml:"name"`
	Abbreviation *string `json:"abbreviation" yaml:"abbreviation"`

	// Type is one of collection, file_archive, platform_api.
	Type string `json:"type" yaml:"type"`

	// Domain is one of system, residential, industrial, unknown.
	Domain string `json:"domain" yaml:"domain"`

	// ResolutionMinutes is the temporal sampling granularity.
	ResolutionMinutes *int     `json:"resolution_minutes" yaml:"resolution_minutes"`
	Features          []string `json:"features" yaml:"features"`

	TimeCoverage   TimeCoverage `json:"time_coverage" yaml:"time_coverage"`
	DurationMonths *int         `json:"duration_months" yaml:"duration_months"`

	// Horizons lists forecast horizon tokens: vst, st, mt, lt.
	Horizons        []string `json:"horizons" yaml:"horizons"`
	RegionsMultiple bool     `json:"regions_multiple" yaml:"regions_multiple"`

	Access  Access `json:"access" yaml:"access"`
	License string `json:"license" yaml:"license"`

	Citation    Citation    `json:"citation" yaml:"citation"`
	SourcePaper SourcePaper `json:"source_paper" yaml:"source_paper"`
}

// StartDate returns the coverage start date, or "" when unset.
func (d Dataset) StartDate() string {
	if d.TimeCoverage.StartDate == nil {
		return ""
	}
	return *d.TimeCoverage.StartDate
}
