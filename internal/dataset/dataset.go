// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset builds validated types.Dataset values from the generic
// form produced by the YAML parser.
//
// Construction runs in three passes: presence of required fields, shape
// decoding of every declared field (nested blocks included), and the
// ordered constraint table in Rules. The first failure is returned as a
// *ValidationError naming the field.
package dataset

import (
	"fmt"

	"github.com/pdiddy/padelf-catalog/pkg/types"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindMissing Kind = "missing"
	KindShape   Kind = "shape"
	KindPattern Kind = "pattern"
	KindEnum    Kind = "enum"
)

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	// Field is the dotted path of the offending field (e.g. "access.url").
	// Empty when the entry itself has the wrong shape.
	Field  string
	Kind   Kind
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// requiredFields lists the top-level keys that must be present and non-null,
// in declaration order.
var requiredFields = []string{
	"dataset_id",
	"name",
	"type",
	"domain",
	"time_coverage",
	"access",
	"citation",
	"source_paper",
}

// FromAny validates one parsed catalog element. raw is typically a
// map[string]any from the YAML decoder; anything else is a shape failure.
func FromAny(raw any) (types.Dataset, error) {
	m, err := asMapping("", raw)
	if err != nil {
		return types.Dataset{}, err
	}
	return FromMap(m)
}

// FromMap validates a field-name-to-value mapping and returns the Dataset.
// The input map is not modified and the result shares no slices with it.
func FromMap(raw map[string]any) (types.Dataset, error) {
	fields := decoder{m: raw}

	for _, key := range requiredFields {
		if v, ok := raw[key]; !ok || v == nil {
			return types.Dataset{}, missing(key)
		}
	}

	d, err := decode(fields)
	if err != nil {
		return types.Dataset{}, err
	}

	for _, r := range Rules {
		if reason := r.Violation(&d); reason != "" {
			return types.Dataset{}, &ValidationError{Field: r.Field, Kind: r.Kind, Reason: reason}
		}
	}
	return d, nil
}

func decode(f decoder) (types.Dataset, error) {
	var (
		d   types.Dataset
		err error
	)

	if d.DatasetID, err = f.requiredString("dataset_id"); err != nil {
		return d, err
	}
	if d.Name, err = f.requiredString("name"); err != nil {
		return d, err
	}
	if d.Abbreviation, err = f.optionalString("abbreviation"); err != nil {
		return d, err
	}
	if d.Type, err = f.requiredString("type"); err != nil {
		return d, err
	}
	if d.Domain, err = f.requiredString("domain"); err != nil {
		return d, err
	}
	if d.ResolutionMinutes, err = f.optionalInt("resolution_minutes"); err != nil {
		return d, err
	}
	if d.Features, err = f.stringList("features"); err != nil {
		return d, err
	}
	if d.TimeCoverage, err = decodeTimeCoverage(f); err != nil {
		return d, err
	}
	if d.DurationMonths, err = f.optionalInt("duration_months"); err != nil {
		return d, err
	}
	if d.Horizons, err = f.stringList("horizons"); err != nil {
		return d, err
	}
	if d.RegionsMultiple, err = f.boolDefault("regions_multiple", false); err != nil {
		return d, err
	}
	if d.Access, err = decodeAccess(f); err != nil {
		return d, err
	}
	if d.License, err = f.stringDefault("license", types.DefaultLicense); err != nil {
		return d, err
	}
	if d.Citation, err = decodeCitation(f); err != nil {
		return d, err
	}
	if d.SourcePaper, err = decodeSourcePaper(f); err != nil {
		return d, err
	}
	return d, nil
}

func decodeTimeCoverage(f decoder) (types.TimeCoverage, error) {
	var tc types.TimeCoverage
	sub, err := f.mapping("time_coverage")
	if err != nil {
		return tc, err
	}
	if tc.StartDate, err = sub.optionalString("start_date"); err != nil {
		return tc, err
	}
	if tc.EndDate, err = sub.optionalString("end_date"); err != nil {
		return tc, err
	}
	return tc, nil
}

func decodeAccess(f decoder) (types.Access, error) {
	var a types.Access
	sub, err := f.mapping("access")
	if err != nil {
		return a, err
	}
	if a.URL, err = sub.requiredString("url"); err != nil {
		return a, err
	}
	if a.AccessNotes, err = sub.stringDefault("access_notes", ""); err != nil {
		return a, err
	}
	return a, nil
}

func decodeCitation(f decoder) (types.Citation, error) {
	var c types.Citation
	sub, err := f.mapping("citation")
	if err != nil {
		return c, err
	}
	if c.PreferredCitation, err = sub.requiredString("preferred_citation"); err != nil {
		return c, err
	}
	if c.BibTeX, err = sub.optionalString("bibtex"); err != nil {
		return c, err
	}
	return c, nil
}

func decodeSourcePaper(f decoder) (types.SourcePaper, error) {
	var sp types.SourcePaper
	sub, err := f.mapping("source_paper")
	if err != nil {
		return sp, err
	}
	if sp.InBaur2024, err = sub.boolDefault("in_baur_2024", false); err != nil {
		return sp, err
	}
	if sp.Baur2024UsageCount, err = sub.optionalInt("baur_2024_usage_count"); err != nil {
		return sp, err
	}
	return sp, nil
}

func missing(field string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindMissing, Reason: "field required"}
}

func wrongShape(field, want string, got any) *ValidationError {
	return &ValidationError{
		Field:  field,
		Kind:   KindShape,
		Reason: fmt.Sprintf("expected %s, got %s", want, shapeOf(got)),
	}
}
