// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"

	"github.com/pdiddy/padelf-catalog/internal/schema"
	"github.com/pdiddy/padelf-catalog/pkg/types"
)

// Rule is one field constraint. Violation returns a non-empty reason when
// d breaks the rule.
type Rule struct {
	Field     string
	Kind      Kind
	Violation func(d *types.Dataset) string
}

// Rules are evaluated in order after decoding; the first violation wins.
var Rules = []Rule{
	{
		Field: "dataset_id",
		Kind:  KindPattern,
		Violation: func(d *types.Dataset) string {
			if schema.ValidDatasetID(d.DatasetID) {
				return ""
			}
			return "dataset_id must match pattern " + schema.DatasetIDPattern
		},
	},
	{
		Field: "type",
		Kind:  KindEnum,
		Violation: func(d *types.Dataset) string {
			if schema.IsDatasetType(d.Type) {
				return ""
			}
			return fmt.Sprintf("type must be one of %v", schema.DatasetTypes())
		},
	},
	{
		Field: "domain",
		Kind:  KindEnum,
		Violation: func(d *types.Dataset) string {
			if schema.IsDomain(d.Domain) {
				return ""
			}
			return fmt.Sprintf("domain must be one of %v", schema.Domains())
		},
	},
	{
		Field: "horizons",
		Kind:  KindEnum,
		Violation: func(d *types.Dataset) string {
			invalid := InvalidHorizons(d.Horizons)
			if len(invalid) == 0 {
				return ""
			}
			return fmt.Sprintf("horizons contains invalid values: %q", invalid)
		},
	},
}

// InvalidHorizons returns the elements of hs that are not horizon tokens,
// in input order.
func InvalidHorizons(hs []string) []string {
	var invalid []string
	for _, h := range hs {
		if !schema.IsHorizon(h) {
			invalid = append(invalid, h)
		}
	}
	return invalid
}
