// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema holds the fixed vocabulary that catalog entries are checked
// against: the dataset identifier pattern and the type, domain, and horizon
// enumerations. Everything here is read-only after package initialization
// and safe for concurrent use.
package schema

import (
	"regexp"
	"sort"
)

// DatasetIDPattern is the source form of the dataset_id pattern. Lowercase
// letters, digits, underscore, and hyphen only.
const DatasetIDPattern = `^[a-z0-9_-]+$`

var datasetIDRe = regexp.MustCompile(DatasetIDPattern)

// Dataset type values.
const (
	TypeCollection  = "collection"
	TypeFileArchive = "file_archive"
	TypePlatformAPI = "platform_api"
)

// Domain values.
const (
	DomainSystem      = "system"
	DomainResidential = "residential"
	DomainIndustrial  = "industrial"
	DomainUnknown     = "unknown"
)

// Forecast horizon tokens.
const (
	HorizonVeryShortTerm = "vst"
	HorizonShortTerm     = "st"
	HorizonMediumTerm    = "mt"
	HorizonLongTerm      = "lt"
)

type set map[string]struct{}

func newSet(values ...string) set {
	s := make(set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

var (
	datasetTypes = newSet(TypeCollection, TypeFileArchive, TypePlatformAPI)
	domains      = newSet(DomainSystem, DomainResidential, DomainIndustrial, DomainUnknown)
	horizons     = newSet(HorizonVeryShortTerm, HorizonShortTerm, HorizonMediumTerm, HorizonLongTerm)

	horizonLabels = map[string]string{
		HorizonVeryShortTerm: "very-short-term",
		HorizonShortTerm:     "short-term",
		HorizonMediumTerm:    "medium-term",
		HorizonLongTerm:      "long-term",
	}
)

// ValidDatasetID reports whether id matches DatasetIDPattern in full.
func ValidDatasetID(id string) bool {
	return datasetIDRe.MatchString(id)
}

// IsDatasetType reports whether v is a member of the type enumeration.
func IsDatasetType(v string) bool { return datasetTypes.has(v) }

// IsDomain reports whether v is a member of the domain enumeration.
func IsDomain(v string) bool { return domains.has(v) }

// IsHorizon reports whether v is a member of the horizon enumeration.
func IsHorizon(v string) bool { return horizons.has(v) }

// DatasetTypes returns the type enumeration in sorted order.
func DatasetTypes() []string { return datasetTypes.sorted() }

// Domains returns the domain enumeration in sorted order.
func Domains() []string { return domains.sorted() }

// Horizons returns the horizon enumeration in sorted order.
func Horizons() []string { return horizons.sorted() }

// HorizonLabel returns the long form of a horizon token, e.g. "st" ->
// "short-term". Unknown tokens are returned unchanged.
func HorizonLabel(h string) string {
	if l, ok := horizonLabels[h]; ok {
		return l
	}
	return h
}
