// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source decides where catalog text is read from.
//
// Resolve is a pure function over Config. Reading the process environment
// happens in EnvConfig, which callers use to fill the env fields.
package source

// Environment variables consulted by EnvConfig.
const (
	EnvMetadataPath = "PADELF_METADATA_PATH"
	EnvMetadataURL  = "PADELF_METADATA_URL"
)

// DefaultURL points at metadata/datasets.yaml in the Publicly Available
// Datasets For Electric Load Forecasting repository.
// TODO: switch to the main branch once add-datasets-yaml is merged upstream.
const DefaultURL = "https://raw.githubusercontent.com/LSB-dev/" +
	"Publicly-Available-Datasets-For-Electric-Load-Forecasting/" +
	"feature/add-datasets-yaml/metadata/datasets.yaml"

// Descriptor identifies the catalog source. Path and URL are both optional;
// when both are set the path is used.
type Descriptor struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// IsEmpty reports whether neither a path nor a URL is set.
func (d Descriptor) IsEmpty() bool {
	return d.Path == "" && d.URL == ""
}

// IsLocal reports whether the descriptor will be read from the filesystem.
func (d Descriptor) IsLocal() bool {
	return d.Path != ""
}

// Location returns the path if set, otherwise the URL.
func (d Descriptor) Location() string {
	if d.Path != "" {
		return d.Path
	}
	return d.URL
}

// Config holds every input to resolution, highest precedence first.
type Config struct {
	ExplicitPath string
	ExplicitURL  string
	EnvPath      string
	EnvURL       string
	DefaultURL   string
}

// Resolve merges cfg into a single Descriptor.
//
// An explicit path or URL always wins and is returned with only that field
// set (path over URL). Otherwise the env path, then the env URL, then
// DefaultURL are used. The result is empty only when every field of cfg is
// empty; the loader reports that as a configuration failure.
func Resolve(cfg Config) Descriptor {
	switch {
	case cfg.ExplicitPath != "":
		return Descriptor{Path: cfg.ExplicitPath}
	case cfg.ExplicitURL != "":
		return Descriptor{URL: cfg.ExplicitURL}
	case cfg.EnvPath != "":
		return Descriptor{Path: cfg.EnvPath}
	case cfg.EnvURL != "":
		return Descriptor{URL: cfg.EnvURL}
	default:
		return Descriptor{URL: cfg.DefaultURL}
	}
}

// Explicit returns a Config carrying only an explicit descriptor. With an
// empty d the result resolves to an empty Descriptor.
func Explicit(d Descriptor) Config {
	return Config{ExplicitPath: d.Path, ExplicitURL: d.URL}
}

// EnvConfig returns a Config with the env fields filled from lookup
// (normally os.LookupEnv) and DefaultURL set.
func EnvConfig(lookup func(string) (string, bool)) Config {
	cfg := Config{DefaultURL: DefaultURL}
	if v, ok := lookup(EnvMetadataPath); ok {
		cfg.EnvPath = v
	}
	if v, ok := lookup(EnvMetadataURL); ok {
		cfg.EnvURL = v
	}
	return cfg
}
