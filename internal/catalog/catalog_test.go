// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/padelf-catalog/internal/dataset"
	"github.com/pdiddy/padelf-catalog/internal/source"
	"github.com/pdiddy/padelf-catalog/pkg/types"
)

const validEntryYAML = `- dataset_id: ercot_2020
  name: ERCOT
  type: collection
  domain: system
  horizons: [st, mt]
  time_coverage:
    start_date: "2020-01"
  access:
    url: https://example.org/d.csv
  citation:
    preferred_citation: X, 2020
  source_paper: {}
`

// --- test helpers ---

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datasets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadPath(t *testing.T, path string) ([]types.Dataset, error) {
	t.Helper()
	return NewLoader().Load(context.Background(), &source.Descriptor{Path: path})
}

func requireLoadError(t *testing.T, err error, kind Kind) *LoadError {
	t.Helper()
	require.Error(t, err)
	var le *LoadError
	require.True(t, errors.As(err, &le), "expected *LoadError, got %T", err)
	assert.Equal(t, kind, le.Kind)
	return le
}

// --- empty documents ---

func TestLoad_EmptyDocuments(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"absent", ""},
		{"whitespace", "  \n\t\n"},
		{"tab only", "\t"},
		{"mixed blanks", " \t \n"},
		{"crlf and tab", "\r\n\t\r\n"},
		{"newlines only", "\n\n   \n"},
		{"comments only", "# nothing here\n# still nothing\n"},
		{"explicit null", "~\n"},
		{"empty list", "[]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loadPath(t, writeCatalog(t, tt.content))
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestLoad_EmptyFixture(t *testing.T) {
	got, err := loadPath(t, filepath.Join("testdata", "datasets_empty.yaml"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

// --- top-level shape ---

func TestLoad_TopLevelNotList(t *testing.T) {
	for _, content := range []string{
		"dataset_id: ercot_2020\nname: ERCOT\n",
		"just a string\n",
		"42\n",
	} {
		_, err := loadPath(t, writeCatalog(t, content))
		le := requireLoadError(t, err, KindSchema)
		assert.Contains(t, le.Reason, "must be a YAML list")
		assert.Equal(t, -1, le.Index)
		assert.ErrorIs(t, err, ErrSchema)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := loadPath(t, writeCatalog(t, "- dataset_id: [unclosed\n"))
	le := requireLoadError(t, err, KindSchema)
	assert.Contains(t, le.Reason, "parsing YAML")
}

// --- round trip ---

func TestLoad_SingleValidEntry(t *testing.T) {
	got, err := loadPath(t, writeCatalog(t, validEntryYAML))
	require.NoError(t, err)
	require.Len(t, got, 1)

	d := got[0]
	assert.Equal(t, "ercot_2020", d.DatasetID)
	assert.Equal(t, "collection", d.Type)
	assert.Equal(t, "system", d.Domain)
	assert.Equal(t, []string{"st", "mt"}, d.Horizons)
	assert.Equal(t, "https://example.org/d.csv", d.Access.URL)
	assert.Equal(t, "X, 2020", d.Citation.PreferredCitation)
	assert.Equal(t, "2020-01", d.StartDate())

	assert.Equal(t, "unknown", d.License)
	assert.Equal(t, "", d.Access.AccessNotes)
	assert.False(t, d.RegionsMultiple)
	assert.Equal(t, []string{}, d.Features)
}

func TestLoad_FixturePreservesOrder(t *testing.T) {
	got, err := loadPath(t, filepath.Join("testdata", "datasets.yaml"))
	require.NoError(t, err)
	require.Len(t, got, 3)

	ids := []string{got[0].DatasetID, got[1].DatasetID, got[2].DatasetID}
	assert.Equal(t, []string{"ercot_2020", "ideal-households", "entsoe_transparency"}, ids)

	assert.Equal(t, 60, *got[0].ResolutionMinutes)
	assert.Equal(t, "2020-12-31", *got[0].TimeCoverage.EndDate)
	assert.Nil(t, got[0].Citation.BibTeX)
	assert.Equal(t, 3, *got[0].SourcePaper.Baur2024UsageCount)
	assert.Nil(t, got[1].TimeCoverage.EndDate)
	assert.Equal(t, "Requires API token.", got[2].Access.AccessNotes)
}

// --- per-entry failures ---

func TestLoad_InvalidEntryFailsWholeLoad(t *testing.T) {
	content := validEntryYAML + `- dataset_id: second
  name: Second
  type: collection
  domain: system
  access:
    url: https://example.org/2
  citation:
    preferred_citation: Y
  source_paper: {}
` + validEntryYAML

	got, err := loadPath(t, writeCatalog(t, content))
	assert.Nil(t, got)

	le := requireLoadError(t, err, KindSchema)
	assert.Equal(t, 1, le.Index)
	assert.Equal(t, "time_coverage", le.Field)

	ve := le.Validation()
	require.NotNil(t, ve)
	assert.Equal(t, dataset.KindMissing, ve.Kind)
	assert.Contains(t, err.Error(), "entry 1: time_coverage")
}

func TestLoad_PatternMismatch(t *testing.T) {
	content := `- dataset_id: ERCOT 2020
  name: ERCOT
  type: collection
  domain: system
  time_coverage: {}
  access: {url: "https://x"}
  citation: {preferred_citation: "X"}
  source_paper: {}
`
	_, err := loadPath(t, writeCatalog(t, content))
	le := requireLoadError(t, err, KindSchema)
	assert.Equal(t, 0, le.Index)

	var ve *dataset.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, dataset.KindPattern, ve.Kind)
}

func TestLoad_EntryNotMapping(t *testing.T) {
	_, err := loadPath(t, writeCatalog(t, "- ercot_2020\n"))
	le := requireLoadError(t, err, KindSchema)
	assert.Equal(t, 0, le.Index)
	assert.Contains(t, le.Reason, "entry must be a mapping")
}

// --- io and configuration ---

func TestLoad_MissingFile(t *testing.T) {
	_, err := loadPath(t, filepath.Join(t.TempDir(), "nope.yaml"))
	le := requireLoadError(t, err, KindIO)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, le.Source, "nope.yaml")
}

func TestLoad_EmptyDescriptorIsConfigurationError(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), &source.Descriptor{})
	requireLoadError(t, err, KindConfiguration)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestLoad_NoSourcesConfigured(t *testing.T) {
	_, err := NewLoader(WithSources(source.Config{})).Load(context.Background(), nil)
	requireLoadError(t, err, KindConfiguration)
}

func TestLoad_RemoteSuccess(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(validEntryYAML))
	}))
	defer ts.Close()

	l := NewLoader(WithHTTPClient(ts.Client()))
	got, err := l.Load(context.Background(), &source.Descriptor{URL: ts.URL})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestLoad_RemoteStatusIsIOError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := NewLoader(WithHTTPClient(ts.Client())).Load(context.Background(), &source.Descriptor{URL: ts.URL})
	requireLoadError(t, err, KindIO)
}

func TestLoad_UnreachableURLIsIOError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	got, err := NewLoader().Load(context.Background(), &source.Descriptor{URL: url})
	assert.Nil(t, got)
	requireLoadError(t, err, KindIO)
}

// --- source precedence ---

func TestLoad_ExplicitPathWinsOverURLAndEnv(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte("[]"))
	}))
	defer ts.Close()

	envPath := writeCatalog(t, "- not: valid\n")
	path := writeCatalog(t, validEntryYAML)

	l := NewLoader(
		WithHTTPClient(ts.Client()),
		WithSources(source.Config{EnvPath: envPath, EnvURL: ts.URL, DefaultURL: ts.URL}),
	)
	got, err := l.Load(context.Background(), &source.Descriptor{Path: path, URL: ts.URL})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Zero(t, hits)
}

func TestLoad_EnvPathUsedWithoutDescriptor(t *testing.T) {
	path := writeCatalog(t, validEntryYAML)
	env := map[string]string{source.EnvMetadataPath: path, source.EnvMetadataURL: "http://127.0.0.1:1/none"}

	l := NewLoader(WithSources(source.EnvConfig(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})))
	got, err := l.Load(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLoad_ReadFileOverride(t *testing.T) {
	l := NewLoader(WithReadFile(func(p string) ([]byte, error) {
		assert.Equal(t, "virtual.yaml", p)
		return []byte(validEntryYAML), nil
	}))
	got, err := l.Load(context.Background(), &source.Descriptor{Path: "virtual.yaml"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// --- independent results ---

func TestLoad_ResultsAreIndependent(t *testing.T) {
	path := writeCatalog(t, validEntryYAML)
	first, err := loadPath(t, path)
	require.NoError(t, err)
	first[0].Horizons[0] = "lt"

	second, err := loadPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"st", "mt"}, second[0].Horizons)
}

func TestParse(t *testing.T) {
	got, err := Parse(validEntryYAML)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = Parse("a: b\n")
	requireLoadError(t, err, KindSchema)

	got, err = Parse("\t \n")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParse_MultipleDocuments(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"two lists", validEntryYAML + "---\n" + validEntryYAML},
		{"trailing mapping", validEntryYAML + "---\nfoo: bar\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			le := requireLoadError(t, err, KindSchema)
			assert.Equal(t, -1, le.Index)
			assert.Equal(t, "datasets.yaml must contain a single YAML document", le.Reason)
		})
	}
}

func TestParse_LeadingDocumentMarker(t *testing.T) {
	got, err := Parse("---\n" + validEntryYAML)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
