// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads the dataset catalog: it resolves the source, reads
// the text from disk or over HTTP, parses the YAML, and validates every
// entry. One bad entry fails the whole load.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/padelf-catalog/internal/dataset"
	"github.com/pdiddy/padelf-catalog/internal/httputil"
	"github.com/pdiddy/padelf-catalog/internal/source"
	"github.com/pdiddy/padelf-catalog/pkg/types"
)

// DefaultUserAgent is sent with remote fetches unless overridden.
const DefaultUserAgent = "padelf-catalog/0.1"

// Loader holds the immutable settings for catalog loads. It keeps no state
// between calls and is safe for concurrent use.
type Loader struct {
	client   *http.Client
	logger   *zap.Logger
	httpCfg  types.HTTPConfig
	sources  source.Config
	readFile func(string) ([]byte, error)
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for remote fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithLogger sets the structured logger. The default discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithHTTPConfig sets the User-Agent and optional bearer token.
func WithHTTPConfig(cfg types.HTTPConfig) Option {
	return func(l *Loader) {
		if cfg.UserAgent == "" {
			cfg.UserAgent = DefaultUserAgent
		}
		l.httpCfg = cfg
	}
}

// WithSources sets the fallback resolution inputs used when Load is called
// without a descriptor. Callers normally pass source.EnvConfig(os.LookupEnv).
func WithSources(cfg source.Config) Option {
	return func(l *Loader) { l.sources = cfg }
}

// WithReadFile replaces os.ReadFile for local sources.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(l *Loader) { l.readFile = fn }
}

// NewLoader returns a Loader. Without options it fetches the built-in
// default URL with a plain http.Client and ignores the environment.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:   &http.Client{},
		logger:   zap.NewNop(),
		httpCfg:  types.HTTPConfig{UserAgent: DefaultUserAgent},
		sources:  source.Config{DefaultURL: source.DefaultURL},
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Resolve returns the descriptor Load would use. A non-nil d is used as
// given (path over URL); nil falls back to the configured sources.
func (l *Loader) Resolve(d *source.Descriptor) source.Descriptor {
	if d != nil {
		return source.Resolve(source.Explicit(*d))
	}
	return source.Resolve(l.sources)
}

// Load reads and validates the catalog. On success the returned slice is in
// source order and owned by the caller; it is empty (not nil) for an empty
// document. Any failure is a *LoadError and no datasets are returned.
func (l *Loader) Load(ctx context.Context, d *source.Descriptor) ([]types.Dataset, error) {
	desc := l.Resolve(d)
	if desc.IsEmpty() {
		return nil, configError("no metadata source provided (url or path required)")
	}

	loc := desc.Location()
	l.logger.Debug("loading catalog", zap.String("source", loc), zap.Bool("local", desc.IsLocal()))

	text, err := l.read(ctx, desc)
	if err != nil {
		l.logger.Debug("catalog read failed", zap.String("source", loc), zap.Error(err))
		return nil, ioError(loc, err)
	}

	datasets, err := parse(loc, text)
	if err != nil {
		l.logger.Debug("catalog validation failed", zap.String("source", loc), zap.Error(err))
		return nil, err
	}

	l.logger.Info("catalog loaded", zap.String("source", loc), zap.Int("datasets", len(datasets)))
	return datasets, nil
}

func (l *Loader) read(ctx context.Context, desc source.Descriptor) (string, error) {
	if desc.IsLocal() {
		data, err := l.readFile(desc.Path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return httputil.GetText(ctx, l.client, httputil.Request{
		URL:       desc.URL,
		UserAgent: l.httpCfg.UserAgent,
		Token:     l.httpCfg.Token,
	})
}

// Parse validates catalog text without any I/O. It applies the same rules
// as Load and returns the same *LoadError values.
func Parse(text string) ([]types.Dataset, error) {
	return parse("", text)
}

func parse(loc, text string) ([]types.Dataset, error) {
	// The YAML scanner rejects tabs outside content, so blank text is
	// handled before decoding.
	if strings.TrimSpace(text) == "" {
		return []types.Dataset{}, nil
	}

	dec := yaml.NewDecoder(strings.NewReader(text))
	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return []types.Dataset{}, nil
		}
		return nil, schemaError(loc, fmt.Sprintf("parsing YAML: %v", err), err)
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, schemaError(loc, "datasets.yaml must contain a single YAML document", err)
	}

	// Comment-only and null documents decode to nil.
	if raw == nil {
		return []types.Dataset{}, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, schemaError(loc, "datasets.yaml must be a YAML list at the top level", nil)
	}

	datasets := make([]types.Dataset, 0, len(items))
	for i, item := range items {
		d, err := dataset.FromAny(item)
		if err != nil {
			var ve *dataset.ValidationError
			if !errors.As(err, &ve) {
				ve = &dataset.ValidationError{Kind: dataset.KindShape, Reason: err.Error()}
			}
			return nil, entryError(loc, i, ve)
		}
		datasets = append(datasets, d)
	}
	return datasets, nil
}
