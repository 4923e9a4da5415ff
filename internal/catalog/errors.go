// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"errors"
	"fmt"

	"github.com/pdiddy/padelf-catalog/internal/dataset"
)

// Kind classifies a load failure.
type Kind string

const (
	// KindConfiguration means no usable source was specified.
	KindConfiguration Kind = "configuration"

	// KindIO means the file could not be read or the fetch failed.
	KindIO Kind = "io"

	// KindSchema means the document or one of its entries has the wrong
	// shape. Per-entry failures carry a *dataset.ValidationError.
	KindSchema Kind = "schema"
)

// Sentinel errors matched by errors.Is against a *LoadError of that kind.
var (
	ErrConfiguration = errors.New("catalog configuration error")
	ErrIO            = errors.New("catalog io error")
	ErrSchema        = errors.New("catalog schema error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindConfiguration:
		return ErrConfiguration
	case KindIO:
		return ErrIO
	default:
		return ErrSchema
	}
}

// LoadError is the single failure value returned by Load.
type LoadError struct {
	Kind Kind

	// Source is the path or URL being loaded, when known.
	Source string

	// Index is the zero-based position of the failing entry, or -1 when
	// the failure is not tied to an entry.
	Index int

	// Field is the dotted path of the failing field for entry failures.
	Field string

	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Index >= 0 && e.Field != "":
		return fmt.Sprintf("%s: entry %d: %s: %s", e.Kind, e.Index, e.Field, e.Reason)
	case e.Index >= 0:
		return fmt.Sprintf("%s: entry %d: %s", e.Kind, e.Index, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// Validation returns the per-field failure behind a schema error, or nil.
func (e *LoadError) Validation() *dataset.ValidationError {
	var ve *dataset.ValidationError
	if errors.As(e.Err, &ve) {
		return ve
	}
	return nil
}

func configError(reason string) *LoadError {
	return &LoadError{Kind: KindConfiguration, Index: -1, Reason: reason}
}

func ioError(src string, err error) *LoadError {
	return &LoadError{
		Kind:   KindIO,
		Source: src,
		Index:  -1,
		Reason: fmt.Sprintf("reading %s: %v", src, err),
		Err:    err,
	}
}

func schemaError(src, reason string, err error) *LoadError {
	return &LoadError{Kind: KindSchema, Source: src, Index: -1, Reason: reason, Err: err}
}

func entryError(src string, index int, ve *dataset.ValidationError) *LoadError {
	return &LoadError{
		Kind:   KindSchema,
		Source: src,
		Index:  index,
		Field:  ve.Field,
		Reason: ve.Reason,
		Err:    ve,
	}
}
