// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"math"
	"strconv"
)

// decoder reads typed values out of one parsed mapping. prefix is the
// dotted path of the mapping within the entry, used in error fields.
type decoder struct {
	prefix string
	m      map[string]any
}

func (d decoder) path(key string) string {
	if d.prefix == "" {
		return key
	}
	return d.prefix + "." + key
}

func (d decoder) requiredString(key string) (string, error) {
	v, ok := d.m[key]
	if !ok || v == nil {
		return "", missing(d.path(key))
	}
	s, ok := v.(string)
	if !ok {
		return "", wrongShape(d.path(key), "string", v)
	}
	return s, nil
}

// optionalString returns nil for an absent or null value.
func (d decoder) optionalString(key string) (*string, error) {
	v, ok := d.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, wrongShape(d.path(key), "string", v)
	}
	return &s, nil
}

// stringDefault returns def when the key is absent. An explicit null is a
// shape failure because the field is not optional.
func (d decoder) stringDefault(key, def string) (string, error) {
	v, ok := d.m[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", wrongShape(d.path(key), "string", v)
	}
	return s, nil
}

func (d decoder) boolDefault(key string, def bool) (bool, error) {
	v, ok := d.m[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, wrongShape(d.path(key), "boolean", v)
	}
	return b, nil
}

func (d decoder) optionalInt(key string) (*int, error) {
	v, ok := d.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	n, ok := asInt(v)
	if !ok {
		return nil, wrongShape(d.path(key), "integer", v)
	}
	return &n, nil
}

// stringList returns an empty, non-nil slice when the key is absent.
func (d decoder) stringList(key string) ([]string, error) {
	v, ok := d.m[key]
	if !ok {
		return []string{}, nil
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, wrongShape(d.path(key), "sequence of strings", v)
	}
	out := make([]string, 0, len(seq))
	for i, item := range seq {
		s, ok := item.(string)
		if !ok {
			return nil, wrongShape(d.path(key)+"["+strconv.Itoa(i)+"]", "string", item)
		}
		out = append(out, s)
	}
	return out, nil
}

func (d decoder) mapping(key string) (decoder, error) {
	v, ok := d.m[key]
	if !ok || v == nil {
		return decoder{}, missing(d.path(key))
	}
	m, err := asMapping(d.path(key), v)
	if err != nil {
		return decoder{}, err
	}
	return decoder{prefix: d.path(key), m: m}, nil
}

// asMapping accepts both map forms the YAML decoder can produce. Mappings
// with non-string keys are rejected.
func asMapping(field string, v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, wrongShape(field, "mapping with string keys", v)
			}
			out[ks] = val
		}
		return out, nil
	default:
		if field == "" {
			return nil, &ValidationError{Kind: KindShape, Reason: "entry must be a mapping, got " + shapeOf(v)}
		}
		return nil, wrongShape(field, "mapping", v)
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func shapeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "number"
	case []any:
		return "sequence"
	case map[string]any, map[any]any:
		return "mapping"
	default:
		return "unsupported value"
	}
}
