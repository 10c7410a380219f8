// Package yaml decodes YAML documents into JSON-like any-trees so schemas
// built for JSON input can validate YAML files unchanged.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Bytes decodes the first YAML document in data into a JSON-like tree
// (map[string]any, []any and scalars).
func Bytes(data []byte) (any, error) {
	return Reader(bytes.NewReader(data))
}

// Reader decodes the first YAML document from r.
func Reader(r io.Reader) (any, error) {
	dec := yaml.NewDecoder(r)
	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return normalize(node)
}

// Documents decodes every document in a multi-document YAML stream.
func Documents(r io.Reader) ([]any, error) {
	dec := yaml.NewDecoder(r)
	var out []any
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		v, err := normalize(node)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// Depth reports the nesting depth of a decoded tree: 0 for scalars, 1 for a
// flat map or slice, and so on. Callers use it to apply depth limits to YAML
// input, which never passes through the token-level enforcement.
func Depth(v any) int {
	switch t := v.(type) {
	case map[string]any:
		max := 0
		for _, vv := range t {
			if d := Depth(vv); d > max {
				max = d
			}
		}
		return max + 1
	case []any:
		max := 0
		for _, vv := range t {
			if d := Depth(vv); d > max {
				max = d
			}
		}
		return max + 1
	default:
		return 0
	}
}

// normalize converts YAML-decoded values (which may contain map[any]any) into
// JSON-like map[string]any recursively. Non-string keys are rejected because
// the JSON data model cannot represent them.
func normalize(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			nv, err := normalize(vv)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("yaml: non-string mapping key %v", k)
			}
			nv, err := normalize(vv)
			if err != nil {
				return nil, err
			}
			out[ks] = nv
		}
		return out, nil
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			nv, err := normalize(t[i])
			if err != nil {
				return nil, err
			}
			arr[i] = nv
		}
		return arr, nil
	default:
		return v, nil
	}
}
