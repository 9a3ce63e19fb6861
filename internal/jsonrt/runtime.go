// Package jsonrt provides an executor runtime backed by a static JSON
// document. Fields project out of the document by name, which is enough to
// serve fixture data and to exercise export chaining end to end without a
// real backend.
package jsonrt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Runtime resolves fields against an in-memory JSON value.
type Runtime struct {
	root map[string]any
}

// New creates a Runtime serving the given document. The top-level object
// backs the root operation types.
func New(root map[string]any) *Runtime {
	if root == nil {
		root = map[string]any{}
	}
	return &Runtime{root: root}
}

// Load reads a JSON file and builds a Runtime from its top-level object.
func Load(path string) (*Runtime, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return New(root), nil
}

// ResolveField projects the field out of the source object. A nil source
// means the root document. Arguments select within lists: when the field
// value is a list and an "id" argument is present, the element whose "id"
// matches is returned.
func (r *Runtime) ResolveField(ctx context.Context, objectType string, field string, source any, args map[string]any) (any, error) {
	obj, ok := source.(map[string]any)
	if source == nil {
		obj, ok = r.root, true
	}
	if !ok {
		return nil, fmt.Errorf("cannot resolve %s.%s on %T", objectType, field, source)
	}
	value := obj[field]

	if id, hasID := args["id"]; hasID {
		if list, isList := value.([]any); isList {
			for _, item := range list {
				if m, isMap := item.(map[string]any); isMap && fmt.Sprint(m["id"]) == fmt.Sprint(id) {
					return m, nil
				}
			}
			return nil, nil
		}
	}
	return value, nil
}

// ResolveType reads the conventional __typename key.
func (r *Runtime) ResolveType(ctx context.Context, abstractType string, value any) (string, error) {
	if m, ok := value.(map[string]any); ok {
		if tn, ok := m["__typename"].(string); ok {
			return tn, nil
		}
	}
	return "", fmt.Errorf("cannot resolve concrete type for %s value", abstractType)
}

// SerializeLeafValue passes JSON values through unchanged.
func (r *Runtime) SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error) {
	return value, nil
}
