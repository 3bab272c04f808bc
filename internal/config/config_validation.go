// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"slices"
)

// conform checks value against node and returns it converted to the schema
// types. Unknown section names are reported as a [*PathError], values that
// cannot be converted as a [*CoercionError].
func conform(node Node, value any, path []string) (any, error) {
	switch n := node.(type) {
	case Leaf:
		v, err := n.Coerce(value)
		if err != nil {
			var ce *CoercionError
			if errors.As(err, &ce) {
				ce.Path = path
				return nil, ce
			}
			return nil, &CoercionError{Path: path, Value: value, Type: n.Type(), Err: err}
		}
		return v, nil

	case Fixed, Template:
		m, ok := asMap(value)
		if !ok {
			return nil, &CoercionError{Path: path, Value: value, Err: errUnsupportedConversion}
		}
		out := make(map[string]any, len(m))
		for name, v := range m {
			childPath := append(slices.Clip(path), name)
			child, ok := childNode(n, name)
			if !ok {
				return nil, newPathError(childPath)
			}
			converted, err := conform(child, v, childPath)
			if err != nil {
				return nil, err
			}
			out[name] = converted
		}
		return out, nil
	}
	return nil, newPathError(path)
}
