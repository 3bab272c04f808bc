// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"maps"
	"slices"
)

// Override applies one precedence layer on top of prev and returns the new
// tree; prev is not modified. The walk is driven by the schema:
//
//   - fixed sections visit their declared children;
//   - template sections visit the union of the instances already in prev and
//     the instances src enumerates at that level;
//   - leaves take src's value, coerced to the leaf type, or keep prev's.
//
// Sections named "internal" are skipped unless withInternal is set, and
// sections that end up empty are left out of the result.
func Override(prev Tree, schema *Schema, src Source, withInternal bool) (Tree, error) {
	out, err := overrideLevel(prev, schema.Root(), src, nil, withInternal)
	if err != nil {
		return nil, err
	}
	return Tree(out), nil
}

func overrideLevel(prev map[string]any, node Node, src Source, path []string, withInternal bool) (map[string]any, error) {
	out := make(map[string]any)

	for _, name := range levelNames(prev, node, src, path) {
		if name == InternalSection && !withInternal {
			continue
		}

		child, ok := childNode(node, name)
		if !ok {
			continue
		}
		childPath := append(slices.Clip(path), name)
		prevValue, hasPrev := prev[name]

		if leaf, ok := child.(Leaf); ok {
			v, ok, err := overrideLeaf(leaf, src, childPath, prevValue, hasPrev)
			if err != nil {
				return nil, err
			}
			if ok {
				out[name] = v
			}
			continue
		}

		prevSection, _ := asMap(prevValue)
		section, err := overrideLevel(prevSection, child, src, childPath, withInternal)
		if err != nil {
			return nil, err
		}
		// An empty section, including a template instance declared with no
		// keys, is dropped on purpose and does not enumerate.
		if len(section) != 0 {
			out[name] = section
		}
	}

	return out, nil
}

func overrideLeaf(leaf Leaf, src Source, path []string, prev any, hasPrev bool) (any, bool, error) {
	raw, ok := src.Lookup(path)
	if !ok || raw == nil {
		if !hasPrev || prev == nil {
			return nil, false, nil
		}
		raw = prev
	}

	v, err := leaf.Coerce(raw)
	if err != nil {
		var ce *CoercionError
		if errors.As(err, &ce) {
			ce.Path = path
			if ce.Type == TypeInvalid {
				ce.Type = leaf.Type()
			}
			return nil, false, ce
		}
		return nil, false, &CoercionError{Path: path, Value: raw, Type: leaf.Type(), Err: err}
	}
	return v, true, nil
}

// levelNames lists the child names to visit at a section, in a stable order.
func levelNames(prev map[string]any, node Node, src Source, path []string) []string {
	switch n := node.(type) {
	case Fixed:
		return sortedNames(n)
	case Template:
		names := make(map[string]struct{}, len(prev))
		for name := range prev {
			names[name] = struct{}{}
		}
		if e, ok := src.(Enumerator); ok {
			for _, name := range e.Sections(path) {
				names[name] = struct{}{}
			}
		}
		delete(names, TemplatePlaceholder)
		delete(names, "")
		return slices.Sorted(maps.Keys(names))
	default:
		return nil
	}
}
