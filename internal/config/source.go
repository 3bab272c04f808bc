// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"maps"
	"slices"
)

// Source is one precedence layer. Lookup returns the raw value stored at
// path, or false when the layer has nothing to say about it.
type Source interface {
	Lookup(path []string) (any, bool)
}

// Enumerator is implemented by sources able to list the sections they hold
// at a path. Only enumerating sources can introduce new template instances.
type Enumerator interface {
	Sections(path []string) []string
}

// SourceFunc adapts a plain function to [Source].
type SourceFunc func(path []string) (any, bool)

// Lookup implements [Source].
func (f SourceFunc) Lookup(path []string) (any, bool) {
	return f(path)
}

// DefaultSource serves the schema defaults. It never reports absence for a
// declared leaf, except for optional leaves which have no default.
type DefaultSource struct {
	schema *Schema
}

// NewDefaultSource returns the defaults layer for s.
func NewDefaultSource(s *Schema) DefaultSource {
	return DefaultSource{schema: s}
}

// Lookup implements [Source].
func (d DefaultSource) Lookup(path []string) (any, bool) {
	node, err := d.schema.Resolve(path)
	if err != nil {
		return nil, false
	}
	leaf, ok := node.(Leaf)
	if !ok {
		return nil, false
	}
	v := leaf.Default()
	return v, v != nil
}

// MapSource serves values from a nested map, the way a parsed file does.
type MapSource map[string]any

// Lookup implements [Source].
func (m MapSource) Lookup(path []string) (any, bool) {
	return Tree(m).Lookup(path)
}

// Sections implements [Enumerator].
func (m MapSource) Sections(path []string) []string {
	v, ok := Tree(m).Lookup(path)
	if !ok {
		return nil
	}
	sub, ok := asMap(v)
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(sub))
}
