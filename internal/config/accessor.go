// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Config is the dotted-path view over a resolved configuration tree. Every
// path is validated against the schema; an invalid path yields a
// [*PathError].
//
// Reads are safe for concurrent use as long as no writer runs. Set, Delete
// and SetDefault mutate the tree in place without locking; callers
// serialize them.
type Config struct {
	schema *Schema
	tree   Tree
}

// NewConfig wraps tree, which becomes owned by the returned Config.
func NewConfig(schema *Schema, tree Tree) *Config {
	if tree == nil {
		tree = make(Tree)
	}
	return &Config{schema: schema, tree: tree}
}

// Schema returns the schema the configuration is validated against.
func (c *Config) Schema() *Schema {
	return c.schema
}

// Tree returns a deep copy of the current tree.
func (c *Config) Tree() Tree {
	return c.tree.Clone()
}

// Get returns the value at key. A path that holds nothing in the tree reads
// as its schema default; sections read as maps.
func (c *Config) Get(key string) (any, error) {
	return c.GetPath(splitKey(key)...)
}

// GetPath is [Config.Get] with the path given as segments.
func (c *Config) GetPath(path ...string) (any, error) {
	node, err := c.schema.Resolve(path)
	if err != nil {
		return nil, err
	}
	if v, ok := c.tree.Lookup(path); ok && v != nil {
		return cloneValue(v), nil
	}
	return defaultOf(node), nil
}

// Has reports whether the tree holds a value at key.
func (c *Config) Has(key string) (bool, error) {
	path := splitKey(key)
	if _, err := c.schema.Resolve(path); err != nil {
		return false, err
	}
	_, ok := c.tree.Lookup(path)
	return ok, nil
}

// Set stores value at key after converting it to the schema type. Sections
// accept maps whose keys are checked against the schema.
func (c *Config) Set(key string, value any) error {
	path := splitKey(key)
	node, err := c.schema.Resolve(path)
	if err != nil {
		return err
	}

	v, err := conform(node, value, path)
	if err != nil {
		return err
	}

	if len(path) == 0 {
		m, _ := asMap(v)
		c.tree = Tree(m)
		return nil
	}

	parent := map[string]any(c.tree)
	for _, name := range path[:len(path)-1] {
		next, ok := asMap(parent[name])
		if !ok {
			next = make(map[string]any)
			parent[name] = next
		}
		parent = next
	}
	parent[path[len(path)-1]] = v
	return nil
}

// Delete removes the value or section at key from the tree. It reports
// whether anything was removed. An empty key is a [*PathError].
func (c *Config) Delete(key string) (bool, error) {
	path := splitKey(key)
	if len(path) == 0 {
		// the whole tree is never deleted
		return false, newPathError(nil)
	}
	if _, err := c.schema.Resolve(path); err != nil {
		return false, err
	}

	parent, ok := c.tree.Lookup(path[:len(path)-1])
	if !ok {
		return false, nil
	}
	m, ok := asMap(parent)
	if !ok {
		return false, nil
	}
	name := path[len(path)-1]
	if _, ok := m[name]; !ok {
		return false, nil
	}
	delete(m, name)
	return true, nil
}

// Enumerate lists the children of the section at key: the declared names of
// a fixed section, or the instances present in the tree for a template
// section. Leaves have no children.
func (c *Config) Enumerate(key string) ([]string, error) {
	path := splitKey(key)
	node, err := c.schema.Resolve(path)
	if err != nil {
		return nil, err
	}

	switch n := node.(type) {
	case Fixed:
		return sortedNames(n), nil
	case Template:
		v, ok := c.tree.Lookup(path)
		if !ok {
			return []string{}, nil
		}
		m, _ := asMap(v)
		return slices.Sorted(maps.Keys(m)), nil
	default:
		return nil, nil
	}
}

// Default returns the schema default at key.
func (c *Config) Default(key string) (any, error) {
	return c.schema.Default(splitKey(key))
}

// SetDefault stores the schema default at key. For a template instance this
// creates the instance populated with the template defaults.
func (c *Config) SetDefault(key string) error {
	v, err := c.Default(key)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return c.Set(key, v)
}

// FilterInternal returns a configuration over a copy of the tree without any
// "internal" section.
func (c *Config) FilterInternal() *Config {
	return NewConfig(c.schema, c.tree.WithoutInternal())
}

// WithoutSecrets returns a configuration over a copy of the tree without
// the leaves declared with [Secret].
func (c *Config) WithoutSecrets() *Config {
	return NewConfig(c.schema, Tree(withoutSecrets(c.schema.Root(), c.tree)))
}

// Serialize renders the tree as TOML, the persisted file format.
func (c *Config) Serialize(includeInternal bool) ([]byte, error) {
	return EncodeTree(c.export(includeInternal))
}

// WriteTo serializes the tree into filename.
func (c *Config) WriteTo(ctx context.Context, filename string, includeInternal bool) error {
	return WriteTree(ctx, filename, c.export(includeInternal))
}

// JSON renders the tree as indented JSON.
func (c *Config) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(c.tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error rendering configuration as json: %w", err)
	}
	return data, nil
}

func (c *Config) export(includeInternal bool) Tree {
	if includeInternal {
		return c.tree
	}
	return c.tree.WithoutInternal()
}

// Get returns the value at key as a T. An optional leaf that holds no value
// returns the zero T.
func Get[T any](c *Config, key string) (T, error) {
	var zero T
	v, err := c.Get(key)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, &TypeMismatchError{Key: key, Want: fmt.Sprintf("%T", zero), Got: v}
	}
	return t, nil
}

// GetString returns the string at key.
func (c *Config) GetString(key string) (string, error) {
	return Get[string](c, key)
}

// GetInt returns the integer at key.
func (c *Config) GetInt(key string) (int, error) {
	v, err := Get[int64](c, key)
	return int(v), err
}

// GetFloat returns the float at key.
func (c *Config) GetFloat(key string) (float64, error) {
	return Get[float64](c, key)
}

// GetBool returns the boolean at key.
func (c *Config) GetBool(key string) (bool, error) {
	return Get[bool](c, key)
}

// GetStrings returns the list of strings at key.
func (c *Config) GetStrings(key string) ([]string, error) {
	items, err := Get[[]any](c, key)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &TypeMismatchError{Key: key, Want: "[]string", Got: items}
		}
		out[i] = s
	}
	return out, nil
}
