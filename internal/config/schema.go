// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"

	"dario.cat/mergo"
)

const (
	// TemplatePlaceholder is the key that marks a template section when a
	// schema is written in map form.
	TemplatePlaceholder = "<>"

	// InternalSection names operator-only sections that are left out of
	// files meant for end users.
	InternalSection = "internal"
)

// ValueType is the declared type of a schema leaf.
type ValueType int

const (
	TypeInvalid ValueType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeList
)

func (t ValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	default:
		return "invalid"
	}
}

// Node is one level of a schema. It is one of [Leaf], [Fixed] or [Template].
type Node interface {
	schemaNode()
}

// Leaf is a terminal setting. The type of its default value is the
// authoritative type of the setting.
type Leaf struct {
	def    any
	typ    ValueType
	elem   ValueType
	secret bool
}

// Fixed is a section whose children are all declared up front.
type Fixed map[string]Node

// Template is a section whose children are named at runtime. Every child
// conforms to Shape.
type Template struct {
	Shape Node
}

func (Leaf) schemaNode()     {}
func (Fixed) schemaNode()    {}
func (Template) schemaNode() {}

// NewLeaf builds a leaf from its default value. Supported defaults are
// booleans, integers, floats, strings and non-empty lists of those.
func NewLeaf(def any) (Leaf, error) {
	v, err := normalize(def)
	if err != nil {
		return Leaf{}, err
	}
	l := Leaf{def: v, typ: typeOf(v)}
	if l.typ == TypeList {
		l.elem = typeOf(v.([]any)[0])
	}
	return l, nil
}

// MustLeaf is like [NewLeaf] but panics on an unsupported default.
func MustLeaf(def any) Leaf {
	l, err := NewLeaf(def)
	if err != nil {
		panic(err)
	}
	return l
}

// Optional declares a scalar leaf of type t without a default. Until a source
// supplies a value the leaf reads as nil.
func Optional(t ValueType) Leaf {
	return Leaf{typ: t}
}

// Secret marks l as holding a credential. Secret leaves are persisted like
// any other but are left out of [Config.WithoutSecrets].
func Secret(l Leaf) Leaf {
	l.secret = true
	return l
}

// EmptyList declares a list leaf whose default is empty.
func EmptyList(elem ValueType) Leaf {
	return Leaf{def: []any{}, typ: TypeList, elem: elem}
}

// Type returns the declared type.
func (l Leaf) Type() ValueType { return l.typ }

// IsSecret reports whether the leaf holds a credential.
func (l Leaf) IsSecret() bool { return l.secret }

// ElemType returns the element type of a list leaf.
func (l Leaf) ElemType() ValueType { return l.elem }

// Default returns a copy of the default value, nil for optional leaves.
func (l Leaf) Default() any {
	return cloneValue(l.def)
}

// Coerce converts v to the type of the leaf.
func (l Leaf) Coerce(v any) (any, error) {
	return Coerce(l.reference(), v)
}

func (l Leaf) reference() any {
	if l.typ == TypeList {
		return []any{zeroOf(l.elem)}
	}
	if l.def != nil {
		return l.def
	}
	return zeroOf(l.typ)
}

func zeroOf(t ValueType) any {
	switch t {
	case TypeBool:
		return false
	case TypeInt:
		return int64(0)
	case TypeFloat:
		return float64(0)
	default:
		return ""
	}
}

// Schema is the compiled, immutable description of every configuration path.
type Schema struct {
	root Fixed
}

// NewSchema deep-merges the map-form fragments (later fragments override
// earlier ones) and compiles the result. A map holding only the
// [TemplatePlaceholder] key becomes a [Template]; values may also be [Node]s,
// which is how optional leaves are declared.
func NewSchema(fragments ...map[string]any) (*Schema, error) {
	merged, err := ComposeSchema(fragments...)
	if err != nil {
		return nil, err
	}

	root, err := compileFixed(merged, nil)
	if err != nil {
		return nil, err
	}
	return &Schema{root: root}, nil
}

// MustSchema is like [NewSchema] but panics on error. It is meant for
// package-level schema declarations.
func MustSchema(fragments ...map[string]any) *Schema {
	s, err := NewSchema(fragments...)
	if err != nil {
		panic(err)
	}
	return s
}

// ComposeSchema merges schema fragments with mergo. Nested sections are
// merged key by key; leaves of later fragments win.
func ComposeSchema(fragments ...map[string]any) (map[string]any, error) {
	merged := make(map[string]any)
	for _, fragment := range fragments {
		if err := mergo.Merge(&merged, cloneMap(fragment), mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging schema fragments: %w", err)
		}
	}
	return merged, nil
}

func compileFixed(m map[string]any, path []string) (Fixed, error) {
	fixed := make(Fixed, len(m))
	for name, v := range m {
		if name == TemplatePlaceholder {
			return nil, fmt.Errorf("%w: %v: placeholder %q mixed with named sections",
				ErrInvalidSchema, path, TemplatePlaceholder)
		}
		node, err := compileNode(v, append(slices.Clip(path), name))
		if err != nil {
			return nil, err
		}
		fixed[name] = node
	}
	return fixed, nil
}

func compileNode(v any, path []string) (Node, error) {
	switch x := v.(type) {
	case Leaf:
		return x, nil
	case Fixed:
		return x, nil
	case Template:
		if x.Shape == nil {
			return nil, fmt.Errorf("%w: %v: template without shape", ErrInvalidSchema, path)
		}
		return x, nil
	case map[string]any:
		if shape, ok := x[TemplatePlaceholder]; ok && len(x) == 1 {
			node, err := compileNode(shape, append(slices.Clip(path), TemplatePlaceholder))
			if err != nil {
				return nil, err
			}
			return Template{Shape: node}, nil
		}
		return compileFixed(x, path)
	default:
		l, err := NewLeaf(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v: %w", ErrInvalidSchema, path, err)
		}
		return l, nil
	}
}

// Root returns the top-level section.
func (s *Schema) Root() Fixed {
	return s.root
}

// Resolve walks path and returns the schema node it designates. Template
// levels accept any instance name except the placeholder itself.
func (s *Schema) Resolve(path []string) (Node, error) {
	var node Node = s.root
	for i, name := range path {
		child, ok := childNode(node, name)
		if !ok {
			return nil, newPathError(path[:i+1])
		}
		node = child
	}
	return node, nil
}

// IsSecret reports whether path designates a secret leaf.
func (s *Schema) IsSecret(path []string) (bool, error) {
	node, err := s.Resolve(path)
	if err != nil {
		return false, err
	}
	leaf, ok := node.(Leaf)
	return ok && leaf.secret, nil
}

func childNode(node Node, name string) (Node, bool) {
	switch n := node.(type) {
	case Fixed:
		child, ok := n[name]
		return child, ok
	case Template:
		if name == "" || name == TemplatePlaceholder {
			return nil, false
		}
		return n.Shape, true
	default:
		return nil, false
	}
}

// Default returns the default value at path. Sections render as maps of
// their children's defaults; template sections render as empty maps.
func (s *Schema) Default(path []string) (any, error) {
	node, err := s.Resolve(path)
	if err != nil {
		return nil, err
	}
	return defaultOf(node), nil
}

func defaultOf(node Node) any {
	switch n := node.(type) {
	case Leaf:
		return n.Default()
	case Fixed:
		m := make(map[string]any, len(n))
		for name, child := range n {
			if v := defaultOf(child); v != nil {
				m[name] = v
			}
		}
		return m
	default:
		return map[string]any{}
	}
}

func sortedNames(n Fixed) []string {
	return slices.Sorted(maps.Keys(n))
}

// normalize converts a Go value into the canonical representation used in
// configuration trees: bool, int64, float64, string or []any.
func normalize(v any) (any, error) {
	switch x := v.(type) {
	case bool, int64, float64, string:
		return x, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case uint:
		return uintToInt64(uint64(x))
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return uintToInt64(x)
	case float32:
		return float64(x), nil
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("unsupported default value %#v", v)
	}
	if rv.Len() == 0 {
		return nil, fmt.Errorf("cannot infer element type of empty list, use EmptyList")
	}

	out := make([]any, rv.Len())
	var elem ValueType
	for i := range rv.Len() {
		item, err := normalize(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		t := typeOf(item)
		if t == TypeList {
			return nil, fmt.Errorf("nested lists are not supported")
		}
		if i > 0 && t != elem {
			return nil, fmt.Errorf("mixed element types %s and %s in list", elem, t)
		}
		elem = t
		out[i] = item
	}
	return out, nil
}

func uintToInt64(u uint64) (any, error) {
	if u > math.MaxInt64 {
		return nil, &CoercionError{Value: u, Type: TypeInt, Err: strconv.ErrRange}
	}
	return int64(u), nil
}

func typeOf(v any) ValueType {
	switch v.(type) {
	case bool:
		return TypeBool
	case int64:
		return TypeInt
	case float64:
		return TypeFloat
	case string:
		return TypeString
	case []any:
		return TypeList
	default:
		return TypeInvalid
	}
}
