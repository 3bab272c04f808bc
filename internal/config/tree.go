// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// Tree is a concrete configuration instance. Sections are nested
// map[string]any values; leaves hold bool, int64, float64, string or []any.
type Tree map[string]any

// Clone returns a deep copy of t.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	return Tree(cloneMap(t))
}

// Lookup walks path and returns the value found there.
func (t Tree) Lookup(path []string) (any, bool) {
	var cur any = map[string]any(t)
	for _, name := range path {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[name]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// WithoutInternal returns a deep copy of t with every section named
// "internal" removed at any depth. Sections left empty are dropped.
func (t Tree) WithoutInternal() Tree {
	return Tree(filterInternal(t))
}

func filterInternal(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for name, v := range m {
		if name == InternalSection {
			continue
		}
		if sub, ok := asMap(v); ok {
			if filtered := filterInternal(sub); len(filtered) != 0 {
				out[name] = filtered
			}
			continue
		}
		out[name] = cloneValue(v)
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Tree:
		return m, true
	default:
		return nil, false
	}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneMap(x)
	case Tree:
		return cloneMap(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// withoutSecrets copies m, dropping the leaves node marks as secret.
func withoutSecrets(node Node, m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for name, v := range m {
		child, ok := childNode(node, name)
		if !ok {
			out[name] = cloneValue(v)
			continue
		}
		if leaf, ok := child.(Leaf); ok && leaf.secret {
			continue
		}
		if sub, ok := asMap(v); ok {
			out[name] = withoutSecrets(child, sub)
			continue
		}
		out[name] = cloneValue(v)
	}
	return out
}
