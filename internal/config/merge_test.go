package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func applyLayers(t *testing.T, s *Schema, sources ...Source) Tree {
	t.Helper()
	tree := Tree{}
	for _, src := range sources {
		var err error
		tree, err = Override(tree, s, src, true)
		require.NoError(t, err)
	}
	return tree
}

// ── Override ──────────────────────────────────────────────────────────────────

// TestOverride_Defaults verifies that the defaults layer fills every declared
// leaf except optional ones, and creates no template instance.
func TestOverride_Defaults(t *testing.T) {
	s := testSchema(t)
	tree := applyLayers(t, s, NewDefaultSource(s))

	v, ok := tree.Lookup([]string{"application", "port"})
	require.True(t, ok)
	assert.Equal(t, int64(8080), v)

	_, ok = tree.Lookup([]string{"application", "socket"})
	assert.False(t, ok)

	_, ok = tree.Lookup([]string{"servers"})
	assert.False(t, ok, "template without instances must stay empty")

	v, ok = tree.Lookup([]string{InternalSection, "debug"})
	require.True(t, ok)
	assert.Equal(t, false, v)
}

// TestOverride_Precedence verifies that later layers win leaf by leaf and
// that leaves a layer does not supply keep their previous value.
func TestOverride_Precedence(t *testing.T) {
	s := testSchema(t)
	system := MapSource{"application": map[string]any{"port": int64(9000), "name": "system"}}
	cli := SourceFunc(func(path []string) (any, bool) {
		if joinKey(path) == "application.port" {
			return "7000", true
		}
		return nil, false
	})

	tree := applyLayers(t, s, NewDefaultSource(s), system, cli)

	port, _ := tree.Lookup([]string{"application", "port"})
	assert.Equal(t, int64(7000), port)
	name, _ := tree.Lookup([]string{"application", "name"})
	assert.Equal(t, "system", name)
	verbose, _ := tree.Lookup([]string{"application", "verbose"})
	assert.Equal(t, false, verbose)
}

// TestOverride_DoesNotModifyPrevious verifies that Override returns a new tree.
func TestOverride_DoesNotModifyPrevious(t *testing.T) {
	s := testSchema(t)
	prev := applyLayers(t, s, NewDefaultSource(s))

	_, err := Override(prev, s, MapSource{"application": map[string]any{"port": 1}}, true)
	require.NoError(t, err)

	port, _ := prev.Lookup([]string{"application", "port"})
	assert.Equal(t, int64(8080), port)
}

// TestOverride_TemplateDiscovery verifies that enumerating sources introduce
// template instances, that later layers carry them forward and that
// non-enumerating layers can still override their leaves.
func TestOverride_TemplateDiscovery(t *testing.T) {
	s := testSchema(t)
	file := MapSource{"servers": map[string]any{
		"alpha": map[string]any{"address": "10.0.0.1"},
		"beta":  map[string]any{"port": 2222, "sudo": "no"},
	}}
	env := SourceFunc(func(path []string) (any, bool) {
		if joinKey(path) == "servers.alpha.port" {
			return "2200", true
		}
		return nil, false
	})

	tree := applyLayers(t, s, NewDefaultSource(s), file, env)

	servers, ok := tree.Lookup([]string{"servers"})
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"alpha": map[string]any{"address": "10.0.0.1", "port": int64(2200)},
		"beta":  map[string]any{"port": int64(2222), "sudo": false},
	}, servers)
	_, ok = tree.Lookup([]string{"servers", "gamma"})
	assert.False(t, ok)
}

// TestOverride_EmptyTemplateInstanceDropped verifies that an instance
// declared with an empty table does not survive the merge and is not listed.
func TestOverride_EmptyTemplateInstanceDropped(t *testing.T) {
	s := testSchema(t)
	file, err := LoadFile(writeTempTOML(t, `
[servers.alpha]
address = "10.0.0.1"

[servers.beta]
`))
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"alpha", "beta"}, file.Sections([]string{"servers"}))

	tree := applyLayers(t, s, NewDefaultSource(s), file)

	_, ok := tree.Lookup([]string{"servers", "beta"})
	assert.False(t, ok)

	names, err := NewConfig(s, tree).Enumerate("servers")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, names)
}

// TestOverride_TemplateIgnoresPlaceholder verifies that a source listing the
// placeholder or an empty name does not create such instances.
func TestOverride_TemplateIgnoresPlaceholder(t *testing.T) {
	s := testSchema(t)
	file := MapSource{"servers": map[string]any{
		TemplatePlaceholder: map[string]any{"port": 1},
		"":                  map[string]any{"port": 2},
	}}

	tree := applyLayers(t, s, file)
	assert.Empty(t, tree)
}

// TestOverride_UnknownKeysIgnored verifies that values the schema does not
// declare never reach the tree.
func TestOverride_UnknownKeysIgnored(t *testing.T) {
	s := testSchema(t)
	file := MapSource{
		"application": map[string]any{"port": 1, "unknown": "x"},
		"other":       map[string]any{"a": 1},
	}

	tree := applyLayers(t, s, file)
	assert.Equal(t, Tree{"application": map[string]any{"port": int64(1)}}, tree)
}

// TestOverride_Internal verifies that internal sections are skipped unless
// requested.
func TestOverride_Internal(t *testing.T) {
	s := testSchema(t)
	src := MapSource{InternalSection: map[string]any{"debug": true}}

	tree, err := Override(nil, s, src, false)
	require.NoError(t, err)
	assert.NotContains(t, tree, InternalSection)

	tree, err = Override(nil, s, src, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"debug": true}, tree[InternalSection])
}

// TestOverride_MalformedValue verifies that a value that cannot be converted
// fails the layer and reports the leaf path.
func TestOverride_MalformedValue(t *testing.T) {
	s := testSchema(t)
	src := MapSource{"application": map[string]any{"port": "abc"}}

	_, err := Override(nil, s, src, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedValue)

	var ce *CoercionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"application", "port"}, ce.Path)
	assert.Equal(t, TypeInt, ce.Type)
	assert.Contains(t, err.Error(), "application.port")
}

// TestOverride_SectionValueForLeaf verifies that a table found where a leaf
// is declared is reported.
func TestOverride_SectionValueForLeaf(t *testing.T) {
	s := testSchema(t)
	src := MapSource{"application": map[string]any{"port": map[string]any{"a": 1}}}

	_, err := Override(nil, s, src, true)
	assert.ErrorIs(t, err, ErrMalformedValue)
}

// ── Tree ──────────────────────────────────────────────────────────────────────

func TestTree_WithoutInternal(t *testing.T) {
	tree := Tree{
		"application":   map[string]any{"port": int64(8080)},
		InternalSection: map[string]any{"debug": true},
		"servers": map[string]any{
			"alpha": map[string]any{InternalSection: map[string]any{"x": 1}},
		},
	}

	got := tree.WithoutInternal()
	assert.Equal(t, Tree{"application": map[string]any{"port": int64(8080)}}, got)
	assert.Contains(t, tree, InternalSection, "source tree must not change")
}

func TestTree_Clone(t *testing.T) {
	tree := Tree{"a": map[string]any{"list": []any{"x"}}}
	clone := tree.Clone()
	clone["a"].(map[string]any)["list"].([]any)[0] = "y"

	v, _ := tree.Lookup([]string{"a", "list"})
	assert.Equal(t, []any{"x"}, v)
}
