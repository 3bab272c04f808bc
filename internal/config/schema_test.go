// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func testSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema(map[string]any{
		"application": map[string]any{
			"verbose": false,
			"port":    8080,
			"ratio":   0.5,
			"name":    "srv",
			"tags":    []string{"a"},
			"socket":  Optional(TypeString),
		},
		InternalSection: map[string]any{
			"debug": false,
		},
		"servers": map[string]any{
			TemplatePlaceholder: map[string]any{
				"address": "",
				"port":    22,
				"sudo":    true,
			},
		},
	})
	require.NoError(t, err)
	return s
}

// ── compile ───────────────────────────────────────────────────────────────────

func TestNewSchema_CompilesNodes(t *testing.T) {
	s := testSchema(t)

	app, ok := s.Root()["application"].(Fixed)
	require.True(t, ok)

	port, ok := app["port"].(Leaf)
	require.True(t, ok)
	assert.Equal(t, TypeInt, port.Type())
	assert.Equal(t, int64(8080), port.Default())

	tags, ok := app["tags"].(Leaf)
	require.True(t, ok)
	assert.Equal(t, TypeList, tags.Type())
	assert.Equal(t, TypeString, tags.ElemType())

	socket, ok := app["socket"].(Leaf)
	require.True(t, ok)
	assert.Nil(t, socket.Default())

	servers, ok := s.Root()["servers"].(Template)
	require.True(t, ok)
	_, ok = servers.Shape.(Fixed)
	assert.True(t, ok)
}

func TestNewSchema_FragmentsMerge(t *testing.T) {
	s, err := NewSchema(
		map[string]any{"application": map[string]any{"port": 8080, "verbose": false}},
		map[string]any{"application": map[string]any{"port": 9000, "locale": "C"}},
	)
	require.NoError(t, err)

	app := s.Root()["application"].(Fixed)
	assert.Len(t, app, 3)
	assert.Equal(t, int64(9000), app["port"].(Leaf).Default())
}

func TestNewSchema_FragmentsNotModified(t *testing.T) {
	base := map[string]any{"application": map[string]any{"port": 8080}}
	_, err := NewSchema(base, map[string]any{"application": map[string]any{"port": 1}})
	require.NoError(t, err)

	assert.Equal(t, 8080, base["application"].(map[string]any)["port"])
}

func TestNewSchema_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		schema map[string]any
	}{
		{name: "nil default", schema: map[string]any{"a": nil}},
		{name: "empty list", schema: map[string]any{"a": []string{}}},
		{name: "mixed list", schema: map[string]any{"a": []any{1, "x"}}},
		{name: "placeholder mixed with names", schema: map[string]any{
			"a": map[string]any{TemplatePlaceholder: map[string]any{"x": 1}, "b": 2},
		}},
		{name: "struct default", schema: map[string]any{"a": struct{}{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.schema)
			assert.ErrorIs(t, err, ErrInvalidSchema)
		})
	}
}

func TestMustSchema_Panics(t *testing.T) {
	assert.Panics(t, func() { MustSchema(map[string]any{"a": nil}) })
}

// ── Resolve ───────────────────────────────────────────────────────────────────

func TestSchemaResolve(t *testing.T) {
	s := testSchema(t)

	tests := []struct {
		name    string
		path    []string
		wantErr []string
	}{
		{name: "root", path: nil},
		{name: "leaf", path: []string{"application", "port"}},
		{name: "template instance", path: []string{"servers", "alpha"}},
		{name: "template leaf", path: []string{"servers", "alpha", "port"}},
		{name: "unknown leaf", path: []string{"application", "nonexistent"}, wantErr: []string{"application", "nonexistent"}},
		{name: "below leaf", path: []string{"application", "port", "x"}, wantErr: []string{"application", "port", "x"}},
		{name: "placeholder name", path: []string{"servers", "<>", "port"}, wantErr: []string{"servers", "<>"}},
		{name: "empty instance", path: []string{"servers", ""}, wantErr: []string{"servers", ""}},
		{name: "unknown template leaf", path: []string{"servers", "alpha", "bad"}, wantErr: []string{"servers", "alpha", "bad"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Resolve(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			var pe *PathError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.wantErr, pe.Path)
			assert.ErrorIs(t, err, ErrPathNotDefined)
		})
	}
}

func TestPathError_Message(t *testing.T) {
	err := newPathError([]string{"application", "nonexistent"})
	assert.Equal(t, "application->nonexistent is not defined in configuration", err.Error())
}

// ── Default ───────────────────────────────────────────────────────────────────

func TestSchemaDefault(t *testing.T) {
	s := testSchema(t)

	v, err := s.Default([]string{"servers", "alpha"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"address": "", "port": int64(22), "sudo": true}, v)

	v, err = s.Default([]string{"servers"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, v)

	v, err = s.Default([]string{"application"})
	require.NoError(t, err)
	app := v.(map[string]any)
	assert.NotContains(t, app, "socket")
	assert.Equal(t, []any{"a"}, app["tags"])
}

func TestLeafDefault_IsCopy(t *testing.T) {
	l := MustLeaf([]string{"a", "b"})
	d := l.Default().([]any)
	d[0] = "changed"
	assert.Equal(t, []any{"a", "b"}, l.Default())
}

func TestEmptyList(t *testing.T) {
	l := EmptyList(TypeInt)
	assert.Equal(t, []any{}, l.Default())

	v, err := l.Coerce([]string{"1", "2"})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2)}, v)
}
