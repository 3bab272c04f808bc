// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLinks = Links{
	"application.verbose": {Flag: "verbose", Env: "TEST_VERBOSE", Dotenv: "VERBOSE"},
	"application.port":    {Flag: "port", Env: "test_port", Dotenv: "PORT"},
	"application.name":    {Env: "TEST_NAME"},
	"application.tags":    {Flag: "tag", Dotenv: "TAGS"},
}

// ── ParseBootstrap ────────────────────────────────────────────────────────────

func TestParseBootstrap(t *testing.T) {
	b, err := ParseBootstrap([]string{
		"MYEASYSRV_CONF=/etc/custom.toml",
		"MYEASYSRV_DEPLOYMENT=docker",
		"UNRELATED=1",
	})
	require.NoError(t, err)
	assert.Equal(t, "/etc/custom.toml", b.ConfFile)
	assert.Equal(t, "docker", b.Deployment)
}

func TestParseBootstrap_Empty(t *testing.T) {
	b, err := ParseBootstrap(nil)
	require.NoError(t, err)
	assert.Equal(t, Bootstrap{}, b)
}

// ── EnvSource ─────────────────────────────────────────────────────────────────

func TestEnvSource_Lookup(t *testing.T) {
	src := NewEnvSource(testLinks, []string{
		"TEST_VERBOSE=1",
		"TEST_PORT=7000",
		"VERBOSE=0",
	})

	tests := []struct {
		name   string
		path   []string
		want   any
		wantOk bool
	}{
		{name: "registered", path: []string{"application", "verbose"}, want: "1", wantOk: true},
		{name: "name is upper-cased", path: []string{"application", "port"}, want: "7000", wantOk: true},
		{name: "registered but unset", path: []string{"application", "name"}},
		{name: "no env name", path: []string{"application", "tags"}},
		{name: "not registered", path: []string{"application", "ratio"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := src.Lookup(tt.path)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestEnvSource_VerboseScenario verifies that "1" in the environment turns a
// false default into true.
func TestEnvSource_VerboseScenario(t *testing.T) {
	s := testSchema(t)
	tree := applyLayers(t, s, NewDefaultSource(s), NewEnvSource(testLinks, []string{"TEST_VERBOSE=1"}))

	c := NewConfig(s, tree)
	v, err := c.GetBool("application.verbose")
	require.NoError(t, err)
	assert.True(t, v)
}

func TestEnvSource_MalformedValue(t *testing.T) {
	s := testSchema(t)
	_, err := Override(nil, s, NewEnvSource(testLinks, []string{"TEST_PORT=http"}), true)
	assert.ErrorIs(t, err, ErrMalformedValue)
}

// ── LoadDotenv ────────────────────────────────────────────────────────────────

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=6000\nTAGS=a,b\nVERBOSE=yes\n"), 0o600))

	src, err := LoadDotenv(testLinks, path, []string{"VERBOSE=no"})
	require.NoError(t, err)

	v, ok := src.Lookup([]string{"application", "port"})
	require.True(t, ok)
	assert.Equal(t, "6000", v)

	v, ok = src.Lookup([]string{"application", "verbose"})
	require.True(t, ok)
	assert.Equal(t, "no", v, "the environment wins over the .env file")

	_, ok = src.Lookup([]string{"application", "name"})
	assert.False(t, ok, "leaves without a dotenv name are never found")

	s := testSchema(t)
	tree := applyLayers(t, s, src)
	tags, _ := tree.Lookup([]string{"application", "tags"})
	assert.Equal(t, []any{"a", "b"}, tags)
}

func TestLoadDotenv_MissingFile(t *testing.T) {
	src, err := LoadDotenv(testLinks, filepath.Join(t.TempDir(), ".env"), []string{"PORT=1"})
	require.NoError(t, err)

	v, ok := src.Lookup([]string{"application", "port"})
	require.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestLoadDotenv_Unreadable(t *testing.T) {
	// a directory cannot be read as a file
	_, err := LoadDotenv(testLinks, t.TempDir(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSource)
}
