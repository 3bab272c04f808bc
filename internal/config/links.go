// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"dario.cat/mergo"
)

// Link names the external inputs that may supply one leaf. Empty fields mean
// the leaf cannot be set from that input.
type Link struct {
	// Flag is the long command-line option name, without dashes.
	Flag string
	// Env is the process environment variable name.
	Env string
	// Dotenv is the variable name looked up in the .env file.
	Dotenv string
}

// Links maps a dotted leaf path to its [Link]. Leaves missing from the table
// only receive values from defaults and persisted files.
type Links map[string]Link

// MergeLinks combines link tables; entries of later tables replace earlier
// ones for the same path.
func MergeLinks(tables ...Links) (Links, error) {
	merged := make(Links)
	for _, table := range tables {
		if len(table) == 0 {
			continue
		}
		if err := mergo.Merge(&merged, table, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging link tables: %w", err)
		}
	}
	return merged, nil
}

// Validate checks every linked path against the schema.
func (l Links) Validate(s *Schema) error {
	for key := range l {
		node, err := s.Resolve(splitKey(key))
		if err != nil {
			return fmt.Errorf("link %q: %w", key, err)
		}
		if _, ok := node.(Leaf); !ok {
			return fmt.Errorf("link %q: %w: not a leaf", key, ErrInvalidSchema)
		}
	}
	return nil
}

func (l Links) lookup(path []string) (Link, bool) {
	link, ok := l[joinKey(path)]
	return link, ok
}

func splitKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, ".")
}

func joinKey(path []string) string {
	return strings.Join(path, ".")
}
