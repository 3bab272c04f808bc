// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Bootstrap holds the few settings read from the environment before the
// configuration itself can be resolved.
type Bootstrap struct {
	// ConfFile replaces the system-scope settings file and disables the
	// user-scope one.
	// Env: MYEASYSRV_CONF
	ConfFile string `env:"MYEASYSRV_CONF"`

	// Deployment forces the deployment kind (debug, docker, system, user).
	// Env: MYEASYSRV_DEPLOYMENT
	Deployment string `env:"MYEASYSRV_DEPLOYMENT"`
}

// ParseBootstrap populates a [Bootstrap] from environ, given in the
// os.Environ format.
func ParseBootstrap(environ []string) (Bootstrap, error) {
	var b Bootstrap
	err := env.ParseWithOptions(&b, env.Options{Environment: env.ToMap(environ)})
	if err != nil {
		return Bootstrap{}, fmt.Errorf("error getting bootstrap env configs: %w", err)
	}
	return b, nil
}

// EnvSource resolves leaves through the [Links] table to variable names and
// reads them from a snapshot of variables. It backs both the environment and
// the dotenv layers.
type EnvSource struct {
	links  Links
	vars   map[string]string
	column func(Link) string
}

// NewEnvSource returns the environment layer over environ, given in the
// os.Environ format.
func NewEnvSource(links Links, environ []string) *EnvSource {
	return &EnvSource{
		links:  links,
		vars:   env.ToMap(environ),
		column: func(l Link) string { return l.Env },
	}
}

// LoadDotenv returns the dotenv layer. Variables of the .env file at path are
// added to environ without replacing variables already set there, and
// leaves are resolved through the Dotenv names of the table. A missing file
// leaves only environ.
func LoadDotenv(links Links, path string, environ []string) (*EnvSource, error) {
	vars := env.ToMap(environ)

	if path != "" {
		fileVars, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceError{Source: "dotenv", Path: path, Err: err}
		}
		for name, value := range fileVars {
			if _, ok := vars[name]; !ok {
				vars[name] = value
			}
		}
	}

	return &EnvSource{
		links:  links,
		vars:   vars,
		column: func(l Link) string { return l.Dotenv },
	}, nil
}

// Lookup implements [Source]. Only leaves registered in the table with a
// variable name can be found.
func (s *EnvSource) Lookup(path []string) (any, bool) {
	link, ok := s.links.lookup(path)
	if !ok {
		return nil, false
	}
	name := s.column(link)
	if name == "" {
		return nil, false
	}
	v, ok := s.vars[strings.ToUpper(name)]
	if !ok {
		return nil, false
	}
	return v, true
}
