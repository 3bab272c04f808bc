// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/myeasyserver/myeasyserver/internal/appdirs"
	"github.com/myeasyserver/myeasyserver/internal/logger"
	"github.com/myeasyserver/myeasyserver/models"
)

// Options controls how [Load] resolves the settings. Zero fields take the
// process defaults.
type Options struct {
	// Apps contribute schema fragments and links on top of the core ones.
	Apps []Application
	// Flags holds the parsed command line. Only flags set by the user take
	// part in the resolution.
	Flags *pflag.FlagSet
	// Environ is the environment in os.Environ format. Defaults to
	// os.Environ().
	Environ []string
	// ConfFile replaces the system-scope file and disables the user-scope
	// one. Defaults to MYEASYSRV_CONF.
	ConfFile string
	// Resolver computes the directory layout. Defaults to an
	// [appdirs.XDGResolver].
	Resolver appdirs.Resolver
	// Detector classifies the deployment when MYEASYSRV_DEPLOYMENT is unset.
	Detector DeploymentDetector
	Logger   *logger.Logger
}

// Settings is the resolved configuration of the process together with where
// it came from. It is built once at startup and handed to every component
// that reads settings.
type Settings struct {
	*Config

	Deployment models.Deployment
	Dirs       appdirs.Directories

	links      Links
	systemFile *PersistedFile
	userFile   *PersistedFile
}

// Load resolves the settings. Layers are applied in increasing precedence:
// schema defaults, system file, user file, environment, .env file (debug and
// docker deployments only) and command line.
//
// A malformed settings file or a value that cannot be converted to its
// declared type aborts the resolution; missing files are empty layers.
func Load(opts Options) (*Settings, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}

	schema, err := BuildSchema(opts.Apps...)
	if err != nil {
		return nil, err
	}
	links, err := BuildLinks(schema, opts.Apps...)
	if err != nil {
		return nil, err
	}

	bootstrap, err := ParseBootstrap(environ)
	if err != nil {
		return nil, err
	}

	deployment, err := resolveDeployment(bootstrap, opts)
	if err != nil {
		return nil, err
	}
	log.Info().Str("deployment", deployment.String()).Msg("deployment detected")

	resolver := opts.Resolver
	if resolver == nil {
		resolver = appdirs.NewXDGResolver(AppName)
	}
	dirs, err := resolver.Resolve(deployment)
	if err != nil {
		return nil, fmt.Errorf("error resolving directories: %w", err)
	}

	confFile := opts.ConfFile
	if confFile == "" {
		confFile = bootstrap.ConfFile
	}

	s := &Settings{
		Deployment: deployment,
		Dirs:       dirs,
		links:      links,
	}
	if confFile != "" {
		if s.systemFile, err = LoadFile(confFile); err != nil {
			return nil, err
		}
	} else {
		if s.systemFile, err = LoadFile(dirs.SystemConfigFile()); err != nil {
			return nil, err
		}
		if s.userFile, err = LoadFile(dirs.UserConfigFile()); err != nil {
			return nil, err
		}
	}

	b := newConfigBuilder(schema, log).
		withDefaults().
		withFile("system", s.systemFile).
		withFile("user", s.userFile).
		withEnv(links, environ)
	if deployment.UsesDotenv() {
		b = b.withDotenv(links, dirs.DotenvFile(), environ)
	}
	s.Config, err = b.withFlags(links, opts.Flags).build()
	if err != nil {
		return nil, err
	}

	return s, nil
}

func resolveDeployment(bootstrap Bootstrap, opts Options) (models.Deployment, error) {
	if bootstrap.Deployment != "" {
		return models.ParseDeployment(bootstrap.Deployment)
	}
	return opts.Detector.Detect(flagSet(opts.Flags, "development") || flagSet(opts.Flags, "debug")), nil
}

func flagSet(flags *pflag.FlagSet, name string) bool {
	if flags == nil || flags.Lookup(name) == nil {
		return false
	}
	v, err := flags.GetBool(name)
	return err == nil && v
}

// Links returns the link table the settings were resolved with.
func (s *Settings) Links() Links {
	return s.links
}

// ConfigFile returns the file [Settings.Write] targets: the user-scope file,
// or the explicit configuration file when one was given.
func (s *Settings) ConfigFile() string {
	if f := s.writable(); f != nil {
		return f.Path()
	}
	return ""
}

func (s *Settings) writable() *PersistedFile {
	if s.userFile != nil {
		return s.userFile
	}
	return s.systemFile
}

// Write saves the configuration to [Settings.ConfigFile].
func (s *Settings) Write(ctx context.Context, includeInternal bool) error {
	f := s.writable()
	if f == nil || f.Path() == "" {
		return ErrNoConfigFile
	}
	return f.Write(ctx, s.export(includeInternal))
}
