// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package commands implements the myeasysrv command line.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myeasyserver/myeasyserver/internal/appdirs"
	"github.com/myeasyserver/myeasyserver/internal/config"
	"github.com/myeasyserver/myeasyserver/internal/logger"
	"github.com/myeasyserver/myeasyserver/models"
)

// errConfigWritten stops the command path once --write-conf has been
// honoured. Execute reports it as success.
var errConfigWritten = errors.New("configuration written")

// app is the state shared by every command of one invocation.
type app struct {
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	confFile  string
	write     bool
	writeConf string

	// environ and resolver override the process environment and the XDG
	// layout in tests.
	environ  []string
	resolver appdirs.Resolver

	settings *config.Settings
}

// Execute runs the command line with the process arguments.
func Execute(ctx context.Context, buildInfo models.AppBuildInfo, log *logger.Logger) error {
	return run(ctx, newRootCommand(&app{buildInfo: buildInfo, logger: log}))
}

func run(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if errors.Is(err, errConfigWritten) {
		return nil
	}
	return err
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "myeasysrv",
		Short: "MyEasyServer backend and management tool",
		Long: `myeasysrv runs the MyEasyServer backend and manages its settings.

Settings are resolved from, in increasing precedence: built-in defaults,
the system settings file, the user settings file, MYEASYSRV_* environment
variables, the .env file (debug and docker deployments) and the command line.`,
		Version:           fmt.Sprintf("%s (commit: %s, built: %s)", a.buildInfo.BuildVersion(), a.buildInfo.BuildCommit(), a.buildInfo.BuildDate()),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadSettings,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !a.write {
				return nil
			}
			if err := a.settings.Write(cmd.Context(), false); err != nil {
				return fmt.Errorf("error writing settings: %w", err)
			}
			a.logger.Info().Str("path", a.settings.ConfigFile()).Msg("settings written")
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.confFile, "conf", "C", "", "settings file replacing the system and user ones")
	pf.BoolVarP(&a.write, "write", "w", false, "write the resolved settings to the settings file")
	pf.StringVarP(&a.writeConf, "write-conf", "W", "", "write the resolved settings to `FILE` and exit")

	pf.BoolP("verbose", "V", false, "verbose logging")
	pf.StringP("ip-address", "A", "", "address the server binds")
	pf.IntP("port", "p", 0, "port the server binds")
	pf.StringP("socket", "S", "", "unix socket the server binds, instead of address and port")

	pf.Bool("development", false, "development deployment")
	pf.Bool("debug", false, "debug logging")
	_ = pf.MarkHidden("development")
	_ = pf.MarkHidden("debug")

	root.AddCommand(newServeCommand(a))
	root.AddCommand(newConfigCommand(a))

	return root
}

// loadSettings resolves the settings once, before any command runs.
func (a *app) loadSettings(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(config.Options{
		Apps:     config.Applications(),
		Flags:    cmd.Flags(),
		Environ:  a.environ,
		ConfFile: a.confFile,
		Resolver: a.resolver,
		Logger:   a.logger,
	})
	if err != nil {
		return err
	}
	a.settings = settings

	verbose, err := settings.GetBool("application.verbose")
	if err != nil {
		return err
	}
	debug, err := settings.GetBool("internal.debug")
	if err != nil {
		return err
	}
	logger.SetLevel(verbose, debug)

	a.logger.Debug().
		Str("deployment", settings.Deployment.String()).
		Str("settings_file", settings.ConfigFile()).
		Msg("settings resolved")

	if a.writeConf != "" {
		if err := settings.WriteTo(cmd.Context(), a.writeConf, false); err != nil {
			return fmt.Errorf("error writing settings: %w", err)
		}
		a.logger.Info().Str("path", a.writeConf).Msg("settings written")
		return errConfigWritten
	}

	return nil
}
