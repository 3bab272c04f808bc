// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myeasyserver/myeasyserver/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the settings",
	}

	cmd.AddCommand(
		newConfigShowCommand(a),
		newConfigGetCommand(a),
		newConfigSetCommand(a),
		newConfigUnsetCommand(a),
		newConfigAddCommand(a),
		newConfigListCommand(a),
		newConfigPathCommand(a),
	)
	return cmd
}

func newConfigShowCommand(a *app) *cobra.Command {
	var (
		asJSON   bool
		internal bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings",
		Example: `  # TOML, as written to the settings file
  myeasysrv config show

  # JSON including internal settings
  myeasysrv config show --json --internal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.settings.Config
			if !internal {
				cfg = cfg.FilterInternal()
			}

			var (
				data []byte
				err  error
			)
			if asJSON {
				data, err = cfg.JSON()
			} else {
				data, err = cfg.Serialize(true)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := out.Write(data); err != nil {
				return err
			}
			if asJSON {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	cmd.Flags().BoolVar(&internal, "internal", false, "include internal settings")
	return cmd
}

func newConfigGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "get KEY",
		Short:   "Print the value of a setting",
		Example: `  myeasysrv config get application.port`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := a.settings.Get(args[0])
			if err != nil {
				return err
			}
			return printValue(cmd, value)
		},
	}
}

func newConfigSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change a setting and save it",
		Long: `Change a setting and save the resolved settings to the settings file.

Lists are given as comma separated values.`,
		Example: `  myeasysrv config set application.port 9000
  myeasysrv config set servers.backup.address 10.0.0.2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.settings.Set(args[0], args[1]); err != nil {
				return err
			}
			return a.save(cmd)
		},
	}
}

func newConfigUnsetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a setting so its default applies, and save",
		Long: `Remove a setting from the settings file so its default applies.

Removing a template instance, such as a server under "servers", deletes it.`,
		Example: `  myeasysrv config unset application.port
  myeasysrv config unset servers.backup`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := a.settings.Delete(args[0])
			if err != nil {
				return err
			}
			if !removed {
				a.logger.Debug().Str("key", args[0]).Msg("setting was not set")
			}
			return a.save(cmd)
		},
	}
}

func newConfigAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add SECTION.NAME",
		Short:   "Create a named section populated with its defaults, and save",
		Example: `  myeasysrv config add servers.backup`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.settings.SetDefault(args[0]); err != nil {
				return err
			}
			return a.save(cmd)
		},
	}
}

func newConfigListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [SECTION]",
		Short: "List the names defined under a section",
		Example: `  myeasysrv config list
  myeasysrv config list servers`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) > 0 {
				key = args[0]
			}
			names, err := a.settings.Enumerate(key)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newConfigPathCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file and the directory layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "deployment: %s\n", a.settings.Deployment)
			fmt.Fprintf(out, "settings:   %s\n", a.settings.ConfigFile())

			data, err := json.MarshalIndent(a.settings.Dirs, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%s\n", data)
			return err
		},
	}
}

// save writes the settings unless --write already does at the end of the
// command.
func (a *app) save(cmd *cobra.Command) error {
	if a.write {
		return nil
	}
	if err := a.settings.Write(cmd.Context(), false); err != nil {
		return fmt.Errorf("error writing settings: %w", err)
	}
	a.logger.Info().Str("path", a.settings.ConfigFile()).Msg("settings written")
	return nil
}

func printValue(cmd *cobra.Command, value any) error {
	out := cmd.OutOrStdout()
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]any, []any, config.Tree:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	default:
		_, err := fmt.Fprintln(out, v)
		return err
	}
}
