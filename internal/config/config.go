// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

const (
	// AppName names the per-application directories.
	AppName = "myeasyserver"

	// EnvPrefix prefixes every environment variable of the application.
	EnvPrefix = "MYEASYSRV_"
)

// Application is a sub-application contributing settings on top of the
// core ones.
type Application struct {
	Name   string
	Schema map[string]any
	Links  Links
}

// CoreSchema returns the settings shared by every sub-application. Sections
// named "internal" are never written to end-user files.
func CoreSchema() map[string]any {
	return map[string]any{
		"application": map[string]any{
			"verbose":    false,
			"ip_address": "127.0.0.1",
			"port":       8080,
			"socket":     Optional(TypeString),
		},
		InternalSection: map[string]any{
			"development": false,
			"debug":       false,
		},
	}
}

// CoreLinks returns the external inputs of the core settings.
func CoreLinks() Links {
	return Links{
		"internal.debug":         {Flag: "debug", Env: EnvPrefix + "DEBUG", Dotenv: "DEBUG"},
		"internal.development":   {Flag: "development", Env: EnvPrefix + "DEVEL", Dotenv: "DEVELOPMENT"},
		"application.verbose":    {Flag: "verbose", Env: EnvPrefix + "VERBOSE", Dotenv: "VERBOSE"},
		"application.ip_address": {Flag: "ip-address", Env: EnvPrefix + "IP_ADDRESS", Dotenv: "IP_ADDRESS"},
		"application.port":       {Flag: "port", Env: EnvPrefix + "PORT", Dotenv: "PORT"},
		"application.socket":     {Flag: "socket", Env: EnvPrefix + "SOCKET", Dotenv: "SOCKET"},
	}
}

// ServeApplication is the backend server.
func ServeApplication() Application {
	return Application{
		Name: "serve",
		Schema: map[string]any{
			"application": map[string]any{
				"default_locale":   "C",
				"default_timezone": "UTC",
				"default_group":    "home",
				"default_user":     "changeme@example.com",
				"demo":             false,
			},
		},
		Links: Links{
			"application.demo":             {Env: EnvPrefix + "DEMO", Dotenv: "DEMO"},
			"application.default_locale":   {Env: EnvPrefix + "DEFAULT_LOCALE", Dotenv: "LOCALE"},
			"application.default_timezone": {Env: EnvPrefix + "DEFAULT_TIMEZONE", Dotenv: "TIMEZONE"},
		},
	}
}

// CLIApplication is the command-line management tool. Its remote servers are
// declared as named instances of the "servers" template; their passwords
// are secret.
func CLIApplication() Application {
	return Application{
		Name: "cli",
		Schema: map[string]any{
			"servers": map[string]any{
				TemplatePlaceholder: map[string]any{
					"name":     "standard",
					"address":  "",
					"port":     22,
					"login":    "",
					"password": Secret(MustLeaf("")),
					"sudo":     true,
					"sudo_pwd": Secret(MustLeaf("")),
				},
			},
		},
	}
}

// Applications returns every sub-application of the program.
func Applications() []Application {
	return []Application{ServeApplication(), CLIApplication()}
}

// BuildSchema composes the core settings with the contributions of apps.
// Application fragments override core defaults.
func BuildSchema(apps ...Application) (*Schema, error) {
	fragments := make([]map[string]any, 0, len(apps)+1)
	fragments = append(fragments, CoreSchema())
	for _, app := range apps {
		fragments = append(fragments, app.Schema)
	}
	return NewSchema(fragments...)
}

// BuildLinks merges the link tables of apps with the core one and checks
// the result against s. Core links win over application links.
func BuildLinks(s *Schema, apps ...Application) (Links, error) {
	tables := make([]Links, 0, len(apps)+1)
	for _, app := range apps {
		tables = append(tables, app.Links)
	}
	tables = append(tables, CoreLinks())

	links, err := MergeLinks(tables...)
	if err != nil {
		return nil, err
	}
	if err := links.Validate(s); err != nil {
		return nil, err
	}
	return links, nil
}
