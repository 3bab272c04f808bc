// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package appdirs resolves the locations where the application keeps its
// configuration, data and logs. The layout depends on the deployment:
//
//   - docker: everything under /app/data;
//   - debug: everything under <install>/../dev/data;
//   - system: XDG system directories, /var/cache and /var/log;
//   - user: the XDG base directories of the current user.
package appdirs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/myeasyserver/myeasyserver/models"
)

const (
	// ConfigFileName is the name of the settings file in every scope.
	ConfigFileName = "config.toml"

	dotenvFileName = ".env"
	dockerDataDir  = "/app/data"
	systemCacheDir = "/var/cache"
	systemLogDir   = "/var/log"
)

// Directories is the resolved layout for one deployment.
type Directories struct {
	Lib       string `json:"lib_dir"`
	SysConf   string `json:"sysconf_dir"`
	Data      string `json:"data_dir"`
	Log       string `json:"log_dir"`
	Conf      string `json:"conf_dir"`
	Backup    string `json:"backup_dir"`
	Debug     string `json:"debug_dir"`
	Migration string `json:"migration_dir"`
	Template  string `json:"template_dir"`
	User      string `json:"user_dir"`
	Temp      string `json:"temp_dir"`
}

// SystemConfigFile returns the path of the system-scope settings file.
func (d Directories) SystemConfigFile() string {
	return filepath.Join(d.SysConf, ConfigFileName)
}

// UserConfigFile returns the path of the user-scope settings file.
func (d Directories) UserConfigFile() string {
	return filepath.Join(d.Conf, ConfigFileName)
}

// DotenvFile returns the path of the .env file, next to the installation
// directory.
func (d Directories) DotenvFile() string {
	return filepath.Join(filepath.Dir(d.Lib), dotenvFileName)
}

// Ensure creates every directory of the layout. The configuration directory
// is skipped for system deployments, where it is owned by the package
// manager.
func (d Directories) Ensure(system bool) error {
	dirs := []string{d.Backup, d.Data, d.Debug, d.Log, d.Migration, d.Template, d.Temp, d.User}
	if !system {
		dirs = append(dirs, d.Conf)
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// XDGResolver resolves directories from the XDG base directory variables.
type XDGResolver struct {
	// AppName names the per-application subdirectories.
	AppName string
	// LibDir is the installation directory. Defaults to the directory of the
	// running executable.
	LibDir string
}

// NewXDGResolver returns a resolver for appName.
func NewXDGResolver(appName string) *XDGResolver {
	return &XDGResolver{AppName: appName}
}

// Resolve implements [Resolver].
func (r *XDGResolver) Resolve(deployment models.Deployment) (Directories, error) {
	lib, err := r.libDir()
	if err != nil {
		return Directories{}, err
	}
	if len(xdg.ConfigDirs) == 0 {
		return Directories{}, ErrNoConfigDirs
	}

	d := Directories{
		Lib:     lib,
		SysConf: filepath.Join(xdg.ConfigDirs[0], r.AppName),
	}

	switch deployment {
	case models.DeploymentDocker:
		d.Data = dockerDataDir
		d.Log = filepath.Join(d.Data, "log")
		d.Conf = filepath.Join(d.Data, "conf")
	case models.DeploymentDebug:
		d.Data = filepath.Join(filepath.Dir(lib), "dev", "data")
		d.Log = filepath.Join(d.Data, "log")
		d.Conf = filepath.Join(d.Data, "conf")
	case models.DeploymentSystem:
		d.Data = filepath.Join(systemCacheDir, r.AppName)
		d.Log = filepath.Join(systemLogDir, r.AppName)
		d.Conf = d.SysConf
	default:
		d.Data = filepath.Join(xdg.CacheHome, r.AppName)
		d.Log = filepath.Join(xdg.StateHome, r.AppName, "log")
		d.Conf = filepath.Join(xdg.ConfigHome, r.AppName)
	}

	d.Backup = filepath.Join(d.Data, "backups")
	d.Debug = filepath.Join(d.Data, "debug")
	d.Migration = filepath.Join(d.Data, "migration")
	d.Template = filepath.Join(d.Data, "templates")
	d.User = filepath.Join(d.Data, "users")

	if deployment == models.DeploymentSystem || deployment == models.DeploymentUser {
		d.Temp = filepath.Join(os.TempDir(), r.AppName)
	} else {
		d.Temp = filepath.Join(d.Data, ".temp")
	}

	return d, nil
}

func (r *XDGResolver) libDir() (string, error) {
	if r.LibDir != "" {
		return filepath.Clean(r.LibDir), nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoLibDir, err)
	}
	return filepath.Dir(exe), nil
}
