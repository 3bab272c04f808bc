package appdirs

import "errors"

var (
	ErrNoLibDir     = errors.New("cannot determine installation directory")
	ErrNoConfigDirs = errors.New("no system configuration directory available")
)
