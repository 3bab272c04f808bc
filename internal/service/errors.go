package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("application version is not specified")
	ErrNoSettingsProvided    = errors.New("no settings provided")

	// ErrSettingIsInternal is returned when an operator-only setting is
	// requested through a public interface.
	ErrSettingIsInternal = errors.New("setting is internal")

	// ErrSettingIsSecret is returned when a credential is requested through
	// a public interface.
	ErrSettingIsSecret = errors.New("setting is secret")
)
