// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")

	// ErrNoListenAddress is returned when neither a socket nor a TCP port is
	// configured.
	ErrNoListenAddress = errors.New("no listen address configured")
)
