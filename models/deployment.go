// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDeployment is returned when a deployment name cannot be parsed.
var ErrUnknownDeployment = errors.New("unknown deployment")

// Deployment is the environment the process runs in. It selects the
// directory layout and whether the dotenv layer takes part in configuration
// resolution.
type Deployment int

const (
	DeploymentDebug Deployment = iota
	DeploymentDocker
	DeploymentSystem
	DeploymentUser
)

func (d Deployment) String() string {
	switch d {
	case DeploymentDebug:
		return "debug"
	case DeploymentDocker:
		return "docker"
	case DeploymentSystem:
		return "system"
	case DeploymentUser:
		return "user"
	default:
		return fmt.Sprintf("Deployment(%d)", int(d))
	}
}

// UsesDotenv reports whether the .env file is read for d.
func (d Deployment) UsesDotenv() bool {
	return d == DeploymentDebug || d == DeploymentDocker
}

// ParseDeployment parses a deployment name, case-insensitively.
func ParseDeployment(s string) (Deployment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "development":
		return DeploymentDebug, nil
	case "docker", "container":
		return DeploymentDocker, nil
	case "system":
		return DeploymentSystem, nil
	case "user":
		return DeploymentUser, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDeployment, s)
}
