// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"

	"github.com/myeasyserver/myeasyserver/models"
)

const (
	dockerMarker = "/.dockerenv"

	// systemUIDLimit is the first uid given to regular accounts.
	systemUIDLimit = 1000
)

// DeploymentDetector classifies the running process. The zero value probes
// the real system.
type DeploymentDetector struct {
	// Marker is the file whose presence denotes a container. Defaults to
	// /.dockerenv.
	Marker string
	// Geteuid returns the effective user id. Defaults to os.Geteuid.
	Geteuid func() int
}

// Detect returns debug when development is set, docker when the container
// marker exists, system for privileged accounts and user otherwise.
func (d DeploymentDetector) Detect(development bool) models.Deployment {
	if development {
		return models.DeploymentDebug
	}

	marker := d.Marker
	if marker == "" {
		marker = dockerMarker
	}
	if _, err := os.Stat(marker); err == nil {
		return models.DeploymentDocker
	}

	geteuid := d.Geteuid
	if geteuid == nil {
		geteuid = os.Geteuid
	}
	// os.Geteuid reports -1 on platforms without uids.
	if uid := geteuid(); uid >= 0 && uid < systemUIDLimit {
		return models.DeploymentSystem
	}
	return models.DeploymentUser
}
