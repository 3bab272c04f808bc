// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"net"
	"strconv"

	"github.com/myeasyserver/myeasyserver/internal/config"
	"github.com/myeasyserver/myeasyserver/models"
)

const (
	networkTCP  = "tcp"
	networkUnix = "unix"

	// debugAddress is bound by development builds regardless of settings.
	debugAddress = "0.0.0.0:8080"
)

// ListenConfig is where the HTTP server accepts connections.
type ListenConfig struct {
	Network string
	Address string
}

func (l ListenConfig) String() string {
	return l.Network + "://" + l.Address
}

// NewListenConfig derives the listen address from the application section
// of cfg. A configured socket wins over ip_address and port.
func NewListenConfig(cfg *config.Config, deployment models.Deployment) (ListenConfig, error) {
	if deployment == models.DeploymentDebug {
		return ListenConfig{Network: networkTCP, Address: debugAddress}, nil
	}

	socket, err := cfg.GetString("application.socket")
	if err != nil {
		return ListenConfig{}, err
	}
	if socket != "" {
		return ListenConfig{Network: networkUnix, Address: socket}, nil
	}

	ip, err := cfg.GetString("application.ip_address")
	if err != nil {
		return ListenConfig{}, err
	}
	port, err := cfg.GetInt("application.port")
	if err != nil {
		return ListenConfig{}, err
	}
	if port <= 0 {
		return ListenConfig{}, ErrNoListenAddress
	}

	return ListenConfig{
		Network: networkTCP,
		Address: net.JoinHostPort(ip, strconv.Itoa(port)),
	}, nil
}
