// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"slices"
	"strings"

	"github.com/myeasyserver/myeasyserver/internal/config"
	"github.com/myeasyserver/myeasyserver/internal/logger"
)

type settingsService struct {
	cfg *config.Config

	logger *logger.Logger
}

// NewSettingsService returns a read-only view of cfg for transports.
func NewSettingsService(cfg *config.Config, logger *logger.Logger) (SettingsService, error) {
	if cfg == nil {
		return nil, ErrNoSettingsProvided
	}
	return &settingsService{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// PublicSettings returns a copy of the configuration without internal
// sections and secret values.
func (s *settingsService) PublicSettings(ctx context.Context) map[string]any {
	return s.cfg.FilterInternal().WithoutSecrets().Tree()
}

// GetSetting returns the value at the dotted key. Keys crossing an internal
// section or naming a secret are rejected; sections are returned without
// their secrets.
func (s *settingsService) GetSetting(ctx context.Context, key string) (any, error) {
	path := strings.Split(key, ".")
	if slices.Contains(path, config.InternalSection) {
		s.logger.Debug().Str("key", key).Msg("internal setting requested")
		return nil, ErrSettingIsInternal
	}

	secret, err := s.cfg.Schema().IsSecret(path)
	if err != nil {
		return nil, err
	}
	if secret {
		s.logger.Debug().Str("key", key).Msg("secret setting requested")
		return nil, ErrSettingIsSecret
	}

	return s.cfg.WithoutSecrets().Get(key)
}
