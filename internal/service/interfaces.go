package service

import (
	"context"
)

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// SettingsService exposes the resolved configuration to transports. Sections
// named "internal" and secret values are never returned.
type SettingsService interface {
	PublicSettings(ctx context.Context) map[string]any
	GetSetting(ctx context.Context, key string) (any, error)
}
