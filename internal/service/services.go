package service

import (
	"github.com/myeasyserver/myeasyserver/internal/config"
	"github.com/myeasyserver/myeasyserver/internal/logger"
	"github.com/myeasyserver/myeasyserver/models"
)

type Services struct {
	AppInfoService  AppInfoService
	SettingsService SettingsService
}

func NewServices(buildInfo models.AppBuildInfo, cfg *config.Config, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}
	settingsService, err := NewSettingsService(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AppInfoService:  appInfoService,
		SettingsService: settingsService,
	}, nil
}
