package handler

import (
	"github.com/myeasyserver/myeasyserver/internal/handler/http"
	"github.com/myeasyserver/myeasyserver/internal/logger"
	"github.com/myeasyserver/myeasyserver/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if services == nil {
		return nil, errNoServicesProvided
	}

	return &Handlers{
		HTTP: http.NewHandler(services, logger),
	}, nil
}
