package http

import (
	"errors"
	"net/http"

	"github.com/myeasyserver/myeasyserver/internal/config"
	"github.com/myeasyserver/myeasyserver/internal/service"
)

var errorStatusMap = map[error]int{
	service.ErrSettingIsInternal:     http.StatusNotFound,
	service.ErrSettingIsSecret:       http.StatusNotFound,
	service.ErrVersionIsNotSpecified: http.StatusInternalServerError,

	config.ErrPathNotDefined: http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
