// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/myeasyserver/myeasyserver/internal/logger"
	"github.com/myeasyserver/myeasyserver/internal/utils"
)

// settingResponse is the body of GET /api/settings/{key}.
type settingResponse struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// listSettings writes every public setting as a nested JSON object.
func (h *Handler) listSettings(w http.ResponseWriter, r *http.Request) {
	settings := h.services.SettingsService.PublicSettings(r.Context())
	if _, err := utils.WriteJSON(w, settings, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing settings")
	}
}

// getSetting writes the value of a single dotted key. Sections are returned
// as nested objects.
func (h *Handler) getSetting(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	key := chi.URLParam(r, "key")

	value, err := h.services.SettingsService.GetSetting(r.Context(), key)
	if err != nil {
		status := statusFromError(err)
		log.Debug().Err(err).Str("key", key).Int("status", status).Msg("setting lookup failed")
		utils.WriteJSON(w, errorResponse{Error: err.Error()}, status)
		return
	}

	if _, err := utils.WriteJSON(w, settingResponse{Key: key, Value: value}, http.StatusOK); err != nil {
		log.Err(err).Str("key", key).Msg("error writing setting")
	}
}
