// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package discord

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/classcord/classcord/internal/platform/request"
	"github.com/classcord/classcord/internal/platform/respond"
)

// Handler implements the bot handshake endpoints and the status report.
//
// The /discord/* routes are called by the bot process itself and authenticate
// through the class key, not through a bearer token; /status is a normal
// authenticated dashboard route.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the /discord handshake subtree.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/status", handler.guildStatus)
	router.Put("/init", handler.init)
	router.Put("/deactivate", handler.deactivate)
}

// SystemStatus handles GET /status for the dashboard.
func (handler *Handler) SystemStatus(writer http.ResponseWriter, request *http.Request) {
	status, err := handler.service.SystemStatus(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, status)
}

func (handler *Handler) guildStatus(writer http.ResponseWriter, request *http.Request) {
	status, err := handler.service.Status(request.Context(), request.URL.Query().Get("guild_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, status)
}

type initRequest struct {
	Key     string `json:"key"`
	GuildID string `json:"guild_id"`
}

func (handler *Handler) init(writer http.ResponseWriter, request *http.Request) {
	var input initRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.Init(request.Context(), input.Key, input.GuildID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, status)
}

type deactivateRequest struct {
	GuildID string `json:"guild_id"`
}

func (handler *Handler) deactivate(writer http.ResponseWriter, request *http.Request) {
	var input deactivateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Deactivate(request.Context(), input.GuildID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"status": "deactivated"})
}
