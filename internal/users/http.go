// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/classcord/classcord/internal/platform/middleware"
	requestutil "github.com/classcord/classcord/internal/platform/request"
	"github.com/classcord/classcord/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the /users endpoints.
//
// The /me routes only need authentication: an unverified account may still
// view, edit and delete itself. Everything else needs a verified account;
// scope changes and deleting others need admin.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.RequireVerified).Get("/", handler.list)

	router.Route("/me", func(me chi.Router) {
		me.Use(middleware.RequireAuth)
		me.Get("/", handler.me)
		me.Put("/edit", handler.edit)
		me.Delete("/delete", handler.deleteSelf)
	})

	router.Route("/{email}", func(named chi.Router) {
		named.With(middleware.RequireVerified).Get("/", handler.get)
		named.With(middleware.RequireVerified).Get("/classes", handler.classes)
		named.With(middleware.RequireAdmin).Put("/scope", handler.setScope)
		named.With(middleware.RequireAdmin).Delete("/delete", handler.deleteOther)
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, users)
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Get(request.Context(), identity.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

type editRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (handler *Handler) edit(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input editRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), identity.UserID, UpdateProfileInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) deleteSelf(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), identity.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.Get(request.Context(), requestutil.Param(request, "email"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

type scopeRequest struct {
	Scope string `json:"scope"`
}

func (handler *Handler) setScope(writer http.ResponseWriter, request *http.Request) {
	var input scopeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.SetScope(request.Context(), requestutil.Param(request, "email"), input.Scope)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) deleteOther(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteByEmail(request.Context(), requestutil.Param(request, "email")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) classes(writer http.ResponseWriter, request *http.Request) {
	overview, err := handler.service.Classes(request.Context(), requestutil.Param(request, "email"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, overview)
}
