// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

// HTTP delivery layer for authentication use cases.
//
// Handlers act as the "gatekeepers" to the system. They are responsible for:
//   - JSON request parsing and fast-fail input checks.
//   - Mapping HTTP contexts to service layer method calls.
//   - Standardizing JSON response formats via the [respond] package.
//
// They contain NO business logic or database queries.
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/classcord/classcord/internal/platform/middleware"
	requestutil "github.com/classcord/classcord/internal/platform/request"
	"github.com/classcord/classcord/internal/platform/respond"
	"github.com/classcord/classcord/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes mounts the authentication routes at the router root.
//
// # Endpoints
//   - POST /register : Creates a new (unverified) account.
//   - POST /login    : Authenticates and returns a bearer token.
//   - GET  /scope    : Reports the caller's authorization tier.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.With(middleware.RequireAuth).Get("/scope", handler.scope)
}

// registerRequest represents the JSON payload expected for account creation.
type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// register handles POST /register requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the account profile.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict if the email is taken.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Full validation (lengths, email format) lives in the service layer;
	// the handler only rejects obviously empty payloads.
	if input.Email == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("email/password", "are required"))
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles POST /login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the access token.
//   - Writes HTTP 401 Unauthorized for bad credentials, without leaking
//     whether the email or the password was wrong.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Email == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("email/password", "are required"))
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// scope handles GET /scope requests.
//
// Returns the caller's current authorization tier so clients can adapt their
// UI without decoding the token (which deliberately carries no scope data).
func (handler *Handler) scope(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"scope": identity.Scope()})
}
