package message

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/classcord/classcord/internal/platform/request"
	"github.com/classcord/classcord/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the message endpoints inside an enrollment's subtree;
// {name} and {subject_name} are inherited from the class and subject routes.
// Authorization is per-identity (subject teacher / author / admin), so no
// route-level admin gate here.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/create", handler.create)
	router.Delete("/{message_id}/delete", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	messages, err := handler.service.List(request.Context(), identity,
		requestutil.Param(request, "name"),
		requestutil.Param(request, "subject_name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, messages)
}

type createRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.service.Create(request.Context(), identity,
		requestutil.Param(request, "name"),
		requestutil.Param(request, "subject_name"),
		CreateInput{Title: input.Title, Body: input.Body})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, message)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.Delete(request.Context(), identity,
		requestutil.Param(request, "name"),
		requestutil.Param(request, "subject_name"),
		requestutil.Param(request, "message_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
