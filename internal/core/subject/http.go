package subject

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

// RegisterRoutes mounts the subject endpoints. The caller gates the whole
// group behind RequireVerified; admin-only mutations are gated per route.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.With(middleware.RequireAdmin).Post("/create", handler.create)

	router.Route("/{name}", func(named chi.Router) {
		named.Get("/", handler.get)
		named.Get("/classes", handler.listClasses)
		named.With(middleware.RequireAdmin).Put("/edit", handler.edit)
		named.With(middleware.RequireAdmin).Delete("/delete", handler.delete)
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	subjects, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, subjects)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	subject, err := handler.service.Get(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, subject)
}

type subjectNameRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input subjectNameRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subject, err := handler.service.Create(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, subject)
}

func (handler *Handler) edit(writer http.ResponseWriter, request *http.Request) {
	var input subjectNameRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subject, err := handler.service.Rename(request.Context(), requestutil.Param(request, "name"), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, subject)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "name")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listClasses(writer http.ResponseWriter, request *http.Request) {
	classes, err := handler.service.ListClasses(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, classes)
}
