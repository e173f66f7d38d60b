package class

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/classcord/classcord/internal/platform/middleware"
	requestutil "github.com/classcord/classcord/internal/platform/request"
	"github.com/classcord/classcord/internal/platform/respond"
	"github.com/classcord/classcord/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the class endpoints. The caller gates the whole group
// behind RequireVerified; admin-only mutations are gated per route here.
//
// The nested hooks run inside the /{name} subtree so enrollment and message
// routes can hang off a class without a second Route("/{name}") registration
// (chi rejects duplicate patterns).
func (handler *Handler) RegisterRoutes(router chi.Router, nested ...func(chi.Router)) {
	router.Get("/", handler.list)
	router.With(middleware.RequireAdmin).Post("/create", handler.create)

	router.Route("/{name}", func(named chi.Router) {
		named.Get("/", handler.get)
		named.With(middleware.RequireAdmin).Put("/edit", handler.edit)
		named.With(middleware.RequireAdmin).Delete("/delete", handler.delete)
		named.With(middleware.RequireAdmin).Get("/key", handler.key)
		named.With(middleware.RequireAdmin).Put("/class_teacher/set", handler.setTeacher)
		named.With(middleware.RequireAdmin).Delete("/class_teacher/remove", handler.removeTeacher)

		for _, register := range nested {
			register(named)
		}
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	classes, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, classes)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	class, err := handler.service.Get(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, class)
}

type classNameRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input classNameRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	class, err := handler.service.Create(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, class)
}

func (handler *Handler) edit(writer http.ResponseWriter, request *http.Request) {
	var input classNameRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	class, err := handler.service.Rename(request.Context(), requestutil.Param(request, "name"), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, class)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "name")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) key(writer http.ResponseWriter, request *http.Request) {
	key, err := handler.service.Key(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"key": key})
}

type teacherRequest struct {
	Email string `json:"email"`
}

func (handler *Handler) setTeacher(writer http.ResponseWriter, request *http.Request) {
	var input teacherRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Email == "" {
		respond.Error(writer, request, validate.RequiredError("email", "is required"))
		return
	}

	if err := handler.service.SetTeacher(request.Context(), requestutil.Param(request, "name"), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"status": "teacher set"})
}

func (handler *Handler) removeTeacher(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.RemoveTeacher(request.Context(), requestutil.Param(request, "name")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"status": "teacher removed"})
}
