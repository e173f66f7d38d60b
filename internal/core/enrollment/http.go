package enrollment

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

// RegisterRoutes mounts the enrollment endpoints under a class's /subjects
// subtree; the {name} parameter is inherited from the class routes. The
// nested hooks run inside /{subject_name} for the message routes.
func (handler *Handler) RegisterRoutes(router chi.Router, nested ...func(chi.Router)) {
	router.Get("/", handler.list)
	router.With(middleware.RequireAdmin).Post("/add", handler.add)
	router.With(middleware.RequireAdmin).Delete("/remove", handler.remove)

	router.Route("/{subject_name}", func(named chi.Router) {
		named.Get("/", handler.get)
		named.With(middleware.RequireAdmin).Put("/set_teacher", handler.setTeacher)
		named.With(middleware.RequireAdmin).Delete("/remove_teacher", handler.removeTeacher)

		for _, register := range nested {
			register(named)
		}
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	enrollments, err := handler.service.List(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, enrollments)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	enrollment, err := handler.service.Get(request.Context(),
		requestutil.Param(request, "name"),
		requestutil.Param(request, "subject_name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, enrollment)
}

type subjectRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	var input subjectRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Name == "" {
		respond.Error(writer, request, validate.RequiredError("name", "is required"))
		return
	}

	enrollment, err := handler.service.Add(request.Context(), requestutil.Param(request, "name"), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, enrollment)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	var input subjectRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Name == "" {
		respond.Error(writer, request, validate.RequiredError("name", "is required"))
		return
	}

	if err := handler.service.Remove(request.Context(), requestutil.Param(request, "name"), input.Name); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
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

	err := handler.service.SetTeacher(request.Context(),
		requestutil.Param(request, "name"),
		requestutil.Param(request, "subject_name"),
		input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"status": "teacher set"})
}

func (handler *Handler) removeTeacher(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.RemoveTeacher(request.Context(),
		requestutil.Param(request, "name"),
		requestutil.Param(request, "subject_name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"status": "teacher removed"})
}
