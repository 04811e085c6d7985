package habit

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rotina-app/rotina/internal/platform/request"
	"github.com/rotina-app/rotina/internal/platform/respond"
	"github.com/rotina-app/rotina/internal/platform/validate"
	"github.com/rotina-app/rotina/pkg/convert"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/active", handler.active)
	router.Post("/progress", handler.recordProgress)
	router.Get("/{habitId}/progress", handler.progressRange)
	router.Patch("/{habitId}/progress/{date}", handler.updateProgress)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

type createHabitRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (handler *Handler) create(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input createHabitRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if err := v.Required("name", input.Name).MaxLen("name", input.Name, 200).Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	habit, err := handler.service.Create(req.Context(), userID, CreateInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.Created(writer, habit)
}

func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	habits, err := handler.service.List(req.Context(), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, habits)
}

func (handler *Handler) active(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	limit := convert.ToIntD(req.URL.Query().Get("limit"), defaultActiveLimit)

	habits, err := handler.service.ListActive(req.Context(), userID, limit)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, habits)
}

func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	habit, err := handler.service.Get(req.Context(), chi.URLParam(req, "id"), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, habit)
}

type updateHabitRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Streak      *int    `json:"streak,omitempty"`
}

func (handler *Handler) update(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input updateHabitRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 200)
	}
	if input.Streak != nil {
		v.Custom("streak", *input.Streak < 0, "Must not be negative")
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	habit, err := handler.service.Update(req.Context(), chi.URLParam(req, "id"), userID, UpdateInput{
		Name:        input.Name,
		Description: input.Description,
		Streak:      input.Streak,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, habit)
}

func (handler *Handler) remove(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.service.Delete(req.Context(), chi.URLParam(req, "id"), userID); err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.NoContent(writer)
}

// # Progress Endpoints

type recordProgressRequest struct {
	HabitID string `json:"habitId"`
	Date    string `json:"date"`
	Status  string `json:"status"`
}

func (handler *Handler) recordProgress(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input recordProgressRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required("habitId", input.HabitID).
		UUID("habitId", input.HabitID).
		Date("date", input.Date).
		OneOf("status", input.Status, Statuses...)
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	date, _ := time.Parse(dateLayout, input.Date)

	progress, err := handler.service.RecordProgress(req.Context(), userID, input.HabitID, date, input.Status)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.Created(writer, progress)
}

type updateProgressRequest struct {
	Status string `json:"status"`
}

func (handler *Handler) updateProgress(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	habitID := chi.URLParam(req, "habitId")
	dateStr := chi.URLParam(req, "date")

	var input updateProgressRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.UUID("habitId", habitID).
		Date("date", dateStr).
		OneOf("status", input.Status, Statuses...)
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	date, _ := time.Parse(dateLayout, dateStr)

	progress, err := handler.service.RecordProgress(req.Context(), userID, habitID, date, input.Status)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, progress)
}

func (handler *Handler) progressRange(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	habitID := chi.URLParam(req, "habitId")
	startStr := req.URL.Query().Get("startDate")
	endStr := req.URL.Query().Get("endDate")

	v := &validate.Validator{}
	v.UUID("habitId", habitID).
		Date("startDate", startStr).
		Date("endDate", endStr)
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	from, _ := time.Parse(dateLayout, startStr)
	to, _ := time.Parse(dateLayout, endStr)

	entries, err := handler.service.ProgressRange(req.Context(), userID, habitID, from, to)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, entries)
}
