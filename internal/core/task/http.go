// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package task

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rotina-app/rotina/internal/platform/request"
	"github.com/rotina-app/rotina/internal/platform/respond"
	"github.com/rotina-app/rotina/internal/platform/validate"
	"github.com/rotina-app/rotina/pkg/convert"
)

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
	router.Get("/upcoming", handler.upcoming)
	router.Get("/category/{category}", handler.byCategory)
	router.Get("/priority/{priority}", handler.byPriority)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Patch("/{id}/complete", handler.complete)
	router.Delete("/{id}", handler.remove)

	return router
}

type createTaskRequest struct {
	Name                string     `json:"name"`
	Description         *string    `json:"description,omitempty"`
	Priority            string     `json:"priority"`
	Category            string     `json:"category"`
	Recurrence          string     `json:"recurrence,omitempty"`
	DueDate             *time.Time `json:"dueDate,omitempty"`
	RepetitionsRequired int        `json:"repetitionsRequired,omitempty"`
}

func (handler *Handler) create(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input createTaskRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, 200).
		OneOf("priority", input.Priority, Priorities...).
		OneOf("category", input.Category, Categories...)
	if input.Recurrence != "" {
		v.OneOf("recurrence", input.Recurrence, Recurrences...)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	task, err := handler.service.Create(req.Context(), userID, CreateInput{
		Name:                input.Name,
		Description:         input.Description,
		Priority:            input.Priority,
		Category:            input.Category,
		Recurrence:          input.Recurrence,
		DueDate:             input.DueDate,
		RepetitionsRequired: input.RepetitionsRequired,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, task)
}

func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	tasks, err := handler.service.List(req.Context(), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, tasks)
}

func (handler *Handler) upcoming(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	limit := convert.ToIntD(req.URL.Query().Get("limit"), defaultUpcomingLimit)

	tasks, err := handler.service.ListUpcoming(req.Context(), userID, limit)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, tasks)
}

func (handler *Handler) byCategory(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	category := chi.URLParam(req, "category")
	v := &validate.Validator{}
	if err := v.OneOf("category", category, Categories...).Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	tasks, err := handler.service.ListByCategory(req.Context(), userID, category)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, tasks)
}

func (handler *Handler) byPriority(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	priority := chi.URLParam(req, "priority")
	v := &validate.Validator{}
	if err := v.OneOf("priority", priority, Priorities...).Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	tasks, err := handler.service.ListByPriority(req.Context(), userID, priority)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, tasks)
}

func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	task, err := handler.service.Get(req.Context(), chi.URLParam(req, "id"), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, task)
}

type updateTaskRequest struct {
	Name                 *string    `json:"name,omitempty"`
	Description          *string    `json:"description,omitempty"`
	Priority             *string    `json:"priority,omitempty"`
	Category             *string    `json:"category,omitempty"`
	Recurrence           *string    `json:"recurrence,omitempty"`
	DueDate              *time.Time `json:"dueDate,omitempty"`
	RepetitionsRequired  *int       `json:"repetitionsRequired,omitempty"`
	RepetitionsCompleted *int       `json:"repetitionsCompleted,omitempty"`
}

func (handler *Handler) update(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input updateTaskRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 200)
	}
	if input.Priority != nil {
		v.OneOf("priority", *input.Priority, Priorities...)
	}
	if input.Category != nil {
		v.OneOf("category", *input.Category, Categories...)
	}
	if input.Recurrence != nil {
		v.OneOf("recurrence", *input.Recurrence, Recurrences...)
	}
	if input.RepetitionsRequired != nil {
		v.Custom("repetitionsRequired", *input.RepetitionsRequired < 1, "Must be at least 1")
	}
	if input.RepetitionsCompleted != nil {
		v.Custom("repetitionsCompleted", *input.RepetitionsCompleted < 0, "Must not be negative")
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	task, err := handler.service.Update(req.Context(), chi.URLParam(req, "id"), userID, UpdateInput{
		Name:                 input.Name,
		Description:          input.Description,
		Priority:             input.Priority,
		Category:             input.Category,
		Recurrence:           input.Recurrence,
		DueDate:              input.DueDate,
		RepetitionsRequired:  input.RepetitionsRequired,
		RepetitionsCompleted: input.RepetitionsCompleted,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, task)
}

func (handler *Handler) complete(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	task, err := handler.service.MarkCompleted(req.Context(), chi.URLParam(req, "id"), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, task)
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
