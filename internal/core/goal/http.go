package goal

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
	router.Get("/in-progress", handler.inProgress)
	router.Get("/category/{category}", handler.byCategory)
	router.Get("/status/{status}", handler.byStatus)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Patch("/{id}/progress", handler.updateProgress)
	router.Delete("/{id}", handler.remove)

	// Subtasks
	router.Post("/{goalId}/subtasks", handler.addSubTask)
	router.Patch("/subtasks/{subTaskId}/toggle", handler.toggleSubTask)
	router.Delete("/subtasks/{subTaskId}", handler.removeSubTask)

	return router
}

type createGoalRequest struct {
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	Category     string     `json:"category"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	CurrentValue *float64   `json:"currentValue,omitempty"`
	TargetValue  *float64   `json:"targetValue,omitempty"`
	SubTasks     []struct {
		Name string `json:"name"`
	} `json:"subTasks,omitempty"`
}

func (handler *Handler) create(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input createGoalRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, 200).
		OneOf("category", input.Category, Categories...)
	for _, subTask := range input.SubTasks {
		v.Required("subTasks.name", subTask.Name)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	subTaskNames := make([]string, 0, len(input.SubTasks))
	for _, subTask := range input.SubTasks {
		subTaskNames = append(subTaskNames, subTask.Name)
	}

	goal, err := handler.service.Create(req.Context(), userID, CreateInput{
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		TargetDate:   input.TargetDate,
		CurrentValue: input.CurrentValue,
		TargetValue:  input.TargetValue,
		SubTasks:     subTaskNames,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.Created(writer, goal)
}

func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	goals, err := handler.service.List(req.Context(), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, goals)
}

func (handler *Handler) inProgress(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	limit := convert.ToIntD(req.URL.Query().Get("limit"), defaultInProgressLimit)

	goals, err := handler.service.ListInProgress(req.Context(), userID, limit)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, goals)
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

	goals, err := handler.service.ListByCategory(req.Context(), userID, category)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, goals)
}

func (handler *Handler) byStatus(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	status := chi.URLParam(req, "status")
	v := &validate.Validator{}
	if err := v.OneOf("status", status, Statuses...).Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	goals, err := handler.service.ListByStatus(req.Context(), userID, status)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, goals)
}

func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	goal, err := handler.service.Get(req.Context(), chi.URLParam(req, "id"), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, goal)
}

type updateGoalRequest struct {
	Name         *string    `json:"name,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Category     *string    `json:"category,omitempty"`
	Status       *string    `json:"status,omitempty"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	CurrentValue *float64   `json:"currentValue,omitempty"`
	TargetValue  *float64   `json:"targetValue,omitempty"`
}

func (handler *Handler) update(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input updateGoalRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 200)
	}
	if input.Category != nil {
		v.OneOf("category", *input.Category, Categories...)
	}
	if input.Status != nil {
		v.OneOf("status", *input.Status, Statuses...)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	goal, err := handler.service.Update(req.Context(), chi.URLParam(req, "id"), userID, UpdateInput{
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		Status:       input.Status,
		TargetDate:   input.TargetDate,
		CurrentValue: input.CurrentValue,
		TargetValue:  input.TargetValue,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, goal)
}

type updateProgressRequest struct {
	CurrentValue float64 `json:"currentValue"`
}

func (handler *Handler) updateProgress(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input updateProgressRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	goal, err := handler.service.UpdateProgress(req.Context(), chi.URLParam(req, "id"), userID, input.CurrentValue)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, goal)
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

type addSubTaskRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) addSubTask(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input addSubTaskRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if err := v.Required("name", input.Name).MaxLen("name", input.Name, 200).Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	subTask, err := handler.service.AddSubTask(req.Context(), chi.URLParam(req, "goalId"), userID, input.Name)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.Created(writer, subTask)
}

func (handler *Handler) toggleSubTask(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	subTask, err := handler.service.ToggleSubTask(req.Context(), chi.URLParam(req, "subTaskId"), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, subTask)
}

func (handler *Handler) removeSubTask(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.service.RemoveSubTask(req.Context(), chi.URLParam(req, "subTaskId"), userID); err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.NoContent(writer)
}
