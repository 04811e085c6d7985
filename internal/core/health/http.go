// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rotina-app/rotina/internal/platform/request"
	"github.com/rotina-app/rotina/internal/platform/respond"
	"github.com/rotina-app/rotina/internal/platform/validate"
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

	router.Get("/", handler.overview)

	router.Route("/measurements", func(router chi.Router) {
		router.Post("/", handler.createMeasurement)
		router.Get("/", handler.listMeasurements)
		router.Get("/type/{type}", handler.measurementsByType)
		router.Patch("/{id}", handler.updateMeasurement)
		router.Delete("/{id}", handler.removeMeasurement)
	})

	router.Route("/exercises", func(router chi.Router) {
		router.Post("/", handler.createExercise)
		router.Get("/", handler.listExercises)
		router.Get("/date-range", handler.exercisesByDateRange)
		router.Patch("/{id}", handler.updateExercise)
		router.Delete("/{id}", handler.removeExercise)
	})

	router.Route("/diet-plans", func(router chi.Router) {
		router.Post("/", handler.createDietPlan)
		router.Get("/", handler.listDietPlans)
		router.Get("/current", handler.currentDietPlan)
		router.Patch("/{id}", handler.updateDietPlan)
		router.Delete("/{id}", handler.removeDietPlan)
	})

	router.Route("/workout-plans", func(router chi.Router) {
		router.Post("/", handler.createWorkoutPlan)
		router.Get("/", handler.listWorkoutPlans)
		router.Get("/current", handler.currentWorkoutPlan)
		router.Patch("/{id}", handler.updateWorkoutPlan)
		router.Delete("/{id}", handler.removeWorkoutPlan)
	})

	return router
}

func (handler *Handler) overview(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	overview, err := handler.service.Overview(req.Context(), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, overview)
}

// # Measurements

type measurementRequest struct {
	Type  string    `json:"type"`
	Value string    `json:"value"`
	Unit  *string   `json:"unit,omitempty"`
	Date  time.Time `json:"date"`
	Notes *string   `json:"notes,omitempty"`
}

func (handler *Handler) createMeasurement(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input measurementRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.OneOf("type", input.Type, MeasurementTypes...).
		Required("value", input.Value).
		MaxLen("value", input.Value, 100).
		Custom("date", input.Date.IsZero(), "date is required")
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	measurement, err := handler.service.CreateMeasurement(req.Context(), userID, MeasurementInput{
		Type:  input.Type,
		Value: input.Value,
		Unit:  input.Unit,
		Date:  input.Date,
		Notes: input.Notes,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.Created(writer, measurement)
}

func (handler *Handler) listMeasurements(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	measurements, err := handler.service.ListMeasurements(req.Context(), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, measurements)
}

func (handler *Handler) measurementsByType(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	measurementType := chi.URLParam(req, "type")
	v := &validate.Validator{}
	if err := v.OneOf("type", measurementType, MeasurementTypes...).Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	measurements, err := handler.service.ListMeasurementsByType(req.Context(), userID, measurementType)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, measurements)
}

type measurementUpdateRequest struct {
	Type  *string    `json:"type,omitempty"`
	Value *string    `json:"value,omitempty"`
	Unit  *string    `json:"unit,omitempty"`
	Date  *time.Time `json:"date,omitempty"`
	Notes *string    `json:"notes,omitempty"`
}

func (handler *Handler) updateMeasurement(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input measurementUpdateRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Type != nil {
		v.OneOf("type", *input.Type, MeasurementTypes...)
	}
	if input.Value != nil {
		v.Required("value", *input.Value).MaxLen("value", *input.Value, 100)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	measurement, err := handler.service.UpdateMeasurement(req.Context(), chi.URLParam(req, "id"), userID, MeasurementUpdate{
		Type:  input.Type,
		Value: input.Value,
		Unit:  input.Unit,
		Date:  input.Date,
		Notes: input.Notes,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, measurement)
}

func (handler *Handler) removeMeasurement(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.service.DeleteMeasurement(req.Context(), chi.URLParam(req, "id"), userID); err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.NoContent(writer)
}

// # Exercises

type exerciseRequest struct {
	Name           string    `json:"name"`
	Duration       int       `json:"duration"`
	CaloriesBurned *int      `json:"caloriesBurned,omitempty"`
	Date           time.Time `json:"date"`
	Notes          *string   `json:"notes,omitempty"`
}

func (handler *Handler) createExercise(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input exerciseRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, 200).
		Positive("duration", float64(input.Duration)).
		Custom("date", input.Date.IsZero(), "date is required")
	if input.CaloriesBurned != nil {
		v.Positive("caloriesBurned", float64(*input.CaloriesBurned))
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	exercise, err := handler.service.CreateExercise(req.Context(), userID, ExerciseInput{
		Name:           input.Name,
		Duration:       input.Duration,
		CaloriesBurned: input.CaloriesBurned,
		Date:           input.Date,
		Notes:          input.Notes,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.Created(writer, exercise)
}

func (handler *Handler) listExercises(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	exercises, err := handler.service.ListExercises(req.Context(), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, exercises)
}

func (handler *Handler) exercisesByDateRange(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	startStr := req.URL.Query().Get("startDate")
	endStr := req.URL.Query().Get("endDate")

	v := &validate.Validator{}
	v.Required("startDate", startStr).Date("startDate", startStr)
	v.Required("endDate", endStr).Date("endDate", endStr)
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	start, _ := time.Parse(dateLayout, startStr)
	end, _ := time.Parse(dateLayout, endStr)

	exercises, err := handler.service.ListExercisesByDateRange(req.Context(), userID, start, end.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, exercises)
}

type exerciseUpdateRequest struct {
	Name           *string    `json:"name,omitempty"`
	Duration       *int       `json:"duration,omitempty"`
	CaloriesBurned *int       `json:"caloriesBurned,omitempty"`
	Date           *time.Time `json:"date,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

func (handler *Handler) updateExercise(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input exerciseUpdateRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 200)
	}
	if input.Duration != nil {
		v.Positive("duration", float64(*input.Duration))
	}
	if input.CaloriesBurned != nil {
		v.Positive("caloriesBurned", float64(*input.CaloriesBurned))
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	exercise, err := handler.service.UpdateExercise(req.Context(), chi.URLParam(req, "id"), userID, ExerciseUpdate{
		Name:           input.Name,
		Duration:       input.Duration,
		CaloriesBurned: input.CaloriesBurned,
		Date:           input.Date,
		Notes:          input.Notes,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, exercise)
}

func (handler *Handler) removeExercise(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.service.DeleteExercise(req.Context(), chi.URLParam(req, "id"), userID); err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.NoContent(writer)
}

// # Plans

type planRequest struct {
	Content   string     `json:"content"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

type planUpdateRequest struct {
	Content   *string    `json:"content,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

func (handler *Handler) decodePlan(writer http.ResponseWriter, req *http.Request) (string, *planRequest, bool) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return "", nil, false
	}

	var input planRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return "", nil, false
	}

	v := &validate.Validator{}
	v.Required("content", input.Content).
		Custom("startDate", input.StartDate.IsZero(), "startDate is required")
	if input.EndDate != nil {
		v.Custom("endDate", input.EndDate.Before(input.StartDate), "endDate must not precede startDate")
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return "", nil, false
	}

	return userID, &input, true
}

func (handler *Handler) createDietPlan(writer http.ResponseWriter, req *http.Request) {
	userID, input, ok := handler.decodePlan(writer, req)
	if !ok {
		return
	}

	plan, err := handler.service.CreateDietPlan(req.Context(), userID, PlanInput{
		Content:   input.Content,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Notes:     input.Notes,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.Created(writer, plan)
}

func (handler *Handler) listDietPlans(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	plans, err := handler.service.ListDietPlans(req.Context(), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, plans)
}

func (handler *Handler) currentDietPlan(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	plan, err := handler.service.CurrentDietPlan(req.Context(), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, plan)
}

func (handler *Handler) updateDietPlan(writer http.ResponseWriter, req *http.Request) {
	handler.updatePlan(writer, req, handler.service.UpdateDietPlan)
}

func (handler *Handler) removeDietPlan(writer http.ResponseWriter, req *http.Request) {
	handler.removePlan(writer, req, handler.service.DeleteDietPlan)
}

func (handler *Handler) createWorkoutPlan(writer http.ResponseWriter, req *http.Request) {
	userID, input, ok := handler.decodePlan(writer, req)
	if !ok {
		return
	}

	plan, err := handler.service.CreateWorkoutPlan(req.Context(), userID, PlanInput{
		Content:   input.Content,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Notes:     input.Notes,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.Created(writer, plan)
}

func (handler *Handler) listWorkoutPlans(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	plans, err := handler.service.ListWorkoutPlans(req.Context(), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, plans)
}

func (handler *Handler) currentWorkoutPlan(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	plan, err := handler.service.CurrentWorkoutPlan(req.Context(), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, plan)
}

func (handler *Handler) updateWorkoutPlan(writer http.ResponseWriter, req *http.Request) {
	handler.updatePlan(writer, req, handler.service.UpdateWorkoutPlan)
}

func (handler *Handler) removeWorkoutPlan(writer http.ResponseWriter, req *http.Request) {
	handler.removePlan(writer, req, handler.service.DeleteWorkoutPlan)
}

func (handler *Handler) updatePlan(
	writer http.ResponseWriter,
	req *http.Request,
	update func(ctx context.Context, id, userID string, input PlanUpdate) (*Plan, error),
) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input planUpdateRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Content != nil {
		v.Required("content", *input.Content)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	plan, err := update(req.Context(), chi.URLParam(req, "id"), userID, PlanUpdate{
		Content:   input.Content,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Notes:     input.Notes,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, plan)
}

func (handler *Handler) removePlan(
	writer http.ResponseWriter,
	req *http.Request,
	remove func(ctx context.Context, id, userID string) error,
) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := remove(req.Context(), chi.URLParam(req, "id"), userID); err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.NoContent(writer)
}
