// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package transaction

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rotina-app/rotina/internal/platform/request"
	"github.com/rotina-app/rotina/internal/platform/respond"
	"github.com/rotina-app/rotina/internal/platform/validate"
	"github.com/rotina-app/rotina/pkg/convert"
	"github.com/rotina-app/rotina/pkg/pagination"
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
	router.Get("/overview", handler.overview)
	router.Get("/recurring", handler.recurring)
	router.Get("/date-range", handler.byDateRange)
	router.Get("/type/{type}", handler.byType)
	router.Get("/category/{category}", handler.byCategory)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

type createTransactionRequest struct {
	Type               string    `json:"type"`
	Amount             float64   `json:"amount"`
	Date               time.Time `json:"date"`
	Description        string    `json:"description"`
	Category           *string   `json:"category,omitempty"`
	IsRecurring        bool      `json:"isRecurring,omitempty"`
	RecurrenceInterval *string   `json:"recurrenceInterval,omitempty"`
}

func (handler *Handler) create(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input createTransactionRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.OneOf("type", input.Type, Types...).
		Positive("amount", input.Amount).
		Required("description", input.Description).
		MaxLen("description", input.Description, 500).
		Custom("date", input.Date.IsZero(), "date is required")
	if input.IsRecurring {
		interval := ""
		if input.RecurrenceInterval != nil {
			interval = *input.RecurrenceInterval
		}
		v.OneOf("recurrenceInterval", interval, Intervals...)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	transaction, err := handler.service.Create(req.Context(), userID, CreateInput{
		Type:               input.Type,
		Amount:             input.Amount,
		Date:               input.Date,
		Description:        input.Description,
		Category:           input.Category,
		IsRecurring:        input.IsRecurring,
		RecurrenceInterval: input.RecurrenceInterval,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.Created(writer, transaction)
}

func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	params := pagination.FromRequest(req)

	transactions, total, err := handler.service.List(req.Context(), userID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.Paginated(writer, transactions, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) overview(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	monthsBack := convert.ToIntD(req.URL.Query().Get("monthsBack"), defaultOverviewMonths)

	overview, err := handler.service.Overview(req.Context(), userID, monthsBack)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, overview)
}

func (handler *Handler) recurring(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	transactions, err := handler.service.ListRecurring(req.Context(), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, transactions)
}

func (handler *Handler) byDateRange(writer http.ResponseWriter, req *http.Request) {
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

	transactions, err := handler.service.ListByDateRange(req.Context(), userID, start, end.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, transactions)
}

func (handler *Handler) byType(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	transactionType := chi.URLParam(req, "type")
	v := &validate.Validator{}
	if err := v.OneOf("type", transactionType, Types...).Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	transactions, err := handler.service.ListByType(req.Context(), userID, transactionType)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, transactions)
}

func (handler *Handler) byCategory(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	transactions, err := handler.service.ListByCategory(req.Context(), userID, chi.URLParam(req, "category"))
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, transactions)
}

func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	transaction, err := handler.service.Get(req.Context(), chi.URLParam(req, "id"), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, transaction)
}

type updateTransactionRequest struct {
	Type               *string    `json:"type,omitempty"`
	Amount             *float64   `json:"amount,omitempty"`
	Date               *time.Time `json:"date,omitempty"`
	Description        *string    `json:"description,omitempty"`
	Category           *string    `json:"category,omitempty"`
	IsRecurring        *bool      `json:"isRecurring,omitempty"`
	RecurrenceInterval *string    `json:"recurrenceInterval,omitempty"`
}

func (handler *Handler) update(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input updateTransactionRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Type != nil {
		v.OneOf("type", *input.Type, Types...)
	}
	if input.Amount != nil {
		v.Positive("amount", *input.Amount)
	}
	if input.Description != nil {
		v.Required("description", *input.Description).MaxLen("description", *input.Description, 500)
	}
	if input.RecurrenceInterval != nil {
		v.OneOf("recurrenceInterval", *input.RecurrenceInterval, Intervals...)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	transaction, err := handler.service.Update(req.Context(), chi.URLParam(req, "id"), userID, UpdateInput{
		Type:               input.Type,
		Amount:             input.Amount,
		Date:               input.Date,
		Description:        input.Description,
		Category:           input.Category,
		IsRecurring:        input.IsRecurring,
		RecurrenceInterval: input.RecurrenceInterval,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, transaction)
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
