package investment

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rotina-app/rotina/internal/platform/request"
	"github.com/rotina-app/rotina/internal/platform/respond"
	"github.com/rotina-app/rotina/internal/platform/validate"
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
	router.Get("/portfolio-summary", handler.portfolioSummary)
	router.Get("/type/{type}", handler.byType)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Patch("/{id}/current-value", handler.updateCurrentValue)
	router.Delete("/{id}", handler.remove)

	return router
}

type createInvestmentRequest struct {
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Quantity      *float64  `json:"quantity,omitempty"`
	PurchasePrice *float64  `json:"purchasePrice,omitempty"`
	CurrentValue  float64   `json:"currentValue"`
	PurchaseDate  time.Time `json:"purchaseDate"`
	Notes         *string   `json:"notes,omitempty"`
}

func (handler *Handler) create(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input createInvestmentRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, 200).
		OneOf("type", input.Type, Types...).
		NonNegative("currentValue", input.CurrentValue).
		Custom("purchaseDate", input.PurchaseDate.IsZero(), "purchaseDate is required")
	if input.Quantity != nil {
		v.Positive("quantity", *input.Quantity)
	}
	if input.PurchasePrice != nil {
		v.NonNegative("purchasePrice", *input.PurchasePrice)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	investment, err := handler.service.Create(req.Context(), userID, CreateInput{
		Name:          input.Name,
		Type:          input.Type,
		Quantity:      input.Quantity,
		PurchasePrice: input.PurchasePrice,
		CurrentValue:  input.CurrentValue,
		PurchaseDate:  input.PurchaseDate,
		Notes:         input.Notes,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.Created(writer, investment)
}

func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	investments, err := handler.service.List(req.Context(), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, investments)
}

func (handler *Handler) portfolioSummary(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	summary, err := handler.service.PortfolioSummary(req.Context(), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, summary)
}

func (handler *Handler) byType(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	investmentType := chi.URLParam(req, "type")
	v := &validate.Validator{}
	if err := v.OneOf("type", investmentType, Types...).Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	investments, err := handler.service.ListByType(req.Context(), userID, investmentType)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, investments)
}

func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	investment, err := handler.service.Get(req.Context(), chi.URLParam(req, "id"), userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, investment)
}

type updateInvestmentRequest struct {
	Name          *string    `json:"name,omitempty"`
	Type          *string    `json:"type,omitempty"`
	Quantity      *float64   `json:"quantity,omitempty"`
	PurchasePrice *float64   `json:"purchasePrice,omitempty"`
	CurrentValue  *float64   `json:"currentValue,omitempty"`
	PurchaseDate  *time.Time `json:"purchaseDate,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

func (handler *Handler) update(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input updateInvestmentRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 200)
	}
	if input.Type != nil {
		v.OneOf("type", *input.Type, Types...)
	}
	if input.Quantity != nil {
		v.Positive("quantity", *input.Quantity)
	}
	if input.PurchasePrice != nil {
		v.NonNegative("purchasePrice", *input.PurchasePrice)
	}
	if input.CurrentValue != nil {
		v.NonNegative("currentValue", *input.CurrentValue)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	investment, err := handler.service.Update(req.Context(), chi.URLParam(req, "id"), userID, UpdateInput{
		Name:          input.Name,
		Type:          input.Type,
		Quantity:      input.Quantity,
		PurchasePrice: input.PurchasePrice,
		CurrentValue:  input.CurrentValue,
		PurchaseDate:  input.PurchaseDate,
		Notes:         input.Notes,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, investment)
}

type updateCurrentValueRequest struct {
	CurrentValue float64 `json:"currentValue"`
}

func (handler *Handler) updateCurrentValue(writer http.ResponseWriter, req *http.Request) {
	userID, err := requestutil.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input updateCurrentValueRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if err := v.NonNegative("currentValue", input.CurrentValue).Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	investment, err := handler.service.UpdateCurrentValue(req.Context(), chi.URLParam(req, "id"), userID, input.CurrentValue)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}
	respond.OK(writer, investment)
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
