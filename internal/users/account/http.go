// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

/*
Package account provides the HTTP delivery layer for profile management.

# Security

All endpoints in this package require an active authentication session
provided by the RequireAuth middleware. The acting user is always resolved
from the verified bearer token.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rotina-app/rotina/internal/platform/request"
	"github.com/rotina-app/rotina/internal/platform/respond"
	"github.com/rotina-app/rotina/internal/platform/validate"
	"github.com/rotina-app/rotina/internal/users/auth"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Account Management
	router.Get("/me", handler.getMe)
	router.Patch("/me", handler.updateMe)
	router.Delete("/me", handler.deleteMe)

	// Aggregated home-screen snapshot
	router.Get("/me/dashboard", handler.dashboard)

	return router
}

// # User Profile Endpoints

/*
GET /api/users/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetMe(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type updateMeRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

/*
PATCH /api/users/me.

Description: Applies a partial update to the profile. Absent fields are left
unchanged.

Request:
  - Body: updateMeRequest (Name?, Email?)

Response:
  - 200: User: Updated profile
  - 400: ErrInvalidJSON: Validation failure
  - 409: ErrConflict: Email already in use
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required(auth.FieldName, *input.Name).MaxLen(auth.FieldName, *input.Name, 100)
	}
	if input.Email != nil {
		v.Required(auth.FieldEmail, *input.Email).Email(auth.FieldEmail, *input.Email)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateMe(request.Context(), userID, UpdateMeInput{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/users/me.

Description: Soft-deletes the account and revokes every active session.

Response:
  - 204: No Content: Account deleted
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteMe(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/users/me/dashboard.

Description: Returns the aggregated cross-domain snapshot for the home screen.

Response:
  - 200: DashboardSummary
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.accountService.Dashboard(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}
