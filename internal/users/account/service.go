// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/rotina-app/rotina/internal/users/auth"
)

// Service implements account management use cases.
type Service struct {
	accountRepository   AccountRepository
	sessionRevoker      SessionRevoker
	dashboardRepository DashboardRepository
}

// NewService constructs a new account [Service].
func NewService(
	accountRepo AccountRepository,
	revoker SessionRevoker,
	dashboardRepo DashboardRepository,
) *Service {
	return &Service{
		accountRepository:   accountRepo,
		sessionRevoker:      revoker,
		dashboardRepository: dashboardRepo,
	}
}

// # Profile Management

/*
GetMe returns the full private profile of the authenticated user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: Hydrated profile
  - err: apperr.NotFound or storage failures
*/
func (service *Service) GetMe(context context.Context, userID string) (*auth.User, error) {
	return service.accountRepository.FindByID(context, userID)
}

// UpdateMeInput carries the mutable profile fields. Nil means "leave as-is".
type UpdateMeInput struct {
	Name  *string
	Email *string
}

/*
UpdateMe applies a partial update to the authenticated user's profile.

Description: Only the provided fields change; identity conflicts surface as
apperr.Conflict from the storage layer.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateMeInput

Returns:
  - *auth.User: Updated profile
  - err: apperr.NotFound, apperr.Conflict, or storage failures
*/
func (service *Service) UpdateMe(context context.Context, userID string, input UpdateMeInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
DeleteMe soft-deletes the authenticated user's account.

Description: The row is preserved for historical integrity, but the account
stops resolving and every refresh session is revoked immediately so no live
token can outlast the deletion.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - err: apperr.NotFound or storage failures
*/
func (service *Service) DeleteMe(context context.Context, userID string) error {
	if err := service.accountRepository.SoftDelete(context, userID); err != nil {
		return err
	}

	if err := service.sessionRevoker.RevokeAll(context, userID); err != nil {
		return fmt.Errorf("account_service_revoke_sessions_failed: %w", err)
	}

	return nil
}

// # Dashboard

/*
Dashboard returns the aggregated cross-domain snapshot for the home screen.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *DashboardSummary: Aggregated snapshot
  - err: Storage failures
*/
func (service *Service) Dashboard(context context.Context, userID string) (*DashboardSummary, error) {
	return service.dashboardRepository.Summarize(context, userID, time.Now())
}
