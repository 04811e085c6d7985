// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/internal/platform/constants"
)

// # Session Repository
//
// Refresh sessions are volatile by nature: they expire on their own schedule
// and the hot login/refresh path is write-heavy. Redis gives us both the TTL
// semantics and the throughput without touching the primary database.
//
// Key layout:
//
//	auth:session:<tokenHash>   -> JSON-encoded Session, TTL = time to expiry
//	auth:user_sessions:<userID> -> SET of tokenHash values for bulk revocation

// RedisSessionRepository implements SessionRepository using Redis.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

/*
Create persists a new session keyed by its token hash.

Description: The entry expires automatically at the session's ExpiresAt; the
token hash is also added to the per-user index set for bulk revocation.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Storage failures or an already-expired session
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis_session_repo_create_failed: session already expired")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_repo_encode_failed: %w", err)
	}

	sessionKey := constants.RedisPrefixSession + session.TokenHash
	indexKey := constants.RedisPrefixUserSessions + session.UserID

	pipe := repository.client.TxPipeline()
	pipe.Set(context, sessionKey, payload, ttl)
	pipe.SAdd(context, indexKey, session.TokenHash)
	// The index set only needs to outlive the longest session in it.
	pipe.Expire(context, indexKey, RefreshTokenTTL)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByTokenHash returns the active session for the given token hash.

Description: Expired sessions are evicted by Redis itself, so a miss means the
token is unknown, rotated away, or past its lifetime.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated entity
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	sessionKey := constants.RedisPrefixSession + tokenHash

	payload, err := repository.client.Get(context, sessionKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_repo_find_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_repo_decode_failed: %w", err)
	}
	session.TokenHash = tokenHash

	return session, nil
}

/*
Revoke deletes the session holding the given token hash.

Description: Idempotent; revoking an unknown hash is not an error.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {
	session, err := repository.FindByTokenHash(context, tokenHash)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil
		}
		return err
	}

	sessionKey := constants.RedisPrefixSession + tokenHash
	indexKey := constants.RedisPrefixUserSessions + session.UserID

	pipe := repository.client.TxPipeline()
	pipe.Del(context, sessionKey)
	pipe.SRem(context, indexKey, tokenHash)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_repo_revoke_failed: %w", err)
	}

	return nil
}

/*
RevokeAll deletes every active session belonging to the userID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) RevokeAll(context context.Context, userID string) error {
	return repository.revokeMatching(context, userID, "")
}

/*
RevokeOthers deletes all sessions belonging to the userID except for the
session holding currentTokenHash.

Parameters:
  - context: context.Context
  - userID: string
  - currentTokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) RevokeOthers(context context.Context, userID, currentTokenHash string) error {
	return repository.revokeMatching(context, userID, currentTokenHash)
}

// revokeMatching deletes every session in the user's index set, sparing only
// keepTokenHash when it is non-empty.
func (repository *RedisSessionRepository) revokeMatching(context context.Context, userID, keepTokenHash string) error {
	indexKey := constants.RedisPrefixUserSessions + userID

	hashes, err := repository.client.SMembers(context, indexKey).Result()
	if err != nil {
		return fmt.Errorf("redis_session_repo_index_read_failed: %w", err)
	}

	if len(hashes) == 0 {
		return nil
	}

	pipe := repository.client.TxPipeline()
	for _, hash := range hashes {
		if hash == keepTokenHash {
			continue
		}
		pipe.Del(context, constants.RedisPrefixSession+hash)
		pipe.SRem(context, indexKey, hash)
	}

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_repo_revoke_bulk_failed: %w", err)
	}

	return nil
}
