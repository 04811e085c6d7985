package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	sessionFile = "session.json"
	refreshFile = "refresh_token"

	dirMode  = 0o700
	fileMode = 0o600
)

/*
Store is the durable session holder.

Two files live under the store directory: the session blob (user, access
token, authenticated flag) and the raw refresh token. They are separate on
purpose: rotating the refresh token must not require rewriting the session
blob, and clearing one can never corrupt the other.

All methods are safe for concurrent use.
*/
type Store struct {
	mu           sync.Mutex
	dir          string
	state        State
	refreshToken string
}

// NewStore opens (or initializes) the session store rooted at dir. Existing
// persisted state is loaded; a corrupt session file is treated as logged out
// rather than an error, since the only recovery is re-authentication anyway.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("session: create store dir: %w", err)
	}

	store := &Store{dir: dir}

	raw, err := os.ReadFile(filepath.Join(dir, sessionFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		// first run
	case err != nil:
		return nil, fmt.Errorf("session: read session file: %w", err)
	default:
		if jsonErr := json.Unmarshal(raw, &store.state); jsonErr != nil {
			store.state = State{}
		}
	}

	token, err := os.ReadFile(filepath.Join(dir, refreshFile))
	if err == nil {
		store.refreshToken = strings.TrimSpace(string(token))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("session: read refresh token: %w", err)
	}

	// A session blob without its refresh token (or vice versa) means a
	// previous clear was interrupted. Trust neither half.
	if store.state.IsAuthenticated && store.state.AccessToken == "" {
		store.state = State{}
		store.refreshToken = ""
	}

	return store, nil
}

// Snapshot returns a copy of the current state.
func (store *Store) Snapshot() State {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.state
}

// RefreshToken returns the stored refresh token, or "" when none is held.
func (store *Store) RefreshToken() string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.refreshToken
}

/*
Login records a fresh authentication result and persists it.

The generation argument must come from the Snapshot the caller acted on.
If a logout happened in between, the result is discarded and false is
returned; the completed network call must not resurrect the ended session.
*/
func (store *Store) Login(generation uint64, user *User, accessToken, refreshToken string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.state.Generation != generation {
		return false, nil
	}

	store.state = Apply(store.state, LoggedIn{User: user, AccessToken: accessToken})
	store.refreshToken = refreshToken

	if err := store.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// SetTokens applies a refresh result: new access token, and when the server
// rotates refresh tokens, the replacement refresh token. Stale generations
// are discarded the same way Login discards them.
func (store *Store) SetTokens(generation uint64, accessToken, refreshToken string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.state.Generation != generation || !store.state.IsAuthenticated {
		return false, nil
	}

	store.state = Apply(store.state, TokenRefreshed{AccessToken: accessToken})
	if refreshToken != "" {
		store.refreshToken = refreshToken
	}

	if err := store.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// SetError records a user-facing error message. It is not persisted; errors
// are per-run state.
func (store *Store) SetError(message string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state = Apply(store.state, Failed{Message: message})
}

/*
Clear is the forced-logout path: it wipes in-memory state, bumps the
generation, and removes both durable files.

It is idempotent and safe to call concurrently with in-flight requests —
their late results are rejected by the generation check.
*/
func (store *Store) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.clearLocked()
}

// ClearIf clears only when the session generation still matches, and reports
// whether it did. Concurrent failures that all decide to force a logout
// produce exactly one clear: the first bumps the generation, the rest no-op.
func (store *Store) ClearIf(generation uint64) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.state.Generation != generation {
		return false, nil
	}
	return true, store.clearLocked()
}

func (store *Store) clearLocked() error {
	store.state = Apply(store.state, LoggedOut{})
	store.refreshToken = ""

	var firstErr error
	for _, name := range []string{sessionFile, refreshFile} {
		if err := os.Remove(filepath.Join(store.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			if firstErr == nil {
				firstErr = fmt.Errorf("session: remove %s: %w", name, err)
			}
		}
	}
	return firstErr
}

func (store *Store) persistLocked() error {
	blob, err := json.Marshal(store.state)
	if err != nil {
		return fmt.Errorf("session: encode session: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(store.dir, sessionFile), blob); err != nil {
		return fmt.Errorf("session: write session file: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(store.dir, refreshFile), []byte(store.refreshToken)); err != nil {
		return fmt.Errorf("session: write refresh token: %w", err)
	}
	return nil
}

// writeFileAtomic writes via a temp file and rename so a crash mid-write
// never leaves a truncated session on disk.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, fileMode); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
