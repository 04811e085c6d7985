// Package session holds the client-side authentication session: a pure
// state machine plus a durable store that survives process restarts.
//
// The state transitions are side-effect free so they can be tested without
// any network or filesystem. The Store applies them under a lock and
// persists the result.
package session

// User is the client's view of the authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// State is the in-memory session snapshot.
//
// Generation increments on every logout. An operation that started under an
// older generation must not write its result back, which is what prevents a
// slow in-flight request from resurrecting a session the user already ended.
type State struct {
	User            *User  `json:"user"`
	AccessToken     string `json:"token"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	Err             string `json:"-"`
	Generation      uint64 `json:"-"`
}

// Event is a session state transition trigger.
type Event interface {
	apply(State) State
}

// LoggedIn carries a fresh authentication result.
type LoggedIn struct {
	User        *User
	AccessToken string
}

func (event LoggedIn) apply(state State) State {
	return State{
		User:            event.User,
		AccessToken:     event.AccessToken,
		IsAuthenticated: true,
		Generation:      state.Generation,
	}
}

// TokenRefreshed swaps the access token without touching identity.
// Refreshing an unauthenticated session is a no-op.
type TokenRefreshed struct {
	AccessToken string
}

func (event TokenRefreshed) apply(state State) State {
	if !state.IsAuthenticated {
		return state
	}
	next := state
	next.AccessToken = event.AccessToken
	next.Err = ""
	return next
}

// LoggedOut clears everything and bumps the generation.
type LoggedOut struct{}

func (LoggedOut) apply(state State) State {
	return State{Generation: state.Generation + 1}
}

// Failed records a user-facing error message without clearing the session.
type Failed struct {
	Message string
}

func (event Failed) apply(state State) State {
	next := state
	next.Err = event.Message
	return next
}

// Apply returns the state that follows from event. It never mutates state.
func Apply(state State, event Event) State {
	return event.apply(state)
}
