package session

import (
	"maps"

	"github.com/ideamans/accountclient/pkg/gateway"
	"github.com/ideamans/accountclient/pkg/token"
)

// State is the session as seen by the rest of the client.
type State struct {
	// CurrentUser is non-nil iff IDToken decoded to live claims when it was loaded.
	CurrentUser token.User
	IDToken     string
	IsLoading   bool
	// Error is the failure of the last SignIn/SignUp, nil otherwise.
	Error *gateway.Error
}

// Authenticated reports whether a user is signed in.
func (s State) Authenticated() bool {
	return s.CurrentUser != nil
}

func (s State) clone() State {
	s.CurrentUser = maps.Clone(s.CurrentUser)
	return s
}

// Field names a State field in a Change.
type Field uint8

const (
	FieldCurrentUser Field = 1 << iota
	FieldIDToken
	FieldIsLoading
	FieldError
)

// Change is delivered to listeners after every mutation. Fields names the
// fields that were assigned, even if a value did not actually differ.
type Change struct {
	State  State
	Fields Field
}

// Has reports whether f was assigned by this change.
func (c Change) Has(f Field) bool {
	return c.Fields&f != 0
}

// Listener observes session changes. It runs synchronously on the goroutine
// that performed the mutation and must not block.
type Listener func(Change)

// Routes are the navigation targets the hosting application configured.
type Routes struct {
	// OnAuthRoute is where to go once a user is signed in.
	OnAuthRoute string
	// RequireAuthRoute is where to go while no user is signed in.
	RequireAuthRoute string
}
