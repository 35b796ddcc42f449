// Package session holds the signed-in user and drives sign-in, sign-up,
// sign-out and the startup bootstrap against the account API.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/ideamans/accountclient/pkg/gateway"
	"github.com/ideamans/accountclient/pkg/shared/logging"
	"github.com/ideamans/accountclient/pkg/token"
	"github.com/ideamans/accountclient/pkg/tokenstore"
)

// Account API endpoints used by the store.
const (
	SignInPath  = "/api/account/signin"
	SignUpPath  = "/api/account/signup"
	TokensPath  = "/api/account/tokens"
	SignOutPath = "/api/account/signout"
)

// Requester sends account API requests. *gateway.Gateway implements it.
type Requester interface {
	Request(ctx context.Context, opts gateway.Options) gateway.Result
}

// TokenStore persists the token pair. *tokenstore.Store implements it.
type TokenStore interface {
	Save(ctx context.Context, idToken, refreshToken string) error
	Load(ctx context.Context) (idToken, refreshToken string, err error)
	Clear(ctx context.Context) error
}

// Options configures a Store.
type Options struct {
	Requester Requester
	Tokens    TokenStore
	// Codec defaults to a wall-clock codec.
	Codec  *token.Codec
	Routes Routes
	Logger logging.Logger
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokensResponse struct {
	Tokens tokenstore.Pair `json:"tokens"`
}

type subscription struct {
	id int
	fn Listener
}

// Store is the observable session. Its methods may be called from any
// goroutine; concurrent sign-in calls are not serialized and the last
// completed one wins.
type Store struct {
	requester Requester
	tokens    TokenStore
	codec     *token.Codec
	routes    Routes
	logger    logging.Logger

	mu        sync.Mutex
	state     State
	listeners []subscription
	nextID    int
}

// New creates a Store with an empty state. Call Bootstrap to restore a
// persisted session.
func New(opts Options) *Store {
	codec := opts.Codec
	if codec == nil {
		codec = token.NewCodec()
	}
	return &Store{
		requester: opts.Requester,
		tokens:    opts.Tokens,
		codec:     codec,
		routes:    opts.Routes,
		logger:    opts.Logger.WithModule("session"),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Routes returns the configured navigation targets.
func (s *Store) Routes() Routes {
	return s.routes
}

// Subscribe registers fn for every subsequent change. Listeners run in
// registration order. The returned function unsubscribes.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// mutate applies fn under the lock and then notifies listeners outside it.
func (s *Store) mutate(fields Field, fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	change := Change{State: s.state.clone(), Fields: fields}
	listeners := make([]subscription, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, sub := range listeners {
		sub.fn(change)
	}
}

// SignIn exchanges credentials for tokens. On failure the error is recorded
// in the state and returned, and any previous user is left in place.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, SignInPath, email, password)
}

// SignUp registers a new account and signs it in. Failure handling matches
// SignIn.
func (s *Store) SignUp(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, SignUpPath, email, password)
}

func (s *Store) authenticate(ctx context.Context, path, email, password string) error {
	s.mutate(FieldIsLoading|FieldError, func(st *State) {
		st.IsLoading = true
		st.Error = nil
	})

	result := s.requester.Request(ctx, gateway.Options{
		Method: http.MethodPost,
		Path:   path,
		Body:   credentials{Email: email, Password: password},
	})

	var resp tokensResponse
	if gerr := result.Decode(&resp); gerr != nil {
		return s.fail(gerr)
	}
	if resp.Tokens.IDToken == "" {
		return s.fail(gateway.NewUnknownError("account API returned no tokens", nil))
	}

	if err := s.tokens.Save(ctx, resp.Tokens.IDToken, resp.Tokens.RefreshToken); err != nil {
		return s.fail(gateway.NewUnknownError("could not store tokens", err))
	}

	claims := s.codec.Payload(resp.Tokens.IDToken)
	if claims == nil {
		return s.fail(gateway.NewUnknownError("account API returned an unusable identity token", nil))
	}

	s.mutate(FieldCurrentUser|FieldIDToken|FieldIsLoading, func(st *State) {
		st.CurrentUser = claims.User
		st.IDToken = resp.Tokens.IDToken
		st.IsLoading = false
	})
	s.logger.Info("Signed in", "path", path, "email", claims.User.Email())
	return nil
}

func (s *Store) fail(gerr *gateway.Error) error {
	s.mutate(FieldIsLoading|FieldError, func(st *State) {
		st.IsLoading = false
		st.Error = gerr
	})
	return gerr
}

// Bootstrap restores a persisted session. A live identity token becomes the
// current user immediately, without a network call. If the refresh token is
// still live the pair is then refreshed in place; a refresh failure is only
// logged and keeps whatever was restored.
//
// The returned error is non-nil only when the token store could not be read.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.mutate(FieldIsLoading|FieldError, func(st *State) {
		st.IsLoading = true
		st.Error = nil
	})

	idToken, refreshToken, err := s.tokens.Load(ctx)
	if err != nil {
		s.mutate(FieldIsLoading, func(st *State) { st.IsLoading = false })
		return fmt.Errorf("session: failed to restore tokens: %w", err)
	}

	fields := FieldIsLoading
	claims := s.codec.Payload(idToken)
	if claims != nil {
		fields |= FieldCurrentUser | FieldIDToken
	}
	s.mutate(fields, func(st *State) {
		if claims != nil {
			st.CurrentUser = claims.User
			st.IDToken = idToken
		}
		st.IsLoading = false
	})
	if claims != nil {
		s.logger.Debug("Restored session", "email", claims.User.Email(), "expires", claims.Expiry())
	}

	if s.codec.Payload(refreshToken) == nil {
		s.logger.Debug("No live refresh token, skipping refresh")
		return nil
	}

	s.refresh(ctx, refreshToken)
	return nil
}

func (s *Store) refresh(ctx context.Context, refreshToken string) {
	result := s.requester.Request(ctx, gateway.Options{
		Method: http.MethodPost,
		Path:   TokensPath,
		Body:   refreshRequest{RefreshToken: refreshToken},
	})

	var resp tokensResponse
	if gerr := result.Decode(&resp); gerr != nil {
		s.logger.Warn("Error refreshing tokens", "kind", gerr.Kind, "error", gerr)
		return
	}

	claims := s.codec.Payload(resp.Tokens.IDToken)
	if claims == nil {
		s.logger.Warn("Refresh returned an unusable identity token")
		return
	}

	// State never moves ahead of what storage holds.
	if err := s.tokens.Save(ctx, resp.Tokens.IDToken, resp.Tokens.RefreshToken); err != nil {
		s.logger.Error("Failed to store refreshed tokens", "error", err)
		return
	}

	s.mutate(FieldCurrentUser|FieldIDToken, func(st *State) {
		st.CurrentUser = claims.User
		st.IDToken = resp.Tokens.IDToken
	})
	s.logger.Debug("Refreshed tokens", "expires", claims.Expiry())
}

// SignOut tells the account API to invalidate the refresh token, then clears
// the persisted pair and the state. The remote call is best effort: its
// failure is logged and does not stop the local sign-out.
func (s *Store) SignOut(ctx context.Context) error {
	idToken := s.State().IDToken
	if idToken != "" {
		result := s.requester.Request(ctx, gateway.Options{
			Method: http.MethodPost,
			Path:   SignOutPath,
			Header: http.Header{"Authorization": []string{"Bearer " + idToken}},
		})
		if !result.OK() {
			s.logger.Warn("Remote sign-out failed", "kind", result.Err.Kind, "error", result.Err)
		}
	}

	err := s.tokens.Clear(ctx)

	s.mutate(FieldCurrentUser|FieldIDToken|FieldIsLoading|FieldError, func(st *State) {
		*st = State{}
	})
	s.logger.Info("Signed out")

	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	return nil
}
