package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideamans/accountclient/pkg/gateway"
	"github.com/ideamans/accountclient/pkg/session"
	"github.com/ideamans/accountclient/pkg/shared/kvs"
	"github.com/ideamans/accountclient/pkg/shared/logging"
	"github.com/ideamans/accountclient/pkg/token"
	"github.com/ideamans/accountclient/pkg/token/tokentest"
	"github.com/ideamans/accountclient/pkg/tokenstore"
	"github.com/ideamans/accountclient/pkg/validate"
)

var alice = token.User{"uid": "u-1", "email": "alice@example.com", "name": "Alice"}

// accountAPI is a stub account API that requires a bearer token on the
// authenticated endpoints.
type accountAPI struct {
	idToken string

	mu      sync.Mutex
	details map[string]string
	hits    int
}

func (a *accountAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path == session.SignInPath {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"tokens": map[string]string{"idToken": a.idToken, "refreshToken": "rf"},
		})
		return
	}

	a.mu.Lock()
	a.hits++
	a.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+a.idToken {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"type": "AUTHORIZATION", "message": "Provided token is invalid"},
		})
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == MePath:
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"user": alice})
	case r.Method == http.MethodPut && r.URL.Path == DetailsPath:
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		a.mu.Lock()
		a.details = body
		a.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]string{"uid": "u-1", "name": body["name"], "email": body["email"], "website": body["website"]},
		})
	default:
		http.NotFound(w, r)
	}
}

func (a *accountAPI) Hits() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits
}

func setup(t *testing.T, signIn bool) (*Client, *accountAPI) {
	t.Helper()

	api := &accountAPI{idToken: tokentest.IDToken(t, alice, time.Now().Add(15*time.Minute))}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	logger := logging.NewTestLogger()
	gw, err := gateway.New(srv.URL, srv.Client(), logger)
	require.NoError(t, err)

	base := kvs.NewMemoryStore("")
	t.Cleanup(func() { _ = base.Close() })
	store := session.New(session.Options{
		Requester: gw,
		Tokens:    tokenstore.New(base),
		Logger:    logger,
	})
	if signIn {
		require.NoError(t, store.SignIn(context.Background(), "alice@example.com", "secret1"))
	}

	return New(gw, store, logger), api
}

func TestMe(t *testing.T) {
	client, _ := setup(t, true)

	user, gerr := client.Me(context.Background())
	require.Nil(t, gerr)
	assert.Equal(t, "alice@example.com", user.Email())
	assert.Equal(t, "Alice", user.Name())
}

func TestMe_NotSignedIn(t *testing.T) {
	client, api := setup(t, false)

	user, gerr := client.Me(context.Background())
	require.NotNil(t, gerr)
	assert.Nil(t, user)
	assert.Equal(t, gateway.KindValidation, gerr.Kind)
	assert.Equal(t, "not signed in", gerr.Message)
	assert.ErrorIs(t, gerr, session.ErrNotSignedIn)
	assert.Zero(t, api.Hits())
}

func TestUpdateDetails(t *testing.T) {
	client, api := setup(t, true)

	user, gerr := client.UpdateDetails(context.Background(), validate.DetailsForm{
		Name:    "Alice A.",
		Email:   "alice@example.com",
		Website: "https://alice.example.com",
	})
	require.Nil(t, gerr)
	assert.Equal(t, "Alice A.", user.Name())
	assert.Equal(t, "https://alice.example.com", user.String("website"))

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, map[string]string{
		"name":    "Alice A.",
		"email":   "alice@example.com",
		"website": "https://alice.example.com",
	}, api.details)
}

func TestUpdateDetails_InvalidFormSkipsNetwork(t *testing.T) {
	client, api := setup(t, true)

	_, gerr := client.UpdateDetails(context.Background(), validate.DetailsForm{Email: "nope"})
	require.NotNil(t, gerr)
	assert.Equal(t, gateway.KindValidation, gerr.Kind)
	assert.Contains(t, gerr.Message, validate.MsgEmail)
	assert.Zero(t, api.Hits())
}
