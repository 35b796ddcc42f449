// Package account calls the authenticated account endpoints.
package account

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/ideamans/accountclient/pkg/gateway"
	"github.com/ideamans/accountclient/pkg/shared/logging"
	"github.com/ideamans/accountclient/pkg/token"
	"github.com/ideamans/accountclient/pkg/validate"
)

const (
	MePath      = "/api/account/me"
	DetailsPath = "/api/account/details"
)

// Session supplies the identity token. *session.Store implements it.
type Session interface {
	TokenSource() oauth2.TokenSource
	HTTPClient(base *http.Client) *http.Client
}

type userResponse struct {
	User token.User `json:"user"`
}

// Client calls the account API on behalf of the signed-in user.
type Client struct {
	gw      *gateway.Gateway
	session Session
	logger  logging.Logger
}

// New creates a client. Requests go through gw using its HTTP client as the
// base transport.
func New(gw *gateway.Gateway, session Session, logger logging.Logger) *Client {
	return &Client{
		gw:      gw,
		session: session,
		logger:  logger.WithModule("account"),
	}
}

// Me fetches the signed-in user.
func (c *Client) Me(ctx context.Context) (token.User, *gateway.Error) {
	return c.user(ctx, gateway.Options{Method: http.MethodGet, Path: MePath})
}

// UpdateDetails validates form and stores it as the user's details.
func (c *Client) UpdateDetails(ctx context.Context, form validate.DetailsForm) (token.User, *gateway.Error) {
	if err := form.Validate(); err != nil {
		return nil, gateway.NewValidationError(err.Error(), err)
	}

	user, gerr := c.user(ctx, gateway.Options{Method: http.MethodPut, Path: DetailsPath, Body: form})
	if gerr != nil {
		return nil, gerr
	}
	c.logger.Info("Updated account details", "email", user.Email())
	return user, nil
}

func (c *Client) user(ctx context.Context, opts gateway.Options) (token.User, *gateway.Error) {
	if _, err := c.session.TokenSource().Token(); err != nil {
		return nil, gateway.NewValidationError("not signed in", err)
	}

	opts.Client = c.session.HTTPClient(c.gw.Client())

	var resp userResponse
	if gerr := c.gw.Request(ctx, opts).Decode(&resp); gerr != nil {
		return nil, gerr
	}
	if resp.User == nil {
		return nil, gateway.NewUnknownError("unexpected response from account API", nil)
	}
	return resp.User, nil
}
