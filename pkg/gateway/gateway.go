// Package gateway issues requests to the account API and turns every
// possible failure into a *Error value. Nothing in this package returns a
// plain Go error or panics to its caller.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/ideamans/accountclient/pkg/shared/logging"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// Options describes one request.
type Options struct {
	Method string
	// Path is resolved against the gateway's base URL.
	Path string
	// Body is encoded as JSON when non-nil.
	Body interface{}
	// Header is merged into the request headers.
	Header http.Header
	// Client overrides the gateway's HTTP client for this request, e.g. an
	// oauth2 client that adds the bearer token.
	Client *http.Client
}

// Result holds the outcome of a request. Exactly one of Data and Err is set.
type Result struct {
	Data json.RawMessage
	Err  *Error
}

// OK reports whether the request succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Decode unmarshals Data into v. A result that already failed returns its
// error unchanged.
func (r Result) Decode(v interface{}) *Error {
	if r.Err != nil {
		return r.Err
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return NewUnknownError("unexpected response from account API", err)
	}
	return nil
}

// Gateway talks to one account API.
type Gateway struct {
	baseURL *url.URL
	client  *http.Client
	logger  logging.Logger
	newID   func() string
}

// New creates a gateway for baseURL. A nil client means http.DefaultClient.
func New(baseURL string, client *http.Client, logger logging.Logger) (*Gateway, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("gateway: base URL %q must be http or https", baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Gateway{
		baseURL: u,
		client:  client,
		logger:  logger.WithModule("gateway"),
		newID:   uuid.NewString,
	}, nil
}

// Client returns the HTTP client used when Options.Client is nil.
func (g *Gateway) Client() *http.Client {
	return g.client
}

// Request performs the request described by opts.
func (g *Gateway) Request(ctx context.Context, opts Options) Result {
	requestID := g.newID()

	result := g.do(ctx, requestID, opts)
	if result.Err != nil {
		g.logger.Error("Account API request failed",
			"request_id", requestID,
			"method", opts.Method,
			"path", opts.Path,
			"kind", result.Err.Kind,
			"status", result.Err.Status,
			"error", result.Err.Error(),
		)
		return result
	}

	g.logger.Debug("Account API request succeeded",
		"request_id", requestID,
		"method", opts.Method,
		"path", opts.Path,
	)
	return result
}

func (g *Gateway) do(ctx context.Context, requestID string, opts Options) Result {
	req, err := g.newRequest(ctx, requestID, opts)
	if err != nil {
		return Result{Err: NewUnknownError("failed to build request", err)}
	}

	client := opts.Client
	if client == nil {
		client = g.client
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{Err: &Error{
			Kind:    KindNetwork,
			Message: "could not reach the account service",
			Cause:   err,
		}}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{Err: &Error{
			Kind:    KindNetwork,
			Message: "connection interrupted while reading response",
			Status:  resp.StatusCode,
			Cause:   err,
		}}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{Err: errorFromResponse(resp.StatusCode, body)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return Result{Data: json.RawMessage("null")}
	}
	if !json.Valid(body) {
		return Result{Err: &Error{
			Kind:    KindUnknown,
			Message: "unexpected response from account API",
			Status:  resp.StatusCode,
		}}
	}
	return Result{Data: json.RawMessage(body)}
}

func (g *Gateway) newRequest(ctx context.Context, requestID string, opts Options) (*http.Request, error) {
	ref, err := url.Parse(opts.Path)
	if err != nil {
		return nil, err
	}
	target := g.baseURL.ResolveReference(ref)

	var body io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), target.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", requestID)
	for k, values := range opts.Header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

// serverError mirrors the account API's error object.
type serverError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// errorFromResponse prefers the API's {"error": ...} payload, which may be a
// plain string or a {type, message} object.
func errorFromResponse(status int, body []byte) *Error {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 && string(envelope.Error) != "null" {
		var message string
		if err := json.Unmarshal(envelope.Error, &message); err == nil && message != "" {
			return &Error{Kind: KindValidation, Message: message, Status: status}
		}

		var structured serverError
		if err := json.Unmarshal(envelope.Error, &structured); err == nil && structured.Message != "" {
			return &Error{Kind: KindValidation, Type: structured.Type, Message: structured.Message, Status: status}
		}
	}

	return &Error{
		Kind:    KindUnknown,
		Message: fmt.Sprintf("account API responded with status %d", status),
		Status:  status,
		Cause:   errors.New(http.StatusText(status)),
	}
}
