package gateway

import "fmt"

// Kind classifies a failed request.
type Kind string

const (
	// KindValidation means the account API answered with an error body,
	// e.g. bad credentials or an already registered e-mail.
	KindValidation Kind = "validation"

	// KindNetwork means the request never got an answer: DNS, dial,
	// timeout or cancellation.
	KindNetwork Kind = "network"

	// KindUnknown covers everything else: requests that could not be built,
	// error statuses without an error body, undecodable success bodies.
	KindUnknown Kind = "unknown"
)

// Error is the normalized failure of a gateway request.
type Error struct {
	Kind Kind

	// Type is the server-side error type when the API sent one
	// (e.g. "AUTHORIZATION", "CONFLICT").
	Type string

	// Message is safe to show to the user.
	Message string

	// Status is the HTTP status code, 0 if no response was received.
	Status int

	// Cause is the underlying Go error, if any.
	Cause error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, gateway.ErrNetwork).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrNetwork    = &Error{Kind: KindNetwork}
	ErrUnknown    = &Error{Kind: KindUnknown}
)

// NewValidationError builds a KindValidation error from a message, for
// failures detected before a request is sent.
func NewValidationError(message string, cause error) *Error {
	return &Error{Kind: KindValidation, Message: message, Cause: cause}
}

// NewUnknownError builds a KindUnknown error.
func NewUnknownError(message string, cause error) *Error {
	return &Error{Kind: KindUnknown, Message: message, Cause: cause}
}
