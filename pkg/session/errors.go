package session

import "errors"

var (
	// ErrNotInstalled is the panic value of FromContext when no store was installed.
	ErrNotInstalled = errors.New("session: auth store has not been installed")

	// ErrNotSignedIn is returned by the token source without a live identity token.
	ErrNotSignedIn = errors.New("session: not signed in")
)
