package session

import (
	"net/http"

	"golang.org/x/oauth2"
)

type tokenSource struct {
	store *Store
}

// TokenSource returns an oauth2.TokenSource over the current identity token.
// It never refreshes; a missing or expired token yields ErrNotSignedIn.
func (s *Store) TokenSource() oauth2.TokenSource {
	return tokenSource{store: s}
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	raw := ts.store.State().IDToken
	claims := ts.store.codec.Payload(raw)
	if claims == nil {
		return nil, ErrNotSignedIn
	}
	return &oauth2.Token{
		AccessToken: raw,
		TokenType:   "Bearer",
		Expiry:      claims.Expiry(),
	}, nil
}

// HTTPClient returns a client that sends the current identity token as a
// bearer token on every request. The token is read per request, so a
// sign-out takes effect immediately. base supplies the transport and
// timeout; nil means http.DefaultClient.
func (s *Store) HTTPClient(base *http.Client) *http.Client {
	if base == nil {
		base = http.DefaultClient
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: s.TokenSource(),
			Base:   base.Transport,
		},
		Timeout:       base.Timeout,
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
	}
}
