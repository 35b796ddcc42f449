// Package tokentest mints signed tokens shaped like the account API's, for tests.
package tokentest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ideamans/accountclient/pkg/token"
)

// Secret signs every token minted here. Clients never verify it.
const Secret = "tokentest-secret"

// IDToken returns an identity token carrying user that expires at exp.
func IDToken(t testing.TB, user token.User, exp time.Time) string {
	t.Helper()
	return sign(t, token.Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(exp.Add(-15 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
}

// RefreshToken returns a refresh token for uid that expires at exp.
func RefreshToken(t testing.TB, uid string, exp time.Time) string {
	t.Helper()
	return sign(t, jwt.MapClaims{
		"uid": uid,
		"exp": exp.Unix(),
		"iat": exp.Add(-72 * time.Hour).Unix(),
	})
}

func sign(t testing.TB, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(Secret))
	if err != nil {
		t.Fatalf("tokentest: failed to sign token: %v", err)
	}
	return signed
}
