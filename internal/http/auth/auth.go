// Package auth verifies HS256 bearer tokens issued by the identity provider.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingToken = errors.New("missing bearer token")

type subjectKey struct{}

// Subject returns the token subject stored by Middleware, if any.
func Subject(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(subjectKey{}).(string)
	return sub, ok
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured. Without one every
// request passes.
func (v *Verifier) Enabled() bool {
	return len(v.secret) > 0
}

// Verify parses raw and returns its subject.
func (v *Verifier) Verify(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	return token.Claims.GetSubject()
}

// Middleware rejects requests without a valid bearer token.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !v.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		raw, ok := bearer(r)
		if !ok {
			http.Error(w, ErrMissingToken.Error(), http.StatusUnauthorized)
			return
		}

		sub, err := v.Verify(raw)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), subjectKey{}, sub)))
	})
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")

	raw, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || raw == "" {
		return "", false
	}

	return raw, true
}
