// Package session maps opaque per-browser tokens to authenticated user
// identities. The mapping is deliberately injected as a Provider interface
// rather than reached through process-wide state.
package session

import (
	"context"
	"errors"
	"math/rand"
)

// ErrNoSession means the token resolves to no identity.
var ErrNoSession = errors.New("session: not found")

// Provider is the create/resolve/destroy contract for session storage.
type Provider interface {
	// Create stores a fresh token for userID and returns it.
	Create(ctx context.Context, userID int64) (string, error)
	// Resolve returns the user id a token was created for, or ErrNoSession.
	Resolve(ctx context.Context, token string) (int64, error)
	// Destroy forgets a token. Destroying an unknown token is not an error.
	Destroy(ctx context.Context, token string) error
}

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func newToken(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.Intn(len(letterBytes))]
	}
	return string(b)
}
