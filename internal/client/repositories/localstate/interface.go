// Package localstate persists small client-side records (credentials, user
// identity) between runs, keyed like the browser console kept them.
package localstate

import (
	"context"
)

// Keys of the records the session layer owns. Both must be present for an
// authenticated session to exist; they are written and cleared together.
const (
	KeyCredentials = "auth_credentials"
	KeyUserData    = "user_data"
)

// Repository is a persistent key-value store. Get returns nil (not an
// error) for an absent key, so callers can treat "missing" and "not yet
// flushed" uniformly.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
