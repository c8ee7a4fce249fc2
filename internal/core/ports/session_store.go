package ports

import "context"

// SessionStore is the key-value persistence behind the client session.
// Get returns domain.ErrKeyNotFound for missing keys.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
