package kvstore

import "context"

// Repository is the generic key-value namespace used for staff session
// markers and miscellaneous flags (authToken, userId, role). Keys carry no
// schema; callers must agree on conventions such as "<role>-<contact>".
type Repository interface {
	// Get returns the value for key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set inserts or overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists stored keys with the given prefix, in insertion order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Clear removes every key.
	Clear(ctx context.Context) error
}
