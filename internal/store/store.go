package store

import "context"

// Store is the associative store the template engine persists through.
// Values are opaque strings; absence is reported via found=false, not an
// error. The store offers no multi-key transactions, so callers that do
// read-scan-write sequences over several keys get best-effort consistency
// only.
type Store interface {
	// Get returns the value stored under key, if any.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set writes value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases store resources.
	Close() error
}
