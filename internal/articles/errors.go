package articles

import "errors"

var (
	// ErrNotFound means no record is stored under the requested id.
	ErrNotFound = errors.New("article not found")

	// ErrCorrupt means a stored record could not be decoded into an article.
	ErrCorrupt = errors.New("corrupt article record")

	// ErrStoreUnavailable wraps any failure of the underlying key-value store.
	ErrStoreUnavailable = errors.New("article store unavailable")

	// ErrInvalidInput means an article was rejected before being written.
	ErrInvalidInput = errors.New("invalid article")
)
