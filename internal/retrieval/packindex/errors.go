package packindex

import "errors"

var (
	// ErrIndexMissing indicates no index has been built at the given path.
	ErrIndexMissing = errors.New("pack index not found")
	// ErrLocked indicates another build holds the index lock.
	ErrLocked = errors.New("pack index is being rebuilt by another process")
)
