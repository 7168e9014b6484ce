package store

import "errors"

// ErrStorage marks failures to create, read, or write the data directory or
// its documents. These are fatal to the calling operation and are never
// silently swallowed.
var ErrStorage = errors.New("storage error")
