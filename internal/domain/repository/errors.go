package repository

import "errors"

// ErrStaleState means a receipt changed state between read and write.
var ErrStaleState = errors.New("receipt state changed concurrently")
