package recent

import (
	"errors"
	"sync/atomic"
)

// DefaultCapacity is the bound used until SetCapacity is called.
const DefaultCapacity = 40

var ErrInvalidCapacity = errors.New("capacity must be at least 1")

var capacity atomic.Int64

// SetCapacity changes the process-wide bound on every store. Existing
// stores are not trimmed immediately; each one shrinks on its next push.
func SetCapacity(n int) error {
	if n < 1 {
		return ErrInvalidCapacity
	}
	capacity.Store(int64(n))
	return nil
}

// Capacity returns the current process-wide bound.
func Capacity() int {
	if n := capacity.Load(); n > 0 {
		return int(n)
	}
	return DefaultCapacity
}
