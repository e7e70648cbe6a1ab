package db

import "context"

// Handle is a scoped connection to one backend. Release returns it to its
// owner and must be called exactly once.
type Handle interface {
	Release()
}

// Provider yields handles to a single backend.
type Provider[H Handle] interface {
	Acquire(ctx context.Context) (H, error)
}

// With acquires a handle, runs fn and releases the handle on every exit
// path, including panics.
func With[H Handle, R any](ctx context.Context, p Provider[H], fn func(H) (R, error)) (R, error) {
	h, err := p.Acquire(ctx)
	if err != nil {
		var zero R
		return zero, err
	}
	defer h.Release()
	return fn(h)
}
