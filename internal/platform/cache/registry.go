package cache

import (
	"context"
	"errors"
)

// Clearer is anything whose entries can be dropped at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Registry clears a fixed set of caches together. It backs the user-facing
// refresh action.
type Registry struct {
	caches []Clearer
}

// NewRegistry creates a registry over caches.
func NewRegistry(caches ...Clearer) *Registry {
	return &Registry{caches: caches}
}

// ClearAll clears every registered cache. All caches are attempted even if one
// fails; the failures are joined.
func (r *Registry) ClearAll(ctx context.Context) error {
	var errs []error
	for _, c := range r.caches {
		if err := c.Clear(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
