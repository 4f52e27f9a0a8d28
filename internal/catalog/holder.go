// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"sync"
)

// Holder owns the active catalog. Rebuilds are all-or-nothing: a failed
// rebuild leaves the previous catalog in effect.
type Holder struct {
	mu         sync.RWMutex
	current    *Catalog
	generation uint64
}

// NewHolder creates a Holder whose active catalog is empty.
func NewHolder() *Holder {
	return &Holder{current: Empty()}
}

// Current returns the active catalog. It is never nil.
func (h *Holder) Current() *Catalog {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Generation counts successful rebuilds.
func (h *Holder) Generation() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.generation
}

// Rebuild runs build and, only if it succeeds, replaces the active catalog.
func (h *Holder) Rebuild(ctx context.Context, build func(context.Context) (*Catalog, error)) error {
	next, err := build(ctx)
	if err != nil {
		return err
	}
	if next == nil {
		next = Empty()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = next
	h.generation++
	return nil
}
