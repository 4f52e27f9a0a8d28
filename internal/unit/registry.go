// SPDX-License-Identifier: MPL-2.0

package unit

import (
	"context"
	"fmt"
	"sort"
)

type (
	// Key addresses a registered entry point.
	Key struct {
		Group   string
		Command string
	}

	// Registry maps (group, command) keys to Go entry points. It is populated
	// once at startup and read-only afterwards.
	Registry struct {
		entries map[Key]EntryPoint
	}

	goUnit struct {
		target Target
		fn     EntryPoint
	}
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Key]EntryPoint)}
}

// Register sets the entry point for (group, command). It panics if the key is
// already registered. A nil fn registers a unit without an entry point.
func (r *Registry) Register(group, command string, fn EntryPoint) {
	key := Key{Group: group, Command: command}
	if _, exists := r.entries[key]; exists {
		panic(fmt.Sprintf("command %s.%s already registered", group, command))
	}
	r.entries[key] = fn
}

// Lookup returns the entry point registered for (group, command) and whether
// the key exists. A registered key may map to a nil entry point.
func (r *Registry) Lookup(group, command string) (EntryPoint, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.entries[Key{Group: group, Command: command}]
	return fn, ok
}

// Keys returns the registered keys sorted by group, then command.
func (r *Registry) Keys() []Key {
	if r == nil {
		return nil
	}
	keys := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Group != keys[j].Group {
			return keys[i].Group < keys[j].Group
		}
		return keys[i].Command < keys[j].Command
	})
	return keys
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// NewGoUnit wraps a Go entry point as a Unit.
func NewGoUnit(target Target, fn EntryPoint) Unit {
	return &goUnit{target: target, fn: fn}
}

func (u *goUnit) Kind() Kind     { return KindGo }
func (u *goUnit) Target() Target { return u.target }

func (u *goUnit) Resolve(context.Context) (EntryPoint, error) {
	if u.fn == nil {
		return nil, fmt.Errorf("%s: %w", u.target, ErrNoEntryPoint)
	}
	return u.fn, nil
}
