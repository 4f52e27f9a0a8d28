// SPDX-License-Identifier: MPL-2.0

package unit

// Binder turns a discovered command file into a Unit.
type Binder struct {
	registry *Registry
	environ  []string
}

// BinderOption configures a Binder.
type BinderOption func(*Binder)

// WithRegistry makes registered Go entry points take precedence over script files.
func WithRegistry(r *Registry) BinderOption {
	return func(b *Binder) { b.registry = r }
}

// WithEnviron sets the base environment for script units (default: os.Environ()).
func WithEnviron(env []string) BinderOption {
	return func(b *Binder) { b.environ = env }
}

// NewBinder creates a Binder.
func NewBinder(opts ...BinderOption) *Binder {
	b := &Binder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bind returns the registered Go unit for the target's (group, command) key if
// one exists, otherwise a script unit for the target's file.
func (b *Binder) Bind(target Target) Unit {
	if fn, ok := b.registry.Lookup(target.Group, target.Command); ok {
		return NewGoUnit(target, fn)
	}
	su := NewScriptUnit(target)
	su.Environ = b.environ
	return su
}
