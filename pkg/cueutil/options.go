// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxSize bounds the size of a decoded document.
const DefaultMaxSize int64 = 1 << 20

type (
	// Option configures Decode.
	Option func(*options)

	options struct {
		filename string
		maxSize  int64
		concrete bool
	}
)

func defaultOptions() options {
	return options{filename: "<input>", maxSize: DefaultMaxSize, concrete: true}
}

// WithFilename names the document in error messages and CUE positions.
func WithFilename(name string) Option {
	return func(o *options) {
		if name != "" {
			o.filename = name
		}
	}
}

// WithMaxSize overrides DefaultMaxSize. Non-positive values are ignored.
func WithMaxSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// WithConcrete controls whether every field must resolve to a concrete value.
// It is on by default.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}
