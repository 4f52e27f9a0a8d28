// SPDX-License-Identifier: MPL-2.0

package unit

import (
	"context"
	"errors"
	"testing"
)

func TestRegistryRegisterLookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	hit := false
	r.Register("infra", "status", func(_ context.Context, inv Invocation) error {
		hit = true
		if len(inv.Args) != 1 || inv.Args[0] != "eu" {
			t.Errorf("unexpected args %q", inv.Args)
		}
		return nil
	})

	fn, ok := r.Lookup("infra", "status")
	if !ok {
		t.Fatal("entry point not found")
	}
	if err := fn(context.Background(), Invocation{Args: []string{"eu"}}); err != nil {
		t.Fatalf("entry point returned error: %v", err)
	}
	if !hit {
		t.Fatal("entry point was not invoked")
	}

	if _, ok := r.Lookup("net", "status"); ok {
		t.Error("Lookup(net, status) found an entry that was never registered")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register("infra", "dup", func(context.Context, Invocation) error { return nil })
	defer func() {
		if rec := recover(); rec == nil {
			t.Fatal("expected panic on duplicate register")
		}
	}()
	r.Register("infra", "dup", func(context.Context, Invocation) error { return nil })
}

func TestRegistryKeysSorted(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	noop := func(context.Context, Invocation) error { return nil }
	r.Register("net", "deploy", noop)
	r.Register("infra", "status", noop)
	r.Register("infra", "deploy", noop)

	keys := r.Keys()
	want := []Key{{"infra", "deploy"}, {"infra", "status"}, {"net", "deploy"}}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %v, want %v", i, keys[i], want[i])
		}
	}
}

func TestNilRegistryLookup(t *testing.T) {
	t.Parallel()

	var r *Registry
	if _, ok := r.Lookup("a", "b"); ok {
		t.Error("nil registry should never find entries")
	}
	if r.Len() != 0 {
		t.Errorf("nil registry Len() = %d, want 0", r.Len())
	}
}

func TestGoUnitWithoutEntryPoint(t *testing.T) {
	t.Parallel()

	u := NewGoUnit(Target{Group: "infra", Command: "broken"}, nil)
	if u.Kind() != KindGo {
		t.Errorf("Kind() = %q, want %q", u.Kind(), KindGo)
	}
	_, err := u.Resolve(context.Background())
	if !errors.Is(err, ErrNoEntryPoint) {
		t.Fatalf("Resolve() error = %v, want ErrNoEntryPoint", err)
	}
}
