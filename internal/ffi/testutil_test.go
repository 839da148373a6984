package ffi

import (
	"fmt"
	"testing"
)

// fakeLibrary serves fixed addresses for a set of symbol names.
type fakeLibrary struct {
	syms   map[string]uintptr
	closed bool
}

func newFakeLibrary(except ...string) *fakeLibrary {
	skip := make(map[string]bool, len(except))
	for _, n := range except {
		skip[n] = true
	}
	f := &fakeLibrary{syms: make(map[string]uintptr)}
	for i, n := range Symbols {
		if !skip[n] {
			f.syms[n] = uintptr(0x1000 + i*0x10)
		}
	}
	return f
}

func (f *fakeLibrary) Lookup(name string) (uintptr, error) {
	if addr, ok := f.syms[name]; ok {
		return addr, nil
	}
	return 0, fmt.Errorf("undefined symbol: %s", name)
}

func (f *fakeLibrary) Close() error {
	f.closed = true
	return nil
}

// recordBinds replaces bind for the duration of the test and returns the
// addresses it was called with, keyed by address.
func recordBinds(t *testing.T) map[uintptr]any {
	t.Helper()
	bound := make(map[uintptr]any)
	prev := bind
	bind = func(fptr any, addr uintptr) { bound[addr] = fptr }
	t.Cleanup(func() { bind = prev })
	return bound
}
