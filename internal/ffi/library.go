// Package ffi loads the native engine and binds its exports without cgo.
//
// The function table in core_generated.go is produced by corebindgen from
// include/core.h; regenerate it with `go generate ./internal/ffi` whenever the
// header changes. Everything that touches raw addresses lives in this package.
package ffi

import (
	"fmt"
	"strings"
)

// Library is an opened dynamic library.
type Library interface {
	// Lookup returns the address of the exported symbol name.
	Lookup(name string) (uintptr, error)
	// Close unloads the library. Addresses obtained from it become invalid.
	Close() error
}

// MissingSymbolsError reports exports the library does not provide.
type MissingSymbolsError struct {
	Names []string
}

func (e *MissingSymbolsError) Error() string {
	return fmt.Sprintf("missing symbols: %s", strings.Join(e.Names, ", "))
}

// resolve looks up every name and returns their addresses in order. It fails
// with a *MissingSymbolsError listing every name that did not resolve.
func resolve(lib Library, names []string) ([]uintptr, error) {
	if lib == nil {
		return nil, fmt.Errorf("nil library")
	}
	addrs := make([]uintptr, len(names))
	var missing []string
	for i, name := range names {
		addr, err := lib.Lookup(name)
		if err != nil || addr == 0 {
			missing = append(missing, name)
			continue
		}
		addrs[i] = addr
	}
	if len(missing) > 0 {
		return nil, &MissingSymbolsError{Names: missing}
	}
	return addrs, nil
}

// Missing returns the required symbols lib does not export, in header order.
func Missing(lib Library) []string {
	var out []string
	for _, name := range Symbols {
		if addr, err := lib.Lookup(name); err != nil || addr == 0 {
			out = append(out, name)
		}
	}
	return out
}

var _ Library = (*DynamicLibrary)(nil)
