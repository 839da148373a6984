//go:build !(darwin || freebsd || linux)

package ffi

import (
	"fmt"
	"runtime"
)

// ErrUnsupportedPlatform is returned by Open on platforms without dlopen.
var ErrUnsupportedPlatform = fmt.Errorf("dynamic loading is not supported on %s/%s", runtime.GOOS, runtime.GOARCH)

var bind = func(fptr any, addr uintptr) {
	panic(ErrUnsupportedPlatform)
}

// DynamicLibrary is never constructed on this platform.
type DynamicLibrary struct {
	path string
}

// Open always fails on this platform.
func Open(path string) (*DynamicLibrary, error) {
	return nil, fmt.Errorf("open %s: %w", path, ErrUnsupportedPlatform)
}

func (l *DynamicLibrary) Path() string { return l.path }

func (l *DynamicLibrary) Lookup(name string) (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func (l *DynamicLibrary) Close() error { return nil }
