//go:build darwin || freebsd || linux

package ffi

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/ebitengine/purego"
)

// bind turns a symbol address into a callable Go func stored at fptr.
var bind = func(fptr any, addr uintptr) { purego.RegisterFunc(fptr, addr) }

// DynamicLibrary is a library opened with dlopen.
type DynamicLibrary struct {
	path string

	mu     sync.Mutex
	handle uintptr
}

// Open loads the shared library at path with RTLD_NOW|RTLD_LOCAL, so
// unresolved dependencies fail here rather than on first call.
func Open(path string) (*DynamicLibrary, error) {
	if path == "" {
		return nil, errors.New("empty library path")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", path, err)
	}
	return &DynamicLibrary{path: path, handle: h}, nil
}

// Path returns the path the library was opened from.
func (l *DynamicLibrary) Path() string { return l.path }

func (l *DynamicLibrary) Lookup(name string) (uintptr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handle == 0 {
		return 0, fmt.Errorf("lookup %s: library closed", name)
	}
	addr, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return 0, fmt.Errorf("dlsym %s: %w", name, err)
	}
	return addr, nil
}

// Close unloads the library. Calling Close more than once is a no-op.
func (l *DynamicLibrary) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handle == 0 {
		return nil
	}
	err := purego.Dlclose(l.handle)
	l.handle = 0
	if err != nil {
		return fmt.Errorf("dlclose %s: %w", l.path, err)
	}
	return nil
}
