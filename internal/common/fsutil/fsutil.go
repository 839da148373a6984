// Package fsutil holds the path helpers shared by config loading and the CLI.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// PathExists checks if the given path exists.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// LibraryFileName is the file name the core library ships under on this
// platform.
func LibraryFileName() string {
	switch runtime.GOOS {
	case "darwin":
		return "libcore.dylib"
	case "windows":
		return "core.dll"
	default:
		return "libcore.so"
	}
}

// ResolveLibrary expands '~' in path and, when path names a directory,
// points it at the platform's library file inside it.
func ResolveLibrary(path string) (string, error) {
	p, err := ExpandHome(path)
	if err != nil || p == "" {
		return p, err
	}
	fi, err := os.Stat(p)
	if err == nil && fi.IsDir() {
		lib := filepath.Join(p, LibraryFileName())
		if !PathExists(lib) {
			return "", fmt.Errorf("no %s in %s", LibraryFileName(), p)
		}
		return lib, nil
	}
	return p, nil
}
