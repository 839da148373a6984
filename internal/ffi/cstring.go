package ffi

import "unsafe"

// maxCString bounds the scan for the terminating NUL of a native string.
const maxCString = 64 << 20

// GoString copies the NUL-terminated string at p. The second result is false
// when p is NULL. Strings longer than 64 MiB are truncated.
func GoString(p uintptr) (string, bool) {
	if p == 0 {
		return "", false
	}
	// p points at memory owned by the native library, not the Go heap.
	base := *(*unsafe.Pointer)(unsafe.Pointer(&p))
	n := 0
	for n < maxCString && *(*byte)(unsafe.Add(base, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(base), n)), true
}
