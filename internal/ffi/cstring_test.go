package ffi

import (
	"testing"
	"unsafe"
)

// Package-level so the backing arrays never live on a movable stack.
var (
	helloC = []byte("hello\x00world")
	emptyC = []byte{0}
)

func TestGoString(t *testing.T) {
	got, ok := GoString(uintptr(unsafe.Pointer(&helloC[0])))
	if !ok || got != "hello" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestGoString_Empty(t *testing.T) {
	got, ok := GoString(uintptr(unsafe.Pointer(&emptyC[0])))
	if !ok || got != "" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestGoString_Null(t *testing.T) {
	if got, ok := GoString(0); ok || got != "" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}
