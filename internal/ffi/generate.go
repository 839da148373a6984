package ffi

//go:generate go run ../../cmd/corebindgen --header include/core.h --out core_generated.go --package ffi
