// Package voicevox binds the VOICEVOX core shared library at run time and
// exposes its exports as checked Go methods. It is structured into small
// files by concern:
//
//   - core.go: Core type, New/FromLibrary/Close, options, last-error access.
//   - state.go: the lifecycle State and its transition checks.
//   - errors.go: error types and predicates (IsLoadError, IsInvalidState, ...).
//   - lifecycle.go: Initialize and Finalize.
//   - metas.go: speaker metadata retrieval and schema-checked parsing.
//   - forward.go: the three inference stages with buffer-length checks.
//   - sanity.go: Check, a preflight that reports missing exports.
//
// Lifecycle:
//
//	unloaded -> loaded (New, FromLibrary) -> initialized (Initialize)
//	         -> finalized (Finalize) -> initialized (Initialize) ...
//
// Inference is only accepted while initialized. Calls in any other state are
// rejected locally and never reach native code. A closed Core is unloaded and
// rejects everything.
//
// Buffers passed to inference methods are borrowed for the duration of the
// call. Each must hold at least as many elements as the call's length
// parameters imply; shorter buffers are rejected before the native call.
//
// A Core serializes its own calls. The native engine is treated as
// single-threaded, so sharing one Core between goroutines gives no
// parallelism.
package voicevox
