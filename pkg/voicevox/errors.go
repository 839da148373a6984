package voicevox

import (
	"errors"
	"fmt"

	"voicevoxcore/internal/ffi"
)

// loadError signals that the library could not be opened or lacks exports.
type loadError struct {
	path string
	err  error
}

func (e loadError) Error() string {
	if e.path == "" {
		return "load core: " + e.err.Error()
	}
	return fmt.Sprintf("load core %s: %v", e.path, e.err)
}

func (e loadError) Unwrap() error { return e.err }

// ErrLoad constructs a load error for the library at path.
func ErrLoad(path string, err error) error { return loadError{path: path, err: err} }

// IsLoadError reports whether err came from opening or resolving the library.
func IsLoadError(err error) bool {
	var le loadError
	return errors.As(err, &le)
}

// MissingSymbols returns the exports a load error found missing, or nil.
func MissingSymbols(err error) []string {
	var mse *ffi.MissingSymbolsError
	if errors.As(err, &mse) {
		return append([]string(nil), mse.Names...)
	}
	return nil
}

// callFailedError signals that a native call returned its failure flag. The
// engine's own explanation is not included; fetch it with LastErrorMessage.
type callFailedError struct{ fn string }

func (e callFailedError) Error() string { return "native call failed: " + e.fn }

// ErrCallFailed constructs a callFailedError for the native function fn.
func ErrCallFailed(fn string) error { return callFailedError{fn: fn} }

// IsCallFailed reports whether err is a native failure flag.
func IsCallFailed(err error) bool {
	var ce callFailedError
	return errors.As(err, &ce)
}

// CallFailedFunc returns the native function name of a call failure.
func CallFailedFunc(err error) string {
	var ce callFailedError
	if errors.As(err, &ce) {
		return ce.fn
	}
	return ""
}

// metasUnavailableError signals a NULL or empty metadata payload.
type metasUnavailableError struct{}

func (metasUnavailableError) Error() string { return "metas unavailable: engine returned no payload" }

// ErrMetasUnavailable constructs a metasUnavailableError.
func ErrMetasUnavailable() error { return metasUnavailableError{} }

// IsMetasUnavailable reports whether err means the engine returned no metadata.
func IsMetasUnavailable(err error) bool {
	var me metasUnavailableError
	return errors.As(err, &me)
}

// metasParseError signals a metadata payload that is not valid JSON or does
// not have the documented shape.
type metasParseError struct{ err error }

func (e metasParseError) Error() string { return "parse metas: " + e.err.Error() }

func (e metasParseError) Unwrap() error { return e.err }

// IsMetasParse reports whether err means the metadata payload was malformed.
func IsMetasParse(err error) bool {
	var pe metasParseError
	return errors.As(err, &pe)
}

// contractError signals arguments that break a native call's contract, such
// as a buffer shorter than the declared length.
type contractError struct {
	fn  string
	msg string
}

func (e contractError) Error() string { return e.fn + ": " + e.msg }

// ErrContractViolation constructs a contractError for the native function fn.
func ErrContractViolation(fn, msg string) error { return contractError{fn: fn, msg: msg} }

// IsContractViolation reports whether err was raised by argument validation.
func IsContractViolation(err error) bool {
	var ce contractError
	return errors.As(err, &ce)
}

// stateError signals an operation attempted in the wrong lifecycle state.
type stateError struct {
	op    string
	state State
}

func (e stateError) Error() string {
	return fmt.Sprintf("%s: not allowed while %s", e.op, e.state)
}

// ErrInvalidState constructs a stateError.
func ErrInvalidState(op string, s State) error { return stateError{op: op, state: s} }

// IsInvalidState reports whether err was raised by a lifecycle check.
func IsInvalidState(err error) bool {
	var se stateError
	return errors.As(err, &se)
}
