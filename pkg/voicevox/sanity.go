package voicevox

import (
	"os"

	"voicevoxcore/internal/ffi"
)

// CheckReport is the result of a preflight check of a library.
type CheckReport struct {
	Library string   `json:"library" yaml:"library" toml:"library"`
	Size    int64    `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Loaded  bool     `json:"loaded" yaml:"loaded" toml:"loaded"`
	Symbols int      `json:"symbols" yaml:"symbols" toml:"symbols"`
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty" toml:"missing,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// OK reports whether the library opened and exports every required symbol.
func (r CheckReport) OK() bool { return r.Loaded && len(r.Missing) == 0 && r.Error == "" }

// Check opens the library at path, lists the required exports it lacks and
// closes it again. Nothing is bound or initialized.
func Check(path string) CheckReport {
	var size int64
	if fi, err := os.Stat(path); err == nil {
		size = fi.Size()
	}
	lib, err := ffi.Open(path)
	if err != nil {
		return CheckReport{Library: path, Size: size, Symbols: len(ffi.Symbols), Error: err.Error()}
	}
	defer lib.Close()
	r := CheckLibrary(lib)
	r.Library, r.Size = path, size
	return r
}

// CheckLibrary reports the required exports an opened library lacks.
func CheckLibrary(lib Library) CheckReport {
	r := CheckReport{Library: libraryPath(lib), Loaded: true, Symbols: len(ffi.Symbols)}
	r.Missing = ffi.Missing(lib)
	if len(r.Missing) > 0 {
		r.Error = (&ffi.MissingSymbolsError{Names: r.Missing}).Error()
	}
	return r
}
