package voicevox

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"voicevoxcore/internal/ffi"
)

// Library is an opened dynamic library the Core resolves its exports from.
type Library = ffi.Library

// Observer receives the outcome of every native call. Implementations must be
// safe for concurrent use.
type Observer interface {
	ObserveCall(fn string, ok bool, d time.Duration)
}

// Option configures a Core.
type Option func(*Core)

// WithLogger sets the logger for lifecycle and failure events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Core) { c.log = l }
}

// WithObserver registers an Observer for native calls.
func WithObserver(o Observer) Option {
	return func(c *Core) { c.obs = o }
}

// Core is a bound instance of the native engine.
type Core struct {
	mu      sync.Mutex
	lib     Library
	ownsLib bool
	fn      *ffi.Table
	state   State

	log zerolog.Logger
	obs Observer
}

// Open loads the shared library at path without binding it. The result can be
// shared between several Cores through FromLibrary.
func Open(path string) (Library, error) {
	lib, err := ffi.Open(path)
	if err != nil {
		return nil, ErrLoad(path, err)
	}
	return lib, nil
}

// New opens the library at path and binds every export. The returned Core
// owns the library and unloads it on Close.
func New(path string, opts ...Option) (*Core, error) {
	lib, err := ffi.Open(path)
	if err != nil {
		return nil, ErrLoad(path, err)
	}
	fn, err := ffi.Load(lib)
	if err != nil {
		_ = lib.Close()
		return nil, ErrLoad(path, err)
	}
	return newCore(lib, fn, true, opts...), nil
}

// FromLibrary binds every export of an already opened library. The caller
// keeps ownership of lib; Close does not unload it.
func FromLibrary(lib Library, opts ...Option) (*Core, error) {
	if lib == nil {
		return nil, ErrLoad("", errors.New("nil library"))
	}
	fn, err := ffi.Load(lib)
	if err != nil {
		return nil, ErrLoad(libraryPath(lib), err)
	}
	return newCore(lib, fn, false, opts...), nil
}

func newCore(lib Library, fn *ffi.Table, owns bool, opts ...Option) *Core {
	c := &Core{
		lib:     lib,
		ownsLib: owns,
		fn:      fn,
		state:   StateLoaded,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log.Debug().Str("library", libraryPath(lib)).Bool("owned", owns).Msg("core loaded")
	return c
}

func libraryPath(lib Library) string {
	if p, ok := lib.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}

// State returns the current lifecycle state.
func (c *Core) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Ready reports whether inference calls are currently accepted.
func (c *Core) Ready() bool { return c.State() == StateInitialized }

// LastErrorMessage returns the engine's description of its most recent
// failure. It is advisory; an engine with nothing to report returns "".
func (c *Core) LastErrorMessage() (string, error) {
	const fn = "last_error_message"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(fn, loadedStates...); err != nil {
		return "", err
	}
	start := time.Now()
	msg, ok := ffi.GoString(c.fn.LastErrorMessage())
	c.observe(fn, start, ok)
	return msg, nil
}

// Close finalizes an initialized engine, unloads an owned library and leaves
// the Core unloaded. Closing twice is a no-op.
func (c *Core) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUnloaded {
		return nil
	}
	if c.state == StateInitialized {
		c.finalizeLocked()
	}
	var err error
	if c.ownsLib {
		err = c.lib.Close()
	}
	c.log.Debug().Str("from", string(c.state)).Msg("core unloaded")
	c.lib, c.fn, c.state = nil, nil, StateUnloaded
	return err
}

func (c *Core) observe(fn string, start time.Time, ok bool) {
	if c.obs != nil {
		c.obs.ObserveCall(fn, ok, time.Since(start))
	}
}

// failed records a native false return and builds the matching error.
func (c *Core) failed(fn string) error {
	c.log.Warn().Str("func", fn).Str("state", string(c.state)).Msg("native call failed")
	return ErrCallFailed(fn)
}
