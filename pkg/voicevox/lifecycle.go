package voicevox

import (
	"strings"
	"time"
)

// Initialize loads the engine's models from rootDir. It is accepted while
// loaded or finalized. On failure the Core stays in its previous state and
// LastErrorMessage describes the cause.
func (c *Core) Initialize(rootDir string, useGPU bool) error {
	const fn = "initialize"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(fn, StateLoaded, StateFinalized); err != nil {
		return err
	}
	if strings.IndexByte(rootDir, 0) >= 0 {
		return ErrContractViolation(fn, "root dir contains a NUL byte")
	}
	start := time.Now()
	ok := c.fn.Initialize(rootDir, useGPU)
	c.observe(fn, start, ok)
	if !ok {
		return c.failed(fn)
	}
	c.log.Debug().Str("root_dir", rootDir).Bool("use_gpu", useGPU).Msg("core initialized")
	c.state = StateInitialized
	return nil
}

// Finalize releases the engine's models. It is only accepted while
// initialized, so the native finalize runs at most once per Initialize.
func (c *Core) Finalize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("finalize", StateInitialized); err != nil {
		return err
	}
	c.finalizeLocked()
	return nil
}

func (c *Core) finalizeLocked() {
	start := time.Now()
	c.fn.Finalize()
	c.observe("finalize", start, true)
	c.state = StateFinalized
	c.log.Debug().Msg("core finalized")
}
