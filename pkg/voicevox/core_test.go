package voicevox

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNew_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "libcore.so"))
	if !IsLoadError(err) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "libcore.so"))
	if !IsLoadError(err) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestFromLibrary_NilLibrary(t *testing.T) {
	if _, err := FromLibrary(nil); !IsLoadError(err) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestFromLibrary_MissingSymbol(t *testing.T) {
	lib := &stubLibrary{path: "/opt/libcore.so", syms: map[string]uintptr{}}
	for i, name := range []string{"initialize", "finalize", "metas", "yukarin_s_forward", "yukarin_sa_forward", "last_error_message"} {
		lib.syms[name] = uintptr(0x1000 + i)
	}
	_, err := FromLibrary(lib)
	if !IsLoadError(err) {
		t.Fatalf("expected load error, got %v", err)
	}
	if got := MissingSymbols(err); !reflect.DeepEqual(got, []string{"decode_forward"}) {
		t.Fatalf("missing = %v", got)
	}
	if lib.closed != 0 {
		t.Fatalf("borrowed library was closed")
	}
}

func TestState_Lifecycle(t *testing.T) {
	c, f, _ := newTestCore(t, true)
	if c.State() != StateLoaded || c.Ready() {
		t.Fatalf("new core: state=%s ready=%v", c.State(), c.Ready())
	}
	if err := c.Initialize("/opt/voicevox", true); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !c.Ready() || f.rootDir != "/opt/voicevox" || !f.useGPU {
		t.Fatalf("after init: ready=%v root=%q gpu=%v", c.Ready(), f.rootDir, f.useGPU)
	}
	if err := c.Initialize("/opt/voicevox", true); !IsInvalidState(err) {
		t.Fatalf("second Initialize: %v", err)
	}
	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if c.State() != StateFinalized {
		t.Fatalf("state = %s", c.State())
	}
	if err := c.Finalize(); !IsInvalidState(err) {
		t.Fatalf("double Finalize: %v", err)
	}
	if n := f.called("finalize"); n != 1 {
		t.Fatalf("native finalize ran %d times", n)
	}
	// re-initialize after finalize
	if err := c.Initialize("/opt/voicevox", false); err != nil {
		t.Fatalf("re-Initialize: %v", err)
	}
	if c.State() != StateInitialized {
		t.Fatalf("state = %s", c.State())
	}
}

func TestFinalize_BeforeInitialize(t *testing.T) {
	c, f, _ := newTestCore(t, true)
	if err := c.Finalize(); !IsInvalidState(err) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if f.called("finalize") != 0 {
		t.Fatalf("native finalize reached")
	}
}

func TestInitialize_Failure(t *testing.T) {
	c, f, _ := newTestCore(t, true)
	f.initOK = false
	err := c.Initialize("/missing", false)
	if !IsCallFailed(err) || CallFailedFunc(err) != "initialize" {
		t.Fatalf("expected initialize call failure, got %v", err)
	}
	if c.State() != StateLoaded {
		t.Fatalf("state = %s", c.State())
	}
	first, err := c.LastErrorMessage()
	if err != nil {
		t.Fatalf("LastErrorMessage: %v", err)
	}
	second, _ := c.LastErrorMessage()
	if first != "model directory not found" || first != second {
		t.Fatalf("last error: %q then %q", first, second)
	}
}

func TestInitialize_NULInRootDir(t *testing.T) {
	c, f, _ := newTestCore(t, true)
	if err := c.Initialize("/opt\x00/x", false); !IsContractViolation(err) {
		t.Fatalf("expected contract violation, got %v", err)
	}
	if f.called("initialize") != 0 {
		t.Fatalf("native initialize reached")
	}
}

func TestLastErrorMessage_Null(t *testing.T) {
	c, f, _ := newTestCore(t, true)
	f.lastError = nil
	msg, err := c.LastErrorMessage()
	if err != nil || msg != "" {
		t.Fatalf("got %q, %v", msg, err)
	}
}

func TestClose_Owned(t *testing.T) {
	c, f, lib := newTestCore(t, true)
	if err := c.Initialize("/opt/voicevox", false); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if f.called("finalize") != 1 {
		t.Fatalf("Close did not finalize")
	}
	if lib.closed != 1 {
		t.Fatalf("owned library closed %d times", lib.closed)
	}
	if c.State() != StateUnloaded {
		t.Fatalf("state = %s", c.State())
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if lib.closed != 1 {
		t.Fatalf("second Close unloaded again")
	}
}

func TestClose_Borrowed(t *testing.T) {
	c, f, lib := newTestCore(t, false)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if lib.closed != 0 {
		t.Fatalf("borrowed library was closed")
	}
	if f.called("finalize") != 0 {
		t.Fatalf("Close finalized an uninitialized engine")
	}
}

func TestClose_ErrorPropagates(t *testing.T) {
	c, _, lib := newTestCore(t, true)
	boom := errors.New("dlclose failed")
	lib.closeFn = func() error { return boom }
	if err := c.Close(); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
	if c.State() != StateUnloaded {
		t.Fatalf("state = %s", c.State())
	}
}

func TestClosed_RejectsEverything(t *testing.T) {
	c, f, _ := newTestCore(t, true)
	_ = c.Close()
	calls := len(f.calls)
	checks := map[string]error{
		"initialize": c.Initialize("/opt", false),
		"finalize":   c.Finalize(),
		"forward":    c.YukarinSForward(1, []int64{1}, []int64{0}, make([]float32, 1)),
	}
	_, checks["metas"] = c.Metas()
	_, checks["last_error"] = c.LastErrorMessage()
	for name, err := range checks {
		if !IsInvalidState(err) {
			t.Errorf("%s after Close: %v", name, err)
		}
	}
	if len(f.calls) != calls {
		t.Fatalf("native calls after Close: %v", f.calls[calls:])
	}
}

func TestObserver_RecordsCalls(t *testing.T) {
	obs := &recordingObserver{}
	c, f := initialized(t, WithObserver(obs))
	f.forwardOK = false
	_ = c.YukarinSForward(1, []int64{3}, []int64{0}, make([]float32, 1))
	want := []observed{{"initialize", true}, {"yukarin_s_forward", false}}
	if !reflect.DeepEqual(obs.calls, want) {
		t.Fatalf("observed %v, want %v", obs.calls, want)
	}
}
