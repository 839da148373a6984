package voicevox

import (
	"fmt"
	"sync"
	"testing"
	"time"
	"unsafe"

	"voicevoxcore/internal/ffi"
)

// cbytes returns s as a NUL-terminated byte slice.
func cbytes(s string) []byte { return append([]byte(s), 0) }

func cptr(b []byte) uintptr {
	if b == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

// fakeEngine stands in for the native library. Its table methods behave like
// the engine's exports: inference calls fill the output buffers and return
// failOn-controlled flags.
type fakeEngine struct {
	initOK    bool
	forwardOK bool
	metas     []byte // nil means NULL
	lastError []byte

	calls     []string
	rootDir   string
	useGPU    bool
	lastLen   int32
	lastPhSz  int32
	speakerID int64
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		initOK:    true,
		forwardOK: true,
		metas:     cbytes(metasFixture),
		lastError: cbytes(""),
	}
}

func (f *fakeEngine) called(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeEngine) table() *ffi.Table {
	return &ffi.Table{
		Initialize: func(rootDirPath string, useGpu bool) bool {
			f.calls = append(f.calls, "initialize")
			f.rootDir, f.useGPU = rootDirPath, useGpu
			if !f.initOK {
				f.lastError = cbytes("model directory not found")
			}
			return f.initOK
		},
		Finalize: func() { f.calls = append(f.calls, "finalize") },
		Metas: func() uintptr {
			f.calls = append(f.calls, "metas")
			return cptr(f.metas)
		},
		YukarinSForward: func(length int32, phonemeList *int64, speakerId *int64, output *float32) bool {
			f.calls = append(f.calls, "yukarin_s_forward")
			f.lastLen, f.speakerID = length, *speakerId
			out := unsafe.Slice(output, length)
			for i, p := range unsafe.Slice(phonemeList, length) {
				out[i] = float32(p) / 10
			}
			return f.forwardOK
		},
		YukarinSaForward: func(length int32, vowelPhonemeList *int64, consonantPhonemeList *int64, startAccentList *int64, endAccentList *int64, startAccentPhraseList *int64, endAccentPhraseList *int64, speakerId *int64, output *float32) bool {
			f.calls = append(f.calls, "yukarin_sa_forward")
			f.lastLen, f.speakerID = length, *speakerId
			out := unsafe.Slice(output, length)
			for i, v := range unsafe.Slice(vowelPhonemeList, length) {
				out[i] = 5 + float32(v)
			}
			return f.forwardOK
		},
		DecodeForward: func(length int32, phonemeSize int32, f0 *float32, phoneme *float32, speakerId *int64, output *float32) bool {
			f.calls = append(f.calls, "decode_forward")
			f.lastLen, f.lastPhSz, f.speakerID = length, phonemeSize, *speakerId
			out := unsafe.Slice(output, int(length)*DecodeSamplesPerFrame)
			for i := range out {
				out[i] = 0.5
			}
			return f.forwardOK
		},
		LastErrorMessage: func() uintptr {
			f.calls = append(f.calls, "last_error_message")
			return cptr(f.lastError)
		},
	}
}

// stubLibrary is a Library that records Close and resolves nothing unless
// told otherwise.
type stubLibrary struct {
	path    string
	syms    map[string]uintptr
	closed  int
	closeFn func() error
}

func (l *stubLibrary) Path() string { return l.path }

func (l *stubLibrary) Lookup(name string) (uintptr, error) {
	if addr, ok := l.syms[name]; ok {
		return addr, nil
	}
	return 0, fmt.Errorf("undefined symbol: %s", name)
}

func (l *stubLibrary) Close() error {
	l.closed++
	if l.closeFn != nil {
		return l.closeFn()
	}
	return nil
}

// newTestCore returns a Core bound to a fake engine.
func newTestCore(t *testing.T, owns bool, opts ...Option) (*Core, *fakeEngine, *stubLibrary) {
	t.Helper()
	f := newFakeEngine()
	lib := &stubLibrary{path: "/opt/voicevox/libcore.so"}
	return newCore(lib, f.table(), owns, opts...), f, lib
}

// initialized returns a Core that has already been initialized.
func initialized(t *testing.T, opts ...Option) (*Core, *fakeEngine) {
	t.Helper()
	c, f, _ := newTestCore(t, true, opts...)
	if err := c.Initialize("/opt/voicevox", false); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return c, f
}

type observed struct {
	fn string
	ok bool
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []observed
}

func (r *recordingObserver) ObserveCall(fn string, ok bool, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, observed{fn, ok})
}
