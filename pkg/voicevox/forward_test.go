package voicevox

import (
	"math"
	"testing"
)

func TestYukarinSForward(t *testing.T) {
	c, f := initialized(t)
	out := make([]float32, 3)
	if err := c.YukarinSForward(3, []int64{10, 20, 30}, []int64{2, 2, 2}, out); err != nil {
		t.Fatalf("YukarinSForward: %v", err)
	}
	if f.lastLen != 3 || f.speakerID != 2 {
		t.Fatalf("native saw length=%d speaker=%d", f.lastLen, f.speakerID)
	}
	want := []float32{1, 2, 3}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out = %v, want %v", out, want)
		}
	}
}

func TestYukarinSaForward(t *testing.T) {
	c, f := initialized(t)
	ids := []int64{1, 2}
	out := make([]float32, 2)
	if err := c.YukarinSaForward(2, ids, ids, ids, ids, ids, ids, []int64{4, 4}, out); err != nil {
		t.Fatalf("YukarinSaForward: %v", err)
	}
	if out[0] != 6 || out[1] != 7 || f.speakerID != 4 {
		t.Fatalf("out=%v speaker=%d", out, f.speakerID)
	}
}

func TestDecodeForward(t *testing.T) {
	c, f := initialized(t)
	const frames, size = 2, 3
	out := make([]float32, DecodeOutputLen(frames, size))
	err := c.DecodeForward(frames, size, make([]float32, frames), make([]float32, frames*size), []int64{1, 1}, out)
	if err != nil {
		t.Fatalf("DecodeForward: %v", err)
	}
	if f.lastLen != frames || f.lastPhSz != size {
		t.Fatalf("native saw length=%d phoneme_size=%d", f.lastLen, f.lastPhSz)
	}
	if len(out) != 512 || out[511] != 0.5 {
		t.Fatalf("output not written: len=%d last=%v", len(out), out[len(out)-1])
	}
}

func TestDecodeOutputLen(t *testing.T) {
	if got := DecodeOutputLen(3, 45); got != 768 {
		t.Fatalf("DecodeOutputLen(3, 45) = %d", got)
	}
	if got := DecodeOutputLen(2, 300); got != 600 {
		t.Fatalf("DecodeOutputLen(2, 300) = %d", got)
	}
}

func TestForward_NativeFailure(t *testing.T) {
	c, f := initialized(t)
	f.forwardOK = false
	err := c.YukarinSForward(1, []int64{1}, []int64{0}, make([]float32, 1))
	if !IsCallFailed(err) || CallFailedFunc(err) != "yukarin_s_forward" {
		t.Fatalf("expected call failure, got %v", err)
	}
	if !c.Ready() {
		t.Fatalf("native failure changed state to %s", c.State())
	}
}

func TestForward_BeforeInitialize(t *testing.T) {
	c, f, _ := newTestCore(t, true)
	ids := []int64{1}
	out := make([]float32, DecodeOutputLen(1, 1))
	errs := map[string]error{
		"s":      c.YukarinSForward(1, ids, ids, out),
		"sa":     c.YukarinSaForward(1, ids, ids, ids, ids, ids, ids, ids, out),
		"decode": c.DecodeForward(1, 1, []float32{0}, []float32{0}, ids, out),
	}
	for name, err := range errs {
		if !IsInvalidState(err) {
			t.Errorf("%s: expected invalid state, got %v", name, err)
		}
	}
	if len(f.calls) != 0 {
		t.Fatalf("native calls: %v", f.calls)
	}
}

func TestForward_AfterFinalize(t *testing.T) {
	c, f := initialized(t)
	if err := c.Finalize(); err != nil {
		t.Fatal(err)
	}
	err := c.YukarinSForward(1, []int64{1}, []int64{0}, make([]float32, 1))
	if !IsInvalidState(err) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if f.called("yukarin_s_forward") != 0 {
		t.Fatalf("native forward reached")
	}
}

func TestForward_ContractViolations(t *testing.T) {
	c, f := initialized(t)
	one := []int64{1}
	two := []int64{1, 1}
	cases := []struct {
		name string
		call func() error
	}{
		{"s zero length", func() error { return c.YukarinSForward(0, one, one, make([]float32, 1)) }},
		{"s negative length", func() error { return c.YukarinSForward(-1, one, one, make([]float32, 1)) }},
		{"s length overflow", func() error { return c.YukarinSForward(math.MaxInt32+1, one, one, make([]float32, 1)) }},
		{"s short output", func() error { return c.YukarinSForward(2, two, two, make([]float32, 1)) }},
		{"s short phonemes", func() error { return c.YukarinSForward(2, one, two, make([]float32, 2)) }},
		{"s short speaker", func() error { return c.YukarinSForward(2, two, one, make([]float32, 2)) }},
		{"s nil output", func() error { return c.YukarinSForward(1, one, one, nil) }},
		{"sa short output", func() error {
			return c.YukarinSaForward(2, two, two, two, two, two, two, two, make([]float32, 1))
		}},
		{"sa short accent", func() error {
			return c.YukarinSaForward(2, two, two, one, two, two, two, two, make([]float32, 2))
		}},
		{"decode zero phoneme size", func() error {
			return c.DecodeForward(1, 0, []float32{0}, []float32{0}, one, make([]float32, 256))
		}},
		{"decode short phoneme", func() error {
			return c.DecodeForward(2, 3, make([]float32, 2), make([]float32, 5), two, make([]float32, 512))
		}},
		{"decode short f0", func() error {
			return c.DecodeForward(2, 1, make([]float32, 1), make([]float32, 2), two, make([]float32, 512))
		}},
		{"decode output shorter than samples", func() error {
			return c.DecodeForward(2, 1, make([]float32, 2), make([]float32, 2), two, make([]float32, 511))
		}},
		{"decode output shorter than phoneme frames", func() error {
			return c.DecodeForward(1, 300, make([]float32, 1), make([]float32, 300), one, make([]float32, 256))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !IsContractViolation(err) {
				t.Fatalf("expected contract violation, got %v", err)
			}
		})
	}
	for _, fn := range []string{"yukarin_s_forward", "yukarin_sa_forward", "decode_forward"} {
		if f.called(fn) != 0 {
			t.Fatalf("%s reached native code", fn)
		}
	}
}
