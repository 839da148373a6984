package voicevox

import (
	"fmt"
	"math"
	"time"
)

// DecodeSamplesPerFrame is the number of 24 kHz output samples DecodeForward
// writes per input frame.
const DecodeSamplesPerFrame = 256

// YukarinSForward predicts a duration per phoneme. phonemeList, speakerID and
// output must each hold at least length elements.
func (c *Core) YukarinSForward(length int, phonemeList, speakerID []int64, output []float32) error {
	const fn = "yukarin_s_forward"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(fn, StateInitialized); err != nil {
		return err
	}
	n, err := checkLength(fn, "length", length)
	if err != nil {
		return err
	}
	need := int64(length)
	if err := firstErr(
		checkBuf(fn, "phoneme_list", phonemeList, need),
		checkBuf(fn, "speaker_id", speakerID, need),
		checkBuf(fn, "output", output, need),
	); err != nil {
		return err
	}
	start := time.Now()
	ok := c.fn.YukarinSForward(n, &phonemeList[0], &speakerID[0], &output[0])
	c.observe(fn, start, ok)
	if !ok {
		return c.failed(fn)
	}
	return nil
}

// YukarinSaForward predicts a pitch value per mora from vowel and consonant
// ids and accent markers. Every slice must hold at least length elements.
func (c *Core) YukarinSaForward(length int, vowelPhonemeList, consonantPhonemeList, startAccentList, endAccentList, startAccentPhraseList, endAccentPhraseList, speakerID []int64, output []float32) error {
	const fn = "yukarin_sa_forward"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(fn, StateInitialized); err != nil {
		return err
	}
	n, err := checkLength(fn, "length", length)
	if err != nil {
		return err
	}
	need := int64(length)
	if err := firstErr(
		checkBuf(fn, "vowel_phoneme_list", vowelPhonemeList, need),
		checkBuf(fn, "consonant_phoneme_list", consonantPhonemeList, need),
		checkBuf(fn, "start_accent_list", startAccentList, need),
		checkBuf(fn, "end_accent_list", endAccentList, need),
		checkBuf(fn, "start_accent_phrase_list", startAccentPhraseList, need),
		checkBuf(fn, "end_accent_phrase_list", endAccentPhraseList, need),
		checkBuf(fn, "speaker_id", speakerID, need),
		checkBuf(fn, "output", output, need),
	); err != nil {
		return err
	}
	start := time.Now()
	ok := c.fn.YukarinSaForward(n,
		&vowelPhonemeList[0], &consonantPhonemeList[0],
		&startAccentList[0], &endAccentList[0],
		&startAccentPhraseList[0], &endAccentPhraseList[0],
		&speakerID[0], &output[0])
	c.observe(fn, start, ok)
	if !ok {
		return c.failed(fn)
	}
	return nil
}

// DecodeForward renders audio from per-frame pitch and phoneme frames.
// f0 and speakerID need length elements, phoneme needs length*phonemeSize and
// output needs the larger of length*phonemeSize and
// length*DecodeSamplesPerFrame.
func (c *Core) DecodeForward(length, phonemeSize int, f0, phoneme []float32, speakerID []int64, output []float32) error {
	const fn = "decode_forward"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(fn, StateInitialized); err != nil {
		return err
	}
	n, err := checkLength(fn, "length", length)
	if err != nil {
		return err
	}
	ps, err := checkLength(fn, "phoneme_size", phonemeSize)
	if err != nil {
		return err
	}
	frames := int64(length)
	phonemes := frames * int64(phonemeSize)
	if err := firstErr(
		checkBuf(fn, "f0", f0, frames),
		checkBuf(fn, "phoneme", phoneme, phonemes),
		checkBuf(fn, "speaker_id", speakerID, frames),
		checkBuf(fn, "output", output, max(phonemes, frames*DecodeSamplesPerFrame)),
	); err != nil {
		return err
	}
	start := time.Now()
	ok := c.fn.DecodeForward(n, ps, &f0[0], &phoneme[0], &speakerID[0], &output[0])
	c.observe(fn, start, ok)
	if !ok {
		return c.failed(fn)
	}
	return nil
}

// DecodeOutputLen returns the output length DecodeForward needs for length
// frames of phonemeSize-wide phoneme vectors.
func DecodeOutputLen(length, phonemeSize int) int {
	return length * max(phonemeSize, DecodeSamplesPerFrame)
}

func checkLength(fn, name string, v int) (int32, error) {
	if v <= 0 {
		return 0, ErrContractViolation(fn, fmt.Sprintf("%s must be positive, got %d", name, v))
	}
	if int64(v) > math.MaxInt32 {
		return 0, ErrContractViolation(fn, fmt.Sprintf("%s %d exceeds int32", name, v))
	}
	return int32(v), nil
}

func checkBuf[T int64 | float32](fn, name string, buf []T, need int64) error {
	if int64(len(buf)) < need {
		return ErrContractViolation(fn, fmt.Sprintf("%s has %d elements, need %d", name, len(buf), need))
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
