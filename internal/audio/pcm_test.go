package audio

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestDecodePCM16(t *testing.T) {
	// Two little-endian int16 values: 16384 and -16384
	data := []byte{0x00, 0x40, 0x00, 0xC0}

	buf, err := DecodePCM16(data, 24000, 1)
	if err != nil {
		t.Fatalf("DecodePCM16 failed: %v", err)
	}

	if buf.SampleRate != 24000 {
		t.Errorf("Expected sample rate 24000, got %d", buf.SampleRate)
	}
	if buf.NumChannels() != 1 {
		t.Errorf("Expected 1 channel, got %d", buf.NumChannels())
	}
	if buf.FrameCount() != 2 {
		t.Fatalf("Expected 2 frames, got %d", buf.FrameCount())
	}

	want := []float32{0.5, -0.5}
	for i, w := range want {
		if got := buf.Channel(0)[i]; got != w {
			t.Errorf("Sample %d: expected %f, got %f", i, w, got)
		}
	}
}

func TestDecodePCM16StereoInterleaving(t *testing.T) {
	// Interleaved frames: (100, -100), (200, -200)
	samples := []int16{100, -100, 200, -200}
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}

	buf, err := DecodePCM16(data, 24000, 2)
	if err != nil {
		t.Fatalf("DecodePCM16 failed: %v", err)
	}

	if buf.NumChannels() != 2 {
		t.Fatalf("Expected 2 channels, got %d", buf.NumChannels())
	}
	if buf.FrameCount() != 2 {
		t.Fatalf("Expected 2 frames, got %d", buf.FrameCount())
	}

	left := []float32{100.0 / 32768.0, 200.0 / 32768.0}
	right := []float32{-100.0 / 32768.0, -200.0 / 32768.0}
	for i := range left {
		if got := buf.Channel(0)[i]; got != left[i] {
			t.Errorf("Left frame %d: expected %f, got %f", i, left[i], got)
		}
		if got := buf.Channel(1)[i]; got != right[i] {
			t.Errorf("Right frame %d: expected %f, got %f", i, right[i], got)
		}
	}
}

func TestDecodePCM16Normalization(t *testing.T) {
	// Signed extremes map to -1.0 and just under 1.0
	extremes := []int16{-32768, 32767}
	data := make([]byte, 4)
	for i, s := range extremes {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}

	buf, err := DecodePCM16(data, 8000, 1)
	if err != nil {
		t.Fatalf("DecodePCM16 failed: %v", err)
	}

	if got := buf.Channel(0)[0]; got != -1.0 {
		t.Errorf("Expected -1.0 for minimum sample, got %f", got)
	}
	if got := buf.Channel(0)[1]; got != 32767.0/32768.0 {
		t.Errorf("Expected %f for maximum sample, got %f", 32767.0/32768.0, got)
	}
}

func TestDecodePCM16Truncation(t *testing.T) {
	// A stereo buffer of length 4k+1 must yield exactly k frames with the
	// trailing odd byte dropped.
	for _, k := range []int{0, 1, 3, 100} {
		data := make([]byte, 4*k+1)

		buf, err := DecodePCM16(data, 24000, 2)
		if err != nil {
			t.Fatalf("k=%d: DecodePCM16 failed: %v", k, err)
		}

		if buf.FrameCount() != k {
			t.Errorf("k=%d: expected %d frames, got %d", k, k, buf.FrameCount())
		}
		if used := buf.FrameCount() * buf.NumChannels() * 2; used > len(data) {
			t.Errorf("k=%d: consumed %d bytes from a %d byte input", k, used, len(data))
		}
	}

	// Mono input with a trailing odd byte drops at most channels*2-1 bytes.
	buf, err := DecodePCM16([]byte{0x01, 0x02, 0x03}, 24000, 1)
	if err != nil {
		t.Fatalf("DecodePCM16 failed: %v", err)
	}
	if buf.FrameCount() != 1 {
		t.Errorf("Expected 1 frame from 3 mono bytes, got %d", buf.FrameCount())
	}
}

func TestDecodePCM16Empty(t *testing.T) {
	buf, err := DecodePCM16(nil, 24000, 1)
	if err != nil {
		t.Fatalf("Empty input must not fail: %v", err)
	}
	if buf.FrameCount() != 0 {
		t.Errorf("Expected zero frames, got %d", buf.FrameCount())
	}
	if buf.NumChannels() != 1 {
		t.Errorf("Expected 1 channel, got %d", buf.NumChannels())
	}
}

func TestDecodePCM16InvalidParams(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate int
		channels   int
	}{
		{"zero sample rate", 0, 1},
		{"negative sample rate", -24000, 1},
		{"zero channels", 24000, 0},
		{"negative channels", 24000, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePCM16([]byte{0x00, 0x01}, tt.sampleRate, tt.channels)
			if err == nil {
				t.Fatal("Expected error for invalid parameters")
			}
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Expected ErrInvalidFormat, got %v", err)
			}
		})
	}
}
