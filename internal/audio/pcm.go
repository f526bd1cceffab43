package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidFormat indicates invalid PCM format parameters (sample rate or
// channel count). Decoding failures are deterministic for a given input and
// must never be retried.
var ErrInvalidFormat = errors.New("invalid audio format")

const bytesPerSample = 2 // 16-bit PCM

// DecodePCM16 interprets data as interleaved little-endian signed 16-bit PCM
// samples and produces a Buffer with one normalized float slice per channel.
// Samples are normalized by dividing by 32768, mapping [-32768, 32767] to
// approximately [-1.0, 1.0).
//
// The byte layout is a fixed contract with the upstream TTS service, not
// auto-detected. Trailing bytes that do not form a complete interleaved frame
// are dropped without error, so at most channels*2-1 bytes are discarded.
// Empty input is not an error and yields a zero-frame buffer.
func DecodePCM16(data []byte, sampleRate, channels int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidFormat, sampleRate)
	}
	if channels < 1 {
		return nil, fmt.Errorf("%w: channel count must be at least 1, got %d", ErrInvalidFormat, channels)
	}

	frames := len(data) / (channels * bytesPerSample)

	buf := NewBuffer(sampleRate, channels, frames)
	for f := 0; f < frames; f++ {
		base := f * channels * bytesPerSample
		for c := 0; c < channels; c++ {
			s := int16(binary.LittleEndian.Uint16(data[base+c*bytesPerSample:]))
			buf.ChannelData[c][f] = float32(s) / 32768.0
		}
	}

	return buf, nil
}
