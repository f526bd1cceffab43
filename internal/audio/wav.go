package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// WAVHeader represents the 44-byte header structure of a PCM WAV file
type WAVHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // File size - 8 bytes
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16  // Number of channels
	SampleRate    uint32  // Sample rate
	ByteRate      uint32  // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16  // NumChannels * BitsPerSample / 8
	BitsPerSample uint16  // Bits per sample
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // Number of bytes in the data
}

const (
	headerSize    = 44
	bitsPerSample = 16
)

// EncodeWAV serializes a decoded buffer into a standards-compliant RIFF/WAVE
// container: a 44-byte header followed by interleaved little-endian signed
// 16-bit PCM data. Float samples are re-quantized with round-to-nearest and
// clamped to [-32768, 32767]; clamping is required because upstream processing
// may produce values slightly outside [-1.0, 1.0].
//
// The output is exactly 44 + FrameCount*NumChannels*2 bytes and is
// byte-identical for identical input. Equal channel lengths are a
// precondition; they are not re-validated here. The error return is only for
// writer plumbing and is nil for every well-formed buffer, including
// zero-frame buffers, which encode to a valid 44-byte container.
func EncodeWAV(buf *Buffer) ([]byte, error) {
	numChannels := buf.NumChannels()
	frames := buf.FrameCount()
	dataSize := uint32(frames * numChannels * bytesPerSample)

	header := WAVHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1, // PCM
		NumChannels:   uint16(numChannels),
		SampleRate:    uint32(buf.SampleRate),
		ByteRate:      uint32(buf.SampleRate) * uint32(numChannels) * bitsPerSample / 8,
		BlockAlign:    uint16(numChannels) * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	out := bytes.NewBuffer(make([]byte, 0, headerSize+int(dataSize)))

	if err := binary.Write(out, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}

	// Interleave channels in input order, one frame at a time.
	var sample [bytesPerSample]byte
	for f := 0; f < frames; f++ {
		for c := 0; c < numChannels; c++ {
			binary.LittleEndian.PutUint16(sample[:], uint16(quantizeSample(buf.ChannelData[c][f])))
			out.Write(sample[:])
		}
	}

	return out.Bytes(), nil
}

// quantizeSample converts a normalized float sample back to signed 16-bit PCM.
func quantizeSample(s float32) int16 {
	v := math.Round(float64(s) * 32767)
	if v > 32767 {
		v = 32767
	}
	if v < -32768 {
		v = -32768
	}
	return int16(v)
}

// DecodeWAV parses a PCM WAV container back into a decoded buffer,
// de-interleaving the sample data into per-channel float slices. Only
// uncompressed 16-bit PCM is supported.
func DecodeWAV(data []byte) (*Buffer, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("WAV data too short: need at least %d bytes, got %d", headerSize, len(data))
	}

	r := bytes.NewReader(data)
	var header WAVHeader

	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read WAV header: %w", err)
	}

	if string(header.ChunkID[:]) != "RIFF" {
		return nil, fmt.Errorf("invalid WAV file: missing RIFF header")
	}
	if string(header.Format[:]) != "WAVE" {
		return nil, fmt.Errorf("invalid WAV file: missing WAVE format")
	}
	if string(header.Subchunk1ID[:]) != "fmt " {
		return nil, fmt.Errorf("invalid WAV file: missing fmt chunk")
	}
	if string(header.Subchunk2ID[:]) != "data" {
		return nil, fmt.Errorf("invalid WAV file: missing data chunk")
	}
	if header.AudioFormat != 1 {
		return nil, fmt.Errorf("unsupported audio format: %d (only PCM is supported)", header.AudioFormat)
	}
	if header.BitsPerSample != bitsPerSample {
		return nil, fmt.Errorf("unsupported bit depth: %d (only 16-bit is supported)", header.BitsPerSample)
	}
	if header.NumChannels < 1 {
		return nil, fmt.Errorf("invalid channel count: %d", header.NumChannels)
	}
	if header.SampleRate == 0 {
		return nil, fmt.Errorf("invalid sample rate: 0")
	}

	channels := int(header.NumChannels)
	available := len(data) - headerSize
	if int(header.Subchunk2Size) > available {
		return nil, fmt.Errorf("truncated WAV data: header declares %d bytes, %d available",
			header.Subchunk2Size, available)
	}

	frames := int(header.Subchunk2Size) / (channels * bytesPerSample)

	buf := NewBuffer(int(header.SampleRate), channels, frames)
	for f := 0; f < frames; f++ {
		base := headerSize + f*channels*bytesPerSample
		for c := 0; c < channels; c++ {
			s := int16(binary.LittleEndian.Uint16(data[base+c*bytesPerSample:]))
			buf.ChannelData[c][f] = float32(s) / 32768.0
		}
	}

	return buf, nil
}

// ValidateWAV validates the WAV container structure without decoding the
// audio data.
func ValidateWAV(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("WAV data too short: need at least %d bytes, got %d", headerSize, len(data))
	}

	if string(data[0:4]) != "RIFF" {
		return fmt.Errorf("invalid WAV file: missing RIFF header")
	}
	if string(data[8:12]) != "WAVE" {
		return fmt.Errorf("invalid WAV file: missing WAVE format")
	}
	if string(data[12:16]) != "fmt " {
		return fmt.Errorf("invalid WAV file: missing fmt chunk")
	}
	if string(data[36:40]) != "data" {
		return fmt.Errorf("invalid WAV file: missing data chunk")
	}

	return nil
}

// Info holds basic metadata about a WAV container.
type Info struct {
	SampleRate    uint32  `json:"sample_rate"`
	Channels      uint16  `json:"channels"`
	BitsPerSample uint16  `json:"bits_per_sample"`
	Duration      float64 `json:"duration_seconds"`
	DataSize      uint32  `json:"data_size_bytes"`
	FrameCount    uint32  `json:"frame_count"`
}

// GetWAVInfo extracts metadata from a WAV container.
func GetWAVInfo(data []byte) (*Info, error) {
	if err := ValidateWAV(data); err != nil {
		return nil, err
	}

	r := bytes.NewReader(data)
	var header WAVHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read WAV header: %w", err)
	}

	if header.NumChannels == 0 || header.SampleRate == 0 {
		return nil, fmt.Errorf("invalid WAV format fields: channels=%d rate=%d",
			header.NumChannels, header.SampleRate)
	}
	if header.BitsPerSample < 8 || header.BitsPerSample%8 != 0 {
		return nil, fmt.Errorf("invalid bits per sample: %d", header.BitsPerSample)
	}

	frames := header.Subchunk2Size / (uint32(header.NumChannels) * uint32(header.BitsPerSample) / 8)
	duration := float64(frames) / float64(header.SampleRate)

	return &Info{
		SampleRate:    header.SampleRate,
		Channels:      header.NumChannels,
		BitsPerSample: header.BitsPerSample,
		Duration:      duration,
		DataSize:      header.Subchunk2Size,
		FrameCount:    frames,
	}, nil
}
