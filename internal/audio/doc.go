// Package audio handles decoded audio buffers and PCM format conversion.
// It implements decoding of raw little-endian 16-bit PCM byte streams into
// normalized per-channel float sample buffers, and encoding of those buffers
// into self-contained RIFF/WAVE containers for playback and export.
package audio
