// Package pipeline composes the transcoding stages: base64 payload decoding,
// PCM audio decoding, and WAV container encoding. It owns per-instance job
// counters and instrumentation; the stages themselves are pure and share no
// state across calls.
package pipeline
