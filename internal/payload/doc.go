// Package payload implements decoding of base64-encoded TTS response
// payloads into raw PCM byte buffers. It handles the standard base64
// alphabet with optional padding and tolerates incidental whitespace.
package payload
