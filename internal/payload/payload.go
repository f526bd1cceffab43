package payload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrDecode indicates a malformed base64 payload: characters outside the
// base64 alphabet or an invalid padding length. The failure is deterministic
// for a given input and must never be retried.
var ErrDecode = errors.New("malformed base64 payload")

// Decode converts a base64-encoded payload into a raw byte buffer. The
// standard alphabet is accepted with or without trailing padding, and ASCII
// whitespace is stripped before decoding since TTS responses are often
// line-wrapped in transit. Malformed input fails outright; the decoder never
// silently truncates.
func Decode(input string) ([]byte, error) {
	cleaned := stripWhitespace(input)

	enc := base64.StdEncoding
	if !strings.HasSuffix(cleaned, "=") {
		enc = base64.RawStdEncoding
	}

	raw, err := enc.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return raw, nil
}

// stripWhitespace removes ASCII whitespace without copying when the input is
// already clean.
func stripWhitespace(s string) string {
	clean := true
	for i := 0; i < len(s); i++ {
		if isSpace(s[i]) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
