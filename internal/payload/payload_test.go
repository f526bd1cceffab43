package payload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"math/rand"
	"testing"
)

func TestDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, size := range []int{0, 1, 2, 3, 4, 100, 4096} {
		original := make([]byte, size)
		rng.Read(original)

		// Padded form
		decoded, err := Decode(base64.StdEncoding.EncodeToString(original))
		if err != nil {
			t.Fatalf("size=%d: Decode failed on padded input: %v", size, err)
		}
		if !bytes.Equal(decoded, original) {
			t.Errorf("size=%d: padded round trip mismatch", size)
		}

		// Unpadded form
		decoded, err = Decode(base64.RawStdEncoding.EncodeToString(original))
		if err != nil {
			t.Fatalf("size=%d: Decode failed on unpadded input: %v", size, err)
		}
		if !bytes.Equal(decoded, original) {
			t.Errorf("size=%d: unpadded round trip mismatch", size)
		}
	}
}

func TestDecodeWhitespace(t *testing.T) {
	original := []byte("pulse-code modulation")
	encoded := base64.StdEncoding.EncodeToString(original)

	// Line-wrapped payload with assorted whitespace
	wrapped := " " + encoded[:8] + "\r\n" + encoded[8:16] + "\t" + encoded[16:] + "\n"

	decoded, err := Decode(wrapped)
	if err != nil {
		t.Fatalf("Decode failed on whitespace-wrapped input: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Error("Whitespace-wrapped round trip mismatch")
	}
}

func TestDecodeEmpty(t *testing.T) {
	decoded, err := Decode("")
	if err != nil {
		t.Fatalf("Decode failed on empty input: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("Expected empty output, got %d bytes", len(decoded))
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid characters", "not-valid-base64!!"},
		{"impossible length", "A"},
		{"bad padding length", "AAAA="},
		{"padding in the middle", "AA==AA=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			if err == nil {
				t.Fatal("Expected error for malformed input")
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Expected ErrDecode, got %v", err)
			}
		})
	}
}
