package audio

import (
	"testing"
	"time"
)

func TestNewBuffer(t *testing.T) {
	buf := NewBuffer(24000, 2, 480)

	if buf.NumChannels() != 2 {
		t.Errorf("Expected 2 channels, got %d", buf.NumChannels())
	}
	if buf.FrameCount() != 480 {
		t.Errorf("Expected 480 frames, got %d", buf.FrameCount())
	}
	for c := 0; c < buf.NumChannels(); c++ {
		if len(buf.Channel(c)) != 480 {
			t.Errorf("Channel %d: expected 480 samples, got %d", c, len(buf.Channel(c)))
		}
	}
}

func TestBufferFrameCountEmpty(t *testing.T) {
	var buf Buffer
	if buf.FrameCount() != 0 {
		t.Errorf("Expected 0 frames for buffer without channels, got %d", buf.FrameCount())
	}
	if buf.NumChannels() != 0 {
		t.Errorf("Expected 0 channels, got %d", buf.NumChannels())
	}
}

func TestBufferDuration(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate int
		frames     int
		want       time.Duration
	}{
		{"one second", 24000, 24000, time.Second},
		{"half second", 24000, 12000, 500 * time.Millisecond},
		{"empty", 24000, 0, 0},
		{"unset rate", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBuffer(tt.sampleRate, 1, tt.frames)
			if got := buf.Duration(); got != tt.want {
				t.Errorf("Expected duration %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBufferChannelOwnership(t *testing.T) {
	// Channel returns the owned slice, not a copy
	buf := NewBuffer(24000, 1, 4)
	buf.Channel(0)[2] = 0.25

	if buf.ChannelData[0][2] != 0.25 {
		t.Error("Channel accessor did not expose the owned slice")
	}
}
