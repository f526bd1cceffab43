package audio

import "time"

// Buffer represents decoded audio as normalized float samples in the
// inclusive range [-1.0, 1.0], one owned slice per channel. All channel
// slices have identical length. A Buffer is a plain value: it holds no
// locks and no references into platform-managed memory, so independent
// buffers are safe to use concurrently.
type Buffer struct {
	SampleRate  int         // samples per second per channel, always > 0
	ChannelData [][]float32 // one slice of FrameCount() samples per channel
}

// NewBuffer allocates a zeroed buffer with the given number of channels
// and frames per channel.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}
	return &Buffer{
		SampleRate:  sampleRate,
		ChannelData: data,
	}
}

// NumChannels returns the number of audio channels.
func (b *Buffer) NumChannels() int {
	return len(b.ChannelData)
}

// FrameCount returns the number of samples per channel.
func (b *Buffer) FrameCount() int {
	if len(b.ChannelData) == 0 {
		return 0
	}
	return len(b.ChannelData[0])
}

// Channel returns the sample slice for the given channel index.
func (b *Buffer) Channel(i int) []float32 {
	return b.ChannelData[i]
}

// Duration returns the playback duration of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.FrameCount()) / float64(b.SampleRate) * float64(time.Second))
}
