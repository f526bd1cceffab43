package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arman-ali-khan/text-to-voice-bangla/internal/audio"
	"github.com/arman-ali-khan/text-to-voice-bangla/internal/metrics"
	"github.com/arman-ali-khan/text-to-voice-bangla/internal/payload"
)

// Config describes the PCM format of incoming payloads. The format is a
// fixed contract with the upstream TTS service; a payload with a different
// rate or channel count requires the caller to supply matching parameters
// explicitly.
type Config struct {
	SampleRate int
	Channels   int
}

// Transcoder runs TTS payloads through the decode and encode stages.
// Decoding failures are deterministic for a given input, so the transcoder
// surfaces them immediately and never retries.
type Transcoder struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	// Statistics
	jobs           uint64
	succeeded      uint64
	decodeErrors   uint64
	formatErrors   uint64
	framesDecoded  uint64
	bytesDiscarded uint64
	bytesEncoded   uint64

	mu sync.RWMutex
}

// Result represents a completed transcode job
type Result struct {
	JobID      string        `json:"job_id"`
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"`
	FrameCount int           `json:"frame_count"`
	Duration   time.Duration `json:"duration"`
	Discarded  int           `json:"discarded_bytes"` // trailing bytes that formed no complete frame
	Buffer     *audio.Buffer `json:"-"`               // decoded audio, for playback
	WAV        []byte        `json:"-"`               // encoded container, for export
}

// Stats represents transcoder statistics
type Stats struct {
	Jobs           uint64 `json:"jobs"`
	Succeeded      uint64 `json:"succeeded"`
	DecodeErrors   uint64 `json:"decode_errors"`
	FormatErrors   uint64 `json:"format_errors"`
	FramesDecoded  uint64 `json:"frames_decoded"`
	BytesDiscarded uint64 `json:"bytes_discarded"`
	BytesEncoded   uint64 `json:"bytes_encoded"`
}

// New creates a transcoder for payloads in the given PCM format.
func New(cfg Config, logger *slog.Logger, m *metrics.Metrics) (*Transcoder, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", audio.ErrInvalidFormat, cfg.SampleRate)
	}
	if cfg.Channels < 1 {
		return nil, fmt.Errorf("%w: channel count must be at least 1, got %d", audio.ErrInvalidFormat, cfg.Channels)
	}

	return &Transcoder{
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "transcoder")),
		metrics: m,
	}, nil
}

// Decode converts a base64 TTS payload into a decoded audio buffer. The
// returned buffer is independently owned and may be handed to a playback
// facility while the same payload is encoded for export.
func (t *Transcoder) Decode(input string) (*audio.Buffer, error) {
	t.metrics.RecordPayloadReceived()
	t.mu.Lock()
	t.jobs++
	t.mu.Unlock()

	start := time.Now()
	raw, err := payload.Decode(input)
	t.metrics.ObserveStage("base64", time.Since(start).Seconds())
	if err != nil {
		t.metrics.RecordDecodeError()
		t.recordFailure(err)
		return nil, err
	}

	start = time.Now()
	buf, err := audio.DecodePCM16(raw, t.cfg.SampleRate, t.cfg.Channels)
	t.metrics.ObserveStage("pcm", time.Since(start).Seconds())
	if err != nil {
		t.metrics.RecordFormatError()
		t.recordFailure(err)
		return nil, err
	}

	discarded := len(raw) - buf.FrameCount()*buf.NumChannels()*2
	t.metrics.RecordBufferDecoded(buf.FrameCount(), discarded)

	t.mu.Lock()
	t.succeeded++
	t.framesDecoded += uint64(buf.FrameCount())
	t.bytesDiscarded += uint64(discarded)
	t.mu.Unlock()

	return buf, nil
}

// Transcode runs a base64 TTS payload through the full pipeline and returns
// the decoded buffer together with its WAV container.
func (t *Transcoder) Transcode(input string) (*Result, error) {
	jobID := uuid.NewString()
	start := time.Now()

	t.metrics.RecordPayloadReceived()
	t.mu.Lock()
	t.jobs++
	t.mu.Unlock()

	t.logger.Debug("transcode started",
		slog.String("job_id", jobID),
		slog.Int("payload_len", len(input)),
	)

	b64Start := time.Now()
	raw, err := payload.Decode(input)
	if err != nil {
		t.metrics.RecordDecodeError()
		t.recordFailure(err)
		t.logger.Warn("payload decode failed",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	t.metrics.ObserveStage("base64", time.Since(b64Start).Seconds())

	pcmStart := time.Now()
	buf, err := audio.DecodePCM16(raw, t.cfg.SampleRate, t.cfg.Channels)
	if err != nil {
		t.metrics.RecordFormatError()
		t.recordFailure(err)
		t.logger.Warn("pcm decode failed",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	t.metrics.ObserveStage("pcm", time.Since(pcmStart).Seconds())

	discarded := len(raw) - buf.FrameCount()*buf.NumChannels()*2
	t.metrics.RecordBufferDecoded(buf.FrameCount(), discarded)

	wavStart := time.Now()
	blob, err := audio.EncodeWAV(buf)
	if err != nil {
		t.recordFailure(err)
		return nil, fmt.Errorf("wav encode: %w", err)
	}
	t.metrics.ObserveStage("wav", time.Since(wavStart).Seconds())
	t.metrics.RecordBlobEncoded(len(blob))

	elapsed := time.Since(start)
	t.metrics.ObserveTranscode(elapsed.Seconds())

	t.mu.Lock()
	t.succeeded++
	t.framesDecoded += uint64(buf.FrameCount())
	t.bytesDiscarded += uint64(discarded)
	t.bytesEncoded += uint64(len(blob))
	t.mu.Unlock()

	t.logger.Info("transcode complete",
		slog.String("job_id", jobID),
		slog.Int("frames", buf.FrameCount()),
		slog.Int("channels", buf.NumChannels()),
		slog.Int("discarded_bytes", discarded),
		slog.Int("wav_bytes", len(blob)),
		slog.Duration("audio_duration", buf.Duration()),
		slog.Duration("elapsed", elapsed),
	)

	return &Result{
		JobID:      jobID,
		SampleRate: buf.SampleRate,
		Channels:   buf.NumChannels(),
		FrameCount: buf.FrameCount(),
		Duration:   buf.Duration(),
		Discarded:  discarded,
		Buffer:     buf,
		WAV:        blob,
	}, nil
}

// Stats returns a snapshot of the transcoder counters.
func (t *Transcoder) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return Stats{
		Jobs:           t.jobs,
		Succeeded:      t.succeeded,
		DecodeErrors:   t.decodeErrors,
		FormatErrors:   t.formatErrors,
		FramesDecoded:  t.framesDecoded,
		BytesDiscarded: t.bytesDiscarded,
		BytesEncoded:   t.bytesEncoded,
	}
}

// recordFailure classifies a stage error into the failure counters.
func (t *Transcoder) recordFailure(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case errors.Is(err, payload.ErrDecode):
		t.decodeErrors++
	case errors.Is(err, audio.ErrInvalidFormat):
		t.formatErrors++
	}
}
