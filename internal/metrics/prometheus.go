package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the transcoding pipeline
type Metrics struct {
	// Payload metrics
	PayloadsReceived prometheus.Counter
	DecodeErrors     prometheus.Counter
	FormatErrors     prometheus.Counter

	// PCM decoding metrics
	BuffersDecoded prometheus.Counter
	FramesDecoded  prometheus.Counter
	BytesDiscarded prometheus.Counter

	// WAV encoding metrics
	BlobsEncoded prometheus.Counter
	BytesEncoded prometheus.Counter

	// Timing metrics
	StageDuration     *prometheus.HistogramVec
	TranscodeDuration prometheus.Histogram
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		PayloadsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transcode_payloads_received_total",
			Help: "Total number of base64 TTS payloads received",
		}),
		DecodeErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transcode_decode_errors_total",
			Help: "Total number of malformed base64 payloads rejected",
		}),
		FormatErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transcode_format_errors_total",
			Help: "Total number of invalid PCM format parameter errors",
		}),
		BuffersDecoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transcode_buffers_decoded_total",
			Help: "Total number of audio buffers decoded from PCM payloads",
		}),
		FramesDecoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transcode_frames_decoded_total",
			Help: "Total number of PCM frames decoded",
		}),
		BytesDiscarded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transcode_bytes_discarded_total",
			Help: "Total number of trailing bytes dropped from incomplete frames",
		}),
		BlobsEncoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transcode_wav_blobs_encoded_total",
			Help: "Total number of WAV blobs encoded",
		}),
		BytesEncoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transcode_wav_bytes_encoded_total",
			Help: "Total number of WAV bytes produced",
		}),
		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "transcode_stage_duration_seconds",
			Help:    "Time spent in each pipeline stage",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 16),
		}, []string{"stage"}),
		TranscodeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "transcode_duration_seconds",
			Help:    "End-to-end transcode time per payload",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
	}
}

// RecordPayloadReceived increments the payloads received counter
func (m *Metrics) RecordPayloadReceived() {
	m.PayloadsReceived.Inc()
}

// RecordDecodeError increments the base64 decode errors counter
func (m *Metrics) RecordDecodeError() {
	m.DecodeErrors.Inc()
}

// RecordFormatError increments the invalid format parameter errors counter
func (m *Metrics) RecordFormatError() {
	m.FormatErrors.Inc()
}

// RecordBufferDecoded records a decoded audio buffer and the bytes dropped
// from its trailing incomplete frame
func (m *Metrics) RecordBufferDecoded(frames, discardedBytes int) {
	m.BuffersDecoded.Inc()
	m.FramesDecoded.Add(float64(frames))
	m.BytesDiscarded.Add(float64(discardedBytes))
}

// RecordBlobEncoded records an encoded WAV blob and its size
func (m *Metrics) RecordBlobEncoded(sizeBytes int) {
	m.BlobsEncoded.Inc()
	m.BytesEncoded.Add(float64(sizeBytes))
}

// ObserveStage records the duration of a single pipeline stage
func (m *Metrics) ObserveStage(stage string, seconds float64) {
	m.StageDuration.WithLabelValues(stage).Observe(seconds)
}

// ObserveTranscode records the end-to-end duration of a transcode job
func (m *Metrics) ObserveTranscode(seconds float64) {
	m.TranscodeDuration.Observe(seconds)
}
