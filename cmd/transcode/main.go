package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arman-ali-khan/text-to-voice-bangla/internal/audio"
	"github.com/arman-ali-khan/text-to-voice-bangla/internal/config"
	"github.com/arman-ali-khan/text-to-voice-bangla/internal/metrics"
	"github.com/arman-ali-khan/text-to-voice-bangla/internal/pipeline"
)

const (
	serviceName    = "tts-transcode"
	serviceVersion = "1.0.0"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file (built-in defaults when empty)")
	outDir := flag.String("out", "", "Output directory (overrides configuration)")
	metricsAddr := flag.String("metrics", "", "Optional listen address for Prometheus metrics, e.g. :9090")
	flag.Parse()

	// Load configuration
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *outDir != "" {
		cfg.Output.Directory = *outDir
	}

	// Initialize logger based on configuration
	logger := initLogger(cfg.Logging)

	logger.Info("Transcoder starting",
		slog.String("service", serviceName),
		slog.String("version", serviceVersion),
		slog.Int("sample_rate", cfg.Audio.SampleRate),
		slog.Int("channels", cfg.Audio.Channels),
		slog.String("output_dir", cfg.Output.Directory),
		slog.String("output_extension", cfg.Output.Extension),
	)

	// The container written is always WAV regardless of the configured label.
	if cfg.Output.Extension != "wav" {
		logger.Warn("Configured extension does not match the WAV container; players may misidentify the file",
			slog.String("extension", cfg.Output.Extension),
		)
	}

	// Initialize Prometheus metrics
	appMetrics := metrics.NewMetrics()
	if *metricsAddr != "" {
		startMetricsServer(*metricsAddr, logger)
	}

	transcoder, err := pipeline.New(pipeline.Config{
		SampleRate: cfg.Audio.SampleRate,
		Channels:   cfg.Audio.Channels,
	}, logger, appMetrics)
	if err != nil {
		logger.Error("Failed to create transcoder", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Each argument is a file containing one base64 payload; "-" reads stdin.
	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	failed := 0
	for _, input := range inputs {
		if err := transcodeOne(transcoder, cfg, logger, input); err != nil {
			logger.Error("Transcode failed",
				slog.String("input", input),
				slog.String("error", err.Error()),
			)
			failed++
		}
	}

	stats := transcoder.Stats()
	logger.Info("Final transcoder statistics",
		slog.Uint64("jobs", stats.Jobs),
		slog.Uint64("succeeded", stats.Succeeded),
		slog.Uint64("decode_errors", stats.DecodeErrors),
		slog.Uint64("format_errors", stats.FormatErrors),
		slog.Uint64("frames_decoded", stats.FramesDecoded),
		slog.Uint64("bytes_encoded", stats.BytesEncoded),
	)

	if failed > 0 {
		os.Exit(1)
	}
}

// transcodeOne reads a single base64 payload, transcodes it, and writes the
// WAV blob next to the configured output directory and extension.
func transcodeOne(transcoder *pipeline.Transcoder, cfg *config.Config, logger *slog.Logger, input string) error {
	var (
		data []byte
		err  error
		name = "payload"
	)

	if input == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read payload file: %w", err)
		}
		name = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	result, err := transcoder.Transcode(string(data))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	outPath := filepath.Join(cfg.Output.Directory, name+"."+cfg.Output.Extension)
	if err := os.WriteFile(outPath, result.WAV, 0644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	info, err := audio.GetWAVInfo(result.WAV)
	if err != nil {
		return fmt.Errorf("inspect encoded output: %w", err)
	}

	logger.Info("Output written",
		slog.String("path", outPath),
		slog.String("job_id", result.JobID),
		slog.Uint64("frames", uint64(info.FrameCount)),
		slog.Float64("duration_seconds", info.Duration),
		slog.Int("size_bytes", len(result.WAV)),
	)

	return nil
}

// startMetricsServer exposes Prometheus metrics for the duration of the run.
func startMetricsServer(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Starting metrics server", slog.String("address", addr))

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server error", slog.String("error", err.Error()))
		}
	}()
}

// initLogger creates and configures the structured logger based on configuration
func initLogger(cfg config.LoggingConfig) *slog.Logger {
	// Parse log level
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	// Determine output destination
	var output *os.File
	switch cfg.Output {
	case "stderr":
		output = os.Stderr
	case "stdout", "":
		output = os.Stdout
	default:
		// Assume it's a file path
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v, falling back to stdout\n", cfg.Output, err)
			output = os.Stdout
		} else {
			output = file
		}
	}

	// Create handler based on format
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
