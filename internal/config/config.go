package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete pipeline configuration
type Config struct {
	Audio   AudioConfig   `yaml:"audio"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// AudioConfig describes the PCM format of incoming TTS payloads
type AudioConfig struct {
	SampleRate int `yaml:"sample_rate"` // Hz
	Channels   int `yaml:"channels"`
	BitDepth   int `yaml:"bit_depth"` // bits per sample
}

// OutputConfig controls how encoded WAV blobs are exported
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Extension string `yaml:"extension"` // file name label only; the container is always WAV
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Default returns the configuration matching the upstream TTS service
// contract: single-channel 16-bit PCM at 24000 Hz, exported as .wav files.
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate: 24000,
			Channels:   1,
			BitDepth:   16,
		},
		Output: OutputConfig{
			Directory: ".",
			Extension: "wav",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// Load reads and parses the configuration file, applying defaults for
// omitted fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate performs validation of the complete configuration
func (c *Config) Validate() error {
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates the audio format configuration
func (a *AudioConfig) Validate() error {
	if a.SampleRate < 1 {
		return fmt.Errorf("sample_rate must be positive, got %d", a.SampleRate)
	}

	if a.Channels < 1 {
		return fmt.Errorf("channels must be at least 1, got %d", a.Channels)
	}

	if a.BitDepth != 16 {
		return fmt.Errorf("bit_depth must be 16 (signed little-endian PCM), got %d", a.BitDepth)
	}

	return nil
}

// Validate validates the output configuration
func (o *OutputConfig) Validate() error {
	if o.Directory == "" {
		return fmt.Errorf("directory cannot be empty")
	}

	if o.Extension == "" {
		return fmt.Errorf("extension cannot be empty")
	}

	if strings.HasPrefix(o.Extension, ".") {
		return fmt.Errorf("extension must not include a leading dot, got '%s'", o.Extension)
	}

	return nil
}

// Validate validates logging configuration
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'json' or 'text', got '%s'", l.Format)
	}

	if l.Output == "" {
		return fmt.Errorf("output cannot be empty")
	}

	return nil
}
