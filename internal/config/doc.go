// Package config provides configuration loading and validation for the
// transcoding pipeline. It handles YAML-based configuration with struct
// validation and supplies the default format contract of the upstream TTS
// service (24000 Hz, mono, 16-bit PCM).
package config
