// Package config holds the encoder settings. Values come from defaults, an
// optional YAML file and SPECSTEGO_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of one encoding run.
type Config struct {
	// Message and files
	Message    string `yaml:"message"`
	HostPath   string `yaml:"host"`
	OutputPath string `yaml:"output"`
	BitDepth   int    `yaml:"bit_depth"`

	// Mixing, durations in seconds. SampleRate is the synthesis rate; with
	// NativeRate the output keeps the host rate and the message is resampled.
	SampleRate      int     `yaml:"sample_rate"`
	NativeRate      bool    `yaml:"native_rate"`
	StartOffset     float64 `yaml:"start_offset"`
	OutputDuration  float64 `yaml:"output_duration"` // 0 keeps the host length
	MessageDuration float64 `yaml:"message_duration"`
	GainDB          float64 `yaml:"gain_db"`

	// Text rendering
	FontPath   string  `yaml:"font"` // empty selects the embedded font
	FontSize   float64 `yaml:"font_size"`
	GridHeight int     `yaml:"grid_height"`
	Flip       bool    `yaml:"flip"`

	// Spectrogram and phase reconstruction
	MaxAmplitude float64 `yaml:"max_amplitude"`
	FrameSize    int     `yaml:"frame_size"`
	HopLength    int     `yaml:"hop_length"`
	Iterations   int     `yaml:"iterations"`
	Window       string  `yaml:"window"`
	Momentum     float64 `yaml:"momentum"`
	InitPhase    string  `yaml:"init_phase"`
	Seed         int64   `yaml:"seed"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the stock settings.
func Default() Config {
	return Config{
		Message:    "HIDDEN MESSAGE",
		HostPath:   "host.mp3",
		OutputPath: "out.wav",
		BitDepth:   16,

		SampleRate:      22050,
		NativeRate:      true,
		StartOffset:     5,
		OutputDuration:  30,
		MessageDuration: 15,
		GainDB:          0,

		FontPath:   "",
		FontSize:   80,
		GridHeight: 256,
		Flip:       true,

		MaxAmplitude: 12,
		FrameSize:    2048,
		HopLength:    512,
		Iterations:   80,
		Window:       "hann",
		Momentum:     0.99,
		InitPhase:    "random",
		Seed:         1,

		LogLevel: "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path, when path is
// not empty, and then with environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.Message = envStr("SPECSTEGO_MESSAGE", c.Message)
	c.HostPath = envStr("SPECSTEGO_HOST", c.HostPath)
	c.OutputPath = envStr("SPECSTEGO_OUTPUT", c.OutputPath)
	c.BitDepth = envInt("SPECSTEGO_BIT_DEPTH", c.BitDepth)

	c.SampleRate = envInt("SPECSTEGO_SAMPLE_RATE", c.SampleRate)
	c.NativeRate = envBool("SPECSTEGO_NATIVE_RATE", c.NativeRate)
	c.StartOffset = envFloat("SPECSTEGO_START_OFFSET", c.StartOffset)
	c.OutputDuration = envFloat("SPECSTEGO_OUTPUT_DURATION", c.OutputDuration)
	c.MessageDuration = envFloat("SPECSTEGO_MESSAGE_DURATION", c.MessageDuration)
	c.GainDB = envFloat("SPECSTEGO_GAIN_DB", c.GainDB)

	c.FontPath = envStr("SPECSTEGO_FONT", c.FontPath)
	c.FontSize = envFloat("SPECSTEGO_FONT_SIZE", c.FontSize)
	c.GridHeight = envInt("SPECSTEGO_GRID_HEIGHT", c.GridHeight)
	c.Flip = envBool("SPECSTEGO_FLIP", c.Flip)

	c.MaxAmplitude = envFloat("SPECSTEGO_MAX_AMPLITUDE", c.MaxAmplitude)
	c.FrameSize = envInt("SPECSTEGO_FRAME_SIZE", c.FrameSize)
	c.HopLength = envInt("SPECSTEGO_HOP_LENGTH", c.HopLength)
	c.Iterations = envInt("SPECSTEGO_ITERATIONS", c.Iterations)
	c.Window = envStr("SPECSTEGO_WINDOW", c.Window)
	c.Momentum = envFloat("SPECSTEGO_MOMENTUM", c.Momentum)
	c.InitPhase = envStr("SPECSTEGO_INIT_PHASE", c.InitPhase)
	c.Seed = int64(envInt("SPECSTEGO_SEED", int(c.Seed)))

	c.LogLevel = envStr("SPECSTEGO_LOG_LEVEL", c.LogLevel)
}

// Validate reports the first setting no run could use.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate %d", ErrInvalid, c.SampleRate)
	case c.BitDepth != 16 && c.BitDepth != 24:
		return fmt.Errorf("%w: bit_depth %d", ErrInvalid, c.BitDepth)
	case c.StartOffset < 0 || math.IsNaN(c.StartOffset):
		return fmt.Errorf("%w: start_offset %v", ErrInvalid, c.StartOffset)
	case c.OutputDuration < 0 || math.IsNaN(c.OutputDuration):
		return fmt.Errorf("%w: output_duration %v", ErrInvalid, c.OutputDuration)
	case !(c.MessageDuration > 0):
		return fmt.Errorf("%w: message_duration %v", ErrInvalid, c.MessageDuration)
	case math.IsNaN(c.GainDB) || math.IsInf(c.GainDB, 0):
		return fmt.Errorf("%w: gain_db %v", ErrInvalid, c.GainDB)
	case !(c.FontSize > 0):
		return fmt.Errorf("%w: font_size %v", ErrInvalid, c.FontSize)
	case c.GridHeight <= 0:
		return fmt.Errorf("%w: grid_height %d", ErrInvalid, c.GridHeight)
	case !(c.MaxAmplitude > 0):
		return fmt.Errorf("%w: max_amplitude %v", ErrInvalid, c.MaxAmplitude)
	case c.FrameSize < 2:
		return fmt.Errorf("%w: frame_size %d", ErrInvalid, c.FrameSize)
	case c.HopLength <= 0 || c.HopLength > c.FrameSize:
		return fmt.Errorf("%w: hop_length %d", ErrInvalid, c.HopLength)
	case c.Iterations <= 0:
		return fmt.Errorf("%w: iterations %d", ErrInvalid, c.Iterations)
	case c.Momentum < 0 || c.Momentum > 1 || math.IsNaN(c.Momentum):
		return fmt.Errorf("%w: momentum %v", ErrInvalid, c.Momentum)
	}
	switch c.Window {
	case "hann", "hamming", "rect":
	default:
		return fmt.Errorf("%w: window %q", ErrInvalid, c.Window)
	}
	switch c.InitPhase {
	case "random", "zero":
	default:
		return fmt.Errorf("%w: init_phase %q", ErrInvalid, c.InitPhase)
	}
	return nil
}

// StartTime is StartOffset as a time.Duration.
func (c Config) StartTime() time.Duration {
	return seconds(c.StartOffset)
}

// OutputLength is OutputDuration as a time.Duration.
func (c Config) OutputLength() time.Duration {
	return seconds(c.OutputDuration)
}

// MessageLength is MessageDuration as a time.Duration.
func (c Config) MessageLength() time.Duration {
	return seconds(c.MessageDuration)
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
