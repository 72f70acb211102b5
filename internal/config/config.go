package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultAudioPath     = "urdu_audio.wav"
	defaultRecordSeconds = 7
	defaultSampleRate    = 44100
	defaultSpeechRate    = 150

	// nominalSpeechRate is the words-per-minute value that maps to 1.0x
	// playback speed.
	nominalSpeechRate = 150
)

// Backend identifiers for the recognizer and translator adapters.
const (
	STTBackendWhisper = "whisper"
	STTBackendGoogle  = "google"

	MTBackendMarian = "marian"
	MTBackendGemini = "gemini"
)

// Config holds the pipeline-level settings. Adapter-specific settings
// (API keys, endpoints, voice parameters) live with their adapters.
type Config struct {
	// AudioPath is where the captured recording is written. The file is
	// removed only after a fully successful run.
	AudioPath string
	// RecordDuration is the fixed length of one microphone capture.
	RecordDuration time.Duration
	// SampleRate is the capture sample rate in Hz.
	SampleRate int
	// FFmpegDir, when set, is prepended to PATH so the ffmpeg binary used
	// for capture and normalization can be found.
	FFmpegDir string
	// STTBackend selects the speech recognizer adapter.
	STTBackend string
	// MTBackend selects the translator adapter.
	MTBackend string
	// SpeechRate is the speaking rate in words per minute.
	SpeechRate int
}

// Load builds a Config from environment variables, applying defaults for
// anything unset.
func Load() Config {
	cfg := Config{
		AudioPath:      defaultAudioPath,
		RecordDuration: defaultRecordSeconds * time.Second,
		SampleRate:     defaultSampleRate,
		FFmpegDir:      os.Getenv("TARJUMAN_FFMPEG_DIR"),
		STTBackend:     STTBackendWhisper,
		MTBackend:      MTBackendMarian,
		SpeechRate:     defaultSpeechRate,
	}

	if path := os.Getenv("TARJUMAN_AUDIO_PATH"); path != "" {
		cfg.AudioPath = path
	}
	if secondsStr := os.Getenv("TARJUMAN_RECORD_SECONDS"); secondsStr != "" {
		if seconds, err := strconv.Atoi(secondsStr); err == nil && seconds > 0 {
			cfg.RecordDuration = time.Duration(seconds) * time.Second
		}
	}
	if rateStr := os.Getenv("TARJUMAN_SAMPLE_RATE"); rateStr != "" {
		if rate, err := strconv.Atoi(rateStr); err == nil && rate > 0 {
			cfg.SampleRate = rate
		}
	}
	if backend := os.Getenv("TARJUMAN_STT_BACKEND"); backend != "" {
		cfg.STTBackend = backend
	}
	if backend := os.Getenv("TARJUMAN_MT_BACKEND"); backend != "" {
		cfg.MTBackend = backend
	}
	if rateStr := os.Getenv("TARJUMAN_SPEECH_RATE"); rateStr != "" {
		if rate, err := strconv.Atoi(rateStr); err == nil && rate > 0 {
			cfg.SpeechRate = rate
		}
	}

	return cfg
}

// Validate checks that the configuration is usable.
func Validate(cfg Config) error {
	if cfg.AudioPath == "" {
		return fmt.Errorf("audio path is required")
	}
	if cfg.RecordDuration <= 0 {
		return fmt.Errorf("record duration must be positive, got %s", cfg.RecordDuration)
	}
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", cfg.SampleRate)
	}
	switch cfg.STTBackend {
	case STTBackendWhisper, STTBackendGoogle:
	default:
		return fmt.Errorf("unknown STT backend: %s", cfg.STTBackend)
	}
	switch cfg.MTBackend {
	case MTBackendMarian, MTBackendGemini:
	default:
		return fmt.Errorf("unknown MT backend: %s", cfg.MTBackend)
	}
	if cfg.SpeechRate <= 0 {
		return fmt.Errorf("speech rate must be positive, got %d", cfg.SpeechRate)
	}
	return nil
}

// SpeedRatio converts the words-per-minute speech rate into a playback
// speed ratio relative to the nominal rate.
func (c Config) SpeedRatio() float64 {
	return float64(c.SpeechRate) / nominalSpeechRate
}

// InjectToolPath prepends FFmpegDir to the process PATH so external audio
// tooling resolves without a hard-coded system path.
func (c Config) InjectToolPath() error {
	if c.FFmpegDir == "" {
		return nil
	}
	path := os.Getenv("PATH")
	return os.Setenv("PATH", c.FFmpegDir+string(os.PathListSeparator)+path)
}
