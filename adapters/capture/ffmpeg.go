package capture

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/hassanrz/tarjuman/domain/repositories"
	"github.com/hassanrz/tarjuman/internal/audio"
)

const defaultBinary = "ffmpeg"

// FFmpegConfig holds configuration for the FFmpegRecorder adapter.
// Required fields: none, every field has a platform default.
// Optional fields:
// - BinaryPath: the ffmpeg executable name or path (default: "ffmpeg")
// - SampleRate: capture sample rate in Hz (default: 44100)
// - InputFormat: ffmpeg input format, e.g. "alsa" (default: per platform)
// - InputDevice: ffmpeg input device name (default: per platform)
type FFmpegConfig struct {
	BinaryPath  string
	SampleRate  int
	InputFormat string
	InputDevice string
}

// NewFFmpegConfigFromEnv creates an FFmpegConfig from environment
// variables.
func NewFFmpegConfigFromEnv() FFmpegConfig {
	cfg := FFmpegConfig{
		BinaryPath:  os.Getenv("TARJUMAN_FFMPEG_BINARY"),
		InputFormat: os.Getenv("TARJUMAN_CAPTURE_FORMAT"),
		InputDevice: os.Getenv("TARJUMAN_CAPTURE_DEVICE"),
	}
	return cfg
}

// FFmpegRecorder implements Recorder by driving the ffmpeg binary. The
// capture produces raw float32 samples which are peak-normalized in
// process, written as WAV, then re-normalized by a second ffmpeg pass.
type FFmpegRecorder struct {
	binary      string
	sampleRate  int
	inputFormat string
	inputDevice string
	logger      *zap.Logger
}

var _ repositories.Recorder = (*FFmpegRecorder)(nil)

// NewFFmpegRecorder creates a recorder, applying platform defaults for
// anything unset in the config.
func NewFFmpegRecorder(config FFmpegConfig, sampleRate int, logger *zap.Logger) (*FFmpegRecorder, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	binary := config.BinaryPath
	if binary == "" {
		binary = defaultBinary
	}

	inputFormat := config.InputFormat
	inputDevice := config.InputDevice
	if inputFormat == "" {
		inputFormat = defaultInputFormat()
		logger.Info("Using default capture format", zap.String("format", inputFormat))
	}
	if inputDevice == "" {
		inputDevice = defaultInputDevice()
		logger.Info("Using default capture device", zap.String("device", inputDevice))
	}

	return &FFmpegRecorder{
		binary:      binary,
		sampleRate:  sampleRate,
		inputFormat: inputFormat,
		inputDevice: inputDevice,
		logger:      logger,
	}, nil
}

// Record captures duration of mono audio, normalizes it and writes it as
// a WAV file at path. It blocks for the full capture duration.
func (r *FFmpegRecorder) Record(ctx context.Context, path string, duration time.Duration) error {
	r.logger.Info("Recording from microphone",
		zap.Duration("duration", duration),
		zap.Int("sampleRate", r.sampleRate),
		zap.String("path", path))

	samples, err := r.capture(ctx, duration)
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	if err := audio.NormalizePeak(samples); err != nil {
		return fmt.Errorf("normalization failed: %w", err)
	}

	wavData, err := audio.EncodeWAV(audio.Float32ToPCM16(samples), r.sampleRate)
	if err != nil {
		return fmt.Errorf("WAV encoding failed: %w", err)
	}
	if err := os.WriteFile(path, wavData, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := r.renormalize(ctx, path); err != nil {
		return fmt.Errorf("loudness normalization failed: %w", err)
	}

	r.logger.Info("Recording saved", zap.String("path", path), zap.Int("samples", len(samples)))
	return nil
}

// capture runs ffmpeg and reads raw little-endian float32 samples from
// its stdout.
func (r *FFmpegRecorder) capture(ctx context.Context, duration time.Duration) ([]float32, error) {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", r.inputFormat,
		"-i", r.inputDevice,
		"-t", fmt.Sprintf("%.3f", duration.Seconds()),
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", r.sampleRate),
		"-f", "f32le",
		"-",
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w (%s)", r.binary, err, bytes.TrimSpace(stderr.Bytes()))
	}

	raw := stdout.Bytes()
	samples := make([]float32, len(raw)/4)
	if err := binary.Read(bytes.NewReader(raw[:len(samples)*4]), binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("failed to parse captured samples: %w", err)
	}
	return samples, nil
}

// renormalize applies a loudness normalization pass over the saved file,
// re-exporting it in place.
func (r *FFmpegRecorder) renormalize(ctx context.Context, path string) error {
	tmp := path + ".norm.wav"
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", path,
		"-af", "loudnorm",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", r.sampleRate),
		tmp,
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%s: %w (%s)", r.binary, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return os.Rename(tmp, path)
}

func defaultInputFormat() string {
	switch runtime.GOOS {
	case "darwin":
		return "avfoundation"
	case "windows":
		return "dshow"
	default:
		return "alsa"
	}
}

func defaultInputDevice() string {
	switch runtime.GOOS {
	case "darwin":
		return ":0"
	case "windows":
		return "audio=default"
	default:
		return "default"
	}
}
