package capture

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hassanrz/tarjuman/domain/repositories"
	"github.com/hassanrz/tarjuman/internal/audio"
)

// MockRecorder is a placeholder recorder that writes a canned waveform
// instead of touching the microphone.
type MockRecorder struct {
	logger *zap.Logger

	// Calls counts how many times Record was invoked.
	Calls int
	// Err, when set, is returned by Record instead of writing a file.
	Err error
	// SampleRate of the canned waveform.
	SampleRate int
	// Samples is the canned waveform; a short ramp is used when empty.
	Samples []int16
}

var _ repositories.Recorder = (*MockRecorder)(nil)

// NewMockRecorder creates a mock recorder writing a short canned waveform.
func NewMockRecorder(logger *zap.Logger) *MockRecorder {
	return &MockRecorder{
		logger:     logger,
		SampleRate: 16000,
	}
}

// Record implements repositories.Recorder.
func (m *MockRecorder) Record(ctx context.Context, path string, duration time.Duration) error {
	m.Calls++
	m.logger.Info("Mock recording",
		zap.String("path", path),
		zap.Duration("duration", duration))

	if m.Err != nil {
		return m.Err
	}

	samples := m.Samples
	if len(samples) == 0 {
		samples = make([]int16, m.SampleRate/10)
		for i := range samples {
			samples[i] = int16(i % 2048)
		}
	}

	wavData, err := audio.EncodeWAV(samples, m.SampleRate)
	if err != nil {
		return err
	}
	return os.WriteFile(path, wavData, 0o644)
}
