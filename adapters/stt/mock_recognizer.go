package stt

import (
	"context"

	"go.uber.org/zap"

	"github.com/hassanrz/tarjuman/domain/repositories"
)

// MockRecognizer is a placeholder implementation for speech recognition.
type MockRecognizer struct {
	logger *zap.Logger

	// Calls counts how many times Transcribe was invoked.
	Calls int
	// Result is returned after the shared post-processing pass.
	Result string
	// Err, when set, is returned instead of a result.
	Err error
}

var _ repositories.SpeechToText = (*MockRecognizer)(nil)

// NewMockRecognizer creates a new mock speech-to-text service.
func NewMockRecognizer(logger *zap.Logger, result string) *MockRecognizer {
	return &MockRecognizer{logger: logger, Result: result}
}

// Transcribe implements repositories.SpeechToText.
func (m *MockRecognizer) Transcribe(ctx context.Context, audioPath string) (string, error) {
	m.Calls++
	m.logger.Info("Mock transcription", zap.String("path", audioPath))

	if m.Err != nil {
		return "", m.Err
	}
	return postprocess(m.Result), nil
}
