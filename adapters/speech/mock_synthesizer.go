package speech

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hassanrz/tarjuman/domain/repositories"
)

// MockSynthesizer is a placeholder implementation for speech synthesis.
type MockSynthesizer struct {
	logger *zap.Logger

	// Calls counts how many times Speak was invoked.
	Calls int
	// Spoken records every text passed to Speak.
	Spoken []string
	// Err, when set, is returned by Speak.
	Err error
}

var _ repositories.SpeechSynthesizer = (*MockSynthesizer)(nil)

// NewMockSynthesizer creates a new mock synthesizer.
func NewMockSynthesizer(logger *zap.Logger) *MockSynthesizer {
	return &MockSynthesizer{logger: logger}
}

// Speak implements repositories.SpeechSynthesizer.
func (m *MockSynthesizer) Speak(ctx context.Context, text string) error {
	m.Calls++
	m.logger.Info("Mock speech", zap.String("text", text))

	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	if m.Err != nil {
		return m.Err
	}
	m.Spoken = append(m.Spoken, text)
	return nil
}
