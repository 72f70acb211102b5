package translate

import (
	"context"

	"go.uber.org/zap"

	"github.com/hassanrz/tarjuman/domain/repositories"
)

// MockTranslator is a placeholder implementation for machine translation.
// It applies the real pre- and post-processing around a canned result so
// validation behaves exactly as with a live backend.
type MockTranslator struct {
	logger *zap.Logger

	// Calls counts how many times Translate was invoked.
	Calls int
	// Result is returned after post-processing.
	Result string
	// Err, when set, is returned instead of a result.
	Err error
}

var _ repositories.Translator = (*MockTranslator)(nil)

// NewMockTranslator creates a new mock translator.
func NewMockTranslator(logger *zap.Logger, result string) *MockTranslator {
	return &MockTranslator{logger: logger, Result: result}
}

// Translate implements repositories.Translator.
func (m *MockTranslator) Translate(ctx context.Context, urduText string) (string, error) {
	m.Calls++
	m.logger.Info("Mock translation", zap.Int("inputLength", len(urduText)))

	if _, err := preprocess(urduText); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	return postprocess(m.Result), nil
}
