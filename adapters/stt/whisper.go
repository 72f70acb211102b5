package stt

import (
	"context"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/hassanrz/tarjuman/domain/repositories"
)

const (
	defaultWhisperModel  = "whisper-medium"
	fallbackWhisperModel = "whisper-small"

	// Decoding parameters tuned for Urdu speech.
	urduLanguage      = "ur"
	decodeTemperature = 0.2
	primingPrompt     = "یہ اردو میں گفتگو ہے"

	probeTimeout = 15 * time.Second
)

// WhisperConfig holds configuration for the WhisperRecognizer adapter.
// Required fields:
// - BaseURL: endpoint of an OpenAI-compatible Whisper inference server
// Optional fields with defaults:
// - APIKey: bearer token, if the server requires one
// - Model: primary model ID (default: "whisper-medium")
// - FallbackModel: model tried when the primary is unavailable
//   (default: "whisper-small")
type WhisperConfig struct {
	BaseURL       string
	APIKey        string
	Model         string
	FallbackModel string
}

// NewWhisperConfigFromEnv creates a WhisperConfig from environment
// variables.
func NewWhisperConfigFromEnv() WhisperConfig {
	return WhisperConfig{
		BaseURL:       os.Getenv("WHISPER_BASE_URL"),
		APIKey:        os.Getenv("WHISPER_API_KEY"),
		Model:         os.Getenv("WHISPER_MODEL"),
		FallbackModel: os.Getenv("WHISPER_FALLBACK_MODEL"),
	}
}

// ValidateWhisperConfig validates the WhisperConfig.
func ValidateWhisperConfig(config WhisperConfig) error {
	if config.BaseURL == "" {
		return fmt.Errorf("whisper base URL is required")
	}
	return nil
}

// WhisperRecognizer implements SpeechToText against an OpenAI-compatible
// Whisper inference server. The model is pinned at construction time; if
// the primary model is unavailable the smaller fallback is used instead,
// which is the only fallback anywhere in the pipeline.
type WhisperRecognizer struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

var _ repositories.SpeechToText = (*WhisperRecognizer)(nil)

// NewWhisperRecognizer creates a recognizer, probing model availability
// and falling back to the small model when the primary fails to load.
func NewWhisperRecognizer(config WhisperConfig, logger *zap.Logger) (*WhisperRecognizer, error) {
	if err := ValidateWhisperConfig(config); err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = config.BaseURL
	client := openai.NewClientWithConfig(clientConfig)

	model := config.Model
	if model == "" {
		model = defaultWhisperModel
		logger.Info("Using default whisper model", zap.String("model", model))
	}
	fallback := config.FallbackModel
	if fallback == "" {
		fallback = fallbackWhisperModel
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if _, err := client.GetModel(ctx, model); err != nil {
		logger.Warn("Primary whisper model unavailable, falling back",
			zap.String("model", model),
			zap.String("fallback", fallback),
			zap.Error(err))
		if _, ferr := client.GetModel(ctx, fallback); ferr != nil {
			return nil, fmt.Errorf("failed to load whisper model %s and fallback %s: %w", model, fallback, ferr)
		}
		model = fallback
	}

	logger.Info("Whisper model loaded", zap.String("model", model))

	return &WhisperRecognizer{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Model returns the model ID selected at construction time.
func (w *WhisperRecognizer) Model() string {
	return w.model
}

// Transcribe converts the audio file at audioPath to Urdu text.
func (w *WhisperRecognizer) Transcribe(ctx context.Context, audioPath string) (string, error) {
	w.logger.Info("Transcribing audio",
		zap.String("path", audioPath),
		zap.String("model", w.model))

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:       w.model,
		FilePath:    audioPath,
		Language:    urduLanguage,
		Temperature: decodeTemperature,
		Prompt:      primingPrompt,
		Format:      openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}

	text := postprocess(resp.Text)
	w.logger.Info("Transcription completed", zap.String("text", text))
	return text, nil
}
