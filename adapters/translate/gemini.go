package translate

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/hassanrz/tarjuman/domain/repositories"
)

const (
	defaultGeminiModel   = "gemini-2.0-flash"
	geminiTimeout        = 30 * time.Second
	geminiTemperature    = 0.2
	geminiMaxOutputChars = 2048

	geminiInstruction = "Translate the following Urdu text to English. " +
		"Reply with the translation only, no commentary."
)

// GeminiConfig holds configuration for the GeminiTranslator adapter.
// Required fields:
// - APIKey: Google AI API key
// Optional fields with defaults:
// - Model: model ID (default: "gemini-2.0-flash")
type GeminiConfig struct {
	APIKey string
	Model  string
}

// NewGeminiConfigFromEnv creates a GeminiConfig from environment
// variables.
func NewGeminiConfigFromEnv() GeminiConfig {
	return GeminiConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  os.Getenv("GEMINI_MODEL"),
	}
}

// GeminiTranslator implements Translator using Google's Gemini API, as an
// alternative to the Marian inference endpoint. The same pre- and
// post-processing applies regardless of backend.
type GeminiTranslator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

var _ repositories.Translator = (*GeminiTranslator)(nil)

// NewGeminiTranslator creates a new Gemini translator instance.
func NewGeminiTranslator(ctx context.Context, config GeminiConfig, logger *zap.Logger) (*GeminiTranslator, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Google AI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = defaultGeminiModel
		logger.Info("Using default model", zap.String("model", model))
	}

	return &GeminiTranslator{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Translate converts Urdu text to English.
func (g *GeminiTranslator) Translate(ctx context.Context, urduText string) (string, error) {
	text, err := preprocess(urduText)
	if err != nil {
		return "", err
	}

	g.logger.Info("Translating text",
		zap.String("model", g.model),
		zap.Int("inputLength", len(text)))

	contents := []*genai.Content{
		genai.NewContentFromText(geminiInstruction+"\n\n"+text, genai.RoleUser),
	}
	generateConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(geminiTemperature)),
		MaxOutputTokens: geminiMaxOutputChars,
	}

	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, generateConfig)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil ||
		len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no translation generated")
	}

	var english string
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			english += part.Text
		}
	}
	if english == "" {
		return "", fmt.Errorf("empty translation generated")
	}

	english = postprocess(english)
	g.logger.Info("Translation completed", zap.String("text", english))
	return english, nil
}
