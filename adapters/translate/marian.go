package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/hassanrz/tarjuman/domain/repositories"
)

const (
	defaultMarianTimeout = 60 * time.Second

	// marianModelID is the fixed Urdu-to-English translation model the
	// inference endpoint is expected to serve.
	marianModelID = "Helsinki-NLP/opus-mt-ur-en"
)

// MarianConfig holds configuration for the MarianTranslator adapter.
// Required fields:
// - Endpoint: URL of the translation inference endpoint
// Optional fields with defaults:
// - APIKey: bearer token, if the endpoint requires one
// - TimeoutSeconds: request timeout (default: 60)
type MarianConfig struct {
	Endpoint       string
	APIKey         string
	TimeoutSeconds int
}

// NewMarianConfigFromEnv creates a MarianConfig from environment
// variables.
func NewMarianConfigFromEnv() MarianConfig {
	config := MarianConfig{
		Endpoint: os.Getenv("MARIAN_ENDPOINT"),
		APIKey:   os.Getenv("MARIAN_API_KEY"),
	}
	if timeoutStr := os.Getenv("MARIAN_TIMEOUT_SECONDS"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil && timeout > 0 {
			config.TimeoutSeconds = timeout
		}
	}
	return config
}

// ValidateMarianConfig validates the MarianConfig.
func ValidateMarianConfig(config MarianConfig) error {
	if config.Endpoint == "" {
		return fmt.Errorf("marian endpoint is required")
	}
	if config.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must be positive, got %d", config.TimeoutSeconds)
	}
	return nil
}

// marianRequest is the inference request payload.
type marianRequest struct {
	Inputs string `json:"inputs"`
}

// marianResult is one generated sequence in the inference response.
type marianResult struct {
	TranslationText string `json:"translation_text"`
}

// MarianTranslator implements Translator against an HTTP inference
// endpoint serving the fixed opus-mt-ur-en model.
type MarianTranslator struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *zap.Logger
}

var _ repositories.Translator = (*MarianTranslator)(nil)

// NewMarianTranslator creates a new Marian inference client.
func NewMarianTranslator(config MarianConfig, logger *zap.Logger) (*MarianTranslator, error) {
	if err := ValidateMarianConfig(config); err != nil {
		return nil, err
	}

	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = defaultMarianTimeout
		logger.Info("Using default marian timeout", zap.Duration("timeout", timeout))
	}

	return &MarianTranslator{
		endpoint: config.Endpoint,
		apiKey:   config.APIKey,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}, nil
}

// Translate converts Urdu text to English.
func (m *MarianTranslator) Translate(ctx context.Context, urduText string) (string, error) {
	text, err := preprocess(urduText)
	if err != nil {
		return "", err
	}

	m.logger.Info("Translating text",
		zap.String("model", marianModelID),
		zap.Int("inputLength", len(text)))

	requestBody, err := json.Marshal(marianRequest{Inputs: text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translation endpoint returned %d: %s", resp.StatusCode, string(errorBody))
	}

	var results []marianResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("translation endpoint returned no sequences")
	}

	english := postprocess(results[0].TranslationText)
	m.logger.Info("Translation completed", zap.String("text", english))
	return english, nil
}
