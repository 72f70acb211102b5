package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hassanrz/tarjuman/domain/repositories"
)

const (
	defaultAPIBaseURL   = "https://api.elevenlabs.io/v1"
	defaultVoiceID      = "21m00Tcm4TlvDq8ikWAM" // Rachel voice
	defaultModelID      = "eleven_multilingual_v2"
	defaultOutputFormat = "pcm_24000"
	defaultStability    = 0.5
	defaultClarity      = 0.75

	synthesisTimeout = 60 * time.Second
)

// Player plays raw mono PCM-16 audio, blocking until playback completes.
type Player interface {
	Play(samples []int16, sampleRate int) error
}

// ElevenLabsConfig holds configuration for the ElevenLabsSynthesizer.
// Required fields:
// - APIKey: Your Eleven Labs API key
// Optional fields with defaults:
// - APIBaseURL: The base URL for the Eleven Labs API (default: "https://api.elevenlabs.io/v1")
// - VoiceID: The voice ID to use (default: "21m00Tcm4TlvDq8ikWAM" - Rachel voice)
// - ModelID: The model ID to use (default: "eleven_multilingual_v2")
// - OutputFormat: The PCM output format (default: "pcm_24000")
// - Stability: Voice stability value between 0 and 1 (default: 0.5)
// - Clarity: Voice clarity/similarity boost value between 0 and 1 (default: 0.75)
type ElevenLabsConfig struct {
	APIKey       string
	APIBaseURL   string
	VoiceID      string
	ModelID      string
	OutputFormat string
	Stability    float64
	Clarity      float64
}

// NewElevenLabsConfigFromEnv creates an ElevenLabsConfig from environment
// variables.
func NewElevenLabsConfigFromEnv() ElevenLabsConfig {
	config := ElevenLabsConfig{
		APIKey:       os.Getenv("ELEVEN_LABS_API_KEY"),
		APIBaseURL:   os.Getenv("ELEVEN_LABS_API_BASE_URL"),
		VoiceID:      os.Getenv("ELEVEN_LABS_VOICE_ID"),
		ModelID:      os.Getenv("ELEVEN_LABS_MODEL_ID"),
		OutputFormat: os.Getenv("ELEVEN_LABS_OUTPUT_FORMAT"),
	}

	if stabilityStr := os.Getenv("ELEVEN_LABS_STABILITY"); stabilityStr != "" {
		if stability, err := strconv.ParseFloat(stabilityStr, 64); err == nil && stability >= 0 && stability <= 1 {
			config.Stability = stability
		}
	}
	if clarityStr := os.Getenv("ELEVEN_LABS_CLARITY"); clarityStr != "" {
		if clarity, err := strconv.ParseFloat(clarityStr, 64); err == nil && clarity >= 0 && clarity <= 1 {
			config.Clarity = clarity
		}
	}

	return config
}

// ValidateElevenLabsConfig validates the ElevenLabsConfig.
func ValidateElevenLabsConfig(config ElevenLabsConfig) error {
	if config.APIKey == "" {
		return fmt.Errorf("eleven labs API key is required")
	}
	if config.Stability != 0 && (config.Stability < 0 || config.Stability > 1) {
		return fmt.Errorf("stability must be between 0 and 1, got %f", config.Stability)
	}
	if config.Clarity != 0 && (config.Clarity < 0 || config.Clarity > 1) {
		return fmt.Errorf("clarity must be between 0 and 1, got %f", config.Clarity)
	}
	if config.OutputFormat != "" && !strings.HasPrefix(config.OutputFormat, "pcm_") {
		return fmt.Errorf("output format must be a pcm_* format, got %s", config.OutputFormat)
	}
	return nil
}

// elevenLabsVoiceSettings represents voice settings for the Eleven Labs
// API.
type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// elevenLabsRequest represents the TTS request payload.
type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	ModelID       string                  `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

// ElevenLabsSynthesizer implements SpeechSynthesizer using the Eleven
// Labs API for synthesis and a local Player for blocking playback.
type ElevenLabsSynthesizer struct {
	apiKey       string
	apiBaseURL   string
	voiceID      string
	modelID      string
	outputFormat string
	stability    float64
	clarity      float64
	player       Player
	client       *http.Client
	logger       *zap.Logger
}

var _ repositories.SpeechSynthesizer = (*ElevenLabsSynthesizer)(nil)

// NewElevenLabsSynthesizer creates a new Eleven Labs synthesizer.
func NewElevenLabsSynthesizer(config ElevenLabsConfig, player Player, logger *zap.Logger) (*ElevenLabsSynthesizer, error) {
	if err := ValidateElevenLabsConfig(config); err != nil {
		return nil, err
	}
	if player == nil {
		return nil, fmt.Errorf("player is required")
	}

	apiBaseURL := config.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
		logger.Info("Using default API base URL", zap.String("apiBaseURL", apiBaseURL))
	}
	voiceID := config.VoiceID
	if voiceID == "" {
		voiceID = defaultVoiceID
		logger.Info("Using default voice ID", zap.String("voiceID", voiceID))
	}
	modelID := config.ModelID
	if modelID == "" {
		modelID = defaultModelID
		logger.Info("Using default model ID", zap.String("modelID", modelID))
	}
	outputFormat := config.OutputFormat
	if outputFormat == "" {
		outputFormat = defaultOutputFormat
		logger.Info("Using default output format", zap.String("outputFormat", outputFormat))
	}
	stability := config.Stability
	if stability == 0 {
		stability = defaultStability
	}
	clarity := config.Clarity
	if clarity == 0 {
		clarity = defaultClarity
	}

	return &ElevenLabsSynthesizer{
		apiKey:       config.APIKey,
		apiBaseURL:   apiBaseURL,
		voiceID:      voiceID,
		modelID:      modelID,
		outputFormat: outputFormat,
		stability:    stability,
		clarity:      clarity,
		player:       player,
		client:       &http.Client{Timeout: synthesisTimeout},
		logger:       logger,
	}, nil
}

// Speak synthesizes text and plays it, blocking until playback finishes.
func (e *ElevenLabsSynthesizer) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	e.logger.Info("Synthesizing speech",
		zap.String("text", text),
		zap.String("voiceID", e.voiceID),
		zap.String("modelID", e.modelID))

	pcm, err := e.synthesize(ctx, text)
	if err != nil {
		return err
	}

	sampleRate, err := pcmSampleRate(e.outputFormat)
	if err != nil {
		return err
	}

	e.logger.Info("Playing synthesized audio",
		zap.Int("samples", len(pcm)),
		zap.Int("sampleRate", sampleRate))

	if err := e.player.Play(pcm, sampleRate); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}

// synthesize requests PCM audio from the Eleven Labs stream endpoint.
func (e *ElevenLabsSynthesizer) synthesize(ctx context.Context, text string) ([]int16, error) {
	request := elevenLabsRequest{
		Text:    text,
		ModelID: e.modelID,
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       e.stability,
			SimilarityBoost: e.clarity,
		},
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s/stream?output_format=%s&enable_logging=false",
		e.apiBaseURL, e.voiceID, e.outputFormat)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Accept", "audio/pcm")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("synthesis endpoint returned %d: %s", resp.StatusCode, string(errorBody))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio stream: %w", err)
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("synthesis produced no audio")
	}

	pcm := make([]int16, len(raw)/2)
	if err := binary.Read(bytes.NewReader(raw[:len(pcm)*2]), binary.LittleEndian, pcm); err != nil {
		return nil, fmt.Errorf("failed to parse PCM audio: %w", err)
	}
	return pcm, nil
}

// pcmSampleRate extracts the sample rate from a pcm_* output format.
func pcmSampleRate(outputFormat string) (int, error) {
	rateStr, ok := strings.CutPrefix(outputFormat, "pcm_")
	if !ok {
		return 0, fmt.Errorf("unsupported output format: %s", outputFormat)
	}
	rate, err := strconv.Atoi(rateStr)
	if err != nil || rate <= 0 {
		return 0, fmt.Errorf("unsupported output format: %s", outputFormat)
	}
	return rate, nil
}
