package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hassanrz/tarjuman/adapters/capture"
	"github.com/hassanrz/tarjuman/adapters/speech"
	"github.com/hassanrz/tarjuman/adapters/stt"
	"github.com/hassanrz/tarjuman/adapters/translate"
	"github.com/hassanrz/tarjuman/domain/repositories"
	"github.com/hassanrz/tarjuman/internal/audio"
	"github.com/hassanrz/tarjuman/internal/config"
)

// Bundle holds the four stage collaborators of the pipeline. It is built
// once at startup and never mutated afterwards; any construction failure
// is fatal, there is no degraded mode.
type Bundle struct {
	Recorder    repositories.Recorder
	Recognizer  repositories.SpeechToText
	Translator  repositories.Translator
	Synthesizer repositories.SpeechSynthesizer
}

// NewBundle constructs every collaborator selected by the configuration.
func NewBundle(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Bundle, error) {
	recorder, err := capture.NewFFmpegRecorder(capture.NewFFmpegConfigFromEnv(), cfg.SampleRate, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize recorder: %w", err)
	}

	var recognizer repositories.SpeechToText
	switch cfg.STTBackend {
	case config.STTBackendWhisper:
		recognizer, err = stt.NewWhisperRecognizer(stt.NewWhisperConfigFromEnv(), logger)
	case config.STTBackendGoogle:
		recognizer, err = stt.NewGoogleRecognizer(ctx, logger)
	default:
		err = fmt.Errorf("unknown STT backend: %s", cfg.STTBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize recognizer: %w", err)
	}

	var translator repositories.Translator
	switch cfg.MTBackend {
	case config.MTBackendMarian:
		translator, err = translate.NewMarianTranslator(translate.NewMarianConfigFromEnv(), logger)
	case config.MTBackendGemini:
		translator, err = translate.NewGeminiTranslator(ctx, translate.NewGeminiConfigFromEnv(), logger)
	default:
		err = fmt.Errorf("unknown MT backend: %s", cfg.MTBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize translator: %w", err)
	}

	player := audio.NewPlayer(cfg.SpeedRatio())
	synthesizer, err := speech.NewElevenLabsSynthesizer(speech.NewElevenLabsConfigFromEnv(), player, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize synthesizer: %w", err)
	}

	return &Bundle{
		Recorder:    recorder,
		Recognizer:  recognizer,
		Translator:  translator,
		Synthesizer: synthesizer,
	}, nil
}
