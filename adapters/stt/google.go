package stt

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/hassanrz/tarjuman/domain/repositories"
	"github.com/hassanrz/tarjuman/internal/audio"
)

const googleUrduLanguage = "ur-PK"

// GoogleRecognizer implements SpeechToText using Google Cloud
// Speech-to-Text, as an alternative to the local Whisper server.
// Credentials come from the standard GOOGLE_APPLICATION_CREDENTIALS
// environment.
type GoogleRecognizer struct {
	client *speech.Client
	logger *zap.Logger
}

var _ repositories.SpeechToText = (*GoogleRecognizer)(nil)

// NewGoogleRecognizer creates a Google Cloud speech client.
func NewGoogleRecognizer(ctx context.Context, logger *zap.Logger) (*GoogleRecognizer, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return &GoogleRecognizer{client: client, logger: logger}, nil
}

// Close releases the underlying gRPC connection.
func (g *GoogleRecognizer) Close() error {
	return g.client.Close()
}

// Transcribe converts the WAV file at audioPath to Urdu text through a
// single non-streaming recognize call.
func (g *GoogleRecognizer) Transcribe(ctx context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", audioPath, err)
	}

	samples, sampleRate, err := audio.DecodeWAV(data)
	if err != nil {
		return "", fmt.Errorf("invalid recording: %w", err)
	}

	var pcm bytes.Buffer
	if err := binary.Write(&pcm, binary.LittleEndian, samples); err != nil {
		return "", fmt.Errorf("failed to repack audio: %w", err)
	}

	g.logger.Info("Transcribing audio",
		zap.String("path", audioPath),
		zap.Int("sampleRate", sampleRate),
		zap.String("language", googleUrduLanguage))

	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: int32(sampleRate),
			LanguageCode:    googleUrduLanguage,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: pcm.Bytes()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("recognize request failed: %w", err)
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			parts = append(parts, result.Alternatives[0].Transcript)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no speech detected in audio")
	}

	text := postprocess(strings.Join(parts, " "))
	g.logger.Info("Transcription completed", zap.String("text", text))
	return text, nil
}
