package stt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

// fakeWhisperServer serves the model probe and transcription endpoints of
// an OpenAI-compatible Whisper server.
func fakeWhisperServer(t *testing.T, availableModels map[string]bool, transcript string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/models/"):
			model := strings.TrimPrefix(r.URL.Path, "/models/")
			if !availableModels[model] {
				http.Error(w, `{"error": {"message": "model not found"}}`, http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"id": model, "object": "model"})
		case r.URL.Path == "/audio/transcriptions":
			json.NewEncoder(w).Encode(map[string]string{"text": transcript})
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
}

func TestValidateWhisperConfig(t *testing.T) {
	if err := ValidateWhisperConfig(WhisperConfig{}); err == nil {
		t.Error("Expected error when base URL is not set")
	}
	if err := ValidateWhisperConfig(WhisperConfig{BaseURL: "http://localhost:8000"}); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestNewWhisperRecognizer_PrimaryModel(t *testing.T) {
	logger := zaptest.NewLogger(t)
	srv := fakeWhisperServer(t, map[string]bool{"whisper-medium": true}, "")
	defer srv.Close()

	recognizer, err := NewWhisperRecognizer(WhisperConfig{BaseURL: srv.URL}, logger)
	if err != nil {
		t.Fatalf("Failed to create recognizer: %v", err)
	}
	if recognizer.Model() != "whisper-medium" {
		t.Errorf("Expected whisper-medium, got %s", recognizer.Model())
	}
}

func TestNewWhisperRecognizer_FallbackModel(t *testing.T) {
	logger := zaptest.NewLogger(t)
	srv := fakeWhisperServer(t, map[string]bool{"whisper-small": true}, "")
	defer srv.Close()

	recognizer, err := NewWhisperRecognizer(WhisperConfig{BaseURL: srv.URL}, logger)
	if err != nil {
		t.Fatalf("Failed to create recognizer with fallback: %v", err)
	}
	if recognizer.Model() != "whisper-small" {
		t.Errorf("Expected fallback whisper-small, got %s", recognizer.Model())
	}
}

func TestNewWhisperRecognizer_NoModels(t *testing.T) {
	logger := zaptest.NewLogger(t)
	srv := fakeWhisperServer(t, map[string]bool{}, "")
	defer srv.Close()

	if _, err := NewWhisperRecognizer(WhisperConfig{BaseURL: srv.URL}, logger); err == nil {
		t.Error("Expected error when neither model is available")
	}
}

func TestWhisperRecognizer_Transcribe(t *testing.T) {
	logger := zaptest.NewLogger(t)
	srv := fakeWhisperServer(t, map[string]bool{"whisper-medium": true}, "  یہ اردو میں گفتگو ہے  ")
	defer srv.Close()

	recognizer, err := NewWhisperRecognizer(WhisperConfig{BaseURL: srv.URL}, logger)
	if err != nil {
		t.Fatalf("Failed to create recognizer: %v", err)
	}

	audioPath := filepath.Join(t.TempDir(), "sample.wav")
	if err := os.WriteFile(audioPath, []byte("RIFF fake"), 0o644); err != nil {
		t.Fatalf("Failed to write audio file: %v", err)
	}

	text, err := recognizer.Transcribe(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "یہ اردو میں گفتگو ہے" {
		t.Errorf("Expected stripped transcript, got %q", text)
	}
	if text != strings.TrimSpace(text) {
		t.Error("Transcript must never carry surrounding whitespace")
	}
}

func TestWhisperRecognizer_MissingFile(t *testing.T) {
	logger := zaptest.NewLogger(t)
	srv := fakeWhisperServer(t, map[string]bool{"whisper-medium": true}, "text")
	defer srv.Close()

	recognizer, err := NewWhisperRecognizer(WhisperConfig{BaseURL: srv.URL}, logger)
	if err != nil {
		t.Fatalf("Failed to create recognizer: %v", err)
	}

	if _, err := recognizer.Transcribe(context.Background(), "does-not-exist.wav"); err == nil {
		t.Error("Expected error for missing audio file")
	}
}
