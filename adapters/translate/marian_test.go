package translate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func fakeMarianServer(t *testing.T, translation string, capture *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req marianRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if capture != nil {
			*capture = req.Inputs
		}
		json.NewEncoder(w).Encode([]marianResult{{TranslationText: translation}})
	}))
}

func TestValidateMarianConfig(t *testing.T) {
	if err := ValidateMarianConfig(MarianConfig{}); err == nil {
		t.Error("Expected error when endpoint is not set")
	}
	if err := ValidateMarianConfig(MarianConfig{Endpoint: "http://localhost:8080"}); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestMarianTranslator_Translate(t *testing.T) {
	logger := zaptest.NewLogger(t)
	var sent string
	srv := fakeMarianServer(t, "He is at home.", &sent)
	defer srv.Close()

	translator, err := NewMarianTranslator(MarianConfig{Endpoint: srv.URL}, logger)
	if err != nil {
		t.Fatalf("Failed to create translator: %v", err)
	}

	english, err := translator.Translate(context.Background(), "وہ گھر پر ہے۔")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	// Post-processing collapses "he is" forms; capitalized "He is" at the
	// sentence start is untouched by the fixed replacement list.
	if english != "He is at home." {
		t.Errorf("Unexpected translation %q", english)
	}

	// The request body must carry the preprocessed text.
	if sent == "" {
		t.Fatal("Server never received a request")
	}
	if !strings.Contains(sent, ".") || strings.Contains(sent, "۔") {
		t.Errorf("Expected preprocessed input, got %q", sent)
	}
}

func TestMarianTranslator_ShortInput(t *testing.T) {
	logger := zaptest.NewLogger(t)
	srv := fakeMarianServer(t, "irrelevant", nil)
	defer srv.Close()

	translator, err := NewMarianTranslator(MarianConfig{Endpoint: srv.URL}, logger)
	if err != nil {
		t.Fatalf("Failed to create translator: %v", err)
	}

	if _, err := translator.Translate(context.Background(), "اب"); !errors.Is(err, ErrTextTooShort) {
		t.Errorf("Expected ErrTextTooShort, got %v", err)
	}
}

func TestMarianTranslator_ServerError(t *testing.T) {
	logger := zaptest.NewLogger(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	translator, err := NewMarianTranslator(MarianConfig{Endpoint: srv.URL}, logger)
	if err != nil {
		t.Fatalf("Failed to create translator: %v", err)
	}

	if _, err := translator.Translate(context.Background(), "وہ گھر پر ہے"); err == nil {
		t.Error("Expected error for server failure")
	}
}

func TestMarianTranslator_EmptyResponse(t *testing.T) {
	logger := zaptest.NewLogger(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]marianResult{})
	}))
	defer srv.Close()

	translator, err := NewMarianTranslator(MarianConfig{Endpoint: srv.URL}, logger)
	if err != nil {
		t.Fatalf("Failed to create translator: %v", err)
	}

	if _, err := translator.Translate(context.Background(), "وہ گھر پر ہے"); err == nil {
		t.Error("Expected error for empty sequence list")
	}
}
