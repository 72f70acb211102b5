package translate

import (
	"errors"
	"strings"
	"testing"
)

func TestPreprocess_RejectsShortInput(t *testing.T) {
	for _, input := range []string{"", "ا", "اب"} {
		if _, err := preprocess(input); !errors.Is(err, ErrTextTooShort) {
			t.Errorf("Expected ErrTextTooShort for %q, got %v", input, err)
		}
	}

	// Exactly three runes is accepted; the limit counts runes, not bytes.
	if _, err := preprocess("ابج"); err != nil {
		t.Errorf("Expected three-rune input to pass, got %v", err)
	}
}

func TestPreprocess_Substitutions(t *testing.T) {
	got, err := preprocess("وہ گھر پر ہے۔")
	if err != nil {
		t.Fatalf("preprocess failed: %v", err)
	}
	if strings.Contains(got, "۔") {
		t.Error("Expected Urdu full stop to be replaced")
	}
	if !strings.Contains(got, ".") {
		t.Error("Expected Latin period in output")
	}
	if !strings.Contains(got, " ہے ") {
		t.Error("Expected copula padded with spaces")
	}
}

func TestPreprocess_TruncatesOverlongInput(t *testing.T) {
	long := strings.Repeat("ا", maxInputRunes*2)
	got, err := preprocess(long)
	if err != nil {
		t.Fatalf("preprocess failed: %v", err)
	}
	if runes := []rune(got); len(runes) > maxInputRunes {
		t.Errorf("Expected at most %d runes, got %d", maxInputRunes, len(runes))
	}
}

func TestPostprocess_Fixes(t *testing.T) {
	got := postprocess(" I am going home </s>")
	if got != "I going home" {
		t.Errorf("Expected %q, got %q", "I going home", got)
	}

	got = postprocess("you are late and he is early")
	if got != "you late and he early" {
		t.Errorf("Expected %q, got %q", "you late and he early", got)
	}
}

func TestPostprocess_StripsSpecialTokens(t *testing.T) {
	got := postprocess("<pad><pad> hello world</s>")
	if got != "hello world" {
		t.Errorf("Expected %q, got %q", "hello world", got)
	}
}
