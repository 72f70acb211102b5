package translate

import (
	"errors"
	"strings"
)

// ErrTextTooShort is returned for input below the minimum translatable
// length. It is a validation rejection, distinguishable from a model
// failure.
var ErrTextTooShort = errors.New("text too short to translate")

const (
	// minInputRunes is the shortest input the translator accepts.
	minInputRunes = 3
	// maxInputRunes caps input length the way the model's tokenizer
	// truncates overlong sequences.
	maxInputRunes = 512
)

// postFixes is the fixed ordered list of literal replacements applied to
// every translation, smoothing copula phrasing.
var postFixes = [][2]string{
	{"I am", "I"},
	{"you are", "you"},
	{"he is", "he"},
}

// specialTokens are control tokens a seq2seq decoder can leak into its
// output.
var specialTokens = []string{"<pad>", "</s>", "<unk>", "<s>"}

// preprocess validates and prepares Urdu text for the model: the Urdu
// full stop becomes a Latin period and the copula is padded with spaces
// so it tokenizes as a separate word.
func preprocess(urduText string) (string, error) {
	if len([]rune(urduText)) < minInputRunes {
		return "", ErrTextTooShort
	}

	text := strings.ReplaceAll(urduText, "۔", ".")
	text = strings.ReplaceAll(text, "ہے", " ہے ")

	if runes := []rune(text); len(runes) > maxInputRunes {
		text = string(runes[:maxInputRunes])
	}
	return text, nil
}

// postprocess cleans decoder output: residual special tokens are removed,
// whitespace trimmed, and the fixed replacement list applied in order.
func postprocess(english string) string {
	for _, token := range specialTokens {
		english = strings.ReplaceAll(english, token, "")
	}
	english = strings.TrimSpace(english)
	for _, fix := range postFixes {
		english = strings.ReplaceAll(english, fix[0], fix[1])
	}
	return english
}
