package repositories

import "context"

// Translator abstracts machine translation services for the fixed
// Urdu-to-English direction.
type Translator interface {
	// Translate converts Urdu text to English.
	Translate(ctx context.Context, urduText string) (string, error)
}
