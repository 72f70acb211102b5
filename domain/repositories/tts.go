package repositories

import "context"

// SpeechSynthesizer abstracts text-to-speech services.
type SpeechSynthesizer interface {
	// Speak synthesizes text and plays it through the default output
	// device, blocking until playback finishes.
	Speak(ctx context.Context, text string) error
}
