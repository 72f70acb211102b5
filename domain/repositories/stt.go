package repositories

import "context"

// SpeechToText abstracts speech recognition services.
type SpeechToText interface {
	// Transcribe converts the audio file at audioPath to text. The result
	// carries no leading or trailing whitespace.
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
