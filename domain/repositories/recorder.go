package repositories

import (
	"context"
	"time"
)

// Recorder abstracts microphone capture.
type Recorder interface {
	// Record captures duration of audio from the default input device and
	// writes it as a normalized WAV file at path. It blocks until the
	// capture completes.
	Record(ctx context.Context, path string, duration time.Duration) error
}
