package usecase

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hassanrz/tarjuman/domain/entities"
	"github.com/hassanrz/tarjuman/internal/config"
)

// Pipeline runs one capture, transcribe, translate, speak cycle. Stages
// execute strictly in sequence; the first failure aborts the run and no
// later stage is invoked.
type Pipeline struct {
	bundle         *Bundle
	audioPath      string
	recordDuration time.Duration
	logger         *zap.Logger
}

// NewPipeline creates a pipeline over an initialized bundle.
func NewPipeline(bundle *Bundle, cfg config.Config, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		bundle:         bundle,
		audioPath:      cfg.AudioPath,
		recordDuration: cfg.RecordDuration,
		logger:         logger,
	}
}

// Run executes one full cycle. The returned run is always non-nil and
// terminal; the error is non-nil exactly when the run aborted. On success
// the intermediate audio file is deleted; on abort it is left on disk.
func (p *Pipeline) Run(ctx context.Context) (*entities.Run, error) {
	run := entities.NewRun(p.audioPath)
	p.logger.Info("Starting pipeline run", zap.String("runID", run.ID))

	if err := run.Advance(entities.RunStateRecording); err != nil {
		return run, err
	}
	if err := p.bundle.Recorder.Record(ctx, p.audioPath, p.recordDuration); err != nil {
		return p.abort(run, err)
	}

	if err := run.Advance(entities.RunStateTranscribing); err != nil {
		return run, err
	}
	urduText, err := p.bundle.Recognizer.Transcribe(ctx, p.audioPath)
	if err != nil {
		return p.abort(run, err)
	}
	if urduText == "" {
		return p.abort(run, fmt.Errorf("no speech recognized"))
	}
	run.UrduText = urduText
	p.logger.Info("Urdu transcript ready",
		zap.String("runID", run.ID),
		zap.String("text", urduText))

	if err := run.Advance(entities.RunStateTranslating); err != nil {
		return run, err
	}
	englishText, err := p.bundle.Translator.Translate(ctx, urduText)
	if err != nil {
		return p.abort(run, err)
	}
	run.EnglishText = englishText
	p.logger.Info("English translation ready",
		zap.String("runID", run.ID),
		zap.String("text", englishText))

	if err := run.Advance(entities.RunStateSpeaking); err != nil {
		return run, err
	}
	if err := p.bundle.Synthesizer.Speak(ctx, englishText); err != nil {
		return p.abort(run, err)
	}

	if err := run.Advance(entities.RunStateDone); err != nil {
		return run, err
	}

	// The recording is intermediate state; it is removed only after a
	// fully successful run. Aborted runs keep it for inspection.
	if err := os.Remove(p.audioPath); err != nil {
		p.logger.Warn("Failed to remove audio file",
			zap.String("path", p.audioPath),
			zap.Error(err))
	}

	p.logger.Info("Pipeline run completed", zap.String("runID", run.ID))
	return run, nil
}

// abort marks the run aborted at its current stage and surfaces the
// stage-tagged error.
func (p *Pipeline) abort(run *entities.Run, cause error) (*entities.Run, error) {
	stage := run.State
	if err := run.Abort(); err != nil {
		p.logger.Error("Failed to abort run", zap.String("runID", run.ID), zap.Error(err))
	}
	p.logger.Error("Pipeline stage failed",
		zap.String("runID", run.ID),
		zap.String("stage", string(stage)),
		zap.Error(cause))
	return run, fmt.Errorf("%s stage failed: %w", stage, cause)
}
