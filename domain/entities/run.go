package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunState represents where a pipeline run currently is.
type RunState string

const (
	RunStateIdle         RunState = "idle"
	RunStateRecording    RunState = "recording"
	RunStateTranscribing RunState = "transcribing"
	RunStateTranslating  RunState = "translating"
	RunStateSpeaking     RunState = "speaking"
	RunStateDone         RunState = "done"
	RunStateAborted      RunState = "aborted"
)

// stageOrder defines the only legal forward progression of a run.
var stageOrder = []RunState{
	RunStateIdle,
	RunStateRecording,
	RunStateTranscribing,
	RunStateTranslating,
	RunStateSpeaking,
	RunStateDone,
}

// Run represents one capture-to-speech cycle of the pipeline.
type Run struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	State       RunState  `json:"state"`
	AudioPath   string    `json:"audio_path"`
	UrduText    string    `json:"urdu_text"`
	EnglishText string    `json:"english_text"`
	// FailedStage records which stage aborted the run, empty otherwise.
	FailedStage RunState `json:"failed_stage,omitempty"`
}

// NewRun creates a run in the idle state.
func NewRun(audioPath string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		State:     RunStateIdle,
		AudioPath: audioPath,
	}
}

// Advance moves the run to the next stage. Moving anywhere other than the
// immediate successor stage is an error; a run never skips stages and a
// terminal run never moves again.
func (r *Run) Advance(next RunState) error {
	if r.State == RunStateDone || r.State == RunStateAborted {
		return fmt.Errorf("run %s is terminal in state %s", r.ID, r.State)
	}
	for i, state := range stageOrder {
		if state != r.State {
			continue
		}
		if i+1 < len(stageOrder) && stageOrder[i+1] == next {
			r.State = next
			if next == RunStateDone {
				r.FinishedAt = time.Now()
			}
			return nil
		}
		return fmt.Errorf("illegal transition from %s to %s", r.State, next)
	}
	return fmt.Errorf("unknown state %s", r.State)
}

// Abort marks the run as aborted, recording the stage that failed. Abort
// is reachable from any non-terminal state.
func (r *Run) Abort() error {
	if r.State == RunStateDone || r.State == RunStateAborted {
		return fmt.Errorf("run %s is terminal in state %s", r.ID, r.State)
	}
	r.FailedStage = r.State
	r.State = RunStateAborted
	r.FinishedAt = time.Now()
	return nil
}

// IsTerminal reports whether the run has finished, successfully or not.
func (r *Run) IsTerminal() bool {
	return r.State == RunStateDone || r.State == RunStateAborted
}
