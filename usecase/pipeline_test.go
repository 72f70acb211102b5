package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode"

	"go.uber.org/zap/zaptest"

	"github.com/hassanrz/tarjuman/adapters/capture"
	"github.com/hassanrz/tarjuman/adapters/speech"
	"github.com/hassanrz/tarjuman/adapters/stt"
	"github.com/hassanrz/tarjuman/adapters/translate"
	"github.com/hassanrz/tarjuman/domain/entities"
	"github.com/hassanrz/tarjuman/internal/config"
)

type mockBundle struct {
	recorder    *capture.MockRecorder
	recognizer  *stt.MockRecognizer
	translator  *translate.MockTranslator
	synthesizer *speech.MockSynthesizer
}

func newMockPipeline(t *testing.T, audioPath string) (*Pipeline, *mockBundle) {
	t.Helper()
	logger := zaptest.NewLogger(t)

	mocks := &mockBundle{
		recorder:    capture.NewMockRecorder(logger),
		recognizer:  stt.NewMockRecognizer(logger, "یہ اردو میں گفتگو ہے"),
		translator:  translate.NewMockTranslator(logger, "This is a conversation in Urdu."),
		synthesizer: speech.NewMockSynthesizer(logger),
	}
	bundle := &Bundle{
		Recorder:    mocks.recorder,
		Recognizer:  mocks.recognizer,
		Translator:  mocks.translator,
		Synthesizer: mocks.synthesizer,
	}
	cfg := config.Config{
		AudioPath:      audioPath,
		RecordDuration: 100 * time.Millisecond,
		SampleRate:     16000,
		SpeechRate:     150,
	}
	return NewPipeline(bundle, cfg, logger), mocks
}

func TestPipeline_SuccessfulRun(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "urdu_audio.wav")
	pipeline, mocks := newMockPipeline(t, audioPath)

	run, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if run.State != entities.RunStateDone {
		t.Errorf("Expected state done, got %s", run.State)
	}
	if run.UrduText == "" || run.EnglishText == "" {
		t.Error("Expected transcript and translation to be recorded on the run")
	}
	if mocks.recorder.Calls != 1 || mocks.recognizer.Calls != 1 ||
		mocks.translator.Calls != 1 || mocks.synthesizer.Calls != 1 {
		t.Errorf("Expected each stage invoked once, got %d/%d/%d/%d",
			mocks.recorder.Calls, mocks.recognizer.Calls,
			mocks.translator.Calls, mocks.synthesizer.Calls)
	}

	// Cleanup property: the intermediate file is gone after success.
	if _, err := os.Stat(audioPath); !os.IsNotExist(err) {
		t.Error("Expected audio file removed after successful run")
	}
}

func TestPipeline_AbortOnRecording(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "urdu_audio.wav")
	pipeline, mocks := newMockPipeline(t, audioPath)
	mocks.recorder.Err = errors.New("device unavailable")

	run, err := pipeline.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for recording failure")
	}

	if run.State != entities.RunStateAborted {
		t.Errorf("Expected state aborted, got %s", run.State)
	}
	if run.FailedStage != entities.RunStateRecording {
		t.Errorf("Expected failed stage recording, got %s", run.FailedStage)
	}
	if mocks.recognizer.Calls != 0 || mocks.translator.Calls != 0 || mocks.synthesizer.Calls != 0 {
		t.Errorf("Expected no later stage invoked, got %d/%d/%d",
			mocks.recognizer.Calls, mocks.translator.Calls, mocks.synthesizer.Calls)
	}
}

func TestPipeline_AbortOnTranscription(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "urdu_audio.wav")
	pipeline, mocks := newMockPipeline(t, audioPath)
	mocks.recognizer.Err = errors.New("model crashed")

	run, err := pipeline.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for transcription failure")
	}
	if run.FailedStage != entities.RunStateTranscribing {
		t.Errorf("Expected failed stage transcribing, got %s", run.FailedStage)
	}
	if mocks.translator.Calls != 0 || mocks.synthesizer.Calls != 0 {
		t.Errorf("Expected no later stage invoked, got %d/%d",
			mocks.translator.Calls, mocks.synthesizer.Calls)
	}

	// Cleanup property: aborted runs leave the recording on disk.
	if _, err := os.Stat(audioPath); err != nil {
		t.Errorf("Expected audio file kept after aborted run: %v", err)
	}
}

func TestPipeline_AbortOnEmptyTranscript(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "urdu_audio.wav")
	pipeline, mocks := newMockPipeline(t, audioPath)
	mocks.recognizer.Result = ""

	run, err := pipeline.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for empty transcript")
	}
	if run.FailedStage != entities.RunStateTranscribing {
		t.Errorf("Expected failed stage transcribing, got %s", run.FailedStage)
	}
	if mocks.translator.Calls != 0 {
		t.Errorf("Expected translator not invoked, got %d calls", mocks.translator.Calls)
	}
}

func TestPipeline_AbortOnShortTranscript(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "urdu_audio.wav")
	pipeline, mocks := newMockPipeline(t, audioPath)
	mocks.recognizer.Result = "اب"

	run, err := pipeline.Run(context.Background())
	if !errors.Is(err, translate.ErrTextTooShort) {
		t.Fatalf("Expected ErrTextTooShort, got %v", err)
	}
	if run.FailedStage != entities.RunStateTranslating {
		t.Errorf("Expected failed stage translating, got %s", run.FailedStage)
	}
	if mocks.synthesizer.Calls != 0 {
		t.Errorf("Expected synthesizer not invoked, got %d calls", mocks.synthesizer.Calls)
	}
}

func TestPipeline_AbortOnSynthesis(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "urdu_audio.wav")
	pipeline, mocks := newMockPipeline(t, audioPath)
	mocks.synthesizer.Err = errors.New("no output device")

	run, err := pipeline.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for synthesis failure")
	}
	if run.FailedStage != entities.RunStateSpeaking {
		t.Errorf("Expected failed stage speaking, got %s", run.FailedStage)
	}
	if _, err := os.Stat(audioPath); err != nil {
		t.Errorf("Expected audio file kept after aborted run: %v", err)
	}
}

func TestPipeline_EndToEndEnglishOutput(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "urdu_audio.wav")
	pipeline, mocks := newMockPipeline(t, audioPath)

	run, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if run.EnglishText == "" {
		t.Fatal("Expected non-empty English text")
	}
	for _, r := range run.EnglishText {
		if unicode.Is(unicode.Arabic, r) {
			t.Fatalf("English output contains Urdu script: %q", run.EnglishText)
		}
	}
	if len(mocks.synthesizer.Spoken) != 1 || mocks.synthesizer.Spoken[0] != run.EnglishText {
		t.Error("Expected the synthesizer to speak exactly the translated text")
	}
}
