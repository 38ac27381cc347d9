package usecase

import (
	"context"
	"time"

	"voice-task-board/internal/task"
	"voice-task-board/internal/voice"
	pkgLog "voice-task-board/pkg/log"
	"voice-task-board/pkg/whisper"
)

// FieldExtractor turns a transcript into task fields. It must not fail.
type FieldExtractor interface {
	Extract(ctx context.Context, transcript string, tc voice.TimeContext) voice.ExtractedTaskFields
}

type implUseCase struct {
	l               pkgLog.Logger
	transcriber     whisper.ITranscriber
	extractor       FieldExtractor
	tasks           task.UseCase
	defaultTimezone string
	now             func() time.Time
}

// New creates the voice pipeline. tasks may be nil when only Process and Parse are used.
func New(
	l pkgLog.Logger,
	transcriber whisper.ITranscriber,
	extractor FieldExtractor,
	tasks task.UseCase,
	defaultTimezone string,
) voice.UseCase {
	if defaultTimezone == "" {
		defaultTimezone = voice.DefaultTimezone
	}
	return &implUseCase{
		l:               l,
		transcriber:     transcriber,
		extractor:       extractor,
		tasks:           tasks,
		defaultTimezone: defaultTimezone,
		now:             time.Now,
	}
}
