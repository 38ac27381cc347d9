package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"voice-task-board/internal/voice"
	"voice-task-board/pkg/whisper"
)

const defaultFilename = "audio.webm"

// Process transcribes the recording and then extracts task fields. Transcription
// failures end the request; extraction never fails.
func (uc *implUseCase) Process(ctx context.Context, input voice.ProcessInput) (voice.ProcessOutput, error) {
	if len(input.Audio) == 0 {
		return voice.ProcessOutput{}, voice.ErrNoAudio
	}

	filename := input.Filename
	if filename == "" {
		filename = defaultFilename
	}

	transcript, err := uc.transcriber.Transcribe(ctx, input.Audio, filename)
	if err != nil {
		if errors.Is(err, whisper.ErrEmptyTranscript) {
			return voice.ProcessOutput{}, voice.ErrEmptyTranscript
		}
		uc.l.Errorf(ctx, "internal.voice.usecase.Process: transcribe %s (%d bytes): %v", filename, len(input.Audio), err)
		return voice.ProcessOutput{}, fmt.Errorf("%w: %w", voice.ErrTranscriptionFailed, err)
	}
	if strings.TrimSpace(transcript) == "" {
		return voice.ProcessOutput{}, voice.ErrEmptyTranscript
	}

	return uc.extract(ctx, transcript, input.Timezone), nil
}

// Parse extracts task fields from text that was already transcribed.
func (uc *implUseCase) Parse(ctx context.Context, input voice.ParseInput) (voice.ProcessOutput, error) {
	transcript := strings.TrimSpace(input.Transcript)
	if transcript == "" {
		return voice.ProcessOutput{}, voice.ErrEmptyTranscript
	}
	return uc.extract(ctx, transcript, input.Timezone), nil
}

func (uc *implUseCase) extract(ctx context.Context, transcript, tz string) voice.ProcessOutput {
	if strings.TrimSpace(tz) == "" {
		tz = uc.defaultTimezone
	}
	tc := voice.NewTimeContext(uc.now(), tz)

	return voice.ProcessOutput{
		Transcript: transcript,
		Parsed:     uc.extractor.Extract(ctx, transcript, tc),
	}
}
