package usecase

import (
	"context"
	"errors"

	"voice-task-board/internal/model"
	"voice-task-board/internal/task"
	"voice-task-board/internal/voice"
)

// CreateFromVoice runs Process and stores the result as a task. A missing title
// falls back to the transcript.
func (uc *implUseCase) CreateFromVoice(ctx context.Context, input voice.ProcessInput) (voice.CreateFromVoiceOutput, error) {
	if uc.tasks == nil {
		return voice.CreateFromVoiceOutput{}, errors.New("task store not configured")
	}

	out, err := uc.Process(ctx, input)
	if err != nil {
		return voice.CreateFromVoiceOutput{}, err
	}

	return uc.save(ctx, out, input.Timezone)
}

// CreateFromText is CreateFromVoice for text that needs no transcription.
func (uc *implUseCase) CreateFromText(ctx context.Context, input voice.ParseInput) (voice.CreateFromVoiceOutput, error) {
	if uc.tasks == nil {
		return voice.CreateFromVoiceOutput{}, errors.New("task store not configured")
	}

	out, err := uc.Parse(ctx, input)
	if err != nil {
		return voice.CreateFromVoiceOutput{}, err
	}

	return uc.save(ctx, out, input.Timezone)
}

func (uc *implUseCase) save(ctx context.Context, out voice.ProcessOutput, tz string) (voice.CreateFromVoiceOutput, error) {
	if tz == "" {
		tz = uc.defaultTimezone
	}

	created, err := uc.tasks.Create(ctx, toCreateInput(out, tz))
	if err != nil {
		uc.l.Errorf(ctx, "internal.voice.usecase.save: %v", err)
		return voice.CreateFromVoiceOutput{}, err
	}

	return voice.CreateFromVoiceOutput{
		Transcript: out.Transcript,
		Parsed:     out.Parsed,
		Task:       created.Task,
	}, nil
}

func toCreateInput(out voice.ProcessOutput, tz string) task.CreateInput {
	p := out.Parsed
	in := task.CreateInput{
		Title:       out.Transcript,
		Description: p.Description,
		Status:      p.Status,
		DueDate:     p.DueDate,
		Timezone:    tz,
	}
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Priority != nil {
		in.Priority = *p.Priority
	} else {
		in.Priority = model.PriorityMedium
	}
	return in
}
