package telegram

import (
	"errors"

	"voice-task-board/internal/task"
	"voice-task-board/internal/voice"
	pkgTelegram "voice-task-board/pkg/telegram"
)

// errorMessage returns a user-facing reply for a failed update.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, voice.ErrEmptyTranscript):
		return "I couldn't hear anything in that recording. Please try again."
	case errors.Is(err, pkgTelegram.ErrFileTooLarge):
		return "That voice note is too long. Please keep it under a few minutes."
	case errors.Is(err, task.ErrEmptyTitle):
		return "I couldn't work out a task title. Please try again with more detail."
	default:
		return "Something went wrong while processing your request. Please try again."
	}
}
