package http

import (
	"errors"
	"net/http"

	"voice-task-board/internal/voice"
	pkgErrors "voice-task-board/pkg/errors"
)

var (
	errNoAudioFile      = pkgErrors.NewHTTPError(http.StatusBadRequest, "No audio file provided")
	errUploadTooLarge   = pkgErrors.NewHTTPError(http.StatusRequestEntityTooLarge, "Audio file is too large")
	errUnsupportedAudio = pkgErrors.NewHTTPError(http.StatusUnsupportedMediaType, "Invalid file type. Only audio files are allowed.")
	errProcessFailed    = pkgErrors.NewHTTPError(http.StatusInternalServerError, "Failed to process voice recording")
)

// mapError translates voice use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, voice.ErrNoAudio):
		return errNoAudioFile
	case errors.Is(err, voice.ErrEmptyTranscript):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "Failed to transcribe audio")
	default:
		return errProcessFailed
	}
}

// errorDetails is what callers see for a failed recording. Upstream messages stay in the logs.
func errorDetails(err error) string {
	if errors.Is(err, voice.ErrTranscriptionFailed) {
		return "speech-to-text service error"
	}
	return "unknown error"
}
