package voice

import "errors"

var (
	ErrNoAudio             = errors.New("no audio provided")
	ErrEmptyTranscript     = errors.New("transcription produced no usable text")
	ErrTranscriptionFailed = errors.New("transcription failed")
)
