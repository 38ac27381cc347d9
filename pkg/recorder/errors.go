package recorder

import "errors"

var (
	ErrPermissionDenied  = errors.New("recorder: microphone permission denied")
	ErrDeviceUnavailable = errors.New("recorder: no input device available")
	ErrAlreadyRecording  = errors.New("recorder: already recording")
	ErrNotRecording      = errors.New("recorder: not recording")
)
