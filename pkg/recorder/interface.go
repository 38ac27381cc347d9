package recorder

import "context"

// Source is a PCM input such as a microphone. A Source is used by one
// recording at a time: Open, then Read until done, then Close.
type Source interface {
	// Open acquires the device. It fails with ErrPermissionDenied or
	// ErrDeviceUnavailable when the device cannot be used.
	Open(cfg Config) error

	// Read blocks until the next frame of interleaved 16-bit samples is available.
	Read(ctx context.Context) ([]int16, error)

	// Close releases the device. It is safe to call more than once.
	Close() error
}
