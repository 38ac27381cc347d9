package whisper

import "context"

// ITranscriber turns recorded audio into text.
// Implementations are safe for concurrent use.
type ITranscriber interface {
	// Transcribe uploads audio and returns the engine's transcription.
	// Errors are *ServiceError or ErrEmptyTranscript.
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// New creates a new transcription client with the given configuration
func New(cfg Config) (ITranscriber, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newWhisperImpl(cfg), nil
}
