package recorder

import "time"

const (
	DefaultSampleRate = 16000
	DefaultChannels   = 1
	DefaultFrameSize  = 1024

	// LevelWindow is the number of samples analysed for each amplitude level.
	LevelWindow = 256

	WAVMimeType = "audio/wav"
)

// Config describes the PCM stream requested from a Source.
type Config struct {
	SampleRate int
	Channels   int
	FrameSize  int // samples per channel per Read
}

func (c *Config) setDefaults() {
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.Channels <= 0 {
		c.Channels = DefaultChannels
	}
	if c.FrameSize <= 0 {
		c.FrameSize = DefaultFrameSize
	}
}

// Blob is one finished recording.
type Blob struct {
	Data     []byte
	MimeType string
	Filename string
	Duration time.Duration
}
