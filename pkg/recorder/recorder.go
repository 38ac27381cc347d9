package recorder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Recorder captures one recording at a time from a Source.
type Recorder struct {
	src Source
	cfg Config

	mu        sync.Mutex
	recording bool
	cancel    context.CancelFunc
	done      chan struct{}
	samples   []int16
	readErr   error
	blob      *Blob

	levels chan float64
}

// New creates a Recorder reading from src.
func New(src Source, cfg Config) *Recorder {
	cfg.setDefaults()
	return &Recorder{
		src:    src,
		cfg:    cfg,
		levels: make(chan float64, 16),
	}
}

// Levels delivers one amplitude level per captured frame. Levels are dropped
// when the receiver falls behind.
func (r *Recorder) Levels() <-chan float64 {
	return r.levels
}

// Recording reports whether a recording is in progress.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Start opens the source and captures until Stop is called or ctx is done.
// When ctx ends first the source is released immediately and Stop still
// returns what was captured.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return ErrAlreadyRecording
	}
	if err := r.src.Open(r.cfg); err != nil {
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.recording = true
	r.cancel = cancel
	r.done = make(chan struct{})
	r.samples = r.samples[:0]
	r.readErr = nil
	r.blob = nil

	go r.capture(loopCtx, r.done)
	return nil
}

func (r *Recorder) capture(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer r.src.Close()

	for {
		frame, err := r.src.Read(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			r.mu.Lock()
			r.readErr = err
			r.mu.Unlock()
			return
		}

		r.mu.Lock()
		r.samples = append(r.samples, frame...)
		r.mu.Unlock()

		select {
		case r.levels <- Level(frame):
		default:
		}
	}
}

// Stop ends the recording, releases the source and returns the WAV blob.
// Samples captured before a read failure are kept; the failure is returned
// only when nothing was captured.
func (r *Recorder) Stop() (Blob, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return Blob{}, ErrNotRecording
	}
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	cancel()
	<-done

	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false

	if len(r.samples) == 0 && r.readErr != nil {
		return Blob{}, fmt.Errorf("recorder: capture failed: %w", r.readErr)
	}

	data, err := encodeWAV(r.samples, r.cfg.SampleRate, r.cfg.Channels)
	if err != nil {
		return Blob{}, fmt.Errorf("recorder: encode wav: %w", err)
	}

	frames := len(r.samples) / r.cfg.Channels
	blob := Blob{
		Data:     data,
		MimeType: WAVMimeType,
		Filename: "recording.wav",
		Duration: time.Duration(frames) * time.Second / time.Duration(r.cfg.SampleRate),
	}
	r.blob = &blob
	return blob, nil
}

// Last returns the blob produced by the most recent Stop.
func (r *Recorder) Last() (Blob, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.blob == nil {
		return Blob{}, false
	}
	return *r.blob, true
}

// Reset discards the last blob and any pending levels. It does not touch the device.
func (r *Recorder) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return errors.New("recorder: cannot reset while recording")
	}
	r.blob = nil
	r.samples = nil
	r.readErr = nil
	for {
		select {
		case <-r.levels:
		default:
			return nil
		}
	}
}
