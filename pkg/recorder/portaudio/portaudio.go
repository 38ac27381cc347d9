// Package portaudio reads microphone input through the PortAudio C library.
package portaudio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	pa "github.com/gordonklaus/portaudio"

	"voice-task-board/pkg/recorder"
)

// Source is a recorder.Source over the default input device.
type Source struct {
	mu     sync.Mutex
	stream *pa.Stream
	in     []int16
}

// New returns an unopened microphone source.
func New() *Source {
	return &Source{}
}

func (s *Source) Open(cfg recorder.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream != nil {
		return recorder.ErrAlreadyRecording
	}
	if err := pa.Initialize(); err != nil {
		return fmt.Errorf("%w: %v", recorder.ErrDeviceUnavailable, err)
	}
	if _, err := pa.DefaultInputDevice(); err != nil {
		pa.Terminate()
		return mapError(err)
	}

	in := make([]int16, cfg.FrameSize*cfg.Channels)
	stream, err := pa.OpenDefaultStream(cfg.Channels, 0, float64(cfg.SampleRate), cfg.FrameSize, in)
	if err != nil {
		pa.Terminate()
		return mapError(err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		pa.Terminate()
		return mapError(err)
	}

	s.stream = stream
	s.in = in
	return nil
}

func (s *Source) Read(ctx context.Context) ([]int16, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	stream, in := s.stream, s.in
	s.mu.Unlock()
	if stream == nil {
		return nil, recorder.ErrNotRecording
	}

	if err := stream.Read(); err != nil && !errors.Is(err, pa.InputOverflowed) {
		return nil, err
	}
	frame := make([]int16, len(in))
	copy(frame, in)
	return frame, nil
}

func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream == nil {
		return nil
	}
	_ = s.stream.Stop()
	err := s.stream.Close()
	s.stream = nil
	s.in = nil
	if tErr := pa.Terminate(); err == nil {
		err = tErr
	}
	return err
}

func mapError(err error) error {
	switch {
	case errors.Is(err, pa.DeviceUnavailable), errors.Is(err, pa.InvalidDevice):
		return fmt.Errorf("%w: %v", recorder.ErrDeviceUnavailable, err)
	case strings.Contains(strings.ToLower(err.Error()), "permission"):
		return fmt.Errorf("%w: %v", recorder.ErrPermissionDenied, err)
	default:
		return fmt.Errorf("%w: %v", recorder.ErrDeviceUnavailable, err)
	}
}
