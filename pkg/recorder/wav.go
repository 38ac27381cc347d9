package recorder

import (
	"errors"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// encodeWAV writes interleaved 16-bit PCM as a WAV file.
func encodeWAV(samples []int16, rate, channels int) ([]byte, error) {
	out := &memFile{}
	enc := wav.NewEncoder(out, rate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  rate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return out.buf, nil
}

// memFile is an in-memory io.WriteSeeker; the encoder seeks back to patch the header sizes.
type memFile struct {
	buf []byte
	pos int
}

func (m *memFile) Write(p []byte) (int, error) {
	if end := m.pos + len(p); end > len(m.buf) {
		m.buf = append(m.buf, make([]byte, end-len(m.buf))...)
	}
	n := copy(m.buf[m.pos:], p)
	m.pos += n
	return n, nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(m.pos) + offset
	case io.SeekEnd:
		abs = int64(len(m.buf)) + offset
	default:
		return 0, errors.New("memFile: invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("memFile: negative position")
	}
	m.pos = int(abs)
	return abs, nil
}
