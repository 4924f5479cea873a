package sound

import (
	"sync/atomic"
)

// Stream is an endless 16 bit little endian stereo PCM stream that loops the
// sample while the beeper is active and is silent otherwise. Beep may be called
// concurrently with Read.
type Stream struct {
	sample *Sample
	active atomic.Bool
	pos    int
}

// NewStream returns a silent stream for the given sample.
func NewStream(sample *Sample) *Stream {
	return &Stream{
		sample: sample,
	}
}

// Beep switches the stream between the sample and silence.
func (s *Stream) Beep(active bool) {
	s.active.Store(active)
}

// Read fills p with complete stereo frames, it never returns an error.
func (s *Stream) Read(p []byte) (int, error) {
	frames := len(p) / 4
	active := s.active.Load()
	if !active {
		s.pos = 0
	}

	for i := range frames {
		var value int16
		if active && len(s.sample.Data) > 0 {
			value = toInt16(s.sample.Data[s.pos])
			s.pos = (s.pos + 1) % len(s.sample.Data)
		}

		b := p[i*4:]
		b[0] = byte(value)
		b[1] = byte(uint16(value) >> 8)
		b[2] = b[0]
		b[3] = b[1]
	}
	return frames * 4, nil
}

func toInt16(f float32) int16 {
	switch {
	case f >= 1:
		return 32767
	case f <= -1:
		return -32768
	default:
		return int16(f * 32767)
	}
}
