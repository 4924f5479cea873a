package sound

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// flushSize is the number of buffered samples after which the recorder writes to the encoder.
const flushSize = 4096

// Recorder records the beeper to a 16 bit mono WAV stream. Every instruction
// contributes the number of samples that corresponds to its duration at the
// configured instruction rate.
type Recorder struct {
	encoder *wav.Encoder
	format  *audio.Format
	sample  *Sample

	samplesPerInstruction float64
	fraction              float64
	pos                   int
	buf                   []int
	samples               int
	err                   error
}

// NewRecorder returns a recorder writing to w. The rate is the number of
// executed instructions per second and must be positive.
func NewRecorder(w io.WriteSeeker, sample *Sample, rate int) *Recorder {
	return &Recorder{
		encoder:               wav.NewEncoder(w, sample.SampleRate, 16, 1, 1),
		format:                &audio.Format{NumChannels: 1, SampleRate: sample.SampleRate},
		sample:                sample,
		samplesPerInstruction: float64(sample.SampleRate) / float64(rate),
		buf:                   make([]int, 0, flushSize),
	}
}

// Beep records one instruction of sample or silence.
func (r *Recorder) Beep(active bool) {
	if r.err != nil {
		return
	}

	r.fraction += r.samplesPerInstruction
	count := int(r.fraction)
	r.fraction -= float64(count)

	if !active {
		r.pos = 0
	}
	for range count {
		var value int
		if active {
			value = int(toInt16(r.sample.Data[r.pos]))
			r.pos = (r.pos + 1) % len(r.sample.Data)
		}
		r.buf = append(r.buf, value)
	}
	r.samples += count

	if len(r.buf) >= flushSize {
		r.err = r.flush()
	}
}

// Samples returns the number of recorded samples.
func (r *Recorder) Samples() int {
	return r.samples
}

// Close writes the remaining samples and finalizes the WAV header. The
// underlying writer is not closed.
func (r *Recorder) Close() error {
	if r.err != nil {
		return r.err
	}
	if err := r.flush(); err != nil {
		return err
	}
	if err := r.encoder.Close(); err != nil {
		return fmt.Errorf("closing wav encoder: %w", err)
	}
	return nil
}

func (r *Recorder) flush() error {
	if len(r.buf) == 0 {
		return nil
	}
	buf := &audio.IntBuffer{
		Format:         r.format,
		Data:           r.buf,
		SourceBitDepth: 16,
	}
	if err := r.encoder.Write(buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	r.buf = r.buf[:0]
	return nil
}
