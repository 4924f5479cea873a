// Package sound provides the beeper sounds of the machine: a square wave or a
// sample loaded from a .wav or .mp3 file, a PCM stream for audio devices and a
// WAV recorder.
package sound

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// Defaults of the generated beep.
const (
	SampleRate       = 44100
	DefaultFrequency = 440.0
	DefaultVolume    = 0.25
)

// ErrUnsupportedFormat is returned for sample files that are neither .wav nor .mp3.
var ErrUnsupportedFormat = errors.New("unsupported sample format")

// Sample is a mono sound that is looped while the beeper is active.
// Data values are in the range -1 to 1.
type Sample struct {
	SampleRate int
	Data       []float32
}

// NewSquareWave returns a single period of a square wave.
func NewSquareWave(sampleRate int, frequency float64, volume float32) *Sample {
	period := max(int(math.Round(float64(sampleRate)/frequency)), 2)
	data := make([]float32, period)
	for i := range data {
		if i < period/2 {
			data[i] = volume
		} else {
			data[i] = -volume
		}
	}
	return &Sample{
		SampleRate: sampleRate,
		Data:       data,
	}
}

// LoadSample loads a sample file, the format is selected by the file extension.
// Stereo files are reduced to their first channel.
func LoadSample(path string) (*Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sample file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	var sample *Sample
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		sample, err = decodeWAV(file)
	case ".mp3":
		sample, err = decodeMP3(file)
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding sample file %s: %w", path, err)
	}
	if len(sample.Data) == 0 {
		return nil, fmt.Errorf("sample file %s contains no audio data", path)
	}
	return sample, nil
}

func decodeWAV(r io.ReadSeeker) (*Sample, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	channels := max(int(dec.NumChans), 1)
	scale := float32(int(1) << (dec.BitDepth - 1))
	var offset int
	if dec.BitDepth == 8 {
		offset = 128 // 8 bit samples are unsigned
	}

	data := make([]float32, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		data = append(data, float32(buf.Data[i]-offset)/scale)
	}

	return &Sample{
		SampleRate: int(dec.SampleRate),
		Data:       data,
	}, nil
}

// decodeMP3 decodes an mp3 stream, which is always 16 bit little endian stereo.
func decodeMP3(r io.Reader) (*Sample, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	data := make([]float32, 0, len(pcm)/4)
	for i := 0; i+1 < len(pcm); i += 4 {
		value := int16(uint16(pcm[i]) | uint16(pcm[i+1])<<8)
		data = append(data, float32(value)/32768)
	}

	return &Sample{
		SampleRate: dec.SampleRate(),
		Data:       data,
	}, nil
}

// Resample returns the sample converted to the given sample rate using
// linear interpolation.
func (s *Sample) Resample(sampleRate int) *Sample {
	if s.SampleRate == sampleRate || len(s.Data) == 0 {
		return s
	}

	ratio := float64(s.SampleRate) / float64(sampleRate)
	length := max(int(float64(len(s.Data))/ratio), 1)
	data := make([]float32, length)
	for i := range data {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= len(s.Data)-1 {
			data[i] = s.Data[len(s.Data)-1]
			continue
		}
		frac := float32(pos - float64(idx))
		data[i] = s.Data[idx]*(1-frac) + s.Data[idx+1]*frac
	}

	return &Sample{
		SampleRate: sampleRate,
		Data:       data,
	}
}
