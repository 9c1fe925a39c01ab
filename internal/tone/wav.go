package tone

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Recorder buffers samples in memory and writes them out as a WAV file
// when closed. It is meant for short captures.
type Recorder struct {
	filename string
	rate     int
	data     []int
}

// NewRecorder returns a recorder that will write to filename.
func NewRecorder(filename string, rate int) *Recorder {
	return &Recorder{
		filename: filename,
		rate:     rate,
	}
}

// Write appends unsigned 8-bit samples to the recording.
func (r *Recorder) Write(samples []byte) (int, error) {
	for _, s := range samples {
		r.data = append(r.data, int(s))
	}

	return len(samples), nil
}

// Len is the number of samples recorded so far.
func (r *Recorder) Len() int {
	return len(r.data)
}

// Encode writes the recording as a mono 8-bit WAV stream to w.
func (r *Recorder) Encode(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, r.rate, 8, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  r.rate,
		},
		Data:           r.data,
		SourceBitDepth: 8,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("tone: encoding: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("tone: finishing: %w", err)
	}

	return nil
}

// Close writes the recording to its file.
func (r *Recorder) Close() (rerr error) {
	f, err := os.Create(r.filename)
	if err != nil {
		return fmt.Errorf("tone: %w", err)
	}

	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("tone: %w", err)
		}
	}()

	return r.Encode(f)
}
