// Package tone generates the CHIP-8 beeper as unsigned 8-bit mono samples
// and optionally records them to a WAV file.
package tone

const (
	// DefaultRate is the sample rate in Hz.
	DefaultRate = 22050

	// DefaultPitch is the frequency of the beep in Hz.
	DefaultPitch = 440

	// Silence is the unsigned 8-bit center line.
	Silence = 0x80
)

// Generator is a square wave that keeps its phase between calls, so
// consecutive buffers join without clicks.
type Generator struct {
	Rate   int
	Pitch  int
	Volume byte

	phase int
}

// NewGenerator returns a generator with the default rate and pitch.
func NewGenerator() *Generator {
	return &Generator{
		Rate:   DefaultRate,
		Pitch:  DefaultPitch,
		Volume: 0x30,
	}
}

// FrameSize is the number of samples covering one tick of a hz clock.
func (g *Generator) FrameSize(hz int) int {
	if hz <= 0 {
		return 0
	}

	return g.Rate / hz
}

// Samples returns n samples of the tone, or of silence when on is false.
func (g *Generator) Samples(n int, on bool) []byte {
	buf := make([]byte, n)

	if !on || g.Pitch <= 0 {
		g.phase = 0

		for i := range buf {
			buf[i] = Silence
		}

		return buf
	}

	period := g.Rate / g.Pitch
	if period < 2 {
		period = 2
	}

	for i := range buf {
		if g.phase < period/2 {
			buf[i] = Silence + g.Volume
		} else {
			buf[i] = Silence - g.Volume
		}

		if g.phase++; g.phase >= period {
			g.phase = 0
		}
	}

	return buf
}
