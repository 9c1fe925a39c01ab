package tone

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
)

func TestSilence(t *testing.T) {
	g := NewGenerator()

	for _, s := range g.Samples(64, false) {
		assert.Equal(t, byte(Silence), s)
	}
}

func TestSquareWave(t *testing.T) {
	g := &Generator{Rate: 8, Pitch: 2, Volume: 0x30}

	hi, lo := byte(Silence+0x30), byte(Silence-0x30)

	assert.Equal(t, []byte{hi, hi, lo, lo, hi, hi}, g.Samples(6, true))

	// phase carries over to the next buffer
	assert.Equal(t, []byte{lo, lo, hi}, g.Samples(3, true))

	// and restarts after silence
	g.Samples(1, false)
	assert.Equal(t, []byte{hi}, g.Samples(1, true))
}

func TestFrameSize(t *testing.T) {
	g := NewGenerator()

	assert.Equal(t, DefaultRate/60, g.FrameSize(60))
	assert.Equal(t, 0, g.FrameSize(0))
}

func TestRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beep.wav")
	g := NewGenerator()
	r := NewRecorder(path, g.Rate)

	n, err := r.Write(g.Samples(100, true))
	assert.NoError(t, err)
	assert.Equal(t, 100, n)

	_, err = r.Write(g.Samples(50, false))
	assert.NoError(t, err)
	assert.Equal(t, 150, r.Len())
	assert.NoError(t, r.Close())

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()

	d := wav.NewDecoder(f)
	assert.True(t, d.IsValidFile())
	assert.Equal(t, uint32(DefaultRate), d.SampleRate)
	assert.Equal(t, uint16(1), d.NumChans)
	assert.Equal(t, uint16(8), d.BitDepth)
}
