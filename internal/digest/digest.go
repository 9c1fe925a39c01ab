// Package digest hashes CHIP-8 frames so hosts can skip redrawing an
// unchanged display and compare runs against known output.
package digest

import (
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/massung/chip8vm/chip8"
)

// Sum returns the xxhash of the packed frame.
func Sum(fb *chip8.Framebuffer) uint64 {
	return xxhash.Sum64(fb[:])
}

// String formats a frame hash the way headless runs print it.
func String(fb *chip8.Framebuffer) string {
	return fmt.Sprintf("%016x", Sum(fb))
}

// Tracker remembers the last frame it saw.
type Tracker struct {
	last  uint64
	valid bool
}

// Changed returns true if fb differs from the frame passed to the previous
// call. The first call always reports a change.
func (t *Tracker) Changed(fb *chip8.Framebuffer) bool {
	sum := Sum(fb)

	if t.valid && sum == t.last {
		return false
	}

	t.last, t.valid = sum, true
	return true
}

// Invalidate forces the next Changed to return true.
func (t *Tracker) Invalidate() {
	t.valid = false
}
