package digest

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/massung/chip8vm/chip8"
)

func TestSum(t *testing.T) {
	var a, b chip8.Framebuffer

	assert.Equal(t, Sum(&a), Sum(&b))

	b.DrawPixel(1, 1)
	assert.True(t, Sum(&a) != Sum(&b))
	assert.Equal(t, 16, len(String(&b)))
}

func TestTracker(t *testing.T) {
	var (
		fb chip8.Framebuffer
		tr Tracker
	)

	assert.True(t, tr.Changed(&fb))
	assert.False(t, tr.Changed(&fb))

	font := chip8.Font()
	fb.DrawSprite(0, 0, font[:chip8.FontSize])
	assert.True(t, tr.Changed(&fb))
	assert.False(t, tr.Changed(&fb))

	tr.Invalidate()
	assert.True(t, tr.Changed(&fb))
}
