package chip8

const (
	/// Width of the display in pixels.
	///
	Width = 64

	/// Height of the display in pixels.
	///
	Height = 32
)

/// Framebuffer is the CHIP-8 video memory (64x32 bits). Each bit is a
/// single pixel, stored MSB first: pixel <0,0> is bit 0x80 of byte 0 and
/// each scan line is 8 bytes. Coordinates wrap on both axes.
///
/// It is a plain value, so assigning it takes a consistent snapshot.
///
type Framebuffer [Width * Height / 8]byte

/// Clear turns every pixel off.
///
func (fb *Framebuffer) Clear() {
	*fb = Framebuffer{}
}

/// offset returns the byte index and bit mask of a wrapped pixel.
///
func offset(x, y uint) (uint, byte) {
	x &= Width - 1
	y &= Height - 1

	return y*(Width>>3) + x>>3, 0x80 >> (x & 7)
}

/// Pixel returns true if the pixel at x, y is on.
///
func (fb *Framebuffer) Pixel(x, y uint) bool {
	i, mask := offset(x, y)
	return fb[i]&mask != 0
}

/// DrawPixel toggles the pixel at x, y and returns its new value. A
/// return of false means a pixel that was on has been turned off.
///
func (fb *Framebuffer) DrawPixel(x, y uint) bool {
	i, mask := offset(x, y)

	// xor the pixel
	fb[i] ^= mask

	return fb[i]&mask != 0
}

/// DrawSprite XORs an 8-pixel wide sprite, one byte per row, onto the
/// display at x, y. Returns true if any pixel was turned off.
///
func (fb *Framebuffer) DrawSprite(x, y uint, sprite []byte) bool {
	collision := false

	for row, bits := range sprite {
		for col := uint(0); col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}

			// were any pixels turned off?
			if !fb.DrawPixel(x+col, y+uint(row)) {
				collision = true
			}
		}
	}

	return collision
}

/// Lit returns the number of pixels that are on.
///
func (fb *Framebuffer) Lit() int {
	n := 0

	for _, b := range fb {
		for ; b != 0; b &= b - 1 {
			n++
		}
	}

	return n
}
