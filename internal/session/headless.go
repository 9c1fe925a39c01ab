package session

import (
	"fmt"
	"io"

	"github.com/massung/chip8vm/internal/digest"
)

// frameHz is the display and sound refresh rate.
const frameHz = 60

// RunHeadless executes ticks instructions as fast as possible, generating
// sound once per emulated frame, then prints the cycle count and a digest
// of the final frame to w. The fault that stopped the run is returned.
func (s *Session) RunHeadless(ticks int, w io.Writer) error {
	perFrame := s.VM.ClockHz() / frameHz
	if perFrame < 1 {
		perFrame = 1
	}

	samples := s.beep.FrameSize(frameHz)

	var err error

	for i := 0; i < ticks; i++ {
		if err = s.VM.Tick(); err != nil {
			s.fault = err
			break
		}

		if (i+1)%perFrame == 0 {
			s.Beep(samples)
		}
	}

	frame := s.VM.Screen()
	fmt.Fprintf(w, "cycles=%d frame=%s lit=%d\n", s.VM.Cycles, digest.String(&frame), frame.Lit())

	return err
}
