package session

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/massung/chip8vm/chip8"
	"github.com/massung/chip8vm/internal/digest"
	"github.com/massung/chip8vm/internal/logbuf"
	"github.com/massung/chip8vm/internal/romfile"
	"github.com/massung/chip8vm/internal/tone"
)

const (
	// SpeedStep is how much Faster and Slower change the clock.
	SpeedStep = 50

	// MinClockHz and MaxClockHz bound the clock speed.
	MinClockHz = 50
	MaxClockHz = 5000

	// HistoryLines is how many log lines are printed after a fault.
	HistoryLines = 20
)

// ErrNoROM is returned by operations that need a loaded program.
var ErrNoROM = errors.New("no rom loaded")

// Session is a running machine with its host side state.
type Session struct {
	VM *chip8.CHIP_8

	// Log is the host logger; History keeps its recent lines.
	Log     *logrus.Logger
	History *logbuf.Buffer

	// Paused stops Advance from running the machine.
	Paused bool

	// Path is the file the program was loaded from.
	Path string

	frames digest.Tracker
	beep   *tone.Generator
	rec    *tone.Recorder
	fault  error
}

// New creates a session with an empty machine. The log history is hooked
// into log.
func New(cfg Config, log *logrus.Logger) *Session {
	history := logbuf.New(0)
	log.AddHook(history)

	s := &Session{
		VM:      chip8.New(cfg.Options(log)),
		Log:     log,
		History: history,
		beep:    tone.NewGenerator(),
	}

	if cfg.WAV != "" {
		s.rec = tone.NewRecorder(cfg.WAV, s.beep.Rate)
	}

	return s
}

// Open loads the program at path, unpacking archives, and boots it.
func (s *Session) Open(path string) error {
	program, err := romfile.Load(path)
	if err != nil {
		return err
	}

	if err := s.VM.Load(program); err != nil {
		return fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}

	s.Path = path
	s.fault = nil
	s.frames.Invalidate()

	// separate runs in the history
	s.History.Logln("---", filepath.Base(path))

	s.Log.WithFields(logrus.Fields{
		"rom":  filepath.Base(path),
		"size": len(program),
	}).Info("loaded")

	return nil
}

// Reboot restarts the loaded program.
func (s *Session) Reboot() {
	s.VM.Reboot()
	s.fault = nil
	s.frames.Invalidate()

	s.Log.Info("rebooted")
}

// TogglePause pauses or resumes emulation.
func (s *Session) TogglePause() {
	s.Paused = !s.Paused

	s.Log.WithField("paused", s.Paused).Info("pause toggled")
}

// Faster increases the clock speed by SpeedStep.
func (s *Session) Faster() {
	s.setSpeed(s.VM.ClockHz() + SpeedStep)
}

// Slower decreases the clock speed by SpeedStep.
func (s *Session) Slower() {
	s.setSpeed(s.VM.ClockHz() - SpeedStep)
}

func (s *Session) setSpeed(hz int) {
	if hz < MinClockHz {
		hz = MinClockHz
	}
	if hz > MaxClockHz {
		hz = MaxClockHz
	}

	s.VM.SetClockHz(hz)
	s.Log.WithField("hz", hz).Info("clock speed")
}

// Press forwards a host key press to the keypad.
func (s *Session) Press(key uint) {
	if err := s.VM.PressKey(key); err != nil {
		s.Log.WithError(err).Warn("key press ignored")
	}
}

// Release forwards a host key release to the keypad.
func (s *Session) Release(key uint) {
	if err := s.VM.ReleaseKey(key); err != nil {
		s.Log.WithError(err).Warn("key release ignored")
	}
}

// Advance runs the machine for a span of wall time unless paused. A fault
// is returned the first time it happens; after that the machine stays
// halted and Advance returns nil until it is rebooted or reloaded.
func (s *Session) Advance(elapsed time.Duration) error {
	if s.Paused || s.fault != nil {
		return nil
	}

	if _, err := s.VM.Process(elapsed); err != nil {
		s.fault = err
		return err
	}

	return nil
}

// Step executes a single instruction while paused.
func (s *Session) Step() error {
	if !s.Paused || s.fault != nil {
		return nil
	}

	if err := s.VM.Tick(); err != nil {
		s.fault = err
		return err
	}

	return nil
}

// Halted returns the fault that stopped the machine, if any.
func (s *Session) Halted() error {
	return s.fault
}

// FrameChanged returns true if the display differs from the last time
// it was asked.
func (s *Session) FrameChanged() bool {
	return s.frames.Changed(&s.VM.Video)
}

// Beep returns n samples of sound, a tone while the sound timer runs.
// The samples are also recorded when a WAV file was requested.
func (s *Session) Beep(n int) []byte {
	samples := s.beep.Samples(n, s.VM.GetSoundTimer() > 0)

	if s.rec != nil {
		_, _ = s.rec.Write(samples)
	}

	return samples
}

// SampleRate is the rate of the samples returned by Beep.
func (s *Session) SampleRate() int {
	return s.beep.Rate
}

// DumpHistory writes the most recent log lines to w.
func (s *Session) DumpHistory(w io.Writer) {
	s.History.End()

	for _, line := range s.History.Window(HistoryLines) {
		fmt.Fprintln(w, line)
	}
}

// Close finishes any recording.
func (s *Session) Close() error {
	if s.rec == nil {
		return nil
	}

	s.Log.WithField("samples", s.rec.Len()).Info("writing sound recording")

	return s.rec.Close()
}

// statePath is the save state file for the loaded program.
func (s *Session) statePath() string {
	return strings.TrimSuffix(s.Path, filepath.Ext(s.Path)) + ".state"
}
