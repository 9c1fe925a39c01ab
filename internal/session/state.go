package session

import (
	"fmt"
	"os"

	"github.com/massung/chip8vm/chip8"
)

// SaveState writes the machine to a state file next to the program.
func (s *Session) SaveState() error {
	if s.Path == "" {
		return ErrNoROM
	}

	path := s.statePath()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	if err := chip8.WriteState(f, s.VM.Save()); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	s.Log.WithField("file", path).Info("state saved")
	return nil
}

// LoadState restores the machine from the state file of the program.
func (s *Session) LoadState() error {
	if s.Path == "" {
		return ErrNoROM
	}

	path := s.statePath()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}
	defer f.Close()

	state, err := chip8.ReadState(f)
	if err != nil {
		return err
	}

	if err := s.VM.Restore(state); err != nil {
		return err
	}

	s.fault = nil
	s.frames.Invalidate()

	s.Log.WithField("file", path).Info("state loaded")
	return nil
}
