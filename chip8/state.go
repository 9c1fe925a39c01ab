package chip8

import (
	"encoding/gob"
	"fmt"
	"io"
)

/// State is a complete copy of the machine, less the keypad, which
/// always reflects the host's live input.
///
type State struct {
	Memory [MemorySize]byte
	Video  Framebuffer
	PC     uint16
	I      uint16
	V      [16]byte
	DT     byte
	ST     byte
	Stack  []uint16
	Cycles int64

	Waiting  bool
	TimerAcc int

	ROM []byte
}

/// Save the current state of the CHIP-8 virtual machine.
///
func (vm *CHIP_8) Save() State {
	return State{
		Memory:   vm.Memory,
		Video:    vm.Video,
		PC:       vm.PC,
		I:        vm.I,
		V:        vm.V,
		DT:       vm.DT,
		ST:       vm.ST,
		Stack:    vm.Stack.Addresses(),
		Cycles:   vm.Cycles,
		Waiting:  vm.waiting,
		TimerAcc: vm.timerAcc,
		ROM:      append([]byte(nil), vm.rom...),
	}
}

/// Restore a saved state of the CHIP-8 virtual machine. This clears any
/// fault. A state with a deeper stack than this machine allows is
/// rejected without changing anything.
///
func (vm *CHIP_8) Restore(s State) error {
	if len(s.Stack) > vm.Stack.Depth() {
		return fmt.Errorf("restoring %d return addresses: %w", len(s.Stack), ErrStackOverflow)
	}

	vm.Memory = s.Memory
	vm.Video = s.Video
	vm.PC = s.PC
	vm.I = s.I
	vm.V = s.V
	vm.DT = s.DT
	vm.ST = s.ST
	vm.Cycles = s.Cycles
	vm.waiting = s.Waiting
	vm.timerAcc = s.TimerAcc
	vm.rom = append(vm.rom[:0], s.ROM...)

	// rebuild the stack
	vm.Stack.Reset()

	for _, address := range s.Stack {
		_ = vm.Stack.Push(address)
	}

	vm.clock = 0
	vm.jumped = false
	vm.fault = nil

	vm.log.WithField("cycles", s.Cycles).Debug("state restored")

	return nil
}

/// WriteState encodes a state to w.
///
func WriteState(w io.Writer, s State) error {
	if err := gob.NewEncoder(w).Encode(&s); err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	return nil
}

/// ReadState decodes a state written by WriteState.
///
func ReadState(r io.Reader) (State, error) {
	var s State

	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return State{}, fmt.Errorf("decoding state: %w", err)
	}

	return s, nil
}
