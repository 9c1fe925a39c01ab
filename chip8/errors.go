package chip8

import (
	"errors"
	"fmt"
)

var (
	/// ErrUnknownOpcode is the cause of a fault raised by an opcode that
	/// matches no instruction.
	///
	ErrUnknownOpcode = errors.New("unrecognized instruction")

	/// ErrMemoryBounds is the cause of a fault raised by an address outside
	/// of the 4K address space.
	///
	ErrMemoryBounds = errors.New("memory access out of bounds")

	/// ErrReservedWrite is the cause of a fault raised by a store into the
	/// interpreter area below 0x200.
	///
	ErrReservedWrite = errors.New("write to reserved memory")

	/// ErrStackOverflow is returned when calling with a full stack.
	///
	ErrStackOverflow = errors.New("stack overflow")

	/// ErrStackUnderflow is returned when returning with an empty stack.
	///
	ErrStackUnderflow = errors.New("stack underflow")

	/// ErrKeyRange is returned for a key index outside 0x0-0xF.
	///
	ErrKeyRange = errors.New("key index out of range")

	/// ErrROMSize is returned when a program doesn't fit in memory.
	///
	ErrROMSize = errors.New("program too large to fit in memory")

	/// ErrRegister is returned for a register index outside V0-VF.
	///
	ErrRegister = errors.New("register index out of range")
)

/// Fault is a fatal condition raised while executing an instruction. The
/// virtual machine halts on a fault and keeps returning it until reset.
///
type Fault struct {
	/// Err is one of ErrUnknownOpcode, ErrMemoryBounds, ErrReservedWrite,
	/// ErrStackOverflow or ErrStackUnderflow.
	///
	Err error

	/// PC is the address of the faulting instruction.
	///
	PC uint16

	/// Opcode is the faulting instruction. It is zero when the fault was
	/// raised fetching it.
	///
	Opcode uint16

	/// Address is the offending memory address for ErrMemoryBounds and
	/// ErrReservedWrite.
	///
	Address int
}

func (f *Fault) Error() string {
	switch f.Err {
	case ErrMemoryBounds, ErrReservedWrite:
		return fmt.Sprintf("%v: address #%04X (pc #%04X, opcode #%04X)", f.Err, f.Address, f.PC, f.Opcode)
	case ErrUnknownOpcode:
		return fmt.Sprintf("%v: #%04X at #%04X", f.Err, f.Opcode, f.PC)
	}

	return fmt.Sprintf("%v (pc #%04X, opcode #%04X)", f.Err, f.PC, f.Opcode)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
