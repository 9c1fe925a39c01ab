package chip8

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	/// MemorySize is the size of the CHIP-8 address space.
	///
	MemorySize = 0x1000

	/// ProgramStart is the address programs are loaded at and begin at.
	///
	ProgramStart = 0x200

	/// MaxProgramSize is the largest program that fits in memory.
	///
	MaxProgramSize = MemorySize - ProgramStart
)

/// CHIP_8 virtual machine emulator.
///
type CHIP_8 struct {
	/// Memory addressable by CHIP-8. The first 512 bytes are reserved
	/// for the font sprites.
	///
	Memory [MemorySize]byte

	/// Video memory for CHIP-8 (64x32 bits).
	///
	Video Framebuffer

	/// PC is the program counter. All programs begin at 0x200.
	///
	PC uint16

	/// I is the address register.
	///
	I uint16

	/// V are the 16 virtual registers. VF is also the carry, borrow and
	/// collision flag.
	///
	V [16]byte

	/// DT is the delay timer register.
	///
	DT byte

	/// ST is the sound timer register. A tone plays while it's non-zero.
	///
	ST byte

	/// Stack holds return addresses for CALL.
	///
	Stack *Stack

	/// Keys hold the current state for the 16-key pad keys.
	///
	Keys Keypad

	/// Cycles is how many ticks have been executed since reset.
	///
	Cycles int64

	/// rom is the last program loaded, kept so Reboot can reload it.
	///
	rom []byte

	/// jumped is set by any instruction that wrote PC this tick.
	///
	jumped bool

	/// waiting is true while a LD Vx, K is waiting for a key.
	///
	waiting bool

	/// fault is set once the machine halts.
	///
	fault *Fault

	/// timers count down at timerHz for every clockHz ticks, carrying
	/// the remainder in timerAcc. A zero clockHz counts every tick.
	///
	clockHz  int
	timerHz  int
	timerAcc int

	/// clock is wall time passed to Process not yet spent on ticks.
	///
	clock time.Duration

	random *rand.Rand
	log    *logrus.Entry
}

/// New returns a reset CHIP-8 virtual machine with no program loaded.
///
func New(opts Options) *CHIP_8 {
	opts = opts.normalize()

	vm := &CHIP_8{
		Stack:   NewStack(opts.StackDepth),
		clockHz: opts.ClockHz,
		timerHz: opts.TimerHz,
		random:  opts.Rand,
		log:     opts.Log.WithField("component", "chip8"),
	}

	vm.Reset()

	return vm
}

/// LoadROM returns a new CHIP-8 virtual machine with program loaded.
///
func LoadROM(program []byte, opts Options) (*CHIP_8, error) {
	vm := New(opts)

	if err := vm.Load(program); err != nil {
		return nil, err
	}

	return vm, nil
}

/// Reset the CHIP-8 virtual machine. Memory is cleared and the font is
/// reinstalled, so any loaded program is gone; see Reboot.
///
func (vm *CHIP_8) Reset() {
	vm.Memory = [MemorySize]byte{}

	// install the font sprites at the bottom of memory
	copy(vm.Memory[:], font[:])

	// reset video memory
	vm.Video.Clear()

	// reset keys
	vm.Keys.Reset()

	// reset program counter and stack
	vm.PC = ProgramStart
	vm.Stack.Reset()

	// reset address register
	vm.I = 0

	// reset virtual registers
	vm.V = [16]byte{}

	// reset timer registers
	vm.DT = 0
	vm.ST = 0
	vm.timerAcc = 0

	// reset the clock and cycles executed
	vm.clock = 0
	vm.Cycles = 0

	// not waiting for a key or halted
	vm.jumped = false
	vm.waiting = false
	vm.fault = nil

	vm.log.Debug("reset")
}

/// Load resets the virtual machine and copies program into memory at
/// 0x200. Programs that don't fit are rejected before anything changes.
///
func (vm *CHIP_8) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes", ErrROMSize, len(program))
	}

	vm.Reset()

	// copy the program into the CHIP-8
	copy(vm.Memory[ProgramStart:], program)

	// keep a pristine copy to reboot with
	vm.rom = append(vm.rom[:0], program...)

	vm.log.WithField("size", len(program)).Debug("program loaded")

	return nil
}

/// Reboot reloads the last program loaded.
///
func (vm *CHIP_8) Reboot() {
	// the rom was validated when it was first loaded
	_ = vm.Load(append([]byte(nil), vm.rom...))
}

/// PressKey emulates a CHIP-8 key being pressed.
///
func (vm *CHIP_8) PressKey(key uint) error {
	return vm.Keys.Press(key)
}

/// ReleaseKey emulates a CHIP-8 key being released.
///
func (vm *CHIP_8) ReleaseKey(key uint) error {
	return vm.Keys.Release(key)
}

/// GetDelayTimer returns the delay timer register.
///
func (vm *CHIP_8) GetDelayTimer() byte {
	return vm.DT
}

/// GetSoundTimer returns the sound timer register.
///
func (vm *CHIP_8) GetSoundTimer() byte {
	return vm.ST
}

/// GetResolution returns the width and height of the CHIP-8.
///
func (vm *CHIP_8) GetResolution() (uint, uint) {
	return Width, Height
}

/// Screen returns a snapshot of video memory.
///
func (vm *CHIP_8) Screen() Framebuffer {
	return vm.Video
}

/// Waiting is true while a LD Vx, K instruction is waiting for a key.
///
func (vm *CHIP_8) Waiting() bool {
	return vm.waiting
}

/// Fault returns the fault that halted the machine, or nil.
///
func (vm *CHIP_8) Fault() *Fault {
	return vm.fault
}

/// Register returns the value of Vx.
///
func (vm *CHIP_8) Register(x uint) (byte, error) {
	if x >= uint(len(vm.V)) {
		return 0, ErrRegister
	}

	return vm.V[x], nil
}

/// SetRegister sets the value of Vx.
///
func (vm *CHIP_8) SetRegister(x uint, b byte) error {
	if x >= uint(len(vm.V)) {
		return ErrRegister
	}

	vm.V[x] = b
	return nil
}

/// Process CHIP-8 emulation for a span of wall time. This will execute
/// ticks until the clock is caught up, or the machine faults. Returns the
/// number of ticks executed.
///
func (vm *CHIP_8) Process(elapsed time.Duration) (int, error) {
	hz := int64(vm.clockHz)
	if hz == 0 {
		hz = DefaultClockHz
	}

	vm.clock += elapsed

	// calculate how many cycles are owed, keeping the remainder
	count := int64(vm.clock) * hz / int64(time.Second)
	vm.clock -= time.Duration(count * int64(time.Second) / hz)

	n := 0
	for ; int64(n) < count; n++ {
		if err := vm.Tick(); err != nil {
			return n, err
		}
	}

	return n, nil
}

/// ClockHz returns the emulated clock speed. Zero means timers step once
/// per tick.
///
func (vm *CHIP_8) ClockHz() int {
	return vm.clockHz
}

/// SetClockHz changes the emulated clock speed. Timers keep counting at
/// the same rate in emulated time. A value of zero or less is ignored.
///
func (vm *CHIP_8) SetClockHz(hz int) {
	if hz <= 0 {
		return
	}

	vm.clockHz = hz
	vm.timerAcc %= hz

	vm.log.WithField("hz", hz).Debug("clock speed changed")
}

/// Tick executes a single instruction and then steps the timers. If the
/// instruction faults, nothing is changed and the machine halts.
///
func (vm *CHIP_8) Tick() error {
	if vm.fault != nil {
		return vm.fault
	}

	opcode, err := vm.fetch()
	if err != nil {
		return vm.halt(err, 0)
	}

	// instruction decoding
	inst, ok := Decode(opcode)
	if !ok {
		return vm.halt(ErrUnknownOpcode, opcode)
	}

	if vm.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		vm.log.WithField("pc", fmt.Sprintf("#%04X", vm.PC)).Trace(inst.String())
	}

	if err := vm.Exec(inst); err != nil {
		return vm.halt(err, opcode)
	}

	vm.stepTimers()

	// increment the cycle count
	vm.Cycles += 1

	return nil
}

/// Exec applies a decoded instruction to the machine, including the
/// default advance of PC. All bounds are checked before any state is
/// changed; on error the machine is untouched.
///
func (vm *CHIP_8) Exec(inst Instruction) error {
	vm.jumped = false

	if err := vm.exec(inst); err != nil {
		return err
	}

	// advance the program counter unless control flow was handled
	if !vm.jumped {
		vm.PC += 2
	}

	return nil
}

/// Fetch the next 16-bit instruction to execute.
///
func (vm *CHIP_8) fetch() (uint16, error) {
	i := int(vm.PC)

	if err := checkRange(i, 2); err != nil {
		return 0, err
	}

	// return the 16-bit instruction
	return uint16(vm.Memory[i])<<8 | uint16(vm.Memory[i+1]), nil
}

/// stepTimers counts the delay and sound timers down toward zero.
///
func (vm *CHIP_8) stepTimers() {
	steps := 1

	if vm.clockHz > 0 {
		vm.timerAcc += vm.timerHz

		// carry the remainder into the next tick
		steps = vm.timerAcc / vm.clockHz
		vm.timerAcc %= vm.clockHz
	}

	for ; steps > 0; steps-- {
		if vm.DT > 0 {
			vm.DT--
		}
		if vm.ST > 0 {
			vm.ST--
		}
	}
}

/// halt records a fault at the current PC and returns it.
///
func (vm *CHIP_8) halt(err error, opcode uint16) error {
	f := &Fault{}

	if !errors.As(err, &f) {
		f = &Fault{Err: err}
	}

	f.PC = vm.PC
	f.Opcode = opcode

	vm.fault = f

	vm.log.WithFields(logrus.Fields{
		"pc":     fmt.Sprintf("#%04X", f.PC),
		"opcode": fmt.Sprintf("#%04X", f.Opcode),
		"cycles": vm.Cycles,
	}).WithError(f.Err).Error("halted")

	return f
}

/// checkRange returns a memory fault unless n bytes at address are all
/// within the address space.
///
func checkRange(address, n int) error {
	if address+n > MemorySize {
		bad := address
		if bad < MemorySize {
			bad = MemorySize
		}

		return &Fault{Err: ErrMemoryBounds, Address: bad}
	}

	return nil
}

/// checkWrite is checkRange for stores, which must also stay out of the
/// font and interpreter area below ProgramStart.
///
func checkWrite(address, n int) error {
	if address < ProgramStart {
		return &Fault{Err: ErrReservedWrite, Address: address}
	}

	return checkRange(address, n)
}
