package chip8

import (
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/sirupsen/logrus"
)

// program assembles opcodes into a ROM image.
func program(opcodes ...uint16) []byte {
	rom := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		rom = append(rom, byte(op>>8), byte(op))
	}
	return rom
}

func testOptions() Options {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.TraceLevel)

	return Options{
		Rand: rand.New(rand.NewSource(1)),
		Log:  log,
	}
}

// newTestVM loads opcodes with per-tick timers and a fixed seed.
func newTestVM(t *testing.T, opcodes ...uint16) *CHIP_8 {
	t.Helper()

	vm, err := LoadROM(program(opcodes...), testOptions())
	assert.NoError(t, err)
	return vm
}

// run ticks n times, failing the test on any fault.
func run(t *testing.T, vm *CHIP_8, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		assert.NoError(t, vm.Tick())
	}
}

func TestNewIsReset(t *testing.T) {
	vm := New(Options{})

	assert.Equal(t, uint16(ProgramStart), vm.PC)
	assert.Equal(t, uint16(0), vm.I)
	assert.Equal(t, 0, vm.Stack.Len())
	assert.Equal(t, DefaultStackDepth, vm.Stack.Depth())
	assert.Equal(t, font[:], vm.Memory[:len(font)])
	assert.Equal(t, 0, vm.Video.Lit())
}

func TestLoadAndReset(t *testing.T) {
	vm := newTestVM(t, 0x6A42, 0xA123, 0x2300)
	vm.Memory[0x10] = 0xFF
	run(t, vm, 3)

	assert.Equal(t, uint16(0x300), vm.PC)
	assert.Equal(t, 1, vm.Stack.Len())

	vm.Reset()

	assert.Equal(t, uint16(ProgramStart), vm.PC)
	assert.Equal(t, byte(0), vm.V[0xA])
	assert.Equal(t, uint16(0), vm.I)
	assert.Equal(t, 0, vm.Stack.Len())
	assert.Equal(t, font[:], vm.Memory[:len(font)])

	// the program area is zeroed
	for i := ProgramStart; i < MemorySize; i++ {
		if vm.Memory[i] != 0 {
			t.Fatalf("memory #%04X not cleared", i)
		}
	}
}

func TestReboot(t *testing.T) {
	vm := newTestVM(t, 0x6A42, 0x1202)
	run(t, vm, 2)

	vm.Reboot()

	assert.Equal(t, uint16(ProgramStart), vm.PC)
	assert.Equal(t, byte(0), vm.V[0xA])
	assert.Equal(t, byte(0x6A), vm.Memory[ProgramStart])
	assert.Equal(t, byte(0x42), vm.Memory[ProgramStart+1])
}

func TestLoadTooLarge(t *testing.T) {
	vm := newTestVM(t, 0x6A42)
	run(t, vm, 1)

	err := vm.Load(make([]byte, MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrROMSize))

	// rejected before anything changed
	assert.Equal(t, byte(0x42), vm.V[0xA])
	assert.Equal(t, uint16(0x202), vm.PC)

	assert.NoError(t, vm.Load(make([]byte, MaxProgramSize)))
}

func TestKeyContract(t *testing.T) {
	vm := New(Options{})

	assert.True(t, errors.Is(vm.PressKey(16), ErrKeyRange))
	assert.True(t, errors.Is(vm.ReleaseKey(99), ErrKeyRange))
	assert.NoError(t, vm.PressKey(0xF))
	assert.True(t, vm.Keys.Status(0xF))
}

func TestRegisterContract(t *testing.T) {
	vm := New(Options{})

	assert.NoError(t, vm.SetRegister(3, 7))
	v, err := vm.Register(3)
	assert.NoError(t, err)
	assert.Equal(t, byte(7), v)

	assert.True(t, errors.Is(vm.SetRegister(16, 1), ErrRegister))
	_, err = vm.Register(16)
	assert.True(t, errors.Is(err, ErrRegister))
}

func TestUnknownOpcodeFault(t *testing.T) {
	vm := newTestVM(t, 0x6001, 0x5121)
	run(t, vm, 1)

	err := vm.Tick()

	var f *Fault
	assert.True(t, errors.As(err, &f))
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
	assert.Equal(t, uint16(0x5121), f.Opcode)
	assert.Equal(t, uint16(0x202), f.PC)

	// the machine stays halted on the same fault
	assert.Equal(t, uint16(0x202), vm.PC)
	assert.True(t, errors.Is(vm.Tick(), ErrUnknownOpcode))
	assert.True(t, vm.Fault() == f)

	vm.Reboot()
	assert.True(t, vm.Fault() == nil)
	assert.NoError(t, vm.Tick())
}

func TestFetchOutOfBounds(t *testing.T) {
	vm := newTestVM(t, 0x1FFF)
	run(t, vm, 1)

	err := vm.Tick()

	var f *Fault
	assert.True(t, errors.As(err, &f))
	assert.True(t, errors.Is(err, ErrMemoryBounds))
	assert.Equal(t, 0x1000, f.Address)
	assert.Equal(t, uint16(0xFFF), f.PC)
}

func TestFaultLeavesStateUntouched(t *testing.T) {
	// V0 = 3, DT = 3, I = #FFE, then store V0..V3 past the end of memory
	vm := newTestVM(t, 0x6003, 0xF015, 0xAFFE, 0xF355)
	run(t, vm, 3)

	before := vm.Save()
	err := vm.Tick()

	var f *Fault
	assert.True(t, errors.As(err, &f))
	assert.True(t, errors.Is(err, ErrMemoryBounds))
	assert.Equal(t, 0x1000, f.Address)
	assert.Equal(t, uint16(0xF355), f.Opcode)

	after := vm.Save()
	assert.Equal(t, before.Memory, after.Memory)
	assert.Equal(t, before.I, after.I)
	assert.Equal(t, before.PC, after.PC)
	assert.Equal(t, before.DT, after.DT)
	assert.Equal(t, before.Cycles, after.Cycles)
}

func TestStackOverflowFault(t *testing.T) {
	opts := testOptions()
	opts.StackDepth = 2

	// call itself forever
	vm, err := LoadROM(program(0x2200), opts)
	assert.NoError(t, err)
	run(t, vm, 2)

	err = vm.Tick()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, 2, vm.Stack.Len())
	assert.Equal(t, uint16(0x200), vm.PC)
}

func TestStackUnderflowFault(t *testing.T) {
	vm := newTestVM(t, 0x00EE)

	err := vm.Tick()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.False(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, uint16(0x200), vm.PC)
}

func TestTimersPerTick(t *testing.T) {
	// V0 = 3, DT = V0, ST = V0, then loop
	vm := newTestVM(t, 0x6003, 0xF015, 0xF018, 0x1206)

	run(t, vm, 2)
	assert.Equal(t, byte(2), vm.GetDelayTimer())

	run(t, vm, 1)
	assert.Equal(t, byte(1), vm.GetDelayTimer())
	assert.Equal(t, byte(2), vm.GetSoundTimer())

	run(t, vm, 5)
	assert.Equal(t, byte(0), vm.GetDelayTimer())
	assert.Equal(t, byte(0), vm.GetSoundTimer())
}

func TestTimersDecoupledFromClock(t *testing.T) {
	opts := testOptions()
	opts.ClockHz = 600
	opts.TimerHz = 60

	// V0 = 10, DT = V0, then loop
	vm, err := LoadROM(program(0x600A, 0xF015, 0x1204), opts)
	assert.NoError(t, err)

	// the timer was set on the second tick, then steps once per 10 ticks
	run(t, vm, 2)
	assert.Equal(t, byte(10), vm.DT)

	run(t, vm, 8)
	assert.Equal(t, byte(9), vm.DT)

	run(t, vm, 50)
	assert.Equal(t, byte(4), vm.DT)
}

func TestProcess(t *testing.T) {
	opts := testOptions()
	opts.ClockHz = 500

	vm, err := LoadROM(program(0x7001, 0x1200), opts)
	assert.NoError(t, err)

	n, err := vm.Process(10 * time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	// the remainder carries over
	n, err = vm.Process(time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = vm.Process(time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, int64(6), vm.Cycles)
}

func TestProcessStopsOnFault(t *testing.T) {
	vm := newTestVM(t, 0x6001, 0x0123)

	n, err := vm.Process(time.Second)
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
	assert.Equal(t, 1, n)
}

func TestScreenIsSnapshot(t *testing.T) {
	// draw digit 0 at 0, 0
	vm := newTestVM(t, 0xD005)
	run(t, vm, 1)

	screen := vm.Screen()
	assert.True(t, screen.Pixel(0, 0))

	vm.Video.Clear()
	assert.True(t, screen.Pixel(0, 0))
	assert.False(t, vm.Video.Pixel(0, 0))
}

func TestSetClockHz(t *testing.T) {
	opts := testOptions()
	opts.ClockHz = 500

	vm, err := LoadROM(program(0x1200), opts)
	assert.NoError(t, err)

	vm.SetClockHz(1000)
	vm.SetClockHz(0)
	assert.Equal(t, 1000, vm.ClockHz())

	n, err := vm.Process(10 * time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestFontIsCopy(t *testing.T) {
	f := Font()
	f[0] = 0x00

	vm := New(Options{})
	assert.Equal(t, byte(0xF0), vm.Memory[0])
	assert.Equal(t, byte(0xF0), Font()[0])
}
