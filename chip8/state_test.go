package chip8

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSaveRestore(t *testing.T) {
	// V1 = 7, CALL 208, ..., 208: DRW then loop
	vm := newTestVM(t, 0x6107, 0x2208, 0x0000, 0x0000, 0xD015, 0x120A)
	run(t, vm, 3)

	saved := vm.Save()

	run(t, vm, 4)
	vm.V[1] = 0
	vm.Video.Clear()

	assert.NoError(t, vm.Restore(saved))
	assert.Equal(t, byte(7), vm.V[1])
	assert.Equal(t, uint16(0x20A), vm.PC)
	assert.Equal(t, []uint16{0x204}, vm.Stack.Addresses())
	assert.Equal(t, saved.Video, vm.Video)
	assert.Equal(t, int64(3), vm.Cycles)
}

func TestRestoreClearsFault(t *testing.T) {
	vm := newTestVM(t, 0x6101, 0x0123)
	saved := vm.Save()

	run(t, vm, 1)
	assert.True(t, errors.Is(vm.Tick(), ErrUnknownOpcode))

	assert.NoError(t, vm.Restore(saved))
	assert.True(t, vm.Fault() == nil)
	assert.NoError(t, vm.Tick())
}

func TestRestoreDeepStackRejected(t *testing.T) {
	opts := testOptions()
	opts.StackDepth = 1

	vm := New(opts)
	vm.V[3] = 3

	err := vm.Restore(State{Stack: []uint16{1, 2}, PC: 0x300})
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, uint16(ProgramStart), vm.PC)
	assert.Equal(t, byte(3), vm.V[3])
}

func TestStateEncoding(t *testing.T) {
	vm := newTestVM(t, 0x6A42, 0xA300, 0xFA33, 0x2300)
	run(t, vm, 4)

	var buf bytes.Buffer
	assert.NoError(t, WriteState(&buf, vm.Save()))

	s, err := ReadState(&buf)
	assert.NoError(t, err)

	other := New(testOptions())
	assert.NoError(t, other.Restore(s))

	assert.Equal(t, vm.Memory, other.Memory)
	assert.Equal(t, vm.V, other.V)
	assert.Equal(t, vm.PC, other.PC)
	assert.Equal(t, vm.I, other.I)
	assert.Equal(t, vm.Stack.Addresses(), other.Stack.Addresses())

	// the restored program reboots
	other.Reboot()
	assert.Equal(t, byte(0x6A), other.Memory[ProgramStart])
}

func TestReadStateGarbage(t *testing.T) {
	_, err := ReadState(bytes.NewReader([]byte("not a state")))
	assert.True(t, err != nil)
}
