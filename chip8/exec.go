package chip8

/// exec dispatches a decoded instruction to its handler.
///
func (vm *CHIP_8) exec(inst Instruction) error {
	x, y := uint(inst.X), uint(inst.Y)

	switch inst.Op {
	case OpCLS:
		vm.cls()
	case OpRET:
		return vm.ret()
	case OpHIGH:
		vm.high()
	case OpJP:
		vm.jump(inst.NNN)
	case OpCALL:
		return vm.call(inst.NNN)
	case OpSE:
		vm.skipIf(x, inst.NN)
	case OpSNE:
		vm.skipIfNot(x, inst.NN)
	case OpSEXY:
		vm.skipIfXY(x, y)
	case OpLD:
		vm.loadX(x, inst.NN)
	case OpADD:
		vm.addX(x, inst.NN)
	case OpLDXY:
		vm.loadXY(x, y)
	case OpOR:
		vm.or(x, y)
	case OpAND:
		vm.and(x, y)
	case OpXOR:
		vm.xor(x, y)
	case OpADDXY:
		vm.addXY(x, y)
	case OpSUB:
		vm.subXY(x, y)
	case OpSHR:
		vm.shr(x)
	case OpSUBN:
		vm.subYX(x, y)
	case OpSHL:
		vm.shl(x)
	case OpSNEXY:
		vm.skipIfNotXY(x, y)
	case OpLDI:
		vm.loadI(inst.NNN)
	case OpJPV0:
		vm.jumpV0(inst.NNN)
	case OpRND:
		vm.rnd(x, inst.NN)
	case OpDRW:
		return vm.drw(x, y, inst.N)
	case OpSKP:
		vm.skipIfPressed(x)
	case OpSKNP:
		vm.skipIfNotPressed(x)
	case OpLDXDT:
		vm.loadXDT(x)
	case OpLDXK:
		vm.loadXK(x)
	case OpLDDTX:
		vm.loadDTX(x)
	case OpLDSTX:
		vm.loadSTX(x)
	case OpADDIX:
		vm.addIX(x)
	case OpLDF:
		vm.loadF(x)
	case OpLDB:
		return vm.loadB(x)
	case OpSAVE:
		return vm.saveRegs(x)
	case OpLOAD:
		return vm.loadRegs(x)
	default:
		return ErrUnknownOpcode
	}

	return nil
}

/// Clear the video display memory.
///
func (vm *CHIP_8) cls() {
	vm.Video.Clear()
}

/// call a subroutine at address.
///
func (vm *CHIP_8) call(address uint16) error {
	if err := vm.Stack.Push(vm.PC + 2); err != nil {
		return err
	}

	// jump to address
	vm.jump(address)

	return nil
}

/// return from subroutine.
///
func (vm *CHIP_8) ret() error {
	address, err := vm.Stack.Pop()
	if err != nil {
		return err
	}

	// restore program counter
	vm.jump(address)

	return nil
}

/// set high res mode. Only acknowledged; the display stays 64x32.
///
func (vm *CHIP_8) high() {
	vm.log.Debug("ignoring high resolution mode")
}

/// jump to address.
///
func (vm *CHIP_8) jump(address uint16) {
	vm.PC = address
	vm.jumped = true
}

/// jump to address + v0.
///
func (vm *CHIP_8) jumpV0(address uint16) {
	vm.jump(address + uint16(vm.V[0]))
}

/// skip the next instruction if cond is true.
///
func (vm *CHIP_8) skip(cond bool) {
	if cond {
		vm.jump(vm.PC + 4)
	}
}

/// skip next instruction if vx == n.
///
func (vm *CHIP_8) skipIf(x uint, b byte) {
	vm.skip(vm.V[x] == b)
}

/// skip next instruction if vx != n.
///
func (vm *CHIP_8) skipIfNot(x uint, b byte) {
	vm.skip(vm.V[x] != b)
}

/// skip next instruction if vx == vy.
///
func (vm *CHIP_8) skipIfXY(x, y uint) {
	vm.skip(vm.V[x] == vm.V[y])
}

/// skip next instruction if vx != vy.
///
func (vm *CHIP_8) skipIfNotXY(x, y uint) {
	vm.skip(vm.V[x] != vm.V[y])
}

/// skip next instruction if key(vx) is pressed.
///
func (vm *CHIP_8) skipIfPressed(x uint) {
	vm.skip(vm.Keys.Status(uint(vm.V[x] & 0xF)))
}

/// skip next instruction if key(vx) is not pressed.
///
func (vm *CHIP_8) skipIfNotPressed(x uint) {
	vm.skip(!vm.Keys.Status(uint(vm.V[x] & 0xF)))
}

/// load n into vx.
///
func (vm *CHIP_8) loadX(x uint, b byte) {
	vm.V[x] = b
}

/// load y into vx.
///
func (vm *CHIP_8) loadXY(x, y uint) {
	vm.V[x] = vm.V[y]
}

/// load delay timer into vx.
///
func (vm *CHIP_8) loadXDT(x uint) {
	vm.V[x] = vm.DT
}

/// load vx into delay timer.
///
func (vm *CHIP_8) loadDTX(x uint) {
	vm.DT = vm.V[x]
}

/// load vx into sound timer.
///
func (vm *CHIP_8) loadSTX(x uint) {
	vm.ST = vm.V[x]
}

/// load vx with next key hit. Until a key is down the same instruction
/// is fetched again on the next tick.
///
func (vm *CHIP_8) loadXK(x uint) {
	key, ok := vm.Keys.FirstPressed()
	if !ok {
		vm.waiting = true

		// stay on this instruction
		vm.jumped = true
		return
	}

	vm.waiting = false
	vm.V[x] = key
}

/// load address register.
///
func (vm *CHIP_8) loadI(address uint16) {
	vm.I = address
}

/// load address with BCD of vx.
///
func (vm *CHIP_8) loadB(x uint) error {
	i := int(vm.I)

	if err := checkWrite(i, 3); err != nil {
		return err
	}

	n := vm.V[x]

	// write to memory
	vm.Memory[i+0] = n / 100
	vm.Memory[i+1] = n / 10 % 10
	vm.Memory[i+2] = n % 10

	return nil
}

/// load font sprite for vx into I.
///
func (vm *CHIP_8) loadF(x uint) {
	vm.I = uint16(vm.V[x]) * FontSize
}

/// or vx with vy into vx.
///
func (vm *CHIP_8) or(x, y uint) {
	vm.V[x] |= vm.V[y]
}

/// and vx with vy into vx.
///
func (vm *CHIP_8) and(x, y uint) {
	vm.V[x] &= vm.V[y]
}

/// xor vx with vy into vx.
///
func (vm *CHIP_8) xor(x, y uint) {
	vm.V[x] ^= vm.V[y]
}

/// shl vx 1 bit, set carry to MSB of vx before shift.
///
func (vm *CHIP_8) shl(x uint) {
	carry := vm.V[x] >> 7

	vm.V[x] <<= 1
	vm.V[0xF] = carry
}

/// shr vx 1 bit, set carry to LSB of vx before shift.
///
func (vm *CHIP_8) shr(x uint) {
	carry := vm.V[x] & 1

	vm.V[x] >>= 1
	vm.V[0xF] = carry
}

/// add n to vx. The carry flag is untouched.
///
func (vm *CHIP_8) addX(x uint, b byte) {
	vm.V[x] += b
}

/// add vy to vx and set carry.
///
func (vm *CHIP_8) addXY(x, y uint) {
	sum := uint(vm.V[x]) + uint(vm.V[y])

	vm.V[x] = byte(sum)
	vm.V[0xF] = flag(sum > 0xFF)
}

/// add vx to i, set carry if i leaves the address space.
///
func (vm *CHIP_8) addIX(x uint) {
	vm.I += uint16(vm.V[x])
	vm.V[0xF] = flag(vm.I > 0xFFF)
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *CHIP_8) subXY(x, y uint) {
	carry := flag(vm.V[x] >= vm.V[y])

	vm.V[x] -= vm.V[y]
	vm.V[0xF] = carry
}

/// subtract vx from vy and store in vx, set carry if no borrow.
///
func (vm *CHIP_8) subYX(x, y uint) {
	carry := flag(vm.V[y] >= vm.V[x])

	vm.V[x] = vm.V[y] - vm.V[x]
	vm.V[0xF] = carry
}

/// load a random number & n into vx.
///
func (vm *CHIP_8) rnd(x uint, b byte) {
	vm.V[x] = byte(vm.random.Intn(0x100)) & b
}

/// draw a sprite at I to video memory at vx, vy.
///
func (vm *CHIP_8) drw(x, y uint, n byte) error {
	i := int(vm.I)

	if err := checkRange(i, int(n)); err != nil {
		return err
	}

	c := vm.Video.DrawSprite(uint(vm.V[x]), uint(vm.V[y]), vm.Memory[i:i+int(n)])

	// set carry flag if any collision occurred
	vm.V[0xF] = flag(c)

	return nil
}

/// save registers v0..vx to I.
///
func (vm *CHIP_8) saveRegs(x uint) error {
	i := int(vm.I)

	if err := checkWrite(i, int(x)+1); err != nil {
		return err
	}

	copy(vm.Memory[i:], vm.V[:x+1])

	vm.I += uint16(x) + 1

	return nil
}

/// load registers v0..vx from I.
///
func (vm *CHIP_8) loadRegs(x uint) error {
	i := int(vm.I)

	if err := checkRange(i, int(x)+1); err != nil {
		return err
	}

	copy(vm.V[:x+1], vm.Memory[i:])

	vm.I += uint16(x) + 1

	return nil
}

/// flag converts a condition to a VF value.
///
func flag(b bool) byte {
	if b {
		return 1
	}

	return 0
}
