package chip8

import "fmt"

/// String returns the assembly for a decoded instruction.
///
func (inst Instruction) String() string {
	x, y := inst.X, inst.Y

	switch inst.Op {
	case OpCLS:
		return "CLS"
	case OpRET:
		return "RET"
	case OpHIGH:
		return "HIGH"
	case OpJP:
		return fmt.Sprintf("JP     #%03X", inst.NNN)
	case OpCALL:
		return fmt.Sprintf("CALL   #%03X", inst.NNN)
	case OpSE:
		return fmt.Sprintf("SE     V%X, #%02X", x, inst.NN)
	case OpSNE:
		return fmt.Sprintf("SNE    V%X, #%02X", x, inst.NN)
	case OpSEXY:
		return fmt.Sprintf("SE     V%X, V%X", x, y)
	case OpLD:
		return fmt.Sprintf("LD     V%X, #%02X", x, inst.NN)
	case OpADD:
		return fmt.Sprintf("ADD    V%X, #%02X", x, inst.NN)
	case OpLDXY:
		return fmt.Sprintf("LD     V%X, V%X", x, y)
	case OpOR:
		return fmt.Sprintf("OR     V%X, V%X", x, y)
	case OpAND:
		return fmt.Sprintf("AND    V%X, V%X", x, y)
	case OpXOR:
		return fmt.Sprintf("XOR    V%X, V%X", x, y)
	case OpADDXY:
		return fmt.Sprintf("ADD    V%X, V%X", x, y)
	case OpSUB:
		return fmt.Sprintf("SUB    V%X, V%X", x, y)
	case OpSHR:
		return fmt.Sprintf("SHR    V%X", x)
	case OpSUBN:
		return fmt.Sprintf("SUBN   V%X, V%X", x, y)
	case OpSHL:
		return fmt.Sprintf("SHL    V%X", x)
	case OpSNEXY:
		return fmt.Sprintf("SNE    V%X, V%X", x, y)
	case OpLDI:
		return fmt.Sprintf("LD     I, #%03X", inst.NNN)
	case OpJPV0:
		return fmt.Sprintf("JP     V0, #%03X", inst.NNN)
	case OpRND:
		return fmt.Sprintf("RND    V%X, #%02X", x, inst.NN)
	case OpDRW:
		return fmt.Sprintf("DRW    V%X, V%X, %d", x, y, inst.N)
	case OpSKP:
		return fmt.Sprintf("SKP    V%X", x)
	case OpSKNP:
		return fmt.Sprintf("SKNP   V%X", x)
	case OpLDXDT:
		return fmt.Sprintf("LD     V%X, DT", x)
	case OpLDXK:
		return fmt.Sprintf("LD     V%X, K", x)
	case OpLDDTX:
		return fmt.Sprintf("LD     DT, V%X", x)
	case OpLDSTX:
		return fmt.Sprintf("LD     ST, V%X", x)
	case OpADDIX:
		return fmt.Sprintf("ADD    I, V%X", x)
	case OpLDF:
		return fmt.Sprintf("LD     F, V%X", x)
	case OpLDB:
		return fmt.Sprintf("LD     B, V%X", x)
	case OpSAVE:
		return fmt.Sprintf("LD     [I], V%X", x)
	case OpLOAD:
		return fmt.Sprintf("LD     V%X, [I]", x)
	}

	// unknown instruction
	return fmt.Sprintf("??     #%04X", inst.Opcode)
}

/// Disassemble the CHIP-8 instruction at address.
///
func (vm *CHIP_8) Disassemble(address uint16) string {
	i := int(address)

	if i >= len(vm.Memory)-1 {
		return ""
	}

	// fetch the instruction at this location
	inst, _ := Decode(uint16(vm.Memory[i])<<8 | uint16(vm.Memory[i+1]))

	return fmt.Sprintf("%04X - %s", address, inst)
}

/// Listing disassembles up to n instructions starting at address. It stops
/// after a jump, call or return, unless a skip before it could step over.
///
func (vm *CHIP_8) Listing(address uint16, n int) []string {
	var lines []string
	var skip bool

	for ; n > 0; n-- {
		s := vm.Disassemble(address)
		if s == "" {
			break
		}

		lines = append(lines, s)

		inst, _ := Decode(uint16(vm.Memory[address])<<8 | uint16(vm.Memory[address+1]))
		if inst.Redirects() && !skip {
			break
		}

		skip = inst.Skips()
		address += 2
	}

	return lines
}
