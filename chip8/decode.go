package chip8

/// Op identifies a decoded instruction.
///
type Op uint8

/// Instruction mnemonics. Names follow Cowgod's reference, with a suffix
/// where a mnemonic is overloaded by operand kind.
///
const (
	OpInvalid Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpHIGH       // 00FF
	OpJP         // 1NNN
	OpCALL       // 2NNN
	OpSE         // 3XNN
	OpSNE        // 4XNN
	OpSEXY       // 5XY0
	OpLD         // 6XNN
	OpADD        // 7XNN
	OpLDXY       // 8XY0
	OpOR         // 8XY1
	OpAND        // 8XY2
	OpXOR        // 8XY3
	OpADDXY      // 8XY4
	OpSUB        // 8XY5
	OpSHR        // 8XY6
	OpSUBN       // 8XY7
	OpSHL        // 8XYE
	OpSNEXY      // 9XY0
	OpLDI        // ANNN
	OpJPV0       // BNNN
	OpRND        // CXNN
	OpDRW        // DXYN
	OpSKP        // EX9E
	OpSKNP       // EXA1
	OpLDXDT      // FX07
	OpLDXK       // FX0A
	OpLDDTX      // FX15
	OpLDSTX      // FX18
	OpADDIX      // FX1E
	OpLDF        // FX29
	OpLDB        // FX33
	OpSAVE       // FX55
	OpLOAD       // FX65
)

/// Instruction is a decoded opcode and its operand fields.
///
type Instruction struct {
	Op     Op
	Opcode uint16

	/// X and Y are register operands.
	///
	X, Y uint8

	/// N is the low nibble, NN the low byte and NNN the 12-bit address.
	///
	N   uint8
	NN  uint8
	NNN uint16
}

/// Decode an opcode. The second return is false if the opcode matches no
/// instruction; the operand fields are filled in either way.
///
func Decode(opcode uint16) (Instruction, bool) {
	inst := Instruction{
		Opcode: opcode,
		X:      uint8(opcode >> 8 & 0xF),
		Y:      uint8(opcode >> 4 & 0xF),
		N:      uint8(opcode & 0xF),
		NN:     uint8(opcode & 0xFF),
		NNN:    opcode & 0xFFF,
	}

	inst.Op = decodeOp(opcode, inst.N, inst.NN)

	return inst, inst.Op != OpInvalid
}

/// decodeOp dispatches on the high nibble, then the low nibble or byte
/// for the overloaded families.
///
func decodeOp(opcode uint16, n, nn uint8) Op {
	switch opcode >> 12 {
	case 0x0:
		switch opcode {
		case 0x00E0:
			return OpCLS
		case 0x00EE:
			return OpRET
		case 0x00FF:
			return OpHIGH
		}
	case 0x1:
		return OpJP
	case 0x2:
		return OpCALL
	case 0x3:
		return OpSE
	case 0x4:
		return OpSNE
	case 0x5:
		if n == 0 {
			return OpSEXY
		}
	case 0x6:
		return OpLD
	case 0x7:
		return OpADD
	case 0x8:
		switch n {
		case 0x0:
			return OpLDXY
		case 0x1:
			return OpOR
		case 0x2:
			return OpAND
		case 0x3:
			return OpXOR
		case 0x4:
			return OpADDXY
		case 0x5:
			return OpSUB
		case 0x6:
			return OpSHR
		case 0x7:
			return OpSUBN
		case 0xE:
			return OpSHL
		}
	case 0x9:
		if n == 0 {
			return OpSNEXY
		}
	case 0xA:
		return OpLDI
	case 0xB:
		return OpJPV0
	case 0xC:
		return OpRND
	case 0xD:
		return OpDRW
	case 0xE:
		switch nn {
		case 0x9E:
			return OpSKP
		case 0xA1:
			return OpSKNP
		}
	case 0xF:
		switch nn {
		case 0x07:
			return OpLDXDT
		case 0x0A:
			return OpLDXK
		case 0x15:
			return OpLDDTX
		case 0x18:
			return OpLDSTX
		case 0x1E:
			return OpADDIX
		case 0x29:
			return OpLDF
		case 0x33:
			return OpLDB
		case 0x55:
			return OpSAVE
		case 0x65:
			return OpLOAD
		}
	}

	return OpInvalid
}

/// Redirects is true for instructions that always write PC themselves.
///
func (inst Instruction) Redirects() bool {
	switch inst.Op {
	case OpRET, OpJP, OpCALL, OpJPV0:
		return true
	}

	return false
}

/// Skips is true for the conditional skip instructions.
///
func (inst Instruction) Skips() bool {
	switch inst.Op {
	case OpSE, OpSNE, OpSEXY, OpSNEXY, OpSKP, OpSKNP:
		return true
	}

	return false
}
