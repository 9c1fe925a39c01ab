package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeFields(t *testing.T) {
	inst, ok := Decode(0xD7A3)
	assert.True(t, ok)
	assert.Equal(t, OpDRW, inst.Op)
	assert.Equal(t, uint16(0xD7A3), inst.Opcode)
	assert.Equal(t, uint8(0x7), inst.X)
	assert.Equal(t, uint8(0xA), inst.Y)
	assert.Equal(t, uint8(0x3), inst.N)
	assert.Equal(t, uint8(0xA3), inst.NN)
	assert.Equal(t, uint16(0x7A3), inst.NNN)
}

func TestDecodeOps(t *testing.T) {
	tests := []struct {
		opcode uint16
		op     Op
	}{
		{0x00E0, OpCLS},
		{0x00EE, OpRET},
		{0x00FF, OpHIGH},
		{0x1234, OpJP},
		{0x2234, OpCALL},
		{0x3A12, OpSE},
		{0x4A12, OpSNE},
		{0x5AB0, OpSEXY},
		{0x6A12, OpLD},
		{0x7A12, OpADD},
		{0x8AB0, OpLDXY},
		{0x8AB1, OpOR},
		{0x8AB2, OpAND},
		{0x8AB3, OpXOR},
		{0x8AB4, OpADDXY},
		{0x8AB5, OpSUB},
		{0x8AB6, OpSHR},
		{0x8AB7, OpSUBN},
		{0x8ABE, OpSHL},
		{0x9AB0, OpSNEXY},
		{0xA123, OpLDI},
		{0xB123, OpJPV0},
		{0xCA12, OpRND},
		{0xDAB5, OpDRW},
		{0xEA9E, OpSKP},
		{0xEAA1, OpSKNP},
		{0xFA07, OpLDXDT},
		{0xFA0A, OpLDXK},
		{0xFA15, OpLDDTX},
		{0xFA18, OpLDSTX},
		{0xFA1E, OpADDIX},
		{0xFA29, OpLDF},
		{0xFA33, OpLDB},
		{0xFA55, OpSAVE},
		{0xFA65, OpLOAD},
	}

	for _, tt := range tests {
		inst, ok := Decode(tt.opcode)
		assert.True(t, ok)
		assert.Equal(t, tt.op, inst.Op)
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, opcode := range []uint16{
		0x0000, 0x0123, 0x00E1, 0x00FE,
		0x5AB1, 0x9ABF,
		0x8AB8, 0x8ABF,
		0xEA9F, 0xEA00,
		0xFA00, 0xFA75, 0xFAFF,
	} {
		inst, ok := Decode(opcode)
		assert.False(t, ok)
		assert.Equal(t, OpInvalid, inst.Op)
	}
}

func TestControlFlowClasses(t *testing.T) {
	jp, _ := Decode(0x1200)
	assert.True(t, jp.Redirects())
	assert.False(t, jp.Skips())

	se, _ := Decode(0x3000)
	assert.False(t, se.Redirects())
	assert.True(t, se.Skips())

	ld, _ := Decode(0x6000)
	assert.False(t, ld.Redirects())
	assert.False(t, ld.Skips())
}
