package disassemble_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hex2bit/go6502/disassemble"
	"github.com/hex2bit/go6502/internal/asm"
	"github.com/hex2bit/go6502/memory"
)

func newLoadedRAM(t *testing.T, addr uint16, program []byte) memory.Bus {
	t.Helper()
	bus, err := memory.NewRAM(1 << 16)
	require.NoError(t, err)
	bus.PowerOn()
	for i, b := range program {
		bus.Write(addr+uint16(i), b)
	}
	return bus
}

func TestStepImmediate(t *testing.T) {
	program, err := asm.Assemble("LDA #$42")
	require.NoError(t, err)
	bus := newLoadedRAM(t, 0x8000, program)

	text, width := disassemble.Step(0x8000, bus)
	require.Equal(t, 2, width)
	require.Equal(t, "$8000: LDA #$42 {IMM}", text)
}

func TestStepAbsoluteIndexed(t *testing.T) {
	program, err := asm.Assemble("STA $1234,X")
	require.NoError(t, err)
	bus := newLoadedRAM(t, 0x9000, program)

	text, width := disassemble.Step(0x9000, bus)
	require.Equal(t, 3, width)
	require.Equal(t, "$9000: STA $1234,X {ABX}", text)
}

func TestStepIndirectForms(t *testing.T) {
	ix, err := asm.Assemble("LDA ($42,X)")
	require.NoError(t, err)
	bus := newLoadedRAM(t, 0x8000, ix)
	text, _ := disassemble.Step(0x8000, bus)
	require.Equal(t, "$8000: LDA ($42,X) {IZX}", text)

	iy, err := asm.Assemble("LDA ($42),Y")
	require.NoError(t, err)
	bus = newLoadedRAM(t, 0x8000, iy)
	text, _ = disassemble.Step(0x8000, bus)
	require.Equal(t, "$8000: LDA ($42),Y {IZY}", text)
}

func TestStepRelativeShowsComputedTarget(t *testing.T) {
	program, err := asm.Assemble("BEQ $02")
	require.NoError(t, err)
	bus := newLoadedRAM(t, 0x8000, program)

	text, width := disassemble.Step(0x8000, bus)
	require.Equal(t, 2, width)
	require.Equal(t, "$8000: BEQ $02 [$8004] {REL}", text)
}

func TestDisassembleWalksMultipleInstructions(t *testing.T) {
	program, err := asm.Assemble("LDA #$01\nSTA $10\nNOP")
	require.NoError(t, err)
	bus := newLoadedRAM(t, 0x8000, program)

	listing := disassemble.Disassemble(0x8000, 0x8000+uint16(len(program))-1, bus)
	require.Len(t, listing, 3)
	require.Equal(t, "$8000: LDA #$01 {IMM}", listing[0x8000])
	require.Equal(t, "$8002: STA $10 {ZP0}", listing[0x8002])
	require.Equal(t, "$8004: NOP {IMP}", listing[0x8004])
}
