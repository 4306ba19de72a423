// Package disassemble renders 6502 machine code as text for tooling that
// has no CPU instance at all (notably cmd/disasm) — just a memory.Bus
// holding a program image. It is a thin wrapper around
// cpu.FormatInstruction, the same rendering a live CPU's own
// CPU.Disassemble method uses, so the mnemonic/operand/mode-tag format is
// defined exactly once regardless of which entry point is used.
package disassemble

import (
	"github.com/hex2bit/go6502/cpu"
	"github.com/hex2bit/go6502/memory"
)

// Step disassembles the single instruction at pc and returns its text
// along with the number of bytes it occupies, so callers can advance pc
// by the returned width to reach the next instruction.
func Step(pc uint16, bus memory.Bus) (string, int) {
	return cpu.FormatInstruction(pc, bus)
}

// Disassemble renders every instruction between start and stop
// (inclusive) into a map keyed by the address of its first byte.
func Disassemble(start, stop uint16, bus memory.Bus) map[uint16]string {
	out := make(map[uint16]string)
	addr := start
	for {
		text, width := Step(addr, bus)
		out[addr] = text
		next := addr + uint16(width)
		if next <= addr || next > stop {
			break
		}
		addr = next
	}
	return out
}
