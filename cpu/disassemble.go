package cpu

import (
	"fmt"

	"github.com/hex2bit/go6502/memory"
)

// Disassemble renders every instruction starting at an address between
// start and stop (inclusive of start, bounded by stop) into a map from
// that address to its textual form. It reads through the CPU's own bus
// and never mutates it: every read goes through Read(addr, readonly=true).
//
// Disassembling a live CPU's own bus and disassembling an arbitrary
// memory image (the disassemble package's use case, for tooling that has
// no CPU instance at all) are the same operation; both funnel through
// FormatInstruction so the opcode-to-text rendering exists exactly once.
func (c *CPU) Disassemble(start, stop uint16) map[uint16]string {
	return disassembleRange(start, stop, c.bus)
}

// disassembleRange is the shared walk used by CPU.Disassemble and by the
// disassemble package's Disassemble.
func disassembleRange(start, stop uint16, bus memory.Bus) map[uint16]string {
	out := make(map[uint16]string)
	addr := start
	for {
		text, width := FormatInstruction(addr, bus)
		out[addr] = text
		next := addr + uint16(width)
		if next <= addr || next > stop {
			break
		}
		addr = next
	}
	return out
}

// FormatInstruction renders the single instruction at addr read from bus
// and returns the rendered text alongside how many bytes (1-3) it
// occupies. It is exported so packages with no CPU instance at all (the
// disassemble package, built for tooling that only has a raw memory
// image) can describe a program the same way a live CPU's own
// Disassemble method does, without a second copy of the opcode-to-text
// switch.
func FormatInstruction(addr uint16, bus memory.Bus) (string, int) {
	opcode := bus.Read(addr, true)
	entry := Lookup(opcode)

	width := operandWidth(entry.Mode)
	var b1, b2 uint8
	if width >= 1 {
		b1 = bus.Read(addr+1, true)
	}
	if width >= 2 {
		b2 = bus.Read(addr+2, true)
	}

	operand := formatOperand(entry.Mode, addr, b1, b2)
	text := fmt.Sprintf("$%04X: %s %s{%s}", addr, entry.Kind, operand, entry.Mode)
	return text, width + 1
}

// operandWidth returns how many operand bytes follow the opcode byte for
// mode: 0 for modes with no operand, 1 for single-byte operands, 2 for
// the two 16-bit addressing modes.
func operandWidth(mode AddrMode) int {
	switch mode {
	case ModeImplied:
		return 0
	case ModeAbsolute, ModeAbsoluteX, ModeAbsoluteY, ModeIndirect:
		return 2
	default:
		return 1
	}
}

// formatOperand renders the operand in canonical 6502 assembly syntax for
// mode. addr is the address of the opcode byte itself, needed to compute
// the absolute target of a relative branch.
func formatOperand(mode AddrMode, addr uint16, b1, b2 uint8) string {
	switch mode {
	case ModeImplied:
		return ""
	case ModeImmediate:
		return fmt.Sprintf("#$%02X ", b1)
	case ModeZeroPage:
		return fmt.Sprintf("$%02X ", b1)
	case ModeZeroPageX:
		return fmt.Sprintf("$%02X,X ", b1)
	case ModeZeroPageY:
		return fmt.Sprintf("$%02X,Y ", b1)
	case ModeIndirectX:
		return fmt.Sprintf("($%02X,X) ", b1)
	case ModeIndirectY:
		return fmt.Sprintf("($%02X),Y ", b1)
	case ModeAbsolute:
		return fmt.Sprintf("$%02X%02X ", b2, b1)
	case ModeAbsoluteX:
		return fmt.Sprintf("$%02X%02X,X ", b2, b1)
	case ModeAbsoluteY:
		return fmt.Sprintf("$%02X%02X,Y ", b2, b1)
	case ModeIndirect:
		return fmt.Sprintf("($%02X%02X) ", b2, b1)
	case ModeRelative:
		rel := uint16(b1)
		if rel&0x80 != 0 {
			rel |= 0xFF00
		}
		target := addr + 2 + rel
		return fmt.Sprintf("$%02X [$%04X] ", b1, target)
	default:
		return ""
	}
}
