package cpu

// This file implements the 6502 operations that don't fit in the single
// line dispatch table in opcodes.go: arithmetic, shifts/rotates, compares,
// branches and the control-flow instructions (JSR/RTS/RTI/BRK).

// opADC implements addition with carry. On the NMOSRicoh variant (the
// NES's CPU) decimal mode is a documented no-op: the D flag can still be
// set and cleared by SED/CLD but is never consulted here, since that
// silicon has no BCD adjust hardware at all. The stock NMOS variant
// performs the decimal adjustment described below when D is set.
func (c *CPU) opADC(mode AddrMode) {
	fetched := c.fetch(mode)
	if c.variant == NMOS && c.flag(FlagDecimalMode) {
		c.adcDecimal(fetched)
		return
	}
	carry := uint16(0)
	if c.flag(FlagCarry) {
		carry = 1
	}
	temp := uint16(c.A) + uint16(fetched) + carry
	c.setFlag(FlagCarry, temp > 255)
	c.zeroCheck(uint8(temp & 0xFF))
	c.setFlag(FlagOverflow, (^(uint16(c.A)^uint16(fetched))&(uint16(c.A)^temp))&0x0080 != 0)
	c.negativeCheck(uint8(temp & 0xFF))
	c.A = uint8(temp & 0xFF)
}

// adcDecimal is the BCD form of ADC: each nibble of the sum is adjusted
// back into the 0-9 range independently, carrying into the next nibble on
// overflow. Zero and Overflow are still derived from the binary sum, the
// well known (if slightly eccentric) behavior of real NMOS 6502 decimal
// mode.
func (c *CPU) adcDecimal(fetched uint8) {
	carry := 0
	if c.flag(FlagCarry) {
		carry = 1
	}
	a, m := int(c.A), int(fetched)
	binSum := a + m + carry
	c.zeroCheck(uint8(binSum & 0xFF))
	c.setFlag(FlagOverflow, (^(a^m)&(a^binSum))&0x80 != 0)

	lo := (a & 0x0F) + (m & 0x0F) + carry
	hi := (a >> 4) + (m >> 4)
	if lo > 9 {
		lo += 6
		hi++
	}
	if hi > 9 {
		hi += 6
		c.setFlag(FlagCarry, true)
	} else {
		c.setFlag(FlagCarry, false)
	}
	result := uint8(((hi << 4) | (lo & 0x0F)) & 0xFF)
	c.negativeCheck(result)
	c.A = result
}

// opSBC implements subtraction with borrow as addition of the operand's
// one's complement, the standard 6502 identity. Decimal mode follows the
// same NMOS-only rule as opADC.
func (c *CPU) opSBC(mode AddrMode) {
	fetched := c.fetch(mode)
	if c.variant == NMOS && c.flag(FlagDecimalMode) {
		c.sbcDecimal(fetched)
		return
	}
	inverted := uint16(fetched) ^ 0x00FF
	carry := uint16(0)
	if c.flag(FlagCarry) {
		carry = 1
	}
	temp := uint16(c.A) + inverted + carry
	c.setFlag(FlagCarry, temp&0xFF00 != 0)
	c.zeroCheck(uint8(temp & 0xFF))
	c.setFlag(FlagOverflow, (temp^uint16(c.A))&(temp^inverted)&0x0080 != 0)
	c.negativeCheck(uint8(temp & 0xFF))
	c.A = uint8(temp & 0xFF)
}

// sbcDecimal is the BCD form of SBC. Carry/Overflow/Zero come from the
// binary difference exactly as real hardware derives them; only the
// stored result is nibble-adjusted.
func (c *CPU) sbcDecimal(fetched uint8) {
	carry := 0
	if c.flag(FlagCarry) {
		carry = 1
	}
	a, m := int(c.A), int(fetched)
	inverted := m ^ 0xFF
	binResult := a + inverted + carry
	c.setFlag(FlagCarry, binResult&0xFF00 != 0)
	c.setFlag(FlagOverflow, (binResult^a)&(binResult^inverted)&0x80 != 0)
	c.zeroCheck(uint8(binResult & 0xFF))

	lo := (a & 0x0F) - (m & 0x0F) - (1 - carry)
	hi := (a >> 4) - (m >> 4)
	if lo < 0 {
		lo -= 6
		hi--
	}
	if hi < 0 {
		hi -= 6
	}
	result := uint8(((hi << 4) | (lo & 0x0F)) & 0xFF)
	c.negativeCheck(result)
	c.A = result
}

func (c *CPU) opAND(mode AddrMode) {
	c.A &= c.fetch(mode)
	c.zeroCheck(c.A)
	c.negativeCheck(c.A)
}

func (c *CPU) opEOR(mode AddrMode) {
	c.A ^= c.fetch(mode)
	c.zeroCheck(c.A)
	c.negativeCheck(c.A)
}

func (c *CPU) opORA(mode AddrMode) {
	c.A |= c.fetch(mode)
	c.zeroCheck(c.A)
	c.negativeCheck(c.A)
}

// opBIT tests A against a memory operand without modifying A: Zero comes
// from the AND, while Overflow and Negative are copied straight from bits
// 6 and 7 of the operand itself.
func (c *CPU) opBIT(mode AddrMode) {
	fetched := c.fetch(mode)
	c.setFlag(FlagZero, c.A&fetched == 0)
	c.setFlag(FlagOverflow, fetched&0x40 != 0)
	c.setFlag(FlagNegative, fetched&0x80 != 0)
}

// opCompare implements CMP/CPX/CPY: reg minus the operand, flags set but
// the result discarded.
func (c *CPU) opCompare(reg uint8, mode AddrMode) {
	fetched := c.fetch(mode)
	temp := uint16(reg) - uint16(fetched)
	c.setFlag(FlagCarry, reg >= fetched)
	c.zeroCheck(uint8(temp & 0xFF))
	c.negativeCheck(uint8(temp & 0xFF))
}

// rmwOperand reads the value a shift/rotate instruction should operate on
// (A for Implied, the addressed byte otherwise) and returns a writeback
// function that stores the result back to the same place.
func (c *CPU) rmwOperand(mode AddrMode) (val uint8, writeback func(uint8)) {
	if mode == ModeImplied {
		return c.A, func(v uint8) { c.A = v }
	}
	val = c.fetch(mode)
	return val, func(v uint8) { c.bus.Write(c.addrAbs, v) }
}

func (c *CPU) opASL(mode AddrMode) {
	val, writeback := c.rmwOperand(mode)
	c.setFlag(FlagCarry, val&0x80 != 0)
	res := val << 1
	c.zeroCheck(res)
	c.negativeCheck(res)
	writeback(res)
}

func (c *CPU) opLSR(mode AddrMode) {
	val, writeback := c.rmwOperand(mode)
	c.setFlag(FlagCarry, val&0x01 != 0)
	res := val >> 1
	c.zeroCheck(res)
	c.negativeCheck(res)
	writeback(res)
}

func (c *CPU) opROL(mode AddrMode) {
	val, writeback := c.rmwOperand(mode)
	oldCarry := uint8(0)
	if c.flag(FlagCarry) {
		oldCarry = 1
	}
	c.setFlag(FlagCarry, val&0x80 != 0)
	res := val<<1 | oldCarry
	c.zeroCheck(res)
	c.negativeCheck(res)
	writeback(res)
}

func (c *CPU) opROR(mode AddrMode) {
	val, writeback := c.rmwOperand(mode)
	oldCarry := uint8(0)
	if c.flag(FlagCarry) {
		oldCarry = 0x80
	}
	c.setFlag(FlagCarry, val&0x01 != 0)
	res := val>>1 | oldCarry
	c.zeroCheck(res)
	c.negativeCheck(res)
	writeback(res)
}

func (c *CPU) opDEC(mode AddrMode) {
	val := c.fetch(mode) - 1
	c.zeroCheck(val)
	c.negativeCheck(val)
	c.bus.Write(c.addrAbs, val)
}

func (c *CPU) opINC(mode AddrMode) {
	val := c.fetch(mode) + 1
	c.zeroCheck(val)
	c.negativeCheck(val)
	c.bus.Write(c.addrAbs, val)
}

// opJSR pushes the address of the last byte of the JSR instruction (PC-1,
// since addrAbsolute already advanced PC past the two operand bytes) and
// jumps to addrAbs; RTS reverses this by pulling and adding one back.
func (c *CPU) opJSR() {
	c.pushWord(c.PC - 1)
	c.PC = c.addrAbs
}

// opBRK implements the software interrupt: the return address pushed is
// PC+1 (past BRK's padding byte), Break is set only in the pushed copy of
// P, and the interrupt vector is shared with IRQ.
func (c *CPU) opBRK() {
	c.PC++
	c.setFlag(FlagInterruptDisable, true)
	c.pushWord(c.PC)
	c.setFlag(FlagBreak, true)
	c.push(uint8(c.P))
	c.setFlag(FlagBreak, false)
	c.PC = c.readWordLE(IRQVector)
}

// opRTI is the mirror image of BRK/Irq/Nmi: pull P then PC. Break and
// Unused are cleared in the pulled P (Clock forces Unused back to 1 once
// this call returns).
func (c *CPU) opRTI() {
	c.P = Flag(c.pull()) &^ (FlagBreak | FlagUnused)
	c.PC = c.pullWord()
}

// branch implements the shared shape of every conditional branch: if cond
// holds, charge one cycle, compute the target from the already-resolved
// addrRel, charge a second cycle if that lands on a different page (the
// high byte comparison against PC, not the low byte — see SPEC_FULL.md
// §9 for the source revision that tested the wrong byte), then jump.
func (c *CPU) branch(cond bool) {
	if !cond {
		return
	}
	c.cyclesRemaining++
	target := c.PC + c.addrRel
	if target&0xFF00 != c.PC&0xFF00 {
		c.cyclesRemaining++
	}
	c.PC = target
}

func (c *CPU) opBCC() { c.branch(!c.flag(FlagCarry)) }
func (c *CPU) opBCS() { c.branch(c.flag(FlagCarry)) }
func (c *CPU) opBEQ() { c.branch(c.flag(FlagZero)) }
func (c *CPU) opBNE() { c.branch(!c.flag(FlagZero)) }
func (c *CPU) opBMI() { c.branch(c.flag(FlagNegative)) }
func (c *CPU) opBPL() { c.branch(!c.flag(FlagNegative)) }
func (c *CPU) opBVC() { c.branch(!c.flag(FlagOverflow)) }
func (c *CPU) opBVS() { c.branch(c.flag(FlagOverflow)) }
