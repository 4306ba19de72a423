package cpu

// resolveAddr dispatches to the resolver for mode, returning 1 if the
// effective address is a page-cross candidate the clock combiner should
// consider, 0 otherwise.
func (c *CPU) resolveAddr(mode AddrMode) uint8 {
	switch mode {
	case ModeImplied:
		return c.addrImplied()
	case ModeImmediate:
		return c.addrImmediate()
	case ModeZeroPage:
		return c.addrZeroPage()
	case ModeZeroPageX:
		return c.addrZeroPageIndexed(c.X)
	case ModeZeroPageY:
		return c.addrZeroPageIndexed(c.Y)
	case ModeRelative:
		return c.addrRelative()
	case ModeAbsolute:
		return c.addrAbsolute()
	case ModeAbsoluteX:
		return c.addrAbsoluteIndexed(c.X)
	case ModeAbsoluteY:
		return c.addrAbsoluteIndexed(c.Y)
	case ModeIndirect:
		return c.addrIndirect()
	case ModeIndirectX:
		return c.addrIndirectX()
	case ModeIndirectY:
		return c.addrIndirectY()
	default:
		return 0
	}
}

// addrImplied handles instructions with no explicit operand; the operand
// (if any) is the accumulator, copied directly into fetched.
func (c *CPU) addrImplied() uint8 {
	c.fetched = c.A
	return 0
}

// addrImmediate points addrAbs directly at the byte following the opcode.
func (c *CPU) addrImmediate() uint8 {
	c.addrAbs = c.PC
	c.PC++
	return 0
}

// addrZeroPage reads a single zero page pointer byte.
func (c *CPU) addrZeroPage() uint8 {
	c.addrAbs = uint16(c.read(c.PC)) & 0x00FF
	c.PC++
	return 0
}

// addrZeroPageIndexed reads a zero page pointer byte and adds reg,
// wrapping within the zero page (it never carries into the high byte).
func (c *CPU) addrZeroPageIndexed(reg uint8) uint8 {
	c.addrAbs = (uint16(c.read(c.PC)) + uint16(reg)) & 0x00FF
	c.PC++
	return 0
}

// addrRelative reads the signed branch displacement and sign-extends it
// into the high byte of addrRel; the branch operations add it to PC.
func (c *CPU) addrRelative() uint8 {
	c.addrRel = uint16(c.read(c.PC))
	c.PC++
	if c.addrRel&0x80 != 0 {
		c.addrRel |= 0xFF00
	}
	return 0
}

// addrAbsolute reads a little-endian 16-bit pointer.
func (c *CPU) addrAbsolute() uint8 {
	c.addrAbs = c.readWordLE(c.PC)
	c.PC += 2
	return 0
}

// addrAbsoluteIndexed reads a little-endian 16-bit pointer and adds reg,
// reporting a page cross when the addition carries into the high byte.
func (c *CPU) addrAbsoluteIndexed(reg uint8) uint8 {
	base := c.readWordLE(c.PC)
	c.PC += 2
	c.addrAbs = base + uint16(reg)
	if c.addrAbs&0xFF00 != base&0xFF00 {
		return 1
	}
	return 0
}

// addrIndirect resolves a pointer at PC (as Absolute) and then reads the
// 16-bit address it points to, reproducing the canonical 6502 page-wrap
// bug: if the pointer's low byte is 0xFF, the high byte of the target is
// fetched from the start of the same page rather than the next one.
func (c *CPU) addrIndirect() uint8 {
	ptr := c.readWordLE(c.PC)
	c.PC += 2
	lo := uint16(c.read(ptr))
	var hi uint16
	if ptr&0x00FF == 0x00FF {
		hi = uint16(c.read(ptr & 0xFF00))
	} else {
		hi = uint16(c.read(ptr + 1))
	}
	c.addrAbs = hi<<8 | lo
	return 0
}

// addrIndirectX reads a zero page pointer byte, indexes it by X (wrapping
// within the zero page before dereferencing), then reads the 16-bit
// address stored there.
func (c *CPU) addrIndirectX() uint8 {
	t := uint16(c.read(c.PC))
	c.PC++
	lo := uint16(c.read((t + uint16(c.X)) & 0x00FF))
	hi := uint16(c.read((t + uint16(c.X) + 1) & 0x00FF))
	c.addrAbs = hi<<8 | lo
	return 0
}

// addrIndirectY reads a zero page pointer, dereferences it to a 16-bit
// base address, then indexes the result by Y, reporting a page cross if
// that addition carries into the high byte.
func (c *CPU) addrIndirectY() uint8 {
	t := uint16(c.read(c.PC))
	c.PC++
	lo := uint16(c.read(t & 0x00FF))
	hi := uint16(c.read((t + 1) & 0x00FF))
	base := hi<<8 | lo
	c.addrAbs = base + uint16(c.Y)
	if c.addrAbs&0xFF00 != hi<<8 {
		return 1
	}
	return 0
}
