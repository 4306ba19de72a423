// Package cpu implements the MOS Technology 6502 instruction set: the
// decode table, the addressing-mode resolvers, the fifty-six official
// operations, the reset/IRQ/NMI sequences and the clock pacing that makes
// instruction retirement span the correct number of ticks.
//
// Undocumented opcodes are not implemented; every unused entry in the
// decode table is wired to a KIL placeholder that retires harmlessly
// rather than locking the processor up as real hardware would.
package cpu

import (
	"fmt"

	"github.com/hex2bit/go6502/memory"
)

// Variant distinguishes 6502 derivatives this core can emulate. The only
// behavioral difference modeled is whether decimal mode is honored by
// ADC/SBC.
type Variant int

const (
	// NMOS is the stock 6502 with decimal mode enabled.
	NMOS Variant = iota
	// NMOSRicoh is the Ricoh variant used in the NES where decimal mode
	// is physically absent from the silicon; the D flag can still be
	// set and cleared but ADC/SBC never consult it.
	NMOSRicoh
)

// Flag identifies a single bit of the P status register.
type Flag uint8

// Status register bits, one per architectural flag.
const (
	FlagCarry            Flag = 1 << 0
	FlagZero             Flag = 1 << 1
	FlagInterruptDisable Flag = 1 << 2
	FlagDecimalMode      Flag = 1 << 3
	FlagBreak            Flag = 1 << 4
	FlagUnused           Flag = 1 << 5 // Canonically always 1.
	FlagOverflow         Flag = 1 << 6
	FlagNegative         Flag = 1 << 7
)

// Fixed vector addresses the CPU reads a destination PC from.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// stackBase is the base address of the 256 byte stack page.
const stackBase = uint16(0x0100)

// InvalidCPUState reports a construction-time misuse of the package; the
// steady-state operations (Reset/Irq/Nmi/Clock) never return an error,
// since none of their anomalies (undefined opcodes, stack wrap, address
// wrap, the indirect JMP page bug) are exceptional on real hardware.
type InvalidCPUState struct {
	Reason string
}

// Error implements the error interface.
func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// CPU holds the full architectural and transient state of a 6502 and a
// non-owning reference to the Bus it executes against. The Bus must
// outlive the CPU.
type CPU struct {
	A  uint8  // Accumulator register.
	X  uint8  // X register.
	Y  uint8  // Y register.
	S  uint8  // Stack pointer.
	P  Flag   // Status register.
	PC uint16 // Program counter.

	bus     memory.Bus
	variant Variant
	logger  Logger

	fetched         uint8  // Operand byte most recently materialised by fetch().
	addrAbs         uint16 // Effective address resolved by the addressing mode.
	addrRel         uint16 // Sign-extended relative offset for branches.
	opcode          uint8  // Opcode byte most recently read at PC.
	cyclesRemaining uint8  // Ticks still owed before the current instruction retires.
	clockCount      uint64 // Monotonically increasing total tick count.
}

// New creates a CPU bound to bus and immediately powers it on (equivalent
// to calling Reset with all registers at their architectural defaults).
// bus must be non-nil; it is never copied or closed by the CPU.
func New(bus memory.Bus, variant Variant) (*CPU, error) {
	if bus == nil {
		return nil, InvalidCPUState{Reason: "bus must not be nil"}
	}
	c := &CPU{
		bus:     bus,
		variant: variant,
		logger:  nopLogger{},
	}
	c.Reset()
	return c, nil
}

// SetLogger installs a Logger used for diagnostics: Debugf for high-volume
// per-instruction events (undefined opcode dispatch, a masked IRQ line),
// Infof for low-volume lifecycle events (reset, interrupt servicing). A
// nil logger restores the no-op default.
func (c *CPU) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	c.logger = l
}

// ClockCount returns the total number of Clock ticks processed since the
// CPU was constructed; Reset does not clear it.
func (c *CPU) ClockCount() uint64 {
	return c.clockCount
}

// flag reports whether f is currently set in P.
func (c *CPU) flag(f Flag) bool {
	return c.P&f != 0
}

// setFlag sets or clears f in P according to v.
func (c *CPU) setFlag(f Flag, v bool) {
	if v {
		c.P |= f
	} else {
		c.P &^= f
	}
}

// zeroCheck sets the Zero flag from val.
func (c *CPU) zeroCheck(val uint8) {
	c.setFlag(FlagZero, val == 0)
}

// negativeCheck sets the Negative flag from bit 7 of val.
func (c *CPU) negativeCheck(val uint8) {
	c.setFlag(FlagNegative, val&0x80 != 0)
}

// read is a small convenience wrapper so internal callers never have to
// spell out the non-readonly argument by hand.
func (c *CPU) read(addr uint16) uint8 {
	return c.bus.Read(addr, false)
}

func (c *CPU) readWordLE(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return hi<<8 | lo
}

// push writes val to the stack page and decrements S, wrapping silently
// on underflow exactly as hardware does (S is 8-bit modular).
func (c *CPU) push(val uint8) {
	c.bus.Write(stackBase|uint16(c.S), val)
	c.S--
}

// pull increments S and reads the stack page, wrapping silently on
// overflow exactly as hardware does.
func (c *CPU) pull() uint8 {
	c.S++
	return c.read(stackBase | uint16(c.S))
}

func (c *CPU) pushWord(val uint16) {
	c.push(uint8(val >> 8))
	c.push(uint8(val & 0xFF))
}

func (c *CPU) pullWord() uint16 {
	lo := uint16(c.pull())
	hi := uint16(c.pull())
	return hi<<8 | lo
}

// fetch materialises the operand byte for the current instruction into
// c.fetched, unless the addressing mode is Implied (in which case the
// Implied resolver already copied A into c.fetched).
func (c *CPU) fetch(mode AddrMode) uint8 {
	if mode != ModeImplied {
		c.fetched = c.read(c.addrAbs)
	}
	return c.fetched
}

// Reset runs the 6502 reset sequence: PC is loaded from ResetVector, A/X/Y
// are cleared, S is set to 0xFD, P is cleared with the Unused bit forced
// to 1, and cyclesRemaining is set to 8 (the number of ticks Clock will
// silently consume before the first real instruction is fetched).
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.P = FlagUnused
	c.addrAbs = 0
	c.addrRel = 0
	c.fetched = 0
	c.PC = c.readWordLE(ResetVector)
	c.cyclesRemaining = 8
	c.logger.Infof("reset: PC=0x%04X", c.PC)
}

// Irq requests a maskable interrupt. If InterruptDisable is set this is a
// no-op, matching hardware: the line is held but never serviced until the
// flag clears. Otherwise the current PC and P (with Break cleared) are
// pushed, InterruptDisable is set, PC is loaded from IRQVector, and the
// sequence charges 7 cycles.
func (c *CPU) Irq() {
	if c.flag(FlagInterruptDisable) {
		c.logger.Debugf("IRQ line held but masked: PC=0x%04X", c.PC)
		return
	}
	c.pushWord(c.PC)
	c.setFlag(FlagBreak, false)
	c.setFlag(FlagInterruptDisable, true)
	c.setFlag(FlagUnused, true)
	c.push(uint8(c.P))
	c.PC = c.readWordLE(IRQVector)
	c.cyclesRemaining = 7
	c.logger.Infof("IRQ serviced: PC=0x%04X", c.PC)
}

// Nmi requests a non-maskable interrupt. Identical to Irq except it is
// never masked, reads NMIVector, and charges 8 cycles.
func (c *CPU) Nmi() {
	c.pushWord(c.PC)
	c.setFlag(FlagBreak, false)
	c.setFlag(FlagInterruptDisable, true)
	c.setFlag(FlagUnused, true)
	c.push(uint8(c.P))
	c.PC = c.readWordLE(NMIVector)
	c.cyclesRemaining = 8
	c.logger.Infof("NMI serviced: PC=0x%04X", c.PC)
}

// IsComplete reports whether the next Clock call begins a new instruction
// (equivalently, whether cyclesRemaining has reached zero).
func (c *CPU) IsComplete() bool {
	return c.cyclesRemaining == 0
}

// Clock advances the CPU by a single tick. If an instruction is mid
// flight this simply decrements the owed cycle count; otherwise it
// decodes, addresses, operates and retires the next instruction and
// charges it the resulting number of cycles (minus the one this call
// already accounts for).
func (c *CPU) Clock() {
	if c.cyclesRemaining == 0 {
		c.opcode = c.read(c.PC)
		c.setFlag(FlagUnused, true)
		c.PC++

		entry := Lookup(c.opcode)
		if entry.Kind == OpKIL {
			c.logger.Debugf("undefined opcode 0x%02X at PC=0x%04X", c.opcode, c.PC-1)
		}
		c.cyclesRemaining = entry.Cycles

		addrExtra := c.resolveAddr(entry.Mode)
		opExtra := c.execute(entry)
		if addrExtra != 0 && opExtra != 0 {
			c.cyclesRemaining++
		}

		c.setFlag(FlagUnused, true)
	}
	c.clockCount++
	c.cyclesRemaining--
}

// String renders a compact single-line register dump, suitable for
// embedding directly in a host's own structured log line without paying
// for a reflection-based dump (github.com/davecgh/go-spew, used in this
// package's tests, is reserved for test-failure diagnostics).
func (c *CPU) String() string {
	return fmt.Sprintf("PC=%04X A=%02X X=%02X Y=%02X S=%02X P=%02X[%s] cyc=%d clk=%d",
		c.PC, c.A, c.X, c.Y, c.S, uint8(c.P), flagString(c.P), c.cyclesRemaining, c.clockCount)
}

func flagString(p Flag) string {
	bits := []struct {
		f Flag
		c byte
	}{
		{FlagNegative, 'N'}, {FlagOverflow, 'V'}, {FlagUnused, 'U'}, {FlagBreak, 'B'},
		{FlagDecimalMode, 'D'}, {FlagInterruptDisable, 'I'}, {FlagZero, 'Z'}, {FlagCarry, 'C'},
	}
	out := make([]byte, len(bits))
	for i, b := range bits {
		if p&b.f != 0 {
			out[i] = b.c
		} else {
			out[i] = '-'
		}
	}
	return string(out)
}
