package cpu

// AddrMode is the closed set of 6502 addressing modes.
type AddrMode int

const (
	ModeImplied AddrMode = iota
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeRelative
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
)

// String renders the disassembly mode tag used by Disassemble, e.g. {IMM}.
func (m AddrMode) String() string {
	switch m {
	case ModeImplied:
		return "IMP"
	case ModeImmediate:
		return "IMM"
	case ModeZeroPage:
		return "ZP0"
	case ModeZeroPageX:
		return "ZPX"
	case ModeZeroPageY:
		return "ZPY"
	case ModeRelative:
		return "REL"
	case ModeAbsolute:
		return "ABS"
	case ModeAbsoluteX:
		return "ABX"
	case ModeAbsoluteY:
		return "ABY"
	case ModeIndirect:
		return "IND"
	case ModeIndirectX:
		return "IZX"
	case ModeIndirectY:
		return "IZY"
	default:
		return "???"
	}
}

// OpKind is the closed set of the 56 official 6502 operations plus the KIL
// placeholder dispatched for every undefined opcode byte.
type OpKind int

const (
	OpADC OpKind = iota
	OpAND
	OpASL
	OpBCC
	OpBCS
	OpBEQ
	OpBIT
	OpBMI
	OpBNE
	OpBPL
	OpBRK
	OpBVC
	OpBVS
	OpCLC
	OpCLD
	OpCLI
	OpCLV
	OpCMP
	OpCPX
	OpCPY
	OpDEC
	OpDEX
	OpDEY
	OpEOR
	OpINC
	OpINX
	OpINY
	OpJMP
	OpJSR
	OpLDA
	OpLDX
	OpLDY
	OpLSR
	OpNOP
	OpORA
	OpPHA
	OpPHP
	OpPLA
	OpPLP
	OpROL
	OpROR
	OpRTI
	OpRTS
	OpSBC
	OpSEC
	OpSED
	OpSEI
	OpSTA
	OpSTX
	OpSTY
	OpTAX
	OpTAY
	OpTSX
	OpTXA
	OpTXS
	OpTYA
	OpKIL // Placeholder for the 105 undefined opcode bytes.
)

// mnemonics maps each OpKind to its three letter disassembly text, in
// table order (KIL renders as the hardware-lockup it stands in for).
var mnemonics = [...]string{
	"ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI", "BNE", "BPL",
	"BRK", "BVC", "BVS", "CLC", "CLD", "CLI", "CLV", "CMP", "CPX", "CPY",
	"DEC", "DEX", "DEY", "EOR", "INC", "INX", "INY", "JMP", "JSR", "LDA",
	"LDX", "LDY", "LSR", "NOP", "ORA", "PHA", "PHP", "PLA", "PLP", "ROL",
	"ROR", "RTI", "RTS", "SBC", "SEC", "SED", "SEI", "STA", "STX", "STY",
	"TAX", "TAY", "TSX", "TXA", "TXS", "TYA", "KIL",
}

// String renders the mnemonic for the operation.
func (k OpKind) String() string {
	if int(k) < 0 || int(k) >= len(mnemonics) {
		return "???"
	}
	return mnemonics[k]
}

// Instruction is a single immutable decode-table entry: what a fetched
// opcode byte means, addressed how, at what base cycle cost.
type Instruction struct {
	Kind   OpKind
	Mode   AddrMode
	Cycles uint8
}

// instructionTable is the 256 entry, process-wide immutable decode table.
// Indexing by opcode byte is branch-free. Unused entries default to the
// zero value of Instruction, which init below rewrites to OpKIL /
// ModeImplied / 2 before anything reads it.
var instructionTable [256]Instruction

type opDef struct {
	opcode uint8
	kind   OpKind
	mode   AddrMode
	cycles uint8
}

// officialOpcodes is the canonical 6502 opcode matrix for the 56 official
// mnemonics. It is not rederived here; it reproduces the published ISA
// reference. Every opcode byte absent from this list dispatches to KIL.
var officialOpcodes = [...]opDef{
	{0x00, OpBRK, ModeImplied, 7},
	{0x01, OpORA, ModeIndirectX, 6},
	{0x05, OpORA, ModeZeroPage, 3},
	{0x06, OpASL, ModeZeroPage, 5},
	{0x08, OpPHP, ModeImplied, 3},
	{0x09, OpORA, ModeImmediate, 2},
	{0x0A, OpASL, ModeImplied, 2},
	{0x0D, OpORA, ModeAbsolute, 4},
	{0x0E, OpASL, ModeAbsolute, 6},

	{0x10, OpBPL, ModeRelative, 2},
	{0x11, OpORA, ModeIndirectY, 5},
	{0x15, OpORA, ModeZeroPageX, 4},
	{0x16, OpASL, ModeZeroPageX, 6},
	{0x18, OpCLC, ModeImplied, 2},
	{0x19, OpORA, ModeAbsoluteY, 4},
	{0x1D, OpORA, ModeAbsoluteX, 4},
	{0x1E, OpASL, ModeAbsoluteX, 7},

	{0x20, OpJSR, ModeAbsolute, 6},
	{0x21, OpAND, ModeIndirectX, 6},
	{0x24, OpBIT, ModeZeroPage, 3},
	{0x25, OpAND, ModeZeroPage, 3},
	{0x26, OpROL, ModeZeroPage, 5},
	{0x28, OpPLP, ModeImplied, 4},
	{0x29, OpAND, ModeImmediate, 2},
	{0x2A, OpROL, ModeImplied, 2},
	{0x2C, OpBIT, ModeAbsolute, 4},
	{0x2D, OpAND, ModeAbsolute, 4},
	{0x2E, OpROL, ModeAbsolute, 6},

	{0x30, OpBMI, ModeRelative, 2},
	{0x31, OpAND, ModeIndirectY, 5},
	{0x35, OpAND, ModeZeroPageX, 4},
	{0x36, OpROL, ModeZeroPageX, 6},
	{0x38, OpSEC, ModeImplied, 2},
	{0x39, OpAND, ModeAbsoluteY, 4},
	{0x3D, OpAND, ModeAbsoluteX, 4},
	{0x3E, OpROL, ModeAbsoluteX, 7},

	{0x40, OpRTI, ModeImplied, 6},
	{0x41, OpEOR, ModeIndirectX, 6},
	{0x45, OpEOR, ModeZeroPage, 3},
	{0x46, OpLSR, ModeZeroPage, 5},
	{0x48, OpPHA, ModeImplied, 3},
	{0x49, OpEOR, ModeImmediate, 2},
	{0x4A, OpLSR, ModeImplied, 2},
	{0x4C, OpJMP, ModeAbsolute, 3},
	{0x4D, OpEOR, ModeAbsolute, 4},
	{0x4E, OpLSR, ModeAbsolute, 6},

	{0x50, OpBVC, ModeRelative, 2},
	{0x51, OpEOR, ModeIndirectY, 5},
	{0x55, OpEOR, ModeZeroPageX, 4},
	{0x56, OpLSR, ModeZeroPageX, 6},
	{0x58, OpCLI, ModeImplied, 2},
	{0x59, OpEOR, ModeAbsoluteY, 4},
	{0x5D, OpEOR, ModeAbsoluteX, 4},
	{0x5E, OpLSR, ModeAbsoluteX, 7},

	{0x60, OpRTS, ModeImplied, 6},
	{0x61, OpADC, ModeIndirectX, 6},
	{0x65, OpADC, ModeZeroPage, 3},
	{0x66, OpROR, ModeZeroPage, 5},
	{0x68, OpPLA, ModeImplied, 4},
	{0x69, OpADC, ModeImmediate, 2},
	{0x6A, OpROR, ModeImplied, 2},
	{0x6C, OpJMP, ModeIndirect, 5},
	{0x6D, OpADC, ModeAbsolute, 4},
	{0x6E, OpROR, ModeAbsolute, 6},

	{0x70, OpBVS, ModeRelative, 2},
	{0x71, OpADC, ModeIndirectY, 5},
	{0x75, OpADC, ModeZeroPageX, 4},
	{0x76, OpROR, ModeZeroPageX, 6},
	{0x78, OpSEI, ModeImplied, 2},
	{0x79, OpADC, ModeAbsoluteY, 4},
	{0x7D, OpADC, ModeAbsoluteX, 4},
	{0x7E, OpROR, ModeAbsoluteX, 7},

	{0x81, OpSTA, ModeIndirectX, 6},
	{0x84, OpSTY, ModeZeroPage, 3},
	{0x85, OpSTA, ModeZeroPage, 3},
	{0x86, OpSTX, ModeZeroPage, 3},
	{0x88, OpDEY, ModeImplied, 2},
	{0x8A, OpTXA, ModeImplied, 2},
	{0x8C, OpSTY, ModeAbsolute, 4},
	{0x8D, OpSTA, ModeAbsolute, 4},
	{0x8E, OpSTX, ModeAbsolute, 4},

	{0x90, OpBCC, ModeRelative, 2},
	{0x91, OpSTA, ModeIndirectY, 6},
	{0x94, OpSTY, ModeZeroPageX, 4},
	{0x95, OpSTA, ModeZeroPageX, 4},
	{0x96, OpSTX, ModeZeroPageY, 4},
	{0x98, OpTYA, ModeImplied, 2},
	{0x99, OpSTA, ModeAbsoluteY, 5},
	{0x9A, OpTXS, ModeImplied, 2},
	{0x9D, OpSTA, ModeAbsoluteX, 5},

	{0xA0, OpLDY, ModeImmediate, 2},
	{0xA1, OpLDA, ModeIndirectX, 6},
	{0xA2, OpLDX, ModeImmediate, 2},
	{0xA4, OpLDY, ModeZeroPage, 3},
	{0xA5, OpLDA, ModeZeroPage, 3},
	{0xA6, OpLDX, ModeZeroPage, 3},
	{0xA8, OpTAY, ModeImplied, 2},
	{0xA9, OpLDA, ModeImmediate, 2},
	{0xAA, OpTAX, ModeImplied, 2},
	{0xAC, OpLDY, ModeAbsolute, 4},
	{0xAD, OpLDA, ModeAbsolute, 4},
	{0xAE, OpLDX, ModeAbsolute, 4},

	{0xB0, OpBCS, ModeRelative, 2},
	{0xB1, OpLDA, ModeIndirectY, 5},
	{0xB4, OpLDY, ModeZeroPageX, 4},
	{0xB5, OpLDA, ModeZeroPageX, 4},
	{0xB6, OpLDX, ModeZeroPageY, 4},
	{0xB8, OpCLV, ModeImplied, 2},
	{0xB9, OpLDA, ModeAbsoluteY, 4},
	{0xBA, OpTSX, ModeImplied, 2},
	{0xBC, OpLDY, ModeAbsoluteX, 4},
	{0xBD, OpLDA, ModeAbsoluteX, 4},
	{0xBE, OpLDX, ModeAbsoluteY, 4},

	{0xC0, OpCPY, ModeImmediate, 2},
	{0xC1, OpCMP, ModeIndirectX, 6},
	{0xC4, OpCPY, ModeZeroPage, 3},
	{0xC5, OpCMP, ModeZeroPage, 3},
	{0xC6, OpDEC, ModeZeroPage, 5},
	{0xC8, OpINY, ModeImplied, 2},
	{0xC9, OpCMP, ModeImmediate, 2},
	{0xCA, OpDEX, ModeImplied, 2},
	{0xCC, OpCPY, ModeAbsolute, 4},
	{0xCD, OpCMP, ModeAbsolute, 4},
	{0xCE, OpDEC, ModeAbsolute, 6},

	{0xD0, OpBNE, ModeRelative, 2},
	{0xD1, OpCMP, ModeIndirectY, 5},
	{0xD5, OpCMP, ModeZeroPageX, 4},
	{0xD6, OpDEC, ModeZeroPageX, 6},
	{0xD8, OpCLD, ModeImplied, 2},
	{0xD9, OpCMP, ModeAbsoluteY, 4},
	{0xDD, OpCMP, ModeAbsoluteX, 4},
	{0xDE, OpDEC, ModeAbsoluteX, 7},

	{0xE0, OpCPX, ModeImmediate, 2},
	{0xE1, OpSBC, ModeIndirectX, 6},
	{0xE4, OpCPX, ModeZeroPage, 3},
	{0xE5, OpSBC, ModeZeroPage, 3},
	{0xE6, OpINC, ModeZeroPage, 5},
	{0xE8, OpINX, ModeImplied, 2},
	{0xE9, OpSBC, ModeImmediate, 2},
	{0xEA, OpNOP, ModeImplied, 2},
	{0xEC, OpCPX, ModeAbsolute, 4},
	{0xED, OpSBC, ModeAbsolute, 4},
	{0xEE, OpINC, ModeAbsolute, 6},

	{0xF0, OpBEQ, ModeRelative, 2},
	{0xF1, OpSBC, ModeIndirectY, 5},
	{0xF5, OpSBC, ModeZeroPageX, 4},
	{0xF6, OpINC, ModeZeroPageX, 6},
	{0xF8, OpSED, ModeImplied, 2},
	{0xF9, OpSBC, ModeAbsoluteY, 4},
	{0xFD, OpSBC, ModeAbsoluteX, 4},
	{0xFE, OpINC, ModeAbsoluteX, 7},
}

func init() {
	for i := range instructionTable {
		instructionTable[i] = Instruction{Kind: OpKIL, Mode: ModeImplied, Cycles: 2}
	}
	for _, d := range officialOpcodes {
		instructionTable[d.opcode] = Instruction{Kind: d.kind, Mode: d.mode, Cycles: d.cycles}
	}
}

// Lookup returns the decode table entry for opcode. It is exported so
// tooling such as the disassemble package can describe an instruction's
// shape (mnemonic, mode, base cycles) without executing it, instead of
// maintaining its own separate copy of the opcode matrix.
func Lookup(opcode uint8) Instruction {
	return instructionTable[opcode]
}

// pageCrossEligible is the set of operations the spec authorises to add a
// cycle when the addressing mode also reports a page cross: the various
// loads plus ADC/AND/CMP/EOR/ORA/SBC. Everything else (stores, RMW,
// branches, which already fold their own page check directly into
// cyclesRemaining, and control flow) is not eligible.
func pageCrossEligible(k OpKind) bool {
	switch k {
	case OpADC, OpAND, OpCMP, OpEOR, OpLDA, OpLDX, OpLDY, OpORA, OpSBC:
		return true
	default:
		return false
	}
}

// execute dispatches to the operation implementation for e.Kind, returning
// 1 iff the operation is page-cross eligible (see pageCrossEligible) and 0
// otherwise. Individual operations call fetch(mode) themselves when they
// need the operand byte.
func (c *CPU) execute(e Instruction) uint8 {
	switch e.Kind {
	case OpADC:
		c.opADC(e.Mode)
	case OpAND:
		c.opAND(e.Mode)
	case OpASL:
		c.opASL(e.Mode)
	case OpBCC:
		c.opBCC()
	case OpBCS:
		c.opBCS()
	case OpBEQ:
		c.opBEQ()
	case OpBIT:
		c.opBIT(e.Mode)
	case OpBMI:
		c.opBMI()
	case OpBNE:
		c.opBNE()
	case OpBPL:
		c.opBPL()
	case OpBRK:
		c.opBRK()
	case OpBVC:
		c.opBVC()
	case OpBVS:
		c.opBVS()
	case OpCLC:
		c.setFlag(FlagCarry, false)
	case OpCLD:
		c.setFlag(FlagDecimalMode, false)
	case OpCLI:
		c.setFlag(FlagInterruptDisable, false)
	case OpCLV:
		c.setFlag(FlagOverflow, false)
	case OpCMP:
		c.opCompare(c.A, e.Mode)
	case OpCPX:
		c.opCompare(c.X, e.Mode)
	case OpCPY:
		c.opCompare(c.Y, e.Mode)
	case OpDEC:
		c.opDEC(e.Mode)
	case OpDEX:
		c.X--
		c.zeroCheck(c.X)
		c.negativeCheck(c.X)
	case OpDEY:
		c.Y--
		c.zeroCheck(c.Y)
		c.negativeCheck(c.Y)
	case OpEOR:
		c.opEOR(e.Mode)
	case OpINC:
		c.opINC(e.Mode)
	case OpINX:
		c.X++
		c.zeroCheck(c.X)
		c.negativeCheck(c.X)
	case OpINY:
		c.Y++
		c.zeroCheck(c.Y)
		c.negativeCheck(c.Y)
	case OpJMP:
		c.PC = c.addrAbs
	case OpJSR:
		c.opJSR()
	case OpLDA:
		c.A = c.fetch(e.Mode)
		c.zeroCheck(c.A)
		c.negativeCheck(c.A)
	case OpLDX:
		c.X = c.fetch(e.Mode)
		c.zeroCheck(c.X)
		c.negativeCheck(c.X)
	case OpLDY:
		c.Y = c.fetch(e.Mode)
		c.zeroCheck(c.Y)
		c.negativeCheck(c.Y)
	case OpLSR:
		c.opLSR(e.Mode)
	case OpNOP:
		// Does nothing by design.
	case OpORA:
		c.opORA(e.Mode)
	case OpPHA:
		c.push(c.A)
	case OpPHP:
		c.push(uint8(c.P | FlagBreak | FlagUnused))
	case OpPLA:
		c.A = c.pull()
		c.zeroCheck(c.A)
		c.negativeCheck(c.A)
	case OpPLP:
		c.P = Flag(c.pull())
	case OpROL:
		c.opROL(e.Mode)
	case OpROR:
		c.opROR(e.Mode)
	case OpRTI:
		c.opRTI()
	case OpRTS:
		c.PC = c.pullWord() + 1
	case OpSBC:
		c.opSBC(e.Mode)
	case OpSEC:
		c.setFlag(FlagCarry, true)
	case OpSED:
		c.setFlag(FlagDecimalMode, true)
	case OpSEI:
		c.setFlag(FlagInterruptDisable, true)
	case OpSTA:
		c.bus.Write(c.addrAbs, c.A)
	case OpSTX:
		c.bus.Write(c.addrAbs, c.X)
	case OpSTY:
		c.bus.Write(c.addrAbs, c.Y)
	case OpTAX:
		c.X = c.A
		c.zeroCheck(c.X)
		c.negativeCheck(c.X)
	case OpTAY:
		c.Y = c.A
		c.zeroCheck(c.Y)
		c.negativeCheck(c.Y)
	case OpTSX:
		c.X = c.S
		c.zeroCheck(c.X)
		c.negativeCheck(c.X)
	case OpTXA:
		c.A = c.X
		c.zeroCheck(c.A)
		c.negativeCheck(c.A)
	case OpTXS:
		c.S = c.X
	case OpTYA:
		c.A = c.Y
		c.zeroCheck(c.A)
		c.negativeCheck(c.A)
	case OpKIL:
		// Retires harmlessly; the hardware would lock up here instead.
	}
	if pageCrossEligible(e.Kind) {
		return 1
	}
	return 0
}
