// Package asm is a minimal hand-assembler used only by this module's own
// tests to turn readable 6502 mnemonics into the byte streams golden test
// fixtures are built from, instead of spelling out opcode bytes by hand.
//
// It is grounded on the teacher's hand_asm command, reworked from a
// shell-out text preprocessor (egrep/sed piped through os/exec) into a
// small native Go line parser, and retargeted from raw hex byte listings
// to real mnemonic syntax by walking cpu.Lookup's decode table in
// reverse. It understands one instruction per line and nothing else: no
// labels, no macros, no origin directives.
package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hex2bit/go6502/cpu"
)

// mnemonicKinds maps the three letter text of every official operation to
// its OpKind, the reverse of OpKind.String().
var mnemonicKinds = func() map[string]cpu.OpKind {
	m := make(map[string]cpu.OpKind)
	for k := cpu.OpADC; k <= cpu.OpTYA; k++ {
		m[k.String()] = k
	}
	return m
}()

// opcodeFor finds the single decode table entry matching kind and mode by
// scanning all 256 possible opcode bytes; Lookup has no reverse index of
// its own, and building one here keeps that index out of the core
// package, which never needs to go from mnemonic back to opcode.
func opcodeFor(kind cpu.OpKind, mode cpu.AddrMode) (uint8, bool) {
	for i := 0; i < 256; i++ {
		e := cpu.Lookup(uint8(i))
		if e.Kind == kind && e.Mode == mode {
			return uint8(i), true
		}
	}
	return 0, false
}

// Assemble parses src, one instruction per line (blank lines and lines
// starting with ';' are ignored), and returns the assembled byte stream.
func Assemble(src string) ([]byte, error) {
	var out []byte
	for lineNo, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		b, err := assembleLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %q: %w", lineNo+1, line, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

// assembleLine assembles a single "MNEMONIC operand" line into its opcode
// byte followed by 0, 1 or 2 little-endian operand bytes.
func assembleLine(line string) ([]byte, error) {
	fields := strings.SplitN(line, " ", 2)
	mnemonic := strings.ToUpper(fields[0])
	operand := ""
	if len(fields) == 2 {
		operand = strings.TrimSpace(fields[1])
	}

	kind, ok := mnemonicKinds[mnemonic]
	if !ok {
		return nil, fmt.Errorf("unknown mnemonic %q", mnemonic)
	}

	mode, operandBytes, err := parseOperand(operand)
	if err != nil {
		return nil, err
	}

	opcode, ok := opcodeFor(kind, mode)
	if !ok && mode == cpu.ModeZeroPage {
		// Branch mnemonics share zero page's "$XX" single byte operand
		// syntax with Relative; retry under the mode that actually
		// matters for them.
		mode = cpu.ModeRelative
		opcode, ok = opcodeFor(kind, mode)
	}
	if !ok {
		return nil, fmt.Errorf("%s has no encoding in addressing mode %s", mnemonic, mode)
	}

	return append([]byte{opcode}, operandBytes...), nil
}

// parseOperand recognises the canonical 6502 operand syntaxes and returns
// the addressing mode they imply plus the little-endian operand bytes.
func parseOperand(operand string) (cpu.AddrMode, []byte, error) {
	switch {
	case operand == "":
		return cpu.ModeImplied, nil, nil

	case strings.HasPrefix(operand, "#$"):
		v, err := parseHex8(operand[2:])
		if err != nil {
			return 0, nil, err
		}
		return cpu.ModeImmediate, []byte{v}, nil

	case strings.HasPrefix(operand, "($") && strings.HasSuffix(operand, ",X)"):
		v, err := parseHex8(operand[2 : len(operand)-3])
		if err != nil {
			return 0, nil, err
		}
		return cpu.ModeIndirectX, []byte{v}, nil

	case strings.HasPrefix(operand, "($") && strings.HasSuffix(operand, "),Y"):
		v, err := parseHex8(operand[2 : len(operand)-3])
		if err != nil {
			return 0, nil, err
		}
		return cpu.ModeIndirectY, []byte{v}, nil

	case strings.HasPrefix(operand, "($") && strings.HasSuffix(operand, ")"):
		v, lo, hi, err := parseHex16(operand[2 : len(operand)-1])
		if err != nil {
			return 0, nil, err
		}
		_ = v
		return cpu.ModeIndirect, []byte{lo, hi}, nil

	case strings.HasPrefix(operand, "$") && strings.HasSuffix(operand, ",X"):
		body := operand[1 : len(operand)-2]
		return parseIndexed(body, cpu.ModeZeroPageX, cpu.ModeAbsoluteX)

	case strings.HasPrefix(operand, "$") && strings.HasSuffix(operand, ",Y"):
		body := operand[1 : len(operand)-2]
		return parseIndexed(body, cpu.ModeZeroPageY, cpu.ModeAbsoluteY)

	case strings.HasPrefix(operand, "$"):
		body := operand[1:]
		if len(body) <= 2 {
			v, err := parseHex8(body)
			if err != nil {
				return 0, nil, err
			}
			return cpu.ModeZeroPage, []byte{v}, nil
		}
		_, lo, hi, err := parseHex16(body)
		if err != nil {
			return 0, nil, err
		}
		return cpu.ModeAbsolute, []byte{lo, hi}, nil

	default:
		return 0, nil, fmt.Errorf("unrecognised operand syntax %q", operand)
	}
}

// parseIndexed picks Zero Page or Absolute indexed mode based on the
// digit count of body, the same width rule zero page vs. absolute
// addressing in general follows.
func parseIndexed(body string, zp, abs cpu.AddrMode) (cpu.AddrMode, []byte, error) {
	if len(body) <= 2 {
		v, err := parseHex8(body)
		if err != nil {
			return 0, nil, err
		}
		return zp, []byte{v}, nil
	}
	_, lo, hi, err := parseHex16(body)
	if err != nil {
		return 0, nil, err
	}
	return abs, []byte{lo, hi}, nil
}

func parseHex8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("bad 8 bit hex literal %q: %w", s, err)
	}
	return uint8(v), nil
}

func parseHex16(s string) (uint16, uint8, uint8, error) {
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad 16 bit hex literal %q: %w", s, err)
	}
	return uint16(v), uint8(v & 0xFF), uint8(v >> 8), nil
}
