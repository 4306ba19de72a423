package cpu

import "testing"

func TestLookupKnownOpcodes(t *testing.T) {
	tests := []struct {
		opcode uint8
		want   Instruction
	}{
		{0xA9, Instruction{OpLDA, ModeImmediate, 2}},
		{0x00, Instruction{OpBRK, ModeImplied, 7}},
		{0x6C, Instruction{OpJMP, ModeIndirect, 5}},
		{0x91, Instruction{OpSTA, ModeIndirectY, 6}},
		{0xEA, Instruction{OpNOP, ModeImplied, 2}},
	}
	for _, tc := range tests {
		if got := Lookup(tc.opcode); got != tc.want {
			t.Errorf("Lookup(%#02x) = %+v, want %+v", tc.opcode, got, tc.want)
		}
	}
}

func TestLookupUndefinedOpcodeIsKIL(t *testing.T) {
	// 0x02 is one of the many undefined NMOS opcodes.
	got := Lookup(0x02)
	if got.Kind != OpKIL {
		t.Errorf("Lookup(0x02).Kind = %v, want OpKIL", got.Kind)
	}
}

func TestPageCrossEligibility(t *testing.T) {
	eligible := []OpKind{OpADC, OpAND, OpCMP, OpEOR, OpLDA, OpLDX, OpLDY, OpORA, OpSBC}
	for _, k := range eligible {
		if !pageCrossEligible(k) {
			t.Errorf("pageCrossEligible(%v) = false, want true", k)
		}
	}
	ineligible := []OpKind{OpSTA, OpSTX, OpSTY, OpASL, OpINC, OpDEC, OpJMP, OpBEQ}
	for _, k := range ineligible {
		if pageCrossEligible(k) {
			t.Errorf("pageCrossEligible(%v) = true, want false", k)
		}
	}
}

func TestAddrModeString(t *testing.T) {
	if got := ModeIndirectX.String(); got != "IZX" {
		t.Errorf("ModeIndirectX.String() = %q, want IZX", got)
	}
	if got := AddrMode(999).String(); got != "???" {
		t.Errorf("invalid AddrMode.String() = %q, want ???", got)
	}
}

func TestOpKindString(t *testing.T) {
	if got := OpLDA.String(); got != "LDA" {
		t.Errorf("OpLDA.String() = %q, want LDA", got)
	}
	if got := OpKind(999).String(); got != "???" {
		t.Errorf("invalid OpKind.String() = %q, want ???", got)
	}
}

func TestInstructionTableCoversAll56Mnemonics(t *testing.T) {
	seen := make(map[OpKind]bool)
	for i := 0; i < 256; i++ {
		seen[Lookup(uint8(i)).Kind] = true
	}
	for k := OpADC; k <= OpTYA; k++ {
		if !seen[k] {
			t.Errorf("opcode %v has no encoding anywhere in the decode table", k)
		}
	}
}
