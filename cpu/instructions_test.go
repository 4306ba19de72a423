package cpu

import "testing"

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, _ := newTestCPU(t, 0x8000, 0xA9, 0x00) // LDA #$00
	drainReset(c)

	cycles := runOne(c)
	if cycles != 2 {
		t.Errorf("LDA #imm took %d cycles, want 2", cycles)
	}
	if c.A != 0x00 {
		t.Errorf("A = %#02x, want 0x00", c.A)
	}
	if !c.flag(FlagZero) {
		t.Error("Zero flag clear after loading 0x00")
	}
	if c.flag(FlagNegative) {
		t.Error("Negative flag set after loading 0x00")
	}
}

func TestADCCarryAndOverflow(t *testing.T) {
	c, _ := newTestCPU(t, 0x8000, 0x69, 0x01) // ADC #$01
	drainReset(c)
	c.A = 0x7F // +127 + 1 overflows into negative: classic signed overflow case.

	runOne(c)
	if c.A != 0x80 {
		t.Fatalf("A = %#02x, want 0x80", c.A)
	}
	if !c.flag(FlagOverflow) {
		t.Error("Overflow flag clear, want set (0x7F+0x01 signed overflow)")
	}
	if c.flag(FlagCarry) {
		t.Error("Carry flag set, want clear")
	}
	if !c.flag(FlagNegative) {
		t.Error("Negative flag clear after result 0x80")
	}
}

func TestSBCBorrow(t *testing.T) {
	c, _ := newTestCPU(t, 0x8000, 0xE9, 0x01) // SBC #$01
	drainReset(c)
	c.A = 0x00
	c.setFlag(FlagCarry, true) // Carry set means "no borrow" going in.

	runOne(c)
	if c.A != 0xFF {
		t.Fatalf("A = %#02x, want 0xFF", c.A)
	}
	if c.flag(FlagCarry) {
		t.Error("Carry flag set after borrow occurred, want clear")
	}
}

func TestBranchTakenSamePage(t *testing.T) {
	c, _ := newTestCPU(t, 0x8000, 0xF0, 0x02) // BEQ +2
	drainReset(c)
	c.setFlag(FlagZero, true)

	cycles := runOne(c)
	if c.PC != 0x8004 {
		t.Fatalf("PC = %#04x, want 0x8004", c.PC)
	}
	if cycles != 3 {
		t.Errorf("branch taken same page took %d cycles, want 3 (2 base + 1 taken)", cycles)
	}
}

func TestBranchTakenAcrossPage(t *testing.T) {
	// BEQ placed at 0x80FD with a +2 offset: the next instruction is at
	// 0x80FF and the target 0x8101, crossing from page 0x80 into 0x81.
	c, _ := newTestCPU(t, 0x80FD, 0xF0, 0x02)
	drainReset(c)
	c.setFlag(FlagZero, true)

	cycles := runOne(c)
	if c.PC != 0x8101 {
		t.Fatalf("PC = %#04x, want 0x8101", c.PC)
	}
	if cycles != 4 {
		t.Errorf("branch taken across page took %d cycles, want 4 (2 base + 1 taken + 1 page cross)", cycles)
	}
}

func TestBranchNotTaken(t *testing.T) {
	c, _ := newTestCPU(t, 0x8000, 0xF0, 0x02) // BEQ +2
	drainReset(c)
	c.setFlag(FlagZero, false)

	cycles := runOne(c)
	if c.PC != 0x8002 {
		t.Fatalf("PC = %#04x, want 0x8002 (fall through)", c.PC)
	}
	if cycles != 2 {
		t.Errorf("branch not taken took %d cycles, want 2", cycles)
	}
}

func TestPHAPLARoundTrip(t *testing.T) {
	c, _ := newTestCPU(t, 0x8000, 0x48, 0xA9, 0x00, 0x68) // PHA; LDA #$00; PLA
	drainReset(c)
	c.A = 0x5A

	runOne(c) // PHA
	runOne(c) // LDA #$00 clobbers A
	if c.A != 0x00 {
		t.Fatalf("A after LDA #$00 = %#02x, want 0x00", c.A)
	}
	runOne(c) // PLA
	if c.A != 0x5A {
		t.Fatalf("A after PLA = %#02x, want 0x5A", c.A)
	}
}

func TestPHPPLPRoundTripIgnoringBreakAndUnused(t *testing.T) {
	c, _ := newTestCPU(t, 0x8000, 0x08, 0x28) // PHP; PLP
	drainReset(c)
	c.P = FlagCarry | FlagNegative // Break and Unused deliberately left clear.
	want := c.P | FlagUnused       // Clock forces Unused back to 1 regardless.

	runOne(c) // PHP
	c.P = 0   // scramble P to prove PLP actually restores it.
	runOne(c) // PLP

	if c.P&^FlagBreak != want&^FlagBreak {
		t.Errorf("P after PHP/PLP round trip = %#02x, want %#02x (ignoring Break)", c.P, want)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, r := newTestCPU(t, 0x8000, 0x20, 0x00, 0x90) // JSR $9000
	r.mem[0x9000] = 0x60                            // RTS
	drainReset(c)

	runOne(c) // JSR
	if c.PC != 0x9000 {
		t.Fatalf("PC after JSR = %#04x, want 0x9000", c.PC)
	}
	runOne(c) // RTS
	if c.PC != 0x8003 {
		t.Fatalf("PC after RTS = %#04x, want 0x8003 (instruction following JSR)", c.PC)
	}
}

func TestBRKRTIRoundTrip(t *testing.T) {
	c, r := newTestCPU(t, 0x8000, 0x00, 0x00) // BRK; padding byte
	r.mem[IRQVector] = 0x00
	r.mem[IRQVector+1] = 0x90
	r.mem[0x9000] = 0x40 // RTI
	drainReset(c)
	// BRK sets InterruptDisable before pushing P, so RTI restores it set.
	pBefore := c.P | FlagInterruptDisable

	runOne(c) // BRK
	if c.PC != 0x9000 {
		t.Fatalf("PC after BRK = %#04x, want 0x9000", c.PC)
	}
	if !c.flag(FlagInterruptDisable) {
		t.Error("InterruptDisable clear after BRK, want set")
	}
	runOne(c) // RTI
	if c.PC != 0x8002 {
		t.Fatalf("PC after RTI = %#04x, want 0x8002 (past BRK's padding byte)", c.PC)
	}
	if c.P&^FlagBreak != pBefore&^FlagBreak {
		t.Errorf("P after BRK/RTI round trip = %#02x, want %#02x (ignoring Break)", c.P, pBefore)
	}
}

func TestCompareFlags(t *testing.T) {
	c, _ := newTestCPU(t, 0x8000, 0xC9, 0x40) // CMP #$40
	drainReset(c)
	c.A = 0x40

	runOne(c)
	if !c.flag(FlagZero) {
		t.Error("Zero clear comparing equal values")
	}
	if !c.flag(FlagCarry) {
		t.Error("Carry clear comparing A >= operand")
	}
}

func TestASLShiftsAndSetsCarry(t *testing.T) {
	c, _ := newTestCPU(t, 0x8000, 0x0A) // ASL A
	drainReset(c)
	c.A = 0x81

	runOne(c)
	if c.A != 0x02 {
		t.Fatalf("A = %#02x, want 0x02", c.A)
	}
	if !c.flag(FlagCarry) {
		t.Error("Carry clear after shifting out a set bit 7")
	}
}

func newVariantCPU(t *testing.T, variant Variant, loadAt uint16, program ...uint8) (*CPU, *testRAM) {
	t.Helper()
	r := &testRAM{}
	r.setResetVector(loadAt)
	r.load(loadAt, program...)
	c, err := New(r, variant)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, r
}

func TestADCDecimalModeNMOS(t *testing.T) {
	c, _ := newVariantCPU(t, NMOS, 0x8000, 0x69, 0x09) // ADC #$09
	drainReset(c)
	c.A = 0x58 // 58 + 09 = 67 in BCD.
	c.setFlag(FlagDecimalMode, true)
	c.setFlag(FlagCarry, false)

	runOne(c)
	if c.A != 0x67 {
		t.Fatalf("A = %#02x, want 0x67 (BCD 58+09)", c.A)
	}
	if c.flag(FlagCarry) {
		t.Error("Carry set, want clear (no decimal carry out of 58+09)")
	}
}

func TestSBCDecimalModeNMOS(t *testing.T) {
	c, _ := newVariantCPU(t, NMOS, 0x8000, 0xE9, 0x09) // SBC #$09
	drainReset(c)
	c.A = 0x58 // 58 - 09 = 49 in BCD.
	c.setFlag(FlagDecimalMode, true)
	c.setFlag(FlagCarry, true) // Carry set means "no borrow" going in.

	runOne(c)
	if c.A != 0x49 {
		t.Fatalf("A = %#02x, want 0x49 (BCD 58-09)", c.A)
	}
	if !c.flag(FlagCarry) {
		t.Error("Carry clear, want set (no borrow for 58-09)")
	}
}

func TestADCDecimalModeIsNoOpOnNMOSRicoh(t *testing.T) {
	c, _ := newVariantCPU(t, NMOSRicoh, 0x8000, 0x69, 0x09) // ADC #$09
	drainReset(c)
	c.A = 0x58
	c.setFlag(FlagDecimalMode, true)
	c.setFlag(FlagCarry, false)

	runOne(c)
	if c.A != 0x61 {
		t.Fatalf("A = %#02x, want 0x61 (binary 0x58+0x09, decimal mode ignored on NMOSRicoh)", c.A)
	}
}
