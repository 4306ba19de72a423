package memory

import "testing"

func TestNewRAMRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := NewRAM(100); err == nil {
		t.Error("NewRAM(100) succeeded, want error (not a power of 2)")
	}
}

func TestNewRAMRejectsOversized(t *testing.T) {
	if _, err := NewRAM(1 << 17); err == nil {
		t.Error("NewRAM(1<<17) succeeded, want error (exceeds 64 KiB)")
	}
}

func TestNewRAMRejectsZero(t *testing.T) {
	if _, err := NewRAM(0); err == nil {
		t.Error("NewRAM(0) succeeded, want error")
	}
}

func TestReadWriteIdentity(t *testing.T) {
	r, err := NewRAM(1 << 16)
	if err != nil {
		t.Fatalf("NewRAM: %v", err)
	}
	r.Write(0x1234, 0x42)
	if got := r.Read(0x1234, false); got != 0x42 {
		t.Errorf("Read(0x1234) = %#02x, want 0x42", got)
	}
	if got := r.Read(0x1234, true); got != 0x42 {
		t.Errorf("readonly Read(0x1234) = %#02x, want 0x42 (readonly is a hint, not a different value)", got)
	}
}

func TestSmallRAMAliases(t *testing.T) {
	r, err := NewRAM(1 << 10) // 1 KiB: address lines above bit 9 are unconnected.
	if err != nil {
		t.Fatalf("NewRAM: %v", err)
	}
	r.Write(0x0001, 0xAB)
	if got := r.Read(0x0401, false); got != 0xAB { // 0x0401 & 0x03FF == 0x0001
		t.Errorf("aliased Read(0x0401) = %#02x, want 0xAB", got)
	}
}

func TestPowerOnZeroesRAM(t *testing.T) {
	r, err := NewRAM(1 << 8)
	if err != nil {
		t.Fatalf("NewRAM: %v", err)
	}
	r.Write(0x10, 0xFF)
	r.PowerOn()
	if got := r.Read(0x10, false); got != 0x00 {
		t.Errorf("Read(0x10) after PowerOn = %#02x, want 0x00", got)
	}
}
