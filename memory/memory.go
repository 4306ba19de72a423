// Package memory defines the bus abstraction the 6502 core is built
// against. Every implementation emulated on top of this core (NES, Apple
// II, a bare-metal test harness) has its own mapping of devices into the
// 64 KiB address space, so the contract here is kept deliberately minimal:
// a flat, byte-addressable Bus that the cpu package reads and writes.
package memory

import "fmt"

// Bus is the contract the cpu package consumes. Implementations own the
// full 64 KiB address space (including any device mapping) and must
// resolve every possible uint16 address without error.
type Bus interface {
	// Read returns the byte stored at addr. readonly is a hint, not an
	// enforcement mechanism: it promises the caller will not rely on any
	// side effect the read might have (used by the disassembler so a
	// future mapper implementation can skip things like clearing
	// read-to-ack status registers). Plain RAM ignores it.
	Read(addr uint16, readonly bool) uint8
	// Write stores val at addr. For read-only regions this is a no-op.
	Write(addr uint16, val uint8)
	// PowerOn resets the bus to its power-on state.
	PowerOn()
}

// RAM implements Bus as a flat, fully read/write byte array. It is the
// minimal Bus a bare CPU test harness needs; richer systems compose their
// own Bus out of RAM, ROM and mapped devices behind the same interface.
type RAM struct {
	mem []uint8
}

// NewRAM creates a Bus backed by size bytes of flat RAM. size must be a
// power of two and no larger than 64 KiB; addresses are masked to fit, so
// a RAM smaller than 64 KiB aliases on Read/Write exactly as real hardware
// does when address lines are left unconnected.
func NewRAM(size int) (*RAM, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("invalid size: %d must be a power of 2", size)
	}
	if size > 1<<16 {
		return nil, fmt.Errorf("invalid size: %d is bigger than 64k", size)
	}
	r := &RAM{mem: make([]uint8, size)}
	return r, nil
}

// Read implements Bus. readonly has no effect on plain RAM.
func (r *RAM) Read(addr uint16, _ bool) uint8 {
	return r.mem[int(addr)&(len(r.mem)-1)]
}

// Write implements Bus.
func (r *RAM) Write(addr uint16, val uint8) {
	r.mem[int(addr)&(len(r.mem)-1)] = val
}

// PowerOn implements Bus by deterministically clearing RAM to zero.
//
// The teacher randomizes RAM contents on power on to shake out
// uninitialized-read bugs in client code. This core instead zeroes RAM:
// the CPU's own testable invariants (after Reset, A=X=Y=0 and so on) are
// specified against a known starting state, and golden fixtures built from
// hand-assembled programs need a deterministic backdrop to diff against.
func (r *RAM) PowerOn() {
	for i := range r.mem {
		r.mem[i] = 0x00
	}
}
