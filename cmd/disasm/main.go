// disasm loads a flat binary image into a 64 KiB RAM bus and prints a
// linear disassembly of it to stdout. Files ending in .prg (case
// insensitive) are treated as C64 program files: their first two bytes
// are the load address and are stripped from the image rather than
// disassembled.
//
// This command is a convenience wrapper around the disassemble package;
// it carries none of the CPU core's own semantics and is not exercised
// by anything else in this module.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/hex2bit/go6502/disassemble"
	"github.com/hex2bit/go6502/memory"
)

var (
	startPC = flag.Int("start_pc", 0x0000, "PC value to start disassembling")
	offset  = flag.Int("offset", 0x0000, "Offset into RAM to load the image at. Ignored for .prg files.")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("usage: %s [-start_pc <PC>] [-offset <offset>] <filename>", os.Args[0])
	}
	fn := flag.Args()[0]

	b, err := os.ReadFile(fn)
	if err != nil {
		log.Fatalf("can't open %s: %v", fn, err)
	}

	pc := uint16(*startPC)
	load := *offset
	if strings.EqualFold(strings.TrimPrefix(extOf(fn), "."), "prg") {
		if len(b) < 2 {
			log.Fatalf("%s is too short to be a PRG file", fn)
		}
		load = int(uint16(b[1])<<8 | uint16(b[0]))
		pc = uint16(load)
		b = b[2:]
		fmt.Printf("C64 program file, load address $%04X\n", load)
	}

	max := 1<<16 - load
	if len(b) > max {
		log.Printf("image length %d at offset %d exceeds 64K, truncating", len(b), load)
		b = b[:max]
	}

	bus, err := memory.NewRAM(1 << 16)
	if err != nil {
		log.Fatalf("can't initialize RAM: %v", err)
	}
	bus.PowerOn()
	for i, v := range b {
		bus.Write(uint16(load+i), v)
	}

	listing := disassemble.Disassemble(pc, pc+uint16(len(b))-1, bus)
	addrs := make([]uint16, 0, len(listing))
	for a := range listing {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	for _, a := range addrs {
		fmt.Println(listing[a])
	}
}

func extOf(fn string) string {
	i := strings.LastIndex(fn, ".")
	if i < 0 {
		return ""
	}
	return fn[i:]
}
