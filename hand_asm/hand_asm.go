// hand_asm takes a filename and produces a bin file from parsing the
// output as a hand assembled listing of the form:
//
// XXXX OP A1 A2 ....
//
// Where XXXX is the address field, OP is the opcode byte, and A1/A2
// are its operand bytes (if the addressing mode calls for them).
// Each line's opcode and operand count is checked against the
// instruction descriptor table, so a typo'd opcode or a wrong operand
// count is caught at assembly time rather than surfacing as a bad
// decode later.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mosforge/m6502/bus"
	"github.com/mosforge/m6502/cpu"
	"github.com/mosforge/m6502/disassemble"
)

var (
	offset = flag.Int("offset", 0x0000, "Offset to start writing assembled data. Everything prior is zero filled.")
	list   = flag.Bool("list", false, "Print a disassembly of the assembled bytes after writing the output file.")
)

var lineRE = regexp.MustCompile(`^[0-9A-F]{4}`)

func main() {
	flag.Parse()
	if len(flag.Args()) != 2 {
		log.Fatalf("Invalid command: %s <input> <output>", os.Args[0])
	}
	fn := flag.Args()[0]
	out := flag.Args()[1]

	in, err := os.Open(fn)
	if err != nil {
		log.Fatalf("Can't open %q for input - %v", fn, err)
	}
	defer in.Close()

	r := bus.NewRAM()
	end, err := assemble(in, r, uint16(*offset))
	if err != nil {
		log.Fatalf("%v", err)
	}

	output := make([]byte, end)
	for addr := uint16(0); addr < end; addr++ {
		output[addr] = r.Read(addr)
	}

	of, err := os.Create(out)
	if err != nil {
		log.Fatalf("Can't open output %q - %v", out, err)
	}
	n, err := of.Write(output)
	if got, want := n, len(output); got != want {
		log.Fatalf("Short write to %q. Got %d and want %d", out, got, want)
	}
	if err != nil {
		log.Fatalf("Got error writing to %q - %v", out, err)
	}
	if err := of.Close(); err != nil {
		log.Fatalf("Error closing %q - %v", out, err)
	}

	if *list {
		for pc := uint16(*offset); pc < end; {
			line, n := disassemble.Step(pc, r)
			fmt.Println(line)
			pc += uint16(n)
		}
	}
}

// assemble reads a hand-assembled listing from in, writes the decoded
// bytes into r starting at offset, and returns the address one past
// the last byte written.
func assemble(in *os.File, r *bus.RAM, offset uint16) (uint16, error) {
	scanner := bufio.NewScanner(in)
	addr := offset
	line := 0
	for scanner.Scan() {
		line++
		t := scanner.Text()
		if !lineRE.MatchString(t) {
			continue
		}
		t = strings.SplitN(t, "\t", 2)[0]
		if i := strings.Index(t, "(*)"); i >= 0 {
			t = t[:i]
		}
		if len(t) < 5 {
			return 0, fmt.Errorf("line %d: %q too short to hold an address field", line, t)
		}
		toks := strings.Fields(t[5:])
		if len(toks) == 0 || len(toks) > 3 {
			return 0, fmt.Errorf("line %d: %q has an invalid token count", line, t)
		}

		bytes := make([]uint8, 0, len(toks))
		for _, v := range toks {
			b, err := strconv.ParseUint(v, 16, 8)
			if err != nil {
				return 0, fmt.Errorf("line %d: %q - %v", line, t, err)
			}
			bytes = append(bytes, uint8(b))
		}

		d := cpu.LookupOpcode(bytes[0])
		if d == nil {
			return 0, fmt.Errorf("line %d: opcode $%.2X is not a legal instruction", line, bytes[0])
		}
		if d.Length() != len(bytes) {
			return 0, fmt.Errorf("line %d: %s (opcode $%.2X) needs %d bytes, listing gives %d", line, d.Mnemonic, bytes[0], d.Length(), len(bytes))
		}

		for _, b := range bytes {
			r.Write(addr, b)
			addr++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("reading input: %v", err)
	}
	return addr, nil
}
