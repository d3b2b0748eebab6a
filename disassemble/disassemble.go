// Package disassemble renders one instruction at a time into fixed
// textual form, for cmd/debugger and hand_asm. Step does not
// interpret control flow: a JMP disassembles as "JMP $xxxx" and the
// byte(s) at the jump target are not followed.
package disassemble

import (
	"fmt"

	"github.com/mosforge/m6502/bus"
	"github.com/mosforge/m6502/cpu"
)

// Step disassembles the instruction at pc and returns its text and
// length in bytes, so the caller can advance pc for the next call.
// It reads the opcode byte at pc and then only the operand bytes the
// addressing mode calls for; addresses wrap modulo 2^16.
func Step(pc uint16, b bus.Bus) (string, int) {
	opcode := b.Read(pc)
	d := cpu.LookupOpcode(opcode)
	if d == nil {
		return fmt.Sprintf("$%.4X: .byte $%X", pc, opcode), 1
	}

	length := d.Length()
	var text string
	switch d.Mode {
	case cpu.Accumulator, cpu.IndexX, cpu.IndexY, cpu.StackPointer, cpu.Implied:
		text = d.Mnemonic

	case cpu.Immediate:
		text = fmt.Sprintf("%s #$%X", d.Mnemonic, b.Read(pc+1))

	case cpu.ZeroPage:
		text = fmt.Sprintf("%s $%X", d.Mnemonic, b.Read(pc+1))
	case cpu.ZeroPageX:
		text = fmt.Sprintf("%s $%X, X", d.Mnemonic, b.Read(pc+1))
	case cpu.ZeroPageY:
		text = fmt.Sprintf("%s $%X, Y", d.Mnemonic, b.Read(pc+1))

	// X goes inside the parens (indexing happens before the indirection),
	// Y goes outside (indexing happens after) -- the conventional assembler
	// notation for these two forms.
	case cpu.XIndirect:
		text = fmt.Sprintf("%s ($%X, X)", d.Mnemonic, b.Read(pc+1))
	case cpu.IndirectY:
		text = fmt.Sprintf("%s ($%X), Y", d.Mnemonic, b.Read(pc+1))

	case cpu.Absolute:
		text = fmt.Sprintf("%s $%X", d.Mnemonic, word(b, pc+1))
	case cpu.AbsoluteX:
		text = fmt.Sprintf("%s $%X, X", d.Mnemonic, word(b, pc+1))
	case cpu.AbsoluteY:
		text = fmt.Sprintf("%s $%X, Y", d.Mnemonic, word(b, pc+1))
	case cpu.Indirect:
		text = fmt.Sprintf("%s ($%X)", d.Mnemonic, word(b, pc+1))

	default:
		text = d.Mnemonic
	}
	return fmt.Sprintf("$%.4X: %s", pc, text), length
}

// Range disassembles count instructions starting at pc.
func Range(pc uint16, count int, b bus.Bus) []string {
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		line, n := Step(pc, b)
		lines = append(lines, line)
		pc += uint16(n)
	}
	return lines
}

func word(b bus.Bus, addr uint16) uint16 {
	lo := b.Read(addr)
	hi := b.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}
