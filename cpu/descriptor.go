package cpu

// AddressingMode identifies how an instruction's operand bytes are
// turned into an effective operand location.
type AddressingMode int

const (
	Accumulator AddressingMode = iota
	IndexX
	IndexY
	StackPointer
	Absolute
	AbsoluteX
	AbsoluteY
	Immediate
	Implied
	Indirect
	XIndirect
	IndirectY
	ZeroPage
	ZeroPageX
	ZeroPageY
)

var modeNames = map[AddressingMode]string{
	Accumulator:  "Accumulator",
	IndexX:       "IndexX",
	IndexY:       "IndexY",
	StackPointer: "StackPointer",
	Absolute:     "Absolute",
	AbsoluteX:    "AbsoluteX",
	AbsoluteY:    "AbsoluteY",
	Immediate:    "Immediate",
	Implied:      "Implied",
	Indirect:     "Indirect",
	XIndirect:    "XIndirect",
	IndirectY:    "IndirectY",
	ZeroPage:     "ZeroPage",
	ZeroPageX:    "ZeroPageX",
	ZeroPageY:    "ZeroPageY",
}

func (m AddressingMode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return "Unknown"
}

// lengthByMode is the instruction length in bytes (opcode included)
// for each addressing mode. Spec §4.B.
var lengthByMode = map[AddressingMode]int{
	Accumulator:  1,
	IndexX:       1,
	IndexY:       1,
	StackPointer: 1,
	Implied:      1,
	Immediate:    2,
	XIndirect:    2,
	IndirectY:    2,
	ZeroPage:     2,
	ZeroPageX:    2,
	ZeroPageY:    2,
	Absolute:     3,
	AbsoluteX:    3,
	AbsoluteY:    3,
	Indirect:     3,
}

// OperandCategory identifies what an instruction's resolved operand
// targets: a particular register, the status byte, or a memory cell.
type OperandCategory int

const (
	CatNone OperandCategory = iota
	CatAccumulator
	CatIndexX
	CatIndexY
	CatStackPointer
	CatStatus
	CatAddress
)

// handlerFunc is the semantic routine for a mnemonic. It receives the
// chip and the source operand the resolver produced for the addressing
// mode (a noneOperand, never nil, for Implied mode).
type handlerFunc func(c *Chip, d *Descriptor, op operand)

// Descriptor is one row of the instruction table: an opcode's
// mnemonic, addressing mode, operand category, semantic handler, and
// whether it only reads its operand (permits skipping the extra
// indexed-read page-cross-avoidance cycle bookkeeping).
type Descriptor struct {
	Opcode       uint8
	Mnemonic     string // includes " A" suffix for accumulator shift/rotate variants
	Mode         AddressingMode
	Target       OperandCategory
	Handler      handlerFunc
	ReadOnly     bool // true iff the instruction only reads its resolved operand
}

// Length returns the instruction's total byte length (opcode + operand bytes).
func (d *Descriptor) Length() int {
	return lengthByMode[d.Mode]
}

// legalInstructions is the authoritative 151-entry 6502 legal
// instruction set (conventional published mapping — see DESIGN.md for
// the note about a divergent early draft that misassigned 0x34/0x38).
var legalInstructions = []Descriptor{
	{0x69, "ADC", Immediate, CatAccumulator, hAdc, true},
	{0x65, "ADC", ZeroPage, CatAccumulator, hAdc, true},
	{0x75, "ADC", ZeroPageX, CatAccumulator, hAdc, true},
	{0x6D, "ADC", Absolute, CatAccumulator, hAdc, true},
	{0x7D, "ADC", AbsoluteX, CatAccumulator, hAdc, true},
	{0x79, "ADC", AbsoluteY, CatAccumulator, hAdc, true},
	{0x61, "ADC", XIndirect, CatAccumulator, hAdc, true},
	{0x71, "ADC", IndirectY, CatAccumulator, hAdc, true},

	{0x29, "AND", Immediate, CatAccumulator, hAnd, true},
	{0x25, "AND", ZeroPage, CatAccumulator, hAnd, true},
	{0x35, "AND", ZeroPageX, CatAccumulator, hAnd, true},
	{0x2D, "AND", Absolute, CatAccumulator, hAnd, true},
	{0x3D, "AND", AbsoluteX, CatAccumulator, hAnd, true},
	{0x39, "AND", AbsoluteY, CatAccumulator, hAnd, true},
	{0x21, "AND", XIndirect, CatAccumulator, hAnd, true},
	{0x31, "AND", IndirectY, CatAccumulator, hAnd, true},

	{0x0A, "ASL A", Accumulator, CatAccumulator, hShiftLeft, false},
	{0x06, "ASL", ZeroPage, CatAddress, hShiftLeft, false},
	{0x16, "ASL", ZeroPageX, CatAddress, hShiftLeft, false},
	{0x0E, "ASL", Absolute, CatAddress, hShiftLeft, false},
	{0x1E, "ASL", AbsoluteX, CatAddress, hShiftLeft, false},

	{0x90, "BCC", Immediate, CatNone, hBcc, true},
	{0xB0, "BCS", Immediate, CatNone, hBcs, true},
	{0xF0, "BEQ", Immediate, CatNone, hBeq, true},

	{0x24, "BIT", ZeroPage, CatAddress, hBit, true},
	{0x2C, "BIT", Absolute, CatAddress, hBit, true},

	{0x30, "BMI", Immediate, CatNone, hBmi, true},
	{0xD0, "BNE", Immediate, CatNone, hBne, true},
	{0x10, "BPL", Immediate, CatNone, hBpl, true},

	{0x00, "BRK", Implied, CatNone, hBrk, false},

	{0x50, "BVC", Immediate, CatNone, hBvc, true},
	{0x70, "BVS", Immediate, CatNone, hBvs, true},

	{0x18, "CLC", Implied, CatNone, hClc, true},
	{0xD8, "CLD", Implied, CatNone, hCld, true},
	{0x58, "CLI", Implied, CatNone, hCli, true},
	{0xB8, "CLV", Implied, CatNone, hClv, true},

	{0xC9, "CMP", Immediate, CatAccumulator, hCmp, true},
	{0xC5, "CMP", ZeroPage, CatAccumulator, hCmp, true},
	{0xD5, "CMP", ZeroPageX, CatAccumulator, hCmp, true},
	{0xCD, "CMP", Absolute, CatAccumulator, hCmp, true},
	{0xDD, "CMP", AbsoluteX, CatAccumulator, hCmp, true},
	{0xD9, "CMP", AbsoluteY, CatAccumulator, hCmp, true},
	{0xC1, "CMP", XIndirect, CatAccumulator, hCmp, true},
	{0xD1, "CMP", IndirectY, CatAccumulator, hCmp, true},

	{0xE0, "CPX", Immediate, CatIndexX, hCmp, true},
	{0xE4, "CPX", ZeroPage, CatIndexX, hCmp, true},
	{0xEC, "CPX", Absolute, CatIndexX, hCmp, true},

	{0xC0, "CPY", Immediate, CatIndexY, hCmp, true},
	{0xC4, "CPY", ZeroPage, CatIndexY, hCmp, true},
	{0xCC, "CPY", Absolute, CatIndexY, hCmp, true},

	{0xC6, "DEC", ZeroPage, CatAddress, hDec, false},
	{0xD6, "DEC", ZeroPageX, CatAddress, hDec, false},
	{0xCE, "DEC", Absolute, CatAddress, hDec, false},
	{0xDE, "DEC", AbsoluteX, CatAddress, hDec, false},
	{0xCA, "DEX", Implied, CatIndexX, hDec, false},
	{0x88, "DEY", Implied, CatIndexY, hDec, false},

	{0x49, "EOR", Immediate, CatAccumulator, hEor, true},
	{0x45, "EOR", ZeroPage, CatAccumulator, hEor, true},
	{0x55, "EOR", ZeroPageX, CatAccumulator, hEor, true},
	{0x4D, "EOR", Absolute, CatAccumulator, hEor, true},
	{0x5D, "EOR", AbsoluteX, CatAccumulator, hEor, true},
	{0x59, "EOR", AbsoluteY, CatAccumulator, hEor, true},
	{0x41, "EOR", XIndirect, CatAccumulator, hEor, true},
	{0x51, "EOR", IndirectY, CatAccumulator, hEor, true},

	{0xE6, "INC", ZeroPage, CatAddress, hInc, false},
	{0xF6, "INC", ZeroPageX, CatAddress, hInc, false},
	{0xEE, "INC", Absolute, CatAddress, hInc, false},
	{0xFE, "INC", AbsoluteX, CatAddress, hInc, false},
	{0xE8, "INX", Implied, CatIndexX, hInc, false},
	{0xC8, "INY", Implied, CatIndexY, hInc, false},

	{0x4C, "JMP", Absolute, CatNone, hJmp, true},
	{0x6C, "JMP", Indirect, CatNone, hJmp, true},

	{0x20, "JSR", Absolute, CatNone, hJsr, true},

	{0xA9, "LDA", Immediate, CatAccumulator, hLoad, true},
	{0xA5, "LDA", ZeroPage, CatAccumulator, hLoad, true},
	{0xB5, "LDA", ZeroPageX, CatAccumulator, hLoad, true},
	{0xAD, "LDA", Absolute, CatAccumulator, hLoad, true},
	{0xBD, "LDA", AbsoluteX, CatAccumulator, hLoad, true},
	{0xB9, "LDA", AbsoluteY, CatAccumulator, hLoad, true},
	{0xA1, "LDA", XIndirect, CatAccumulator, hLoad, true},
	{0xB1, "LDA", IndirectY, CatAccumulator, hLoad, true},

	{0xA2, "LDX", Immediate, CatIndexX, hLoad, true},
	{0xA6, "LDX", ZeroPage, CatIndexX, hLoad, true},
	{0xB6, "LDX", ZeroPageY, CatIndexX, hLoad, true},
	{0xAE, "LDX", Absolute, CatIndexX, hLoad, true},
	{0xBE, "LDX", AbsoluteY, CatIndexX, hLoad, true},

	{0xA0, "LDY", Immediate, CatIndexY, hLoad, true},
	{0xA4, "LDY", ZeroPage, CatIndexY, hLoad, true},
	{0xB4, "LDY", ZeroPageX, CatIndexY, hLoad, true},
	{0xAC, "LDY", Absolute, CatIndexY, hLoad, true},
	{0xBC, "LDY", AbsoluteX, CatIndexY, hLoad, true},

	{0x4A, "LSR A", Accumulator, CatAccumulator, hShiftRight, false},
	{0x46, "LSR", ZeroPage, CatAddress, hShiftRight, false},
	{0x56, "LSR", ZeroPageX, CatAddress, hShiftRight, false},
	{0x4E, "LSR", Absolute, CatAddress, hShiftRight, false},
	{0x5E, "LSR", AbsoluteX, CatAddress, hShiftRight, false},

	{0xEA, "NOP", Implied, CatNone, hNop, true},

	{0x09, "ORA", Immediate, CatAccumulator, hOra, true},
	{0x05, "ORA", ZeroPage, CatAccumulator, hOra, true},
	{0x15, "ORA", ZeroPageX, CatAccumulator, hOra, true},
	{0x0D, "ORA", Absolute, CatAccumulator, hOra, true},
	{0x1D, "ORA", AbsoluteX, CatAccumulator, hOra, true},
	{0x19, "ORA", AbsoluteY, CatAccumulator, hOra, true},
	{0x01, "ORA", XIndirect, CatAccumulator, hOra, true},
	{0x11, "ORA", IndirectY, CatAccumulator, hOra, true},

	{0x48, "PHA", Implied, CatAccumulator, hPush, true},
	{0x08, "PHP", Implied, CatStatus, hPush, true},
	{0x68, "PLA", Implied, CatAccumulator, hPull, true},
	{0x28, "PLP", Implied, CatStatus, hPull, true},

	{0x2A, "ROL A", Accumulator, CatAccumulator, hRotateLeft, false},
	{0x26, "ROL", ZeroPage, CatAddress, hRotateLeft, false},
	{0x36, "ROL", ZeroPageX, CatAddress, hRotateLeft, false},
	{0x2E, "ROL", Absolute, CatAddress, hRotateLeft, false},
	{0x3E, "ROL", AbsoluteX, CatAddress, hRotateLeft, false},

	{0x6A, "ROR A", Accumulator, CatAccumulator, hRotateRight, false},
	{0x66, "ROR", ZeroPage, CatAddress, hRotateRight, false},
	{0x76, "ROR", ZeroPageX, CatAddress, hRotateRight, false},
	{0x6E, "ROR", Absolute, CatAddress, hRotateRight, false},
	{0x7E, "ROR", AbsoluteX, CatAddress, hRotateRight, false},

	{0x40, "RTI", Implied, CatNone, hRti, true},
	{0x60, "RTS", Implied, CatNone, hRts, true},

	{0xE9, "SBC", Immediate, CatAccumulator, hSbc, true},
	{0xE5, "SBC", ZeroPage, CatAccumulator, hSbc, true},
	{0xF5, "SBC", ZeroPageX, CatAccumulator, hSbc, true},
	{0xED, "SBC", Absolute, CatAccumulator, hSbc, true},
	{0xFD, "SBC", AbsoluteX, CatAccumulator, hSbc, true},
	{0xF9, "SBC", AbsoluteY, CatAccumulator, hSbc, true},
	{0xE1, "SBC", XIndirect, CatAccumulator, hSbc, true},
	{0xF1, "SBC", IndirectY, CatAccumulator, hSbc, true},

	{0x38, "SEC", Implied, CatNone, hSec, true},
	{0xF8, "SED", Implied, CatNone, hSed, true},
	{0x78, "SEI", Implied, CatNone, hSei, true},

	{0x85, "STA", ZeroPage, CatAccumulator, hStore, false},
	{0x95, "STA", ZeroPageX, CatAccumulator, hStore, false},
	{0x8D, "STA", Absolute, CatAccumulator, hStore, false},
	{0x9D, "STA", AbsoluteX, CatAccumulator, hStore, false},
	{0x99, "STA", AbsoluteY, CatAccumulator, hStore, false},
	{0x81, "STA", XIndirect, CatAccumulator, hStore, false},
	{0x91, "STA", IndirectY, CatAccumulator, hStore, false},

	{0x86, "STX", ZeroPage, CatIndexX, hStore, false},
	{0x8E, "STX", Absolute, CatIndexX, hStore, false},
	{0x96, "STX", ZeroPageY, CatIndexX, hStore, false},

	{0x84, "STY", ZeroPage, CatIndexY, hStore, false},
	{0x8C, "STY", Absolute, CatIndexY, hStore, false},
	{0x94, "STY", ZeroPageX, CatIndexY, hStore, false},

	{0xAA, "TAX", Accumulator, CatIndexX, hLoad, true},
	{0xA8, "TAY", Accumulator, CatIndexY, hLoad, true},
	{0xBA, "TSX", StackPointer, CatIndexX, hLoad, true},
	{0x8A, "TXA", IndexX, CatAccumulator, hLoad, true},
	{0x9A, "TXS", IndexX, CatStackPointer, hLoad, true},
	{0x98, "TYA", IndexY, CatAccumulator, hLoad, true},
}

// LookupOpcode returns the descriptor for opcode, or nil if it has no
// legal (documented) instruction assigned.
func LookupOpcode(opcode uint8) *Descriptor {
	return opcodeTable[opcode]
}

// opcodeTable maps opcode -> descriptor pointer, nil for illegal/undocumented
// opcodes. Built once at init time.
var opcodeTable [256]*Descriptor

func init() {
	if len(legalInstructions) != 151 {
		panic("legalInstructions must contain exactly 151 entries")
	}
	for i := range legalInstructions {
		d := &legalInstructions[i]
		opcodeTable[d.Opcode] = d
	}
}
