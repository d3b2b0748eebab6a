// Package cpu implements the MOS 6502 instruction set: the
// fetch-decode-execute loop, the 151-opcode instruction table, the
// addressing-mode resolver, the documented semantic handlers, and the
// reset/interrupt machinery. The flat memory it executes against is
// an external collaborator (see the bus package); the textual loaders,
// CLI driver, and disassembler live outside this package too.
package cpu

import (
	"fmt"

	"github.com/mosforge/m6502/bus"
	"github.com/mosforge/m6502/irq"
)

// Status flag bit positions within P.
const (
	FlagCarry     = uint8(1 << 0)
	FlagZero      = uint8(1 << 1)
	FlagInterrupt = uint8(1 << 2)
	FlagDecimal   = uint8(1 << 3)
	FlagBreak     = uint8(1 << 4)
	FlagReserved  = uint8(1 << 5)
	FlagOverflow  = uint8(1 << 6)
	FlagNegative  = uint8(1 << 7)
)

// Interrupt/reset vectors.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// InvalidOpcode is returned (and, for Run, fatal) when the fetched
// opcode has no legal descriptor. Spec treats this as a programmer
// error in the hosted program, not a recoverable condition.
type InvalidOpcode struct {
	Opcode uint8
	PC     uint16
}

func (e InvalidOpcode) Error() string {
	return fmt.Sprintf("invalid opcode 0x%.2X at PC 0x%.4X", e.Opcode, e.PC)
}

// Chip is a MOS 6502 processor. It owns the register file, status
// flags, pending-interrupt latches, and the cycle counter; the Bus it
// executes against is supplied by the caller and is never owned.
type Chip struct {
	A uint8  // accumulator
	X uint8  // index register X
	Y uint8  // index register Y
	S uint8  // stack pointer
	P uint8  // processor status
	PC uint16 // program counter

	bus bus.Bus

	// Transient decode state, valid only during the instruction
	// currently being executed.
	opcode  uint8
	data    uint8
	address uint16

	resetPending bool
	irqPending   bool
	nmiPending   bool

	cycles uint64

	lastDescriptor *Descriptor
	lastOpcode     uint8
	brkTerminated  bool // true while the last executed instruction was a BRK under EndOnBreak

	// EndOnBreak, when true, makes BRK a terminator for Run() instead
	// of triggering the normal interrupt-style push/vector sequence.
	EndOnBreak bool
}

// New returns a Chip wired to the given Bus. The chip starts powered
// off (all registers and latches zero); call Reset to bring it up.
func New(b bus.Bus) *Chip {
	return &Chip{bus: b}
}

// Reset implements spec §3/§4.E Reset: S=0xFF, P has
// Interrupt-disable|Break|Reserved set, PC loads from the reset
// vector, the cycle counter zeros, and all three pending latches
// clear. No stack pushes occur.
func (c *Chip) Reset() {
	c.S = 0xFF
	c.P = FlagInterrupt | FlagBreak | FlagReserved
	c.PC = c.readWord(ResetVector)
	c.cycles = 0
	c.resetPending = false
	c.irqPending = false
	c.nmiPending = false
}

// SendRST latches a pending reset, serviced at the next Step boundary
// in preference to everything else.
func (c *Chip) SendRST() {
	c.resetPending = true
}

// SendIRQ latches a pending IRQ, but only while the Interrupt-disable
// flag is clear; a call made with the flag set is ignored. Gating
// happens here at signal time: Step does not re-check the flag when it
// services a latched IRQ.
func (c *Chip) SendIRQ() {
	if c.P&FlagInterrupt == 0 {
		c.irqPending = true
	}
}

// SendNMI latches a pending NMI. Unlike IRQ this can be set
// unconditionally.
func (c *Chip) SendNMI() {
	c.nmiPending = true
}

// WireIRQ polls an irq.Sender once and latches SendIRQ if asserted,
// letting an external peripheral drive the line without the cpu
// package depending on its concrete type.
func (c *Chip) WireIRQ(s irq.Sender) {
	if s != nil && s.Raised() {
		c.SendIRQ()
	}
}

// WireNMI is WireIRQ's NMI-line counterpart.
func (c *Chip) WireNMI(s irq.Sender) {
	if s != nil && s.Raised() {
		c.SendNMI()
	}
}

func (c *Chip) tick(n int) {
	c.cycles += uint64(n)
}

// Cycles returns the total cycle count since the last Reset.
func (c *Chip) Cycles() uint64 {
	return c.cycles
}

func (c *Chip) flag(mask uint8) bool {
	return c.P&mask != 0
}

func (c *Chip) setFlag(mask uint8, v bool) {
	if v {
		c.P |= mask
	} else {
		c.P &^= mask
	}
}

func (c *Chip) updateNZ(v uint8) {
	c.setFlag(FlagZero, v == 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
}

// readWord reads two successive bytes at addr and addr+1 (mod 2^16),
// little-endian, each tick costing one cycle.
func (c *Chip) readWord(addr uint16) uint16 {
	lo := c.bus.Read(addr)
	c.tick(1)
	hi := c.bus.Read(addr + 1)
	c.tick(1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *Chip) push(v uint8) {
	c.bus.Write(0x0100+uint16(c.S), v)
	c.S--
}

func (c *Chip) pull() uint8 {
	c.S++
	return c.bus.Read(0x0100 + uint16(c.S))
}

func pageCrossed(base, final uint16) bool {
	return base&0xFF00 != final&0xFF00
}
