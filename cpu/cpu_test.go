package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/mosforge/m6502/bus"
)

func newChip() (*Chip, *bus.RAM) {
	r := bus.NewRAM()
	r.Write(ResetVector, 0x00)
	r.Write(ResetVector+1, 0x10) // reset vector -> 0x1000
	c := New(r)
	c.Reset()
	return c, r
}

func TestDescriptorTableSanity(t *testing.T) {
	count := 0
	for op := 0; op < 256; op++ {
		d := LookupOpcode(uint8(op))
		if d == nil {
			continue
		}
		count++
		if l := d.Length(); l < 1 || l > 3 {
			t.Errorf("opcode 0x%.2X: invalid length %d", op, l)
		}
		if d.Handler == nil {
			t.Errorf("opcode 0x%.2X: nil handler", op)
		}
	}
	if count != 151 {
		t.Errorf("legal opcode count = %d, want 151", count)
	}
}

func TestReset(t *testing.T) {
	c, _ := newChip()
	if c.S != 0xFF {
		t.Errorf("S = 0x%.2X, want 0xFF", c.S)
	}
	if c.PC != 0x1000 {
		t.Errorf("PC = 0x%.4X, want 0x1000", c.PC)
	}
	if c.Cycles() != 0 {
		t.Errorf("Cycles() = %d, want 0", c.Cycles())
	}
	if !c.FlagInterrupt() {
		t.Error("Interrupt-disable not set after Reset")
	}
	if c.resetPending || c.irqPending || c.nmiPending {
		t.Error("a latch is still set after Reset")
	}
}

func TestResetIdempotence(t *testing.T) {
	c, _ := newChip()
	first := *c
	c.Reset()
	if diff := deep.Equal(first, *c); diff != nil {
		t.Errorf("state differs across idempotent Reset: %v\nfull state: %s", diff, spew.Sdump(c))
	}
}

// runProgram writes prog at c.PC and runs under EndOnBreak until a BRK
// terminates it (the program must end with 0x00).
func runProgram(t *testing.T, c *Chip, r *bus.RAM, prog []uint8) {
	t.Helper()
	c.EndOnBreak = true
	for i, b := range prog {
		r.Write(c.PC+uint16(i), b)
	}
	if err := c.Run(); err != nil {
		t.Fatalf("Run() error: %v\nstate: %s", err, spew.Sdump(c))
	}
}

func TestLDAAllBytes(t *testing.T) {
	for b := 0; b < 256; b++ {
		c, r := newChip()
		runProgram(t, c, r, []uint8{0xA9, uint8(b), 0x00})
		if c.A != uint8(b) {
			t.Fatalf("LDA #0x%.2X left A = 0x%.2X", b, c.A)
		}
		if want := c.A == 0; c.FlagZero() != want {
			t.Errorf("byte 0x%.2X: Zero = %v, want %v", b, c.FlagZero(), want)
		}
		if want := c.A&0x80 != 0; c.FlagNegative() != want {
			t.Errorf("byte 0x%.2X: Negative = %v, want %v", b, c.FlagNegative(), want)
		}
	}
}

func TestPushPullRoundTrip(t *testing.T) {
	c, r := newChip()
	runProgram(t, c, r, []uint8{0xA9, 0x7E, 0x48, 0xA9, 0x00, 0x68, 0x00}) // LDA #$7E; PHA; LDA #0; PLA; BRK
	if c.A != 0x7E {
		t.Errorf("PHA/PLA round trip: A = 0x%.2X, want 0x7E", c.A)
	}

	c, r = newChip()
	c.P = 0 // all flags clear, including Break/Reserved
	runProgram(t, c, r, []uint8{0x08, 0x28, 0x00}) // PHP; PLP; BRK
	if !c.FlagBreak() || c.P&FlagReserved == 0 {
		t.Errorf("PHP/PLP: P = 0x%.2X, want Break and Reserved set", c.P)
	}
}

func TestRMWAndStackCycleCounts(t *testing.T) {
	cases := []struct {
		name string
		prog []uint8
		want uint64
	}{
		{"ASL_zp", []uint8{0x06, 0x10}, 5},
		{"ASL_A", []uint8{0x0A}, 1},
		{"INX", []uint8{0xE8}, 2},
		{"INC_zp", []uint8{0xE6, 0x10}, 5},
		{"PHA", []uint8{0x48}, 3},
		{"PLA", []uint8{0x68}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, r := newChip()
			for i, b := range tc.prog {
				r.Write(c.PC+uint16(i), b)
			}
			before := c.Cycles()
			if err := c.Step(); err != nil {
				t.Fatalf("Step: %v", err)
			}
			if got := c.Cycles() - before; got != tc.want {
				t.Errorf("%s: Cycles() delta = %d, want %d", tc.name, got, tc.want)
			}
		})
	}
}

func TestSTAZeroPage(t *testing.T) {
	c, r := newChip()
	runProgram(t, c, r, []uint8{0xA9, 0xD8, 0x85, 0x20, 0x00})
	if got := r.Read(0x0020); got != 0xD8 {
		t.Errorf("memory[0x0020] = 0x%.2X, want 0xD8", got)
	}
}

func TestZeroPageXWrap(t *testing.T) {
	c, r := newChip()
	r.Write(0x0050, 0xDE)
	runProgram(t, c, r, []uint8{0xA2, 0x10, 0xB5, 0x40, 0x00})
	if c.A != 0xDE {
		t.Errorf("A = 0x%.2X, want 0xDE", c.A)
	}
}

func TestXIndirect(t *testing.T) {
	c, r := newChip()
	r.Write(0x0040, 0x00)
	r.Write(0x0041, 0x30)
	r.Write(0x3000, 0xDF)
	runProgram(t, c, r, []uint8{0xA2, 0x20, 0xA1, 0x20, 0x00})
	if c.A != 0xDF {
		t.Errorf("A = 0x%.2X, want 0xDF", c.A)
	}
}

func TestIndirectJMPPageBug(t *testing.T) {
	c, r := newChip()
	r.Write(c.PC, 0x6C)
	r.Write(c.PC+1, 0xFF)
	r.Write(c.PC+2, 0x3F)
	r.Write(0x3FFF, 0x00)
	r.Write(0x4000, 0x50) // would be the high byte if the bug weren't reproduced
	r.Write(0x3F00, 0x60) // actual high byte per the page-boundary bug
	r.Write(0x6000, 0x00)

	if err := c.Step(); err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if c.PC != 0x6000 {
		t.Errorf("PC = 0x%.4X, want 0x6000", c.PC)
	}
}

func TestJSRRTS(t *testing.T) {
	c, r := newChip()
	r.Write(c.PC, 0x20)
	r.Write(c.PC+1, 0x00)
	r.Write(c.PC+2, 0x30)
	r.Write(0x3000, 0x60) // RTS

	if err := c.Step(); err != nil { // JSR
		t.Fatalf("JSR step error: %v", err)
	}
	if c.PC != 0x3000 {
		t.Errorf("PC after JSR = 0x%.4X, want 0x3000", c.PC)
	}
	lo := r.Read(0x0100 + uint16(c.S+1))
	hi := r.Read(0x0100 + uint16(c.S+2))
	ret := uint16(hi)<<8 | uint16(lo)
	if ret != 0x1002 {
		t.Errorf("return address on stack = 0x%.4X, want 0x1002", ret)
	}
	if err := c.Step(); err != nil { // RTS
		t.Fatalf("RTS step error: %v", err)
	}
	if c.PC != 0x1003 {
		t.Errorf("PC after RTS = 0x%.4X, want 0x1003", c.PC)
	}
}

func TestInvalidOpcode(t *testing.T) {
	c, r := newChip()
	r.Write(c.PC, 0x02) // illegal
	err := c.Step()
	if err == nil {
		t.Fatal("expected an error for an illegal opcode")
	}
	if _, ok := err.(InvalidOpcode); !ok {
		t.Errorf("error type = %T, want InvalidOpcode", err)
	}
}

func TestNZInvariant(t *testing.T) {
	// Sweep a set of boundary values through LDA (a register-target
	// instruction) and confirm Zero/Negative always reflect the written value.
	c, r := newChip()
	for _, v := range []uint8{0x00, 0x01, 0x7F, 0x80, 0xFF} {
		r.Write(c.PC, 0xA9)
		r.Write(c.PC+1, v)
		if err := c.Step(); err != nil {
			t.Fatalf("Step() error: %v", err)
		}
		if want := v == 0; c.FlagZero() != want {
			t.Errorf("value 0x%.2X: Zero = %v, want %v", v, c.FlagZero(), want)
		}
		if want := v&0x80 != 0; c.FlagNegative() != want {
			t.Errorf("value 0x%.2X: Negative = %v, want %v", v, c.FlagNegative(), want)
		}
	}
}

func TestADCDecimalMode(t *testing.T) {
	c, r := newChip()
	c.A = 0x05
	c.setFlag(FlagDecimal, true)
	r.Write(c.PC, 0x69) // ADC #
	r.Write(c.PC+1, 0x05)
	if err := c.Step(); err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if c.A != 0x10 {
		t.Errorf("decimal ADC 05+05 = 0x%.2X, want 0x10", c.A)
	}
	if c.FlagCarry() {
		t.Error("unexpected carry out of decimal ADC 05+05")
	}
}

func TestIRQLatchGatedByInterruptDisable(t *testing.T) {
	c, _ := newChip()
	c.setFlag(FlagInterrupt, true)
	c.SendIRQ()
	if c.irqPending {
		t.Error("SendIRQ latched an IRQ while Interrupt-disable was set")
	}
	c.setFlag(FlagInterrupt, false)
	c.SendIRQ()
	if !c.irqPending {
		t.Error("SendIRQ did not latch with Interrupt-disable clear")
	}
}

func TestLastWasQueries(t *testing.T) {
	c, r := newChip()
	r.Write(c.PC, 0xA9) // LDA #
	r.Write(c.PC+1, 0x01)
	if err := c.Step(); err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if !c.LastWas("LDA") {
		t.Error("LastWas(LDA) = false")
	}
	if !c.LastWasMode("LDA", Immediate) {
		t.Error("LastWasMode(LDA, Immediate) = false")
	}
	if c.LastWasMode("LDA", ZeroPage) {
		t.Error("LastWasMode(LDA, ZeroPage) = true, want false")
	}
}
