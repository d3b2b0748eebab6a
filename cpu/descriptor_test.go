package cpu

import "testing"

func TestAddressingModeString(t *testing.T) {
	if got := Absolute.String(); got != "Absolute" {
		t.Errorf("Absolute.String() = %q", got)
	}
	if got := AddressingMode(999).String(); got != "Unknown" {
		t.Errorf("unknown mode String() = %q, want Unknown", got)
	}
}

func TestLengthByMode(t *testing.T) {
	cases := []struct {
		mode AddressingMode
		want int
	}{
		{Implied, 1},
		{Accumulator, 1},
		{Immediate, 2},
		{ZeroPage, 2},
		{XIndirect, 2},
		{IndirectY, 2},
		{Absolute, 3},
		{AbsoluteX, 3},
		{Indirect, 3},
	}
	for _, tc := range cases {
		d := Descriptor{Mode: tc.mode}
		if got := d.Length(); got != tc.want {
			t.Errorf("%v.Length() = %d, want %d", tc.mode, got, tc.want)
		}
	}
}

func TestLookupOpcodeKnownAndIllegal(t *testing.T) {
	d := LookupOpcode(0xA9) // LDA immediate
	if d == nil {
		t.Fatal("LookupOpcode(0xA9) = nil, want LDA descriptor")
	}
	if d.Mnemonic != "LDA" || d.Mode != Immediate {
		t.Errorf("LookupOpcode(0xA9) = %+v, want LDA/Immediate", d)
	}
	if got := LookupOpcode(0x02); got != nil {
		t.Errorf("LookupOpcode(0x02) = %+v, want nil (illegal opcode)", got)
	}
}

func TestNoDuplicateOpcodes(t *testing.T) {
	seen := make(map[uint8]string)
	for _, d := range legalInstructions {
		if prev, ok := seen[d.Opcode]; ok {
			t.Errorf("opcode 0x%.2X assigned to both %s and %s", d.Opcode, prev, d.Mnemonic)
		}
		seen[d.Opcode] = d.Mnemonic
	}
}
