package main

import (
	"os"
	"strings"
	"testing"

	"github.com/mosforge/m6502/bus"
)

func writeListing(t *testing.T, text string) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "listing-*.lst")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	if _, err := f.WriteString(text); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestAssembleValidListing(t *testing.T) {
	// LDA #$7E ; STA $10 ; BRK
	listing := "1000 A9 7E\n1002 85 10\n1004 00\n"
	f := writeListing(t, listing)
	r := bus.NewRAM()

	end, err := assemble(f, r, 0x1000)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if end != 0x1005 {
		t.Errorf("end = $%.4X, want $1005", end)
	}
	want := []uint8{0xA9, 0x7E, 0x85, 0x10, 0x00}
	for i, b := range want {
		if got := r.Read(0x1000 + uint16(i)); got != b {
			t.Errorf("r[0x%.4X] = 0x%.2X, want 0x%.2X", 0x1000+i, got, b)
		}
	}
}

func TestAssembleIgnoresCommentLines(t *testing.T) {
	listing := "; a comment line\n1000 A9 7E\t; inline comment\n1002 00\n"
	f := writeListing(t, listing)
	r := bus.NewRAM()
	end, err := assemble(f, r, 0x1000)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if end != 0x1003 {
		t.Errorf("end = $%.4X, want $1003", end)
	}
}

func TestAssembleRejectsIllegalOpcode(t *testing.T) {
	listing := "1000 02\n" // 0x02 has no legal instruction
	f := writeListing(t, listing)
	r := bus.NewRAM()
	if _, err := assemble(f, r, 0x1000); err == nil || !strings.Contains(err.Error(), "not a legal instruction") {
		t.Errorf("assemble: got err %v, want a not-legal-instruction error", err)
	}
}

func TestAssembleRejectsWrongOperandCount(t *testing.T) {
	listing := "1000 A9\n" // LDA immediate needs one operand byte
	f := writeListing(t, listing)
	r := bus.NewRAM()
	if _, err := assemble(f, r, 0x1000); err == nil || !strings.Contains(err.Error(), "needs") {
		t.Errorf("assemble: got err %v, want an operand-count mismatch error", err)
	}
}
