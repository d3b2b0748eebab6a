// Command debugger is an interactive bubbletea TUI for stepping a
// program one instruction at a time and watching registers, flags,
// and a memory page table update live.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mosforge/m6502/bus"
	"github.com/mosforge/m6502/cpu"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <program> [pc]", os.Args[0])
	}
	path := os.Args[1]

	r := bus.NewRAM()
	var err error
	if strings.EqualFold(filepath.Ext(path), ".hex") {
		err = r.LoadIntelHex(path)
	} else {
		err = r.LoadRaw(path)
	}
	if err != nil {
		log.Fatalf("Cannot open file: %v", err)
	}

	c := cpu.New(r)
	c.Reset()
	if len(os.Args) > 2 {
		pc, perr := strconv.ParseUint(os.Args[2], 0, 16)
		if perr != nil {
			log.Fatalf("invalid pc %q: %v", os.Args[2], perr)
		}
		c.PC = uint16(pc)
	}

	m := model{chip: c, ram: r, offset: c.PC}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		log.Fatal(err)
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		fmt.Fprintln(os.Stderr, "halted:", fm.err)
		os.Exit(1)
	}
}
