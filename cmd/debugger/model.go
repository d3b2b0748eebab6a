package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mosforge/m6502/bus"
	"github.com/mosforge/m6502/cpu"
	"github.com/mosforge/m6502/disassemble"
)

type model struct {
	chip *cpu.Chip
	ram  *bus.RAM

	offset uint16 // base address for the memory page table
	prevPC uint16
	err    error
}

var statusStyle = lipgloss.NewStyle().Bold(true)

// Init satisfies tea.Model. The chip is already reset by the caller.
func (m model) Init() tea.Cmd {
	return nil
}

// Update advances the chip by one instruction on space/j, or quits on q.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.chip.PC
			if err := m.chip.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		case "i":
			m.chip.SendIRQ()
		case "n":
			m.chip.SendNMI()
		}
	}
	return m, nil
}

func (m model) renderPage(start uint16) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%.4X | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		v := m.ram.Read(addr)
		if addr == m.chip.PC {
			fmt.Fprintf(&sb, "[%.2X] ", v)
		} else {
			fmt.Fprintf(&sb, " %.2X  ", v)
		}
	}
	return sb.String()
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %X  ", b)
	}
	lines := []string{header}
	base := m.offset &^ 0x0F
	for p := 0; p < 8; p++ {
		lines = append(lines, m.renderPage(base+uint16(p*16)))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	flags := []struct {
		name string
		set  bool
	}{
		{"N", m.chip.FlagNegative()},
		{"V", m.chip.FlagOverflow()},
		{"B", m.chip.FlagBreak()},
		{"D", m.chip.FlagDecimal()},
		{"I", m.chip.FlagInterrupt()},
		{"Z", m.chip.FlagZero()},
		{"C", m.chip.FlagCarry()},
	}
	var bits strings.Builder
	var names strings.Builder
	for _, f := range flags {
		names.WriteString(f.name + " ")
		if f.set {
			bits.WriteString("1 ")
		} else {
			bits.WriteString(". ")
		}
	}
	line, _ := disassemble.Step(m.chip.PC, m.ram)
	return statusStyle.Render(fmt.Sprintf(
		"PC: %.4X (was %.4X)\nA: %.2X  X: %.2X  Y: %.2X  S: %.2X\ncycles: %d\n%s\n%s\n\n%s",
		m.chip.PC, m.prevPC, m.chip.A, m.chip.X, m.chip.Y, m.chip.S, m.chip.Cycles(),
		names.String(), bits.String(), line))
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), "   ", m.status()),
		"",
		"space/j: step  i: raise IRQ  n: raise NMI  q: quit",
	)
}
