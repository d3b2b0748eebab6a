// Command m6502 loads a program image and runs it to completion,
// printing a fixed set of memory windows and register values.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mosforge/m6502/bus"
	"github.com/mosforge/m6502/cpu"
)

func main() {
	app := &cli.App{
		Name:      "m6502",
		Usage:     "load and run a 6502 program image",
		ArgsUsage: "<program>",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "pc",
				Value: 0x0400,
				Usage: "PC to force after reset (test-suite convention is 0x0400)",
			},
			&cli.IntFlag{
				Name:  "max-steps",
				Value: 10_000_000,
				Usage: "safety bound on instructions executed before giving up",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return cli.Exit("Missing argument", 1)
	}
	path := ctx.Args().Get(0)

	r := bus.NewRAM()
	if strings.EqualFold(filepath.Ext(path), ".hex") {
		if err := r.LoadIntelHex(path); err != nil {
			return cli.Exit(fmt.Sprintf("Cannot open file: %v", err), 1)
		}
	} else {
		if err := r.LoadRaw(path); err != nil {
			return cli.Exit(fmt.Sprintf("Cannot open file: %v", err), 1)
		}
	}

	c := cpu.New(r)
	c.Reset()
	c.PC = uint16(ctx.Uint64("pc"))
	c.EndOnBreak = true

	maxSteps := ctx.Int("max-steps")
	var lastPC uint16
	for i := 0; i < maxSteps; i++ {
		lastPC = c.PC
		if err := c.Step(); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if c.Halted() {
			break
		}
		if c.PC == lastPC {
			break
		}
	}

	printState(c, r)
	return nil
}

func printState(c *cpu.Chip, r *bus.RAM) {
	fmt.Printf("PC=%.4X A=%.2X X=%.2X Y=%.2X S=%.2X P=%.2X cycles=%d\n",
		c.PC, c.A, c.X, c.Y, c.S, c.P, c.Cycles())
	fmt.Printf("Zero page:  %s\n", r.HexDump(0x0000, 16))
	fmt.Printf("Stack:      %s\n", r.HexDump(0x0100, 16))
	fmt.Printf("At PC:      %s\n", r.HexDump(c.PC, 16))
}
