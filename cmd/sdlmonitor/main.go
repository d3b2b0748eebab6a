// Command sdlmonitor runs a program image and shows a live heat-map of
// the 64 KiB address space (one pixel per byte, brightness = value)
// alongside a register HUD, redrawn at most refresh_hz times a second
// while running and once more when it stops.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mosforge/m6502/bus"
	"github.com/mosforge/m6502/cpu"
)

const (
	gridSize = 256 // 256x256 = 65536 bytes, one pixel per address
	hudWidth = 220
)

var (
	program   = flag.String("program", "", "path to the program image to load")
	scale     = flag.Int("scale", 2, "pixel scale factor for the memory grid")
	pc        = flag.Int("pc", 0x0400, "PC to force after reset")
	refreshHz = flag.Int("refresh_hz", 30, "how often to redraw the window while running")
)

// fastImage pokes pixel bytes directly into an SDL surface, avoiding
// the per-pixel color.Color conversion cost of Surface.Set.
type fastImage struct {
	surface *sdl.Surface
	data    []byte
}

func (f *fastImage) Set(x, y int, c color.Color) {
	i := int32(y)*f.surface.Pitch + int32(x)*int32(f.surface.Format.BytesPerPixel)
	r, g, b, a := c.RGBA()
	f.data[i+0] = uint8(b >> 8)
	f.data[i+1] = uint8(g >> 8)
	f.data[i+2] = uint8(r >> 8)
	f.data[i+3] = uint8(a >> 8)
}

func (f *fastImage) ColorModel() color.Model { return f.surface.ColorModel() }
func (f *fastImage) Bounds() image.Rectangle { return f.surface.Bounds() }
func (f *fastImage) At(x, y int) color.Color { return f.surface.At(x, y) }

func main() {
	flag.Parse()
	if *program == "" {
		log.Fatal("usage: sdlmonitor -program <path> [-scale N] [-pc 0xNNNN]")
	}

	r := bus.NewRAM()
	var err error
	if strings.EqualFold(filepath.Ext(*program), ".hex") {
		err = r.LoadIntelHex(*program)
	} else {
		err = r.LoadRaw(*program)
	}
	if err != nil {
		log.Fatalf("Cannot open file: %v", err)
	}

	c := cpu.New(r)
	c.Reset()
	c.PC = uint16(*pc)
	c.EndOnBreak = true

	width := int32(gridSize**scale + hudWidth)
	height := int32(gridSize * *scale)

	sdl.Main(func() {
		var window *sdl.Window
		fi := &fastImage{}
		var wg sync.WaitGroup
		wg.Add(1)
		sdl.Do(func() {
			if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
				log.Fatalf("Can't init SDL: %v", err)
			}
			window, err = sdl.CreateWindow("m6502 monitor", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, sdl.WINDOW_SHOWN)
			if err != nil {
				log.Fatalf("Can't create window: %v", err)
			}
			fi.surface, err = window.GetSurface()
			if err != nil {
				log.Fatalf("Can't get window surface: %v", err)
			}
			fi.data = fi.surface.Pixels()
			wg.Done()
		})
		wg.Wait()
		defer func() {
			window.Destroy()
			sdl.Quit()
		}()

		frameInterval := time.Second / time.Duration(*refreshHz)
		last := time.Now()
		running := true
		for running {
			sdl.Do(func() {
				for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
					if _, ok := ev.(*sdl.QuitEvent); ok {
						running = false
					}
				}
			})
			if err := c.Step(); err != nil {
				fmt.Println("halted:", err)
				break
			}
			if c.Halted() {
				break
			}
			if time.Since(last) >= frameInterval {
				sdl.Do(func() { redraw(fi, window, c, r, *scale) })
				last = time.Now()
			}
		}
		sdl.Do(func() { redraw(fi, window, c, r, *scale) })
	})
}

func redraw(fi *fastImage, window *sdl.Window, c *cpu.Chip, r *bus.RAM, scl int) {
	for addr := 0; addr < 65536; addr++ {
		v := r.Read(uint16(addr))
		px := (addr % gridSize) * scl
		py := (addr / gridSize) * scl
		shade := color.RGBA{R: v, G: v, B: v, A: 0xFF}
		for dy := 0; dy < scl; dy++ {
			for dx := 0; dx < scl; dx++ {
				fi.Set(px+dx, py+dy, shade)
			}
		}
	}
	drawHUD(fi, c, gridSize*scl, 10)
	window.UpdateSurface()
}

func drawHUD(fi *fastImage, c *cpu.Chip, x, y int) {
	d := &font.Drawer{
		Dst:  fi,
		Src:  image.NewUniform(color.RGBA{0, 255, 0, 255}),
		Face: basicfont.Face7x13,
	}
	lines := []string{
		fmt.Sprintf("PC %.4X", c.PC),
		fmt.Sprintf("A  %.2X", c.A),
		fmt.Sprintf("X  %.2X", c.X),
		fmt.Sprintf("Y  %.2X", c.Y),
		fmt.Sprintf("S  %.2X", c.S),
		fmt.Sprintf("P  %.2X", c.P),
		fmt.Sprintf("CYC %d", c.Cycles()),
	}
	for i, line := range lines {
		d.Dot = fixed.P(x, y+i*14)
		d.DrawString(line)
	}
}
