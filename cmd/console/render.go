//go:build linux || darwin

package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"gochip8/pkg/cpu"
	"gochip8/pkg/grid"
	"gochip8/pkg/video"
)

const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	resetColors = "\x1b[0m"
)

// halfBlocks indexed by top<<1 | bottom.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// renderer draws the display with one character cell per two pixel rows.
type renderer struct {
	out     io.Writer
	palette video.Palette
	buf     bytes.Buffer
	cells   []int
	drawn   bool
	version uint64
}

func newRenderer(out io.Writer, palette video.Palette) *renderer {
	return &renderer{out: out, palette: palette}
}

// render writes the display if it changed since the previous call.
func (r *renderer) render(d *cpu.Display) error {
	if r.drawn && d.Version() == r.version {
		return nil
	}
	r.version = d.Version()
	r.drawn = true

	w, h := d.Size()
	rows := (h + 1) / 2
	if len(r.cells) != w*rows {
		r.cells = make([]int, w*rows)
	}
	clear(r.cells)
	for i, lit := range d.Pixels() {
		if !lit {
			continue
		}
		x, y := grid.GetGridCoords(i, w)
		if y%2 == 0 {
			r.cells[grid.GetGridIndex(x, y/2, w)] |= 2
		} else {
			r.cells[grid.GetGridIndex(x, y/2, w)] |= 1
		}
	}

	r.buf.Reset()
	r.buf.WriteString(cursorHome)
	r.buf.WriteString(fgColor(r.palette.On))
	r.buf.WriteString(bgColor(r.palette.Off))
	for i, cell := range r.cells {
		r.buf.WriteString(halfBlocks[cell])
		if (i+1)%w == 0 {
			r.buf.WriteString("\r\n")
		}
	}
	r.buf.WriteString(resetColors)

	_, err := r.out.Write(r.buf.Bytes())
	return err
}

func fgColor(c color.RGBA) string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

func bgColor(c color.RGBA) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B)
}
