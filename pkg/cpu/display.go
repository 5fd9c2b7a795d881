package cpu

import "gochip8/pkg/grid"

const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the monochrome framebuffer. Pixels are stored row-major and
// drawn by XOR; coordinates wrap around both edges.
type Display struct {
	pixels  []bool
	w, h    int
	version uint64
}

func NewDisplay(w, h int) *Display {
	return &Display{
		pixels: make([]bool, w*h),
		w:      w,
		h:      h,
	}
}

func (d *Display) Size() (int, int) {
	return d.w, d.h
}

func (d *Display) Clear() {
	clear(d.pixels)
	d.version++
}

func (d *Display) Read(x, y int) bool {
	return d.pixels[d.index(x, y)]
}

// Write XORs bit into the pixel at (x, y) and reports whether a lit pixel was
// turned off.
func (d *Display) Write(x, y int, bit bool) bool {
	if !bit {
		return false
	}
	i := d.index(x, y)
	was := d.pixels[i]
	d.pixels[i] = !was
	d.version++
	return was
}

// Pixels returns a copy of the framebuffer in row-major order.
func (d *Display) Pixels() []bool {
	out := make([]bool, len(d.pixels))
	copy(out, d.pixels)
	return out
}

// Version increases on every mutation. Renderers can compare it against the
// value seen on the previous frame to skip redrawing an unchanged screen.
func (d *Display) Version() uint64 {
	return d.version
}

func (d *Display) index(x, y int) int {
	return grid.GetGridIndex(grid.Wrap(x, d.w), grid.Wrap(y, d.h), d.w)
}
