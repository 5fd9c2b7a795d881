// Package video turns the interpreter framebuffer into RGBA images.
package video

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"

	"gochip8/pkg/cpu"

	"golang.org/x/image/draw"
)

var ErrInvalidColor = errors.New("invalid color")

// Palette maps the two pixel states to colors.
type Palette struct {
	On  color.RGBA
	Off color.RGBA
}

// DefaultPalette is white on black.
var DefaultPalette = Palette{
	On:  color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	Off: color.RGBA{A: 0xFF},
}

// ParseColor parses a hex RGB color such as "#33ff66" or "33FF66".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: byte(v >> 16), G: byte(v >> 8), B: byte(v), A: 0xFF}, nil
}

// WriteFramebuffer fills dst with the display contents as RGBA8888. dst must
// hold at least width*height*4 bytes.
func WriteFramebuffer(dst []byte, d *cpu.Display, p Palette) {
	for i, lit := range d.Pixels() {
		c := p.Off
		if lit {
			c = p.On
		}
		dst[i*4+0] = c.R
		dst[i*4+1] = c.G
		dst[i*4+2] = c.B
		dst[i*4+3] = c.A
	}
}

// FramebufferRGBA returns the display as a freshly allocated RGBA8888 slice.
func FramebufferRGBA(d *cpu.Display, p Palette) []byte {
	w, h := d.Size()
	pix := make([]byte, w*h*4)
	WriteFramebuffer(pix, d, p)
	return pix
}

// FramebufferImage wraps the display contents in an *image.RGBA.
func FramebufferImage(d *cpu.Display, p Palette) *image.RGBA {
	w, h := d.Size()
	return &image.RGBA{
		Pix:    FramebufferRGBA(d, p),
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// Scale enlarges img by an integer factor without smoothing.
func Scale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SaveScreenshot encodes the display, scaled by factor, as a PNG file.
func SaveScreenshot(filename string, d *cpu.Display, p Palette, factor int) error {
	img := Scale(FramebufferImage(d, p), factor)
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding screenshot: %w", err)
	}
	return f.Close()
}
