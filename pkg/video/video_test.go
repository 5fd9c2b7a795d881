package video

import (
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gochip8/pkg/cpu"

	"github.com/retroenv/retrogolib/assert"
)

var testPalette = Palette{
	On:  color.RGBA{R: 0x33, G: 0xFF, B: 0x66, A: 0xFF},
	Off: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF},
}

func TestFramebufferRGBA(t *testing.T) {
	d := cpu.NewDisplay(cpu.DisplayWidth, cpu.DisplayHeight)
	d.Write(1, 0, true)

	pix := FramebufferRGBA(d, testPalette)
	assert.Equal(t, cpu.DisplayWidth*cpu.DisplayHeight*4, len(pix))

	// pixel (0,0) is off, (1,0) is on
	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0xFF}, pix[0:4])
	assert.Equal(t, []byte{0x33, 0xFF, 0x66, 0xFF}, pix[4:8])
}

func TestFramebufferImage(t *testing.T) {
	d := cpu.NewDisplay(cpu.DisplayWidth, cpu.DisplayHeight)
	d.Write(63, 31, true)

	img := FramebufferImage(d, testPalette)
	assert.Equal(t, 64, img.Rect.Dx())
	assert.Equal(t, 32, img.Rect.Dy())
	assert.Equal(t, 64*4, img.Stride)
	assert.Equal(t, testPalette.On, img.RGBAAt(63, 31))
	assert.Equal(t, testPalette.Off, img.RGBAAt(0, 0))
}

func TestScale(t *testing.T) {
	d := cpu.NewDisplay(cpu.DisplayWidth, cpu.DisplayHeight)
	d.Write(2, 1, true)

	img := Scale(FramebufferImage(d, testPalette), 10)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 320, img.Bounds().Dy())
	for y := 10; y < 20; y++ {
		for x := 20; x < 30; x++ {
			assert.Equal(t, testPalette.On, img.RGBAAt(x, y))
		}
	}
	assert.Equal(t, testPalette.Off, img.RGBAAt(19, 10))
	assert.Equal(t, testPalette.Off, img.RGBAAt(30, 19))

	orig := FramebufferImage(d, testPalette)
	assert.True(t, Scale(orig, 1) == orig)
}

func TestSaveScreenshot(t *testing.T) {
	d := cpu.NewDisplay(cpu.DisplayWidth, cpu.DisplayHeight)
	d.Write(0, 0, true)
	path := filepath.Join(t.TempDir(), "shot.png")

	assert.NoError(t, SaveScreenshot(path, d, testPalette, 2))

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	assert.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0x33), r>>8)
	assert.Equal(t, uint32(0xFF), g>>8)
	assert.Equal(t, uint32(0x66), b>>8)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#33ff66")
	assert.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x33, G: 0xFF, B: 0x66, A: 0xFF}, c)

	c, err = ParseColor("102030")
	assert.NoError(t, err)
	assert.Equal(t, testPalette.Off, c)

	for _, bad := range []string{"", "#fff", "gg0000", "#1234567"} {
		_, err := ParseColor(bad)
		assert.True(t, errors.Is(err, ErrInvalidColor))
	}
}
