package cpu

const (
	// FontGlyphSize is the number of bytes (rows) in one font glyph.
	FontGlyphSize = 5
	// FontSize is the number of bytes occupied by the built-in font at 0x000.
	FontSize = len(font)
)

// font holds the 4x5 glyphs for the hex digits 0-F, one glyph every five bytes.
var font = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Glyph returns the five rows of the built-in glyph for the hex digit d.
func Glyph(d byte) []byte {
	base := int(d&0x0F) * FontGlyphSize
	out := make([]byte, FontGlyphSize)
	copy(out, font[base:base+FontGlyphSize])
	return out
}
