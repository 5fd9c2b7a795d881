package keymap

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDefaultLayout(t *testing.T) {
	assert.Equal(t, "x123qweasdzc4rfv", Default.String())

	tests := []struct {
		r   rune
		key uint8
	}{
		{'x', 0x0},
		{'1', 0x1},
		{'q', 0x4},
		{'W', 0x5},
		{'z', 0xA},
		{'4', 0xC},
		{'V', 0xF},
	}
	for _, tc := range tests {
		key, ok := Default.Key(tc.r)
		assert.True(t, ok)
		assert.Equal(t, tc.key, key)
	}

	_, ok := Default.Key('p')
	assert.False(t, ok)
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("0123456789ABCDEF")
	assert.NoError(t, err)
	key, ok := l.Key('b')
	assert.True(t, ok)
	assert.Equal(t, uint8(0xB), key)

	_, err = ParseLayout("0123")
	assert.True(t, errors.Is(err, ErrInvalidLayout))

	_, err = ParseLayout("00123456789abcde")
	assert.True(t, errors.Is(err, ErrInvalidLayout))
}
