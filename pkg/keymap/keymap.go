// Package keymap maps host keyboard characters onto the 16-key hex keypad.
package keymap

import (
	"errors"
	"fmt"
	"unicode"

	"gochip8/pkg/cpu"
)

var ErrInvalidLayout = errors.New("invalid keypad layout")

// Layout holds the host character for each keypad key, indexed by key value.
type Layout [cpu.KeyCount]rune

// Default puts the keypad on the 1234/QWER/ASDF/ZXCV block so the physical
// arrangement matches the COSMAC VIP hex pad:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var Default = Layout{
	0x0: 'x',
	0x1: '1', 0x2: '2', 0x3: '3',
	0x4: 'q', 0x5: 'w', 0x6: 'e',
	0x7: 'a', 0x8: 's', 0x9: 'd',
	0xA: 'z', 0xB: 'c',
	0xC: '4', 0xD: 'r', 0xE: 'f', 0xF: 'v',
}

// ParseLayout builds a layout from 16 distinct characters given in key order
// 0 through F.
func ParseLayout(s string) (Layout, error) {
	var l Layout
	runes := []rune(s)
	if len(runes) != cpu.KeyCount {
		return l, fmt.Errorf("%w: need %d characters, got %d", ErrInvalidLayout, cpu.KeyCount, len(runes))
	}
	seen := make(map[rune]bool, cpu.KeyCount)
	for i, r := range runes {
		r = unicode.ToLower(r)
		if seen[r] {
			return l, fmt.Errorf("%w: %q used twice", ErrInvalidLayout, r)
		}
		seen[r] = true
		l[i] = r
	}
	return l, nil
}

// Key returns the keypad key bound to r. Letters match in either case.
func (l Layout) Key(r rune) (uint8, bool) {
	r = unicode.ToLower(r)
	for k, c := range l {
		if c == r {
			return uint8(k), true
		}
	}
	return 0, false
}

func (l Layout) String() string {
	return string(l[:])
}
