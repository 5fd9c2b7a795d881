//go:build linux || darwin

package main

import (
	"errors"

	"gochip8/pkg/keymap"
)

var errQuit = errors.New("quit requested")

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// tapper is the part of the emulator the input loop drives.
type tapper interface {
	TapKey(key uint8) error
}

// handleInput forwards the keypad keys found in b. CSI and SS3 sequences such
// as arrow keys are skipped. A lone escape or Ctrl-C asks to quit.
func handleInput(b []byte, layout keymap.Layout, emu tapper) error {
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case keyCtrlC:
			return errQuit
		case keyEscape:
			if i+1 == len(b) {
				return errQuit
			}
			if b[i+1] != '[' && b[i+1] != 'O' {
				// Alt+key arrives as ESC followed by the key.
				continue
			}
			// CSI/SS3 sequence: skip to the final byte.
			i++
			for i+1 < len(b) && (b[i+1] < 0x40 || b[i+1] > 0x7e) {
				i++
			}
			i++
			continue
		}
		if key, ok := layout.Key(rune(b[i])); ok {
			if err := emu.TapKey(key); err != nil {
				return err
			}
		}
	}
	return nil
}
