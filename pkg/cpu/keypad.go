package cpu

import "fmt"

// KeyCount is the number of keys on the hex keypad (0x0-0xF).
const KeyCount = 16

// Keypad holds the state of the 16 hex keys plus a single edge flag that is
// raised on every press or release and consumed by HasChanged.
type Keypad struct {
	state [KeyCount]bool
	dirty bool
}

// SetState records the state of one key. The changed flag is only raised when
// the state actually flips.
func (k *Keypad) SetState(key uint8, pressed bool) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: 0x%X", ErrInvalidKey, key)
	}
	if k.state[key] != pressed {
		k.state[key] = pressed
		k.dirty = true
	}
	return nil
}

// State reports whether key is held. Only the low nibble of key is used, which
// matches how Ex9E/ExA1 address the keypad through a full register byte.
func (k *Keypad) State(key uint8) bool {
	return k.state[key&0x0F]
}

// HasChanged returns the changed flag and clears it.
func (k *Keypad) HasChanged() bool {
	changed := k.dirty
	k.dirty = false
	return changed
}

// Pressed returns the lowest-indexed key currently held.
func (k *Keypad) Pressed() (uint8, bool) {
	for i, down := range k.state {
		if down {
			return uint8(i), true
		}
	}
	return 0, false
}

func (k *Keypad) reset() {
	k.state = [KeyCount]bool{}
	k.dirty = false
}
