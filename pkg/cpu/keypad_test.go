package cpu

import (
	"errors"
	"testing"
)

func TestKeypadEdges(t *testing.T) {
	var k Keypad

	if k.HasChanged() {
		t.Error("new keypad reports a change")
	}
	if err := k.SetState(0x5, true); err != nil {
		t.Fatal(err)
	}
	if !k.HasChanged() {
		t.Error("press not reported")
	}
	if k.HasChanged() {
		t.Error("HasChanged did not clear the flag")
	}

	// Same state again is not an edge.
	_ = k.SetState(0x5, true)
	if k.HasChanged() {
		t.Error("repeated press reported as a change")
	}

	_ = k.SetState(0x5, false)
	if !k.HasChanged() {
		t.Error("release not reported")
	}
}

func TestKeypadState(t *testing.T) {
	var k Keypad
	_ = k.SetState(0xA, true)
	if !k.State(0xA) {
		t.Error("key A not held")
	}
	if !k.State(0x1A) {
		t.Error("State does not mask to the low nibble")
	}
	if k.State(0xB) {
		t.Error("key B reported held")
	}
}

func TestKeypadPressed(t *testing.T) {
	var k Keypad
	if _, ok := k.Pressed(); ok {
		t.Error("empty keypad reports a pressed key")
	}
	_ = k.SetState(0xE, true)
	_ = k.SetState(0x3, true)
	key, ok := k.Pressed()
	if !ok || key != 0x3 {
		t.Errorf("Pressed: expected 0x3, got 0x%X (ok=%v)", key, ok)
	}
}

func TestKeypadInvalidKey(t *testing.T) {
	var k Keypad
	err := k.SetState(KeyCount, true)
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
	if k.HasChanged() {
		t.Error("invalid key raised the changed flag")
	}
}
