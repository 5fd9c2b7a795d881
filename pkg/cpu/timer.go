package cpu

// Timer is an 8-bit countdown counter. It is decremented by Tick, which the
// host calls at a fixed 60 Hz, and stops at zero.
type Timer struct {
	counter byte
}

func (t *Timer) Value() byte {
	return t.counter
}

func (t *Timer) Reload(v byte) {
	t.counter = v
}

func (t *Timer) IsActive() bool {
	return t.counter != 0
}

func (t *Timer) Tick() {
	if t.IsActive() {
		t.counter--
	}
}
