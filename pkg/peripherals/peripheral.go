// Package peripherals holds devices that observe the interpreter once per
// frame: the buzzer that turns the sound timer into audio and a recorder that
// captures that audio to a WAV file.
package peripherals

import "gochip8/pkg/cpu"

// Peripheral is attached to a driver and called after every frame, once the
// frame's instructions have run and the timers have ticked.
type Peripheral interface {
	Type() string
	Frame(m *cpu.Machine) error
}
