package cpu

import "testing"

func TestTimerCountsDownToZero(t *testing.T) {
	var tm Timer
	tm.Reload(3)
	for want := byte(2); ; want-- {
		tm.Tick()
		if tm.Value() != want {
			t.Fatalf("Value: expected %d, got %d", want, tm.Value())
		}
		if want == 0 {
			break
		}
	}
	if tm.IsActive() {
		t.Error("timer active at zero")
	}
	tm.Tick()
	if tm.Value() != 0 {
		t.Errorf("timer went below zero: %d", tm.Value())
	}
}

func TestTimerFullRange(t *testing.T) {
	var tm Timer
	tm.Reload(255)
	for i := 0; i < 300; i++ {
		tm.Tick()
	}
	if tm.Value() != 0 {
		t.Errorf("Value after 300 ticks: expected 0, got %d", tm.Value())
	}
}
