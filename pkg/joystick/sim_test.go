package joystick

import (
	"errors"
	"testing"
	"time"
)

func TestSimConnectOutOfRange(t *testing.T) {
	sim := NewSim(2)
	if err := sim.Connect(2, "pad", nil, nil); err == nil {
		t.Fatalf("expected error for slot beyond range")
	}
	if err := sim.Connect(-1, "pad", nil, nil); err == nil {
		t.Fatalf("expected error for negative slot")
	}
}

func TestSimConnectCopiesInput(t *testing.T) {
	sim := NewSim(1)
	axes := []float32{0.3}
	_ = sim.Connect(0, "pad", axes, nil)
	axes[0] = 0.9
	if got := sim.Axes(0)[0]; got != 0.3 {
		t.Fatalf("sim kept caller slice: axis = %v", got)
	}
}

func TestSimDemoAnimates(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }

	sim := NewSim(DefaultSimSlots)
	sim.StartDemo(clock)

	if err := sim.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	snaps := NewCollector(sim).Poll()
	if len(snaps) != 2 {
		t.Fatalf("demo devices = %d, want 2", len(snaps))
	}
	if !snaps[0].Pressed(0) {
		t.Fatalf("button 0 should be lit at t=0: %v", snaps[0].Buttons)
	}

	now = now.Add(300 * time.Millisecond)
	_ = sim.Refresh()
	later := NewCollector(sim).Poll()
	if later[0].Pressed(0) || !later[0].Pressed(1) {
		t.Fatalf("button 1 should be lit at t=0.3s: %v", later[0].Buttons)
	}
	if later[0].Axes[0] == snaps[0].Axes[0] {
		t.Fatalf("axis 0 did not move: %v", later[0].Axes[0])
	}
	for _, v := range later[1].Axes {
		if v < -1 || v > 1 {
			t.Fatalf("axis out of range: %v", v)
		}
	}

	// Polling alone reads the latched state; only Refresh advances it.
	now = now.Add(time.Second)
	again := NewCollector(sim).Poll()
	if again[0].Axes[0] != later[0].Axes[0] {
		t.Fatalf("Poll advanced the demo without Refresh: %v != %v", again[0].Axes[0], later[0].Axes[0])
	}
}

func TestOpenBackends(t *testing.T) {
	p, err := Open(KindSim, Options{})
	if err != nil {
		t.Fatalf("Open(sim): %v", err)
	}
	if p.MaxSlots() != DefaultSimSlots {
		t.Fatalf("sim MaxSlots() = %d", p.MaxSlots())
	}
	if err := Close(p); err != nil {
		t.Fatalf("Close(sim): %v", err)
	}

	if _, err := Open("bogus", Options{}); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("Open(bogus) error = %v, want ErrUnknownBackend", err)
	}
}

func TestButtonStateString(t *testing.T) {
	if Pressed.String() != "pressed" || Released.String() != "released" {
		t.Fatalf("unexpected strings %q %q", Pressed, Released)
	}
}
