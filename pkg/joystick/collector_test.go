package joystick

import (
	"testing"
)

func TestCollectorNoDevices(t *testing.T) {
	c := NewCollector(NewSim(DefaultSimSlots))
	if got := c.Poll(); len(got) != 0 {
		t.Fatalf("Poll() = %d snapshots, want 0", len(got))
	}
}

func TestCollectorNilPlatform(t *testing.T) {
	var c *Collector
	if got := c.Poll(); got != nil {
		t.Fatalf("nil collector Poll() = %v, want nil", got)
	}
}

func TestCollectorCopiesBorrowedBuffers(t *testing.T) {
	sim := NewSim(4)
	if err := sim.Connect(1, "pad", []float32{0.5, -1}, []ButtonState{Pressed, Released, Pressed}); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	snaps := NewCollector(sim).Poll()
	if len(snaps) != 1 {
		t.Fatalf("Poll() = %d snapshots, want 1", len(snaps))
	}

	sim.SetAxis(1, 0, 0.25)
	sim.SetButton(1, 0, Released)
	sim.Disconnect(1)

	snap := snaps[0]
	if snap.Axes[0] != 0.5 || snap.Axes[1] != -1 {
		t.Fatalf("axes changed after platform mutation: %v", snap.Axes)
	}
	if !snap.Pressed(0) || snap.Pressed(1) || !snap.Pressed(2) {
		t.Fatalf("buttons changed after platform mutation: %v", snap.Buttons)
	}
	if snap.Name != "pad" || snap.Slot != 1 {
		t.Fatalf("unexpected identity: %q slot %d", snap.Name, snap.Slot)
	}
}

// sharedBufferPlatform hands out one scratch buffer for every slot, the
// way a C polling API reuses its internal arrays.
type sharedBufferPlatform struct {
	present map[int]bool
	axes    []float32
	buttons []ButtonState
}

func (p *sharedBufferPlatform) MaxSlots() int { return 8 }
func (p *sharedBufferPlatform) Present(slot int) bool { return p.present[slot] }
func (p *sharedBufferPlatform) Name(slot int) string { return "shared" }
func (p *sharedBufferPlatform) Axes(slot int) []float32 {
	for i := range p.axes {
		p.axes[i] = float32(slot)
	}
	return p.axes
}
func (p *sharedBufferPlatform) Buttons(slot int) []ButtonState {
	for i := range p.buttons {
		p.buttons[i] = ButtonState(slot % 2)
	}
	return p.buttons
}

func TestCollectorSnapshotsDoNotShareStorage(t *testing.T) {
	p := &sharedBufferPlatform{
		present: map[int]bool{2: true, 5: true},
		axes:    make([]float32, 3),
		buttons: make([]ButtonState, 2),
	}
	snaps := NewCollector(p).Poll()
	if len(snaps) != 2 {
		t.Fatalf("Poll() = %d snapshots, want 2", len(snaps))
	}
	if snaps[0].Axes[0] != 2 || snaps[1].Axes[0] != 5 {
		t.Fatalf("axes aliased between slots: %v / %v", snaps[0].Axes, snaps[1].Axes)
	}
	if snaps[0].Buttons[0] != Released || snaps[1].Buttons[0] != Pressed {
		t.Fatalf("buttons aliased between slots: %v / %v", snaps[0].Buttons, snaps[1].Buttons)
	}
}

func TestCollectorOrderAndCompleteness(t *testing.T) {
	tests := []struct {
		name      string
		connected []int
	}{
		{"single", []int{0}},
		{"sparse", []int{3, 9, 15}},
		{"connected out of order", []int{7, 1, 4}},
		{"all", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := NewSim(DefaultSimSlots)
			for _, slot := range tt.connected {
				if err := sim.Connect(slot, "dev", nil, nil); err != nil {
					t.Fatalf("Connect(%d): %v", slot, err)
				}
			}

			snaps := NewCollector(sim).Poll()
			if len(snaps) != len(tt.connected) {
				t.Fatalf("Poll() = %d snapshots, want %d", len(snaps), len(tt.connected))
			}

			seen := make(map[int]int)
			for i, s := range snaps {
				seen[s.Slot]++
				if i > 0 && snaps[i-1].Slot >= s.Slot {
					t.Fatalf("slots not strictly ascending: %d then %d", snaps[i-1].Slot, s.Slot)
				}
			}
			for _, slot := range tt.connected {
				if seen[slot] != 1 {
					t.Fatalf("slot %d reported %d times, want 1", slot, seen[slot])
				}
			}
		})
	}
}

func TestCollectorFreshSlicesEachPoll(t *testing.T) {
	sim := NewSim(2)
	_ = sim.Connect(0, "pad", []float32{0.1}, []ButtonState{Released})
	c := NewCollector(sim)

	first := c.Poll()
	second := c.Poll()
	second[0].Axes[0] = 0.9
	second[0].Buttons[0] = Pressed

	if first[0].Axes[0] != 0.1 || first[0].Buttons[0] != Released {
		t.Fatalf("polls share storage: first=%+v", first[0])
	}
	if got := sim.Axes(0)[0]; got != 0.1 {
		t.Fatalf("writing to a snapshot reached the platform: %v", got)
	}
}

type faultyPlatform struct {
	*Sim
	bad int
}

func (p faultyPlatform) Axes(slot int) []float32 {
	if slot == p.bad {
		panic("device vanished mid-query")
	}
	return p.Sim.Axes(slot)
}

func TestCollectorSkipsFailingSlot(t *testing.T) {
	sim := NewSim(4)
	for slot := 0; slot < 3; slot++ {
		_ = sim.Connect(slot, "dev", []float32{0}, nil)
	}

	snaps := NewCollector(faultyPlatform{Sim: sim, bad: 1}).Poll()
	if len(snaps) != 2 {
		t.Fatalf("Poll() = %d snapshots, want 2", len(snaps))
	}
	if snaps[0].Slot != 0 || snaps[1].Slot != 2 {
		t.Fatalf("unexpected slots %d, %d", snaps[0].Slot, snaps[1].Slot)
	}
}

func TestSnapshotPressedBounds(t *testing.T) {
	s := Snapshot{Buttons: []ButtonState{Pressed}}
	if !s.Pressed(0) {
		t.Fatalf("Pressed(0) = false, want true")
	}
	if s.Pressed(-1) || s.Pressed(1) {
		t.Fatalf("out of range buttons must report false")
	}
}
