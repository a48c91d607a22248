package joystick

import "go.uber.org/zap"

// Collector turns the live platform state into per-frame snapshots.
type Collector struct {
	platform Platform
}

// NewCollector wraps a platform.
func NewCollector(p Platform) *Collector {
	return &Collector{platform: p}
}

// Poll returns one snapshot per connected device, in ascending slot order.
// Every returned slice is freshly allocated; nothing aliases the platform's
// borrowed buffers.
func (c *Collector) Poll() []Snapshot {
	if c == nil || c.platform == nil {
		return nil
	}

	var snapshots []Snapshot
	for slot := 0; slot < c.platform.MaxSlots(); slot++ {
		snap, ok := c.snapshot(slot)
		if !ok {
			continue
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots
}

// snapshot copies one slot. A slot whose query panics is treated as absent
// so a single misbehaving device cannot hide the others.
func (c *Collector) snapshot(slot int) (snap Snapshot, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Debugw("slot query failed", "slot", slot, "panic", r)
			snap, ok = Snapshot{}, false
		}
	}()

	if !c.platform.Present(slot) {
		return Snapshot{}, false
	}

	axes := c.platform.Axes(slot)
	ownedAxes := make([]float32, len(axes))
	copy(ownedAxes, axes)

	buttons := c.platform.Buttons(slot)
	ownedButtons := make([]ButtonState, len(buttons))
	copy(ownedButtons, buttons)

	return Snapshot{
		Name:    c.platform.Name(slot),
		Slot:    slot,
		Axes:    ownedAxes,
		Buttons: ownedButtons,
	}, true
}
