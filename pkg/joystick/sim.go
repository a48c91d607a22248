package joystick

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// DefaultSimSlots matches the joydev slot range.
const DefaultSimSlots = 16

type simDevice struct {
	name    string
	axes    []float32
	buttons []ButtonState
}

// Sim is an in-memory platform useful for unit tests and for running the UI
// without hardware. Devices are programmed with Connect/SetAxis/SetButton;
// the slices handed out by Axes and Buttons are the simulator's own storage
// and are mutated in place by later calls.
type Sim struct {
	mu      sync.Mutex
	devices []*simDevice

	clock     func() time.Time
	demoStart time.Time
}

// NewSim creates a simulator with the given number of slots.
func NewSim(slots int) *Sim {
	if slots <= 0 {
		slots = DefaultSimSlots
	}
	return &Sim{devices: make([]*simDevice, slots)}
}

// Connect attaches a device at slot, replacing any device already there.
func (s *Sim) Connect(slot int, name string, axes []float32, buttons []ButtonState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot < 0 || slot >= len(s.devices) {
		return fmt.Errorf("joystick: sim slot %d out of range [0,%d)", slot, len(s.devices))
	}
	s.devices[slot] = &simDevice{
		name:    name,
		axes:    append([]float32(nil), axes...),
		buttons: append([]ButtonState(nil), buttons...),
	}
	return nil
}

// Disconnect removes the device at slot, if any.
func (s *Sim) Disconnect(slot int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot >= 0 && slot < len(s.devices) {
		s.devices[slot] = nil
	}
}

// SetAxis overwrites one axis reading in place.
func (s *Sim) SetAxis(slot, axis int, value float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dev := s.device(slot); dev != nil && axis >= 0 && axis < len(dev.axes) {
		dev.axes[axis] = value
	}
}

// SetButton overwrites one button state in place.
func (s *Sim) SetButton(slot, button int, state ButtonState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dev := s.device(slot); dev != nil && button >= 0 && button < len(dev.buttons) {
		dev.buttons[button] = state
	}
}

// StartDemo connects two synthetic devices that animate on every Refresh.
func (s *Sim) StartDemo(clock func() time.Time) {
	if clock == nil {
		clock = time.Now
	}
	_ = s.Connect(0, "Simulated Gamepad", make([]float32, 6), make([]ButtonState, 14))
	_ = s.Connect(3, "Simulated Flight Stick", make([]float32, 3), make([]ButtonState, 4))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
	s.demoStart = clock()
}

func (s *Sim) MaxSlots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.devices)
}

func (s *Sim) Present(slot int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.device(slot) != nil
}

func (s *Sim) Name(slot int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dev := s.device(slot); dev != nil {
		return dev.name
	}
	return ""
}

func (s *Sim) Axes(slot int) []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dev := s.device(slot); dev != nil {
		return dev.axes
	}
	return nil
}

func (s *Sim) Buttons(slot int) []ButtonState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dev := s.device(slot); dev != nil {
		return dev.buttons
	}
	return nil
}

// Refresh advances the demo animation when StartDemo was called.
func (s *Sim) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clock == nil {
		return nil
	}

	t := s.clock().Sub(s.demoStart).Seconds()
	for slot, dev := range s.devices {
		if dev == nil {
			continue
		}
		phase := float64(slot)
		for i := range dev.axes {
			dev.axes[i] = float32(math.Sin(t*(1+0.5*float64(i)) + phase))
		}
		if len(dev.buttons) == 0 {
			continue
		}
		lit := int(t*4) % len(dev.buttons)
		for i := range dev.buttons {
			dev.buttons[i] = Released
			if i == lit {
				dev.buttons[i] = Pressed
			}
		}
	}
	return nil
}

func (s *Sim) device(slot int) *simDevice {
	if slot < 0 || slot >= len(s.devices) {
		return nil
	}
	return s.devices[slot]
}
