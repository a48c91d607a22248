package joystick

import "encoding/binary"

// Linux joystick API (linux/joystick.h) event layout.
const (
	jsEventSize   = 8
	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80

	jsAxisMax = 32767
)

// JoydevSlots is the number of /dev/input/jsN nodes scanned.
const JoydevSlots = 16

type jsEvent struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

// decodeJSEvents walks complete 8 byte records in buf. A trailing partial
// record is ignored.
func decodeJSEvents(buf []byte, fn func(jsEvent)) {
	for len(buf) >= jsEventSize {
		fn(jsEvent{
			Time:   binary.NativeEndian.Uint32(buf[0:4]),
			Value:  int16(binary.NativeEndian.Uint16(buf[4:6])),
			Type:   buf[6],
			Number: buf[7],
		})
		buf = buf[jsEventSize:]
	}
}

// joydevState is the latched state of one joydev node.
type joydevState struct {
	name    string
	axes    []float32
	buttons []ButtonState
}

func newJoydevState(name string, axes, buttons int) *joydevState {
	return &joydevState{
		name:    name,
		axes:    make([]float32, axes),
		buttons: make([]ButtonState, buttons),
	}
}

// apply folds one event into the state. Events for indices beyond the
// counts reported by the driver are dropped.
func (s *joydevState) apply(ev jsEvent) {
	switch ev.Type &^ jsEventInit {
	case jsEventAxis:
		if int(ev.Number) < len(s.axes) {
			s.axes[ev.Number] = normalizeJSAxis(ev.Value)
		}
	case jsEventButton:
		if int(ev.Number) < len(s.buttons) {
			s.buttons[ev.Number] = Released
			if ev.Value != 0 {
				s.buttons[ev.Number] = Pressed
			}
		}
	}
}

func normalizeJSAxis(v int16) float32 {
	f := float32(v) / jsAxisMax
	if f < -1 {
		f = -1
	}
	return f
}
