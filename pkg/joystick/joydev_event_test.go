package joystick

import (
	"encoding/binary"
	"testing"
)

func encodeJSEvent(value int16, typ, number uint8) []byte {
	buf := make([]byte, jsEventSize)
	binary.NativeEndian.PutUint32(buf[0:4], 1234)
	binary.NativeEndian.PutUint16(buf[4:6], uint16(value))
	buf[6] = typ
	buf[7] = number
	return buf
}

func TestDecodeJSEvents(t *testing.T) {
	var stream []byte
	stream = append(stream, encodeJSEvent(1, jsEventButton|jsEventInit, 2)...)
	stream = append(stream, encodeJSEvent(-32767, jsEventAxis, 0)...)
	stream = append(stream, 0xFF, 0xFF, 0xFF) // partial record

	var got []jsEvent
	decodeJSEvents(stream, func(ev jsEvent) { got = append(got, ev) })

	if len(got) != 2 {
		t.Fatalf("decoded %d events, want 2", len(got))
	}
	if got[0].Type != jsEventButton|jsEventInit || got[0].Number != 2 || got[0].Value != 1 || got[0].Time != 1234 {
		t.Errorf("first event = %+v", got[0])
	}
	if got[1].Type != jsEventAxis || got[1].Value != -32767 {
		t.Errorf("second event = %+v", got[1])
	}
}

func TestJoydevStateApply(t *testing.T) {
	s := newJoydevState("pad", 2, 3)

	s.apply(jsEvent{Type: jsEventAxis, Number: 0, Value: 32767})
	s.apply(jsEvent{Type: jsEventAxis | jsEventInit, Number: 1, Value: -32768})
	s.apply(jsEvent{Type: jsEventButton, Number: 2, Value: 1})
	s.apply(jsEvent{Type: jsEventButton, Number: 9, Value: 1})
	s.apply(jsEvent{Type: jsEventAxis, Number: 5, Value: 100})

	if s.axes[0] != 1 {
		t.Errorf("axis 0 = %v, want 1", s.axes[0])
	}
	if s.axes[1] != -1 {
		t.Errorf("axis 1 = %v, want -1 (clamped)", s.axes[1])
	}
	if s.buttons[2] != Pressed || s.buttons[0] != Released {
		t.Errorf("buttons = %v", s.buttons)
	}

	s.apply(jsEvent{Type: jsEventButton, Number: 2, Value: 0})
	if s.buttons[2] != Released {
		t.Errorf("button 2 not released: %v", s.buttons)
	}
}

func TestNormalizeJSAxis(t *testing.T) {
	tests := []struct {
		raw  int16
		want float32
	}{
		{0, 0},
		{32767, 1},
		{-32767, -1},
		{-32768, -1},
	}
	for _, tt := range tests {
		if got := normalizeJSAxis(tt.raw); got != tt.want {
			t.Errorf("normalizeJSAxis(%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
