package joystick

import (
	"fmt"
	"math"
)

const (
	gcReportLen    = 37
	gcReportHeader = 0x21
	gcPorts        = 4

	gcStickRange   = 80.0
	gcTriggerRange = 140.0
)

// GameCube axis indices within a port's Axes slice.
const (
	GCAxisStickX = iota
	GCAxisStickY
	GCAxisCX
	GCAxisCY
	GCAxisL
	GCAxisR
	gcAxisCount
)

// GameCube button indices within a port's Buttons slice.
const (
	GCButtonA = iota
	GCButtonB
	GCButtonX
	GCButtonY
	GCButtonStart
	GCButtonZ
	GCButtonR
	GCButtonL
	GCButtonUp
	GCButtonDown
	GCButtonLeft
	GCButtonRight
	gcButtonCount
)

// gcButtonBits maps each button index to its report byte (0 or 1 relative
// to the port's first button byte) and bit mask.
var gcButtonBits = [gcButtonCount]struct {
	byteIndex uint8
	mask      uint8
}{
	GCButtonA:     {0, 0x01},
	GCButtonB:     {0, 0x02},
	GCButtonX:     {0, 0x04},
	GCButtonY:     {0, 0x08},
	GCButtonLeft:  {0, 0x10},
	GCButtonRight: {0, 0x20},
	GCButtonDown:  {0, 0x40},
	GCButtonUp:    {0, 0x80},
	GCButtonStart: {1, 0x01},
	GCButtonZ:     {1, 0x02},
	GCButtonR:     {1, 0x04},
	GCButtonL:     {1, 0x08},
}

// gcPort is the raw, uncalibrated state of one adapter port.
type gcPort struct {
	present bool
	buttons [2]uint8
	analog  [gcAxisCount]uint8
}

// decodeGCReport splits a 37 byte adapter report into its four ports.
func decodeGCReport(data []byte) ([gcPorts]gcPort, error) {
	var ports [gcPorts]gcPort
	if len(data) != gcReportLen {
		return ports, fmt.Errorf("joystick: GameCube report is %d bytes, want %d", len(data), gcReportLen)
	}
	if data[0] != gcReportHeader {
		return ports, fmt.Errorf("joystick: unexpected GameCube report header 0x%02X", data[0])
	}

	for p := range ports {
		base := 9*p + 1
		status := data[base]
		ports[p] = gcPort{
			// 0x10 wired, 0x20 wavebird; the low nibble carries rumble power.
			present: status&0x30 != 0,
			buttons: [2]uint8{data[base+1], data[base+2]},
		}
		copy(ports[p].analog[:], data[base+3:base+9])
	}
	return ports, nil
}

// fillButtons writes the port's button states into out.
func (p gcPort) fillButtons(out []ButtonState) {
	for i, bit := range gcButtonBits {
		if i >= len(out) {
			return
		}
		out[i] = Released
		if p.buttons[bit.byteIndex]&bit.mask != 0 {
			out[i] = Pressed
		}
	}
}

// fillAxes normalizes the port's analog values against the neutral
// readings captured at plug-in. Sticks land in [-1, 1] with up negative,
// triggers in [0, 1].
func (p gcPort) fillAxes(neutral [gcAxisCount]uint8, out []float32) {
	if len(out) < gcAxisCount {
		return
	}
	x, y := gcStick(p.analog[GCAxisStickX], neutral[GCAxisStickX], p.analog[GCAxisStickY], neutral[GCAxisStickY])
	out[GCAxisStickX], out[GCAxisStickY] = x, -y

	cx, cy := gcStick(p.analog[GCAxisCX], neutral[GCAxisCX], p.analog[GCAxisCY], neutral[GCAxisCY])
	out[GCAxisCX], out[GCAxisCY] = cx, -cy

	out[GCAxisL] = gcTrigger(p.analog[GCAxisL], neutral[GCAxisL])
	out[GCAxisR] = gcTrigger(p.analog[GCAxisR], neutral[GCAxisR])
}

func gcStick(x, nx, y, ny uint8) (float32, float32) {
	fx := (float64(x) - float64(nx)) / gcStickRange
	fy := (float64(y) - float64(ny)) / gcStickRange
	if mag := math.Hypot(fx, fy); mag > 1 {
		fx /= mag
		fy /= mag
	}
	return float32(fx), float32(fy)
}

func gcTrigger(v, neutral uint8) float32 {
	if v <= neutral {
		return 0
	}
	f := (float64(v) - float64(neutral)) / gcTriggerRange
	if f > 1 {
		f = 1
	}
	return float32(f)
}

// neutralGCAnalog is assumed until a port reports its first reading.
var neutralGCAnalog = [gcAxisCount]uint8{128, 128, 128, 128, 0, 0}
