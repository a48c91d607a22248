package panel

import (
	"fmt"
	"image"
	"image/color"

	"github.com/OpenTraceLab/joyview/pkg/joystick"
)

const (
	WindowTitle      = "Joysticks"
	NoDevicesMessage = "No joysticks detected"

	// MaxButtonColumns caps the width of the button grid.
	MaxButtonColumns = 8

	AxisMin    float32 = -1
	AxisMax    float32 = 1
	AxisFormat         = "%.3f"
)

// WarningColor highlights the empty-state message.
var WarningColor = color.NRGBA{R: 255, G: 255, B: 0, A: 255}

// Labels supplies optional human names for button and axis indices.
type Labels interface {
	ButtonLabel(device string, i int) (string, bool)
	AxisLabel(device string, i int) (string, bool)
}

// Renderer lays out one frame of device snapshots. It holds no per-frame
// state; every call to Render is independent.
type Renderer struct {
	labels Labels
}

// NewRenderer returns a renderer. labels may be nil.
func NewRenderer(labels Labels) *Renderer {
	return &Renderer{labels: labels}
}

// ButtonColumns is the grid width used for n buttons.
func ButtonColumns(n int) int {
	return min(MaxButtonColumns, n)
}

// Render emits the panel for devices into ctx, sized to surface.
func (r *Renderer) Render(ctx Context, devices []joystick.Snapshot, surface image.Point) {
	open := ctx.BeginWindow(WindowTitle, surface)
	defer ctx.EndWindow()
	if !open {
		return
	}

	if len(devices) == 0 {
		ctx.TextColored(WarningColor, NoDevicesMessage)
		return
	}

	for _, dev := range devices {
		r.renderDevice(ctx, dev)
	}
}

func (r *Renderer) renderDevice(ctx Context, dev joystick.Snapshot) {
	defer ctx.EndSection()
	if !ctx.BeginSection(Key{Slot: dev.Slot, Role: RoleSection}, sectionLabel(dev), true) {
		return
	}
	r.renderButtons(ctx, dev)
	r.renderAxes(ctx, dev)
}

func sectionLabel(dev joystick.Snapshot) string {
	if dev.Name == "" {
		return fmt.Sprintf("Device %d", dev.Slot)
	}
	return dev.Name
}

func (r *Renderer) renderButtons(ctx Context, dev joystick.Snapshot) {
	columns := ButtonColumns(len(dev.Buttons))
	if columns == 0 {
		return
	}
	if !ctx.BeginTable(Key{Slot: dev.Slot, Role: RoleButtons}, columns) {
		return
	}

	ctx.NextRow()
	for i := range dev.Buttons {
		if i > 0 && i%MaxButtonColumns == 0 {
			ctx.NextRow()
		}
		ctx.NextColumn()
		ctx.Indicator(Key{Slot: dev.Slot, Role: RoleButton, Index: i}, r.buttonLabel(dev.Name, i), dev.Pressed(i))
	}
	ctx.EndTable()
}

func (r *Renderer) renderAxes(ctx Context, dev joystick.Snapshot) {
	for i, v := range dev.Axes {
		ctx.Slider(Key{Slot: dev.Slot, Role: RoleAxis, Index: i}, r.axisLabel(dev.Name, i), v, AxisMin, AxisMax, AxisFormat)
	}
}

func (r *Renderer) buttonLabel(device string, i int) string {
	if r.labels != nil {
		if label, ok := r.labels.ButtonLabel(device, i); ok {
			return fmt.Sprintf("%s (%d)", label, i)
		}
	}
	return fmt.Sprintf("(%d)", i)
}

func (r *Renderer) axisLabel(device string, i int) string {
	if r.labels != nil {
		if label, ok := r.labels.AxisLabel(device, i); ok {
			return fmt.Sprintf("%s (%d)", label, i)
		}
	}
	return fmt.Sprintf("(%d)", i)
}
