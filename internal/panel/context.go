package panel

import (
	"fmt"
	"image"
	"image/color"
)

// Role says what part of a device section a widget belongs to.
type Role uint8

const (
	RoleSection Role = iota
	RoleButtons
	RoleButton
	RoleAxis
)

func (r Role) String() string {
	switch r {
	case RoleSection:
		return "section"
	case RoleButtons:
		return "buttons"
	case RoleButton:
		return "button"
	case RoleAxis:
		return "axis"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// Key identifies a widget across frames. Slot ties the widget to the
// physical device rather than its position in the device list, so a
// section keeps its open/closed state while the device stays connected.
type Key struct {
	Slot  int
	Role  Role
	Index int
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%s/%d", k.Slot, k.Role, k.Index)
}

// Context is the immediate-mode GUI surface the Renderer draws into. Calls
// arrive in document order every frame; implementations keep whatever
// per-Key state they need (expanded sections, widget animation) between
// frames.
//
// BeginWindow/EndWindow and BeginSection/EndSection are always paired,
// whatever the Begin call returned. BeginTable is only followed by
// EndTable when it returned true.
type Context interface {
	BeginWindow(title string, size image.Point) bool
	EndWindow()

	TextColored(c color.NRGBA, text string)

	BeginSection(key Key, label string, defaultOpen bool) bool
	EndSection()

	BeginTable(key Key, columns int) bool
	NextRow()
	NextColumn()
	EndTable()

	// Indicator shows a binary state. It is display only.
	Indicator(key Key, label string, on bool)
	// Slider shows value within [min, max]. It is display only: drags
	// must not be reported back.
	Slider(key Key, label string, value, min, max float32, format string)
}
