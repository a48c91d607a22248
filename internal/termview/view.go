// Package termview renders the device panel as styled text for terminals.
package termview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/OpenTraceLab/joyview/internal/panel"
)

const (
	sliderWidth = 21
	indentWidth = 2
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	sectionStyle = lipgloss.NewStyle().Bold(true)
	cellStyle    = lipgloss.NewStyle().PaddingRight(1)
	tableStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	onStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	labelStyle   = lipgloss.NewStyle().Width(14)
)

// View is a panel.Context producing one text block per frame. Sections are
// always expanded; there is nothing to click.
type View struct {
	w   io.Writer
	err error

	lines []string
	depth int
	rows  [][]string
}

var _ panel.Context = (*View)(nil)

// New returns a View writing finished frames to w.
func New(w io.Writer) *View {
	return &View{w: w}
}

// Err returns the first write error.
func (v *View) Err() error { return v.err }

func (v *View) emit(block string) {
	if v.depth > 0 {
		block = lipgloss.NewStyle().MarginLeft(v.depth * indentWidth).Render(block)
	}
	v.lines = append(v.lines, block)
}

func (v *View) BeginWindow(title string, size image.Point) bool {
	v.lines = v.lines[:0]
	v.depth = 0
	v.emit(titleStyle.Render(title))
	return true
}

// EndWindow writes the accumulated frame.
func (v *View) EndWindow() {
	if v.err != nil {
		return
	}
	_, v.err = io.WriteString(v.w, strings.Join(v.lines, "\n")+"\n")
}

func (v *View) TextColored(c color.NRGBA, text string) {
	hex := fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	v.emit(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(text))
}

func (v *View) BeginSection(key panel.Key, label string, defaultOpen bool) bool {
	v.emit(sectionStyle.Render(fmt.Sprintf("▾ %s  [slot %d]", label, key.Slot)))
	v.depth++
	return true
}

func (v *View) EndSection() {
	if v.depth > 0 {
		v.depth--
	}
}

func (v *View) BeginTable(key panel.Key, columns int) bool {
	v.rows = nil
	return columns > 0
}

func (v *View) NextRow() {
	v.rows = append(v.rows, nil)
}

func (v *View) NextColumn() {
	if len(v.rows) == 0 {
		v.NextRow()
	}
	last := len(v.rows) - 1
	v.rows[last] = append(v.rows[last], "")
}

func (v *View) EndTable() {
	width := 0
	for _, row := range v.rows {
		for _, c := range row {
			width = max(width, lipgloss.Width(c))
		}
	}

	rendered := make([]string, 0, len(v.rows))
	for _, row := range v.rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cellStyle.Width(width + 1).Render(c)
		}
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	v.emit(tableStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rendered...)))
	v.rows = nil
}

func (v *View) Indicator(key panel.Key, label string, on bool) {
	mark := "○"
	if on {
		mark = onStyle.Render("●")
	}
	cell := mark + " " + label
	if n := len(v.rows); n > 0 && len(v.rows[n-1]) > 0 {
		row := v.rows[n-1]
		row[len(row)-1] = cell
		return
	}
	v.emit(cell)
}

func (v *View) Slider(key panel.Key, label string, value, min, max float32, format string) {
	v.emit(fmt.Sprintf("%s %s %s", labelStyle.Render(label), sliderBar(value, min, max), fmt.Sprintf(format, value)))
}

// sliderBar draws a fixed-width track with a knob at value's position.
func sliderBar(value, min, max float32) string {
	pos := 0
	if max > min {
		frac := float64((value - min) / (max - min))
		frac = math.Max(0, math.Min(1, frac))
		pos = int(math.Round(frac * float64(sliderWidth-1)))
	}
	track := []rune(strings.Repeat("─", sliderWidth))
	track[pos] = '●'
	return "├" + string(track) + "┤"
}
