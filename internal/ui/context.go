package ui

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/widget"

	"github.com/OpenTraceLab/joyview/internal/panel"
)

type nodeKind uint8

const (
	nodeText nodeKind = iota
	nodeSection
	nodeTable
	nodeIndicator
	nodeSlider
)

// node is one element of the frame tree built while the renderer runs.
type node struct {
	kind  nodeKind
	key   panel.Key
	label string
	color color.NRGBA

	on     bool
	value  float32
	min    float32
	max    float32
	format string

	section *sectionState
	check   *widget.Bool
	float   *widget.Float

	children []*node
	columns  int
	rows     [][]*node
}

type sectionState struct {
	click widget.Clickable
	open  bool
}

// gioContext implements panel.Context by recording a tree of nodes for the
// current frame. Widget state survives between frames keyed by panel.Key
// and is dropped once a key stops appearing.
type gioContext struct {
	gtx   layout.Context
	title string
	size  image.Point

	nodes []*node
	stack []*node

	sections map[panel.Key]*sectionState
	checks   map[panel.Key]*widget.Bool
	floats   map[panel.Key]*widget.Float
	seen     map[panel.Key]bool

	list widget.List
}

func newGioContext() *gioContext {
	c := &gioContext{
		sections: make(map[panel.Key]*sectionState),
		checks:   make(map[panel.Key]*widget.Bool),
		floats:   make(map[panel.Key]*widget.Float),
		seen:     make(map[panel.Key]bool),
	}
	c.list.Axis = layout.Vertical
	return c
}

// begin binds the frame's layout context so section headers can consume
// their click events before the tree is built.
func (c *gioContext) begin(gtx layout.Context) {
	c.gtx = gtx
}

func (c *gioContext) BeginWindow(title string, size image.Point) bool {
	c.title = title
	c.size = size
	c.nodes = c.nodes[:0]
	c.stack = c.stack[:0]
	clear(c.seen)
	return true
}

func (c *gioContext) EndWindow() {
	for k := range c.sections {
		if !c.seen[k] {
			delete(c.sections, k)
		}
	}
	for k := range c.checks {
		if !c.seen[k] {
			delete(c.checks, k)
		}
	}
	for k := range c.floats {
		if !c.seen[k] {
			delete(c.floats, k)
		}
	}
	c.stack = c.stack[:0]
}

func (c *gioContext) TextColored(col color.NRGBA, text string) {
	c.add(&node{kind: nodeText, label: text, color: col})
}

func (c *gioContext) BeginSection(key panel.Key, label string, defaultOpen bool) bool {
	st, ok := c.sections[key]
	if !ok {
		st = &sectionState{open: defaultOpen}
		c.sections[key] = st
	}
	c.seen[key] = true
	for st.click.Clicked(c.gtx) {
		st.open = !st.open
	}

	n := &node{kind: nodeSection, key: key, label: label, section: st}
	c.add(n)
	c.stack = append(c.stack, n)
	return st.open
}

func (c *gioContext) EndSection() {
	c.pop(nodeSection)
}

func (c *gioContext) BeginTable(key panel.Key, columns int) bool {
	c.seen[key] = true
	n := &node{kind: nodeTable, key: key, columns: columns}
	c.add(n)
	c.stack = append(c.stack, n)
	return true
}

func (c *gioContext) NextRow() {
	if t := c.top(); t != nil && t.kind == nodeTable {
		t.rows = append(t.rows, nil)
	}
}

func (c *gioContext) NextColumn() {
	if t := c.top(); t != nil && t.kind == nodeTable {
		if len(t.rows) == 0 {
			t.rows = append(t.rows, nil)
		}
		last := len(t.rows) - 1
		t.rows[last] = append(t.rows[last], nil)
	}
}

func (c *gioContext) EndTable() {
	c.pop(nodeTable)
}

func (c *gioContext) Indicator(key panel.Key, label string, on bool) {
	b, ok := c.checks[key]
	if !ok {
		b = new(widget.Bool)
		c.checks[key] = b
	}
	c.seen[key] = true
	c.add(&node{kind: nodeIndicator, key: key, label: label, on: on, check: b})
}

func (c *gioContext) Slider(key panel.Key, label string, value, min, max float32, format string) {
	f, ok := c.floats[key]
	if !ok {
		f = new(widget.Float)
		c.floats[key] = f
	}
	c.seen[key] = true
	c.add(&node{
		kind:   nodeSlider,
		key:    key,
		label:  label,
		value:  value,
		min:    min,
		max:    max,
		format: format,
		float:  f,
	})
}

func (c *gioContext) top() *node {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

func (c *gioContext) pop(kind nodeKind) {
	if t := c.top(); t != nil && t.kind == kind {
		c.stack = c.stack[:len(c.stack)-1]
	}
}

func (c *gioContext) add(n *node) {
	t := c.top()
	switch {
	case t == nil:
		c.nodes = append(c.nodes, n)
	case t.kind == nodeSection:
		t.children = append(t.children, n)
	case t.kind == nodeTable:
		if len(t.rows) == 0 {
			t.rows = append(t.rows, nil)
		}
		row := len(t.rows) - 1
		cells := t.rows[row]
		if len(cells) == 0 || cells[len(cells)-1] != nil {
			cells = append(cells, nil)
		}
		cells[len(cells)-1] = n
		t.rows[row] = cells
	}
}

// sliderFraction maps value in [min, max] onto the [0, 1] range of a
// widget.Float.
func sliderFraction(value, min, max float32) float32 {
	if max <= min {
		return 0
	}
	f := (value - min) / (max - min)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
