package panel

import (
	"fmt"
	"image"
	"image/color"
)

// OpKind enumerates the calls a Recorder captures.
type OpKind uint8

const (
	OpBeginWindow OpKind = iota
	OpEndWindow
	OpText
	OpBeginSection
	OpEndSection
	OpBeginTable
	OpNextRow
	OpNextColumn
	OpEndTable
	OpIndicator
	OpSlider
)

// Op is one recorded Context call.
type Op struct {
	Kind    OpKind
	Key     Key
	Label   string
	Color   color.NRGBA
	Size    image.Point
	Columns int
	On      bool
	Value   float32
	Min     float32
	Max     float32
	Format  string
}

// Text renders a slider op the way a GUI would print its value.
func (o Op) Text() string {
	if o.Kind != OpSlider {
		return o.Label
	}
	return fmt.Sprintf(o.Format, o.Value)
}

// Recorder is a Context that records every call for inspection in tests.
// It also checks the structural rules of the Context contract and collects
// violations in Errors.
type Recorder struct {
	Ops    []Op
	Errors []string

	// Collapsed lists sections that report closed from BeginSection.
	Collapsed map[Key]bool

	seen        map[Key]bool
	windowDepth int
	sections    []Key
	tableOpen   bool
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Collapsed: make(map[Key]bool), seen: make(map[Key]bool)}
}

// Reset starts a new frame, keeping Collapsed.
func (r *Recorder) Reset() {
	r.Ops = nil
	r.Errors = nil
	r.seen = make(map[Key]bool)
	r.windowDepth = 0
	r.sections = nil
	r.tableOpen = false
}

// Finish reports unbalanced scopes left open at the end of a frame.
func (r *Recorder) Finish() []string {
	if r.windowDepth != 0 {
		r.errorf("window left open")
	}
	if len(r.sections) != 0 {
		r.errorf("%d section(s) left open", len(r.sections))
	}
	if r.tableOpen {
		r.errorf("table left open")
	}
	return r.Errors
}

func (r *Recorder) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Recorder) claim(key Key) {
	if r.seen == nil {
		r.seen = make(map[Key]bool)
	}
	if r.seen[key] {
		r.errorf("duplicate key %s", key)
	}
	r.seen[key] = true
}

func (r *Recorder) BeginWindow(title string, size image.Point) bool {
	r.windowDepth++
	r.Ops = append(r.Ops, Op{Kind: OpBeginWindow, Label: title, Size: size})
	return true
}

func (r *Recorder) EndWindow() {
	if r.windowDepth == 0 {
		r.errorf("EndWindow without BeginWindow")
	}
	r.windowDepth--
	r.Ops = append(r.Ops, Op{Kind: OpEndWindow})
}

func (r *Recorder) TextColored(c color.NRGBA, text string) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Color: c, Label: text})
}

func (r *Recorder) BeginSection(key Key, label string, defaultOpen bool) bool {
	r.claim(key)
	r.sections = append(r.sections, key)
	r.Ops = append(r.Ops, Op{Kind: OpBeginSection, Key: key, Label: label, On: defaultOpen})
	if r.Collapsed[key] {
		return false
	}
	return defaultOpen
}

func (r *Recorder) EndSection() {
	if len(r.sections) == 0 {
		r.errorf("EndSection without BeginSection")
	} else {
		r.sections = r.sections[:len(r.sections)-1]
	}
	r.Ops = append(r.Ops, Op{Kind: OpEndSection})
}

func (r *Recorder) BeginTable(key Key, columns int) bool {
	r.claim(key)
	if columns <= 0 {
		r.errorf("table %s with %d columns", key, columns)
	}
	r.tableOpen = true
	r.Ops = append(r.Ops, Op{Kind: OpBeginTable, Key: key, Columns: columns})
	return true
}

func (r *Recorder) NextRow() {
	r.Ops = append(r.Ops, Op{Kind: OpNextRow})
}

func (r *Recorder) NextColumn() {
	r.Ops = append(r.Ops, Op{Kind: OpNextColumn})
}

func (r *Recorder) EndTable() {
	if !r.tableOpen {
		r.errorf("EndTable without BeginTable")
	}
	r.tableOpen = false
	r.Ops = append(r.Ops, Op{Kind: OpEndTable})
}

func (r *Recorder) Indicator(key Key, label string, on bool) {
	r.claim(key)
	r.Ops = append(r.Ops, Op{Kind: OpIndicator, Key: key, Label: label, On: on})
}

func (r *Recorder) Slider(key Key, label string, value, min, max float32, format string) {
	r.claim(key)
	r.Ops = append(r.Ops, Op{Kind: OpSlider, Key: key, Label: label, Value: value, Min: min, Max: max, Format: format})
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded ops of kind, in order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Rows reconstructs the table keyed table as rows of cells. Each cell holds
// the ops emitted after its NextColumn.
func (r *Recorder) Rows(table Key) [][][]Op {
	var rows [][][]Op
	inTable := false
	for _, op := range r.Ops {
		switch {
		case op.Kind == OpBeginTable && op.Key == table:
			inTable = true
		case !inTable:
		case op.Kind == OpEndTable:
			return rows
		case op.Kind == OpNextRow:
			rows = append(rows, nil)
		case op.Kind == OpNextColumn:
			if len(rows) == 0 {
				rows = append(rows, nil)
			}
			rows[len(rows)-1] = append(rows[len(rows)-1], nil)
		case len(rows) == 0:
		default:
			row := rows[len(rows)-1]
			if len(row) > 0 {
				row[len(row)-1] = append(row[len(row)-1], op)
			}
		}
	}
	return rows
}
