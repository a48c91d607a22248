package joystick

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ButtonState is the discrete state of a single controller button.
type ButtonState uint8

const (
	Released ButtonState = iota
	Pressed
)

// String returns "pressed" or "released".
func (b ButtonState) String() string {
	if b == Pressed {
		return "pressed"
	}
	return "released"
}

// Snapshot is an owned copy of one device's readings taken during a single
// poll. Snapshots never reference platform buffers and are safe to keep
// after the next Refresh, although the panel discards them every frame.
type Snapshot struct {
	Name    string
	Slot    int
	Axes    []float32
	Buttons []ButtonState
}

// Pressed reports whether button i is held. Out of range indices report false.
func (s Snapshot) Pressed(i int) bool {
	return i >= 0 && i < len(s.Buttons) && s.Buttons[i] == Pressed
}

// Platform is the raw device query surface wrapped by the Collector.
//
// Slices returned by Axes and Buttons are borrowed: they point into
// backend-owned storage and are only valid until the next call to Refresh
// (for backends implementing Refresher) or the next call into the
// platform. Callers that need the data afterwards must copy it.
type Platform interface {
	MaxSlots() int
	Present(slot int) bool
	Name(slot int) string
	Axes(slot int) []float32
	Buttons(slot int) []ButtonState
}

// Refresher is implemented by platforms that latch device state once per
// frame. Refresh invalidates every slice previously returned by Axes and
// Buttons.
type Refresher interface {
	Refresh() error
}

// Kind names a platform backend.
type Kind string

const (
	KindJoydev    Kind = "joydev"
	KindGCAdapter Kind = "gcadapter"
	KindSim       Kind = "sim"
)

// Kinds lists every backend name accepted by Open.
var Kinds = []Kind{KindJoydev, KindGCAdapter, KindSim}

var (
	// ErrUnknownBackend is returned by Open for names outside Kinds.
	ErrUnknownBackend = errors.New("joystick: unknown backend")
	// ErrUnsupported signals a backend that cannot run on this OS.
	ErrUnsupported = errors.New("joystick: backend not supported on this platform")
	// ErrNoAdapter is returned when no GameCube adapter is attached.
	ErrNoAdapter = errors.New("joystick: no GameCube adapter found")
)

// Options configures backend construction.
type Options struct {
	// DevDir is the joydev node directory, /dev/input when empty.
	DevDir string
	// RescanInterval bounds how often absent joydev slots are rescanned.
	RescanInterval time.Duration
	// Demo animates the simulator with two synthetic devices.
	Demo bool
}

// Open constructs the named backend. The returned platform should be
// closed with Close when it implements io.Closer.
func Open(kind Kind, opts Options) (Platform, error) {
	switch kind {
	case KindJoydev:
		return OpenJoydev(opts)
	case KindGCAdapter:
		adapter, err := OpenGCAdapter()
		if err != nil {
			return nil, err
		}
		return adapter, nil
	case KindSim:
		sim := NewSim(DefaultSimSlots)
		if opts.Demo {
			sim.StartDemo(time.Now)
		}
		return sim, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
}

// Close releases platform resources if the backend holds any.
func Close(p Platform) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
