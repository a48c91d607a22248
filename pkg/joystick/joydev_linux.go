//go:build linux

package joystick

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// ioctl requests from linux/joystick.h.
const (
	jsiocgaxes    = 0x80016a11
	jsiocgbuttons = 0x80016a12
	jsiocgnameLen = 128
	jsiocgname    = 0x80006a13 | jsiocgnameLen<<16
)

const defaultRescanInterval = time.Second

// Joydev reads the Linux joystick interface (/dev/input/jsN). Slot N is
// node jsN. Nodes are opened non-blocking and drained on every Refresh.
type Joydev struct {
	dir      string
	rescan   time.Duration
	now      func() time.Time
	lastScan time.Time

	fds    [JoydevSlots]int
	states [JoydevSlots]*joydevState
	buf    [64 * jsEventSize]byte
}

// OpenJoydev scans every slot once and returns the platform.
func OpenJoydev(opts Options) (Platform, error) {
	dir := opts.DevDir
	if dir == "" {
		dir = "/dev/input"
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("joystick: joydev directory: %w", err)
	}
	rescan := opts.RescanInterval
	if rescan <= 0 {
		rescan = defaultRescanInterval
	}

	j := &Joydev{dir: dir, rescan: rescan, now: time.Now}
	for slot := range j.fds {
		j.fds[slot] = -1
	}
	j.scan()
	return j, nil
}

func (j *Joydev) nodePath(slot int) string {
	return filepath.Join(j.dir, fmt.Sprintf("js%d", slot))
}

// scan opens absent slots. Missing nodes are normal and not logged.
func (j *Joydev) scan() {
	j.lastScan = j.now()
	for slot := range j.fds {
		if j.fds[slot] >= 0 {
			continue
		}
		path := j.nodePath(slot)
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		if err != nil {
			if !errors.Is(err, unix.ENOENT) {
				zap.S().Debugw("joydev open failed", "path", path, "error", err)
			}
			continue
		}
		state, err := queryJoydev(fd)
		if err != nil {
			zap.S().Debugw("joydev query failed", "path", path, "error", err)
			unix.Close(fd)
			continue
		}
		j.fds[slot] = fd
		j.states[slot] = state
		zap.S().Infow("joystick connected", "slot", slot, "name", state.name,
			"axes", len(state.axes), "buttons", len(state.buttons))
	}
}

func queryJoydev(fd int) (*joydevState, error) {
	axes, err := ioctlUint8(fd, jsiocgaxes)
	if err != nil {
		return nil, fmt.Errorf("JSIOCGAXES: %w", err)
	}
	buttons, err := ioctlUint8(fd, jsiocgbuttons)
	if err != nil {
		return nil, fmt.Errorf("JSIOCGBUTTONS: %w", err)
	}
	var name [jsiocgnameLen]byte
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(jsiocgname), uintptr(unsafe.Pointer(&name[0]))); errno != 0 {
		return nil, fmt.Errorf("JSIOCGNAME: %w", errno)
	}
	if i := bytes.IndexByte(name[:], 0); i >= 0 {
		return newJoydevState(string(name[:i]), int(axes), int(buttons)), nil
	}
	return newJoydevState(string(name[:]), int(axes), int(buttons)), nil
}

func ioctlUint8(fd int, req uintptr) (uint8, error) {
	var v uint8
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&v))); errno != 0 {
		return 0, errno
	}
	return v, nil
}

// Refresh drains queued events for every open node and rescans absent
// slots once the rescan interval has elapsed. Previously returned slices
// are updated in place.
func (j *Joydev) Refresh() error {
	if j.now().Sub(j.lastScan) >= j.rescan {
		j.scan()
	}
	for slot, fd := range j.fds {
		if fd < 0 {
			continue
		}
		if err := j.drain(slot, fd); err != nil {
			zap.S().Infow("joystick disconnected", "slot", slot, "name", j.states[slot].name, "reason", err)
			j.closeSlot(slot)
		}
	}
	return nil
}

func (j *Joydev) drain(slot, fd int) error {
	state := j.states[slot]
	for {
		n, err := unix.Read(fd, j.buf[:])
		switch {
		case errors.Is(err, unix.EAGAIN):
			return nil
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			return err
		case n == 0:
			return errors.New("end of stream")
		}
		decodeJSEvents(j.buf[:n], state.apply)
	}
}

func (j *Joydev) closeSlot(slot int) {
	if j.fds[slot] >= 0 {
		unix.Close(j.fds[slot])
	}
	j.fds[slot] = -1
	j.states[slot] = nil
}

func (j *Joydev) MaxSlots() int { return JoydevSlots }

func (j *Joydev) Present(slot int) bool {
	return slot >= 0 && slot < JoydevSlots && j.states[slot] != nil
}

func (j *Joydev) Name(slot int) string {
	if !j.Present(slot) {
		return ""
	}
	return j.states[slot].name
}

func (j *Joydev) Axes(slot int) []float32 {
	if !j.Present(slot) {
		return nil
	}
	return j.states[slot].axes
}

func (j *Joydev) Buttons(slot int) []ButtonState {
	if !j.Present(slot) {
		return nil
	}
	return j.states[slot].buttons
}

// Close releases every open node.
func (j *Joydev) Close() error {
	for slot := range j.fds {
		j.closeSlot(slot)
	}
	return nil
}

// joydevNodes lists existing jsN nodes for discovery.
func joydevNodes(dir string) []string {
	if dir == "" {
		dir = "/dev/input"
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "js*"))
	return matches
}
