package joystick

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/gousb"
	"go.uber.org/zap"
)

const (
	// Nintendo WUP-028 GameCube controller adapter.
	GCVendorID  = 0x057E
	GCProductID = 0x0337

	gcEndpointIn  = 1 // 0x81
	gcEndpointOut = 2 // 0x02
)

var gcStartPayload = []byte{0x13}

// GCAdapter exposes the four ports of a GameCube USB adapter as slots 0-3.
// A reader goroutine keeps the most recent report; Refresh decodes it into
// the buffers handed out by Axes and Buttons.
type GCAdapter struct {
	usb  *gousb.Context
	dev  *gousb.Device
	intf *gousb.Interface
	done func()
	in   *gousb.InEndpoint

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	latest []byte
	fresh  bool
	lost   bool

	// Frame-thread state, only touched by Refresh and the query methods.
	ports   [gcPorts]gcPort
	neutral [gcPorts][gcAxisCount]uint8
	axes    [gcPorts][]float32
	buttons [gcPorts][]ButtonState
}

// OpenGCAdapter claims the first GameCube adapter on the bus and starts
// reading reports.
func OpenGCAdapter() (*GCAdapter, error) {
	usb := gousb.NewContext()

	dev, err := usb.OpenDeviceWithVIDPID(GCVendorID, GCProductID)
	if err != nil {
		usb.Close()
		return nil, fmt.Errorf("joystick: open GameCube adapter: %w", err)
	}
	if dev == nil {
		usb.Close()
		return nil, ErrNoAdapter
	}

	// Not fatal on platforms without kernel drivers to detach.
	_ = dev.SetAutoDetach(true)

	intf, done, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		usb.Close()
		return nil, fmt.Errorf("joystick: claim GameCube adapter interface: %w", err)
	}

	in, err := intf.InEndpoint(gcEndpointIn)
	if err != nil {
		done()
		dev.Close()
		usb.Close()
		return nil, fmt.Errorf("joystick: GameCube adapter IN endpoint: %w", err)
	}

	if err := startGCAdapter(dev, intf); err != nil {
		done()
		dev.Close()
		usb.Close()
		return nil, err
	}

	a := &GCAdapter{
		usb:    usb,
		dev:    dev,
		intf:   intf,
		done:   done,
		in:     in,
		latest: make([]byte, gcReportLen),
	}
	for p := 0; p < gcPorts; p++ {
		a.neutral[p] = neutralGCAnalog
		a.axes[p] = make([]float32, gcAxisCount)
		a.buttons[p] = make([]ButtonState, gcButtonCount)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.wg.Add(1)
	go a.readLoop(ctx)

	zap.S().Infow("GameCube adapter opened", "vid", fmt.Sprintf("%04X", GCVendorID), "pid", fmt.Sprintf("%04X", GCProductID))
	return a, nil
}

// startGCAdapter sends the start payload. Official adapters accept it as a
// HID SET_REPORT control transfer; some clones only listen on the OUT
// endpoint.
func startGCAdapter(dev *gousb.Device, intf *gousb.Interface) error {
	_, ctrlErr := dev.Control(0x21, 0x09, 0x0200, 0, gcStartPayload)
	if ctrlErr == nil {
		return nil
	}
	out, err := intf.OutEndpoint(gcEndpointOut)
	if err != nil {
		return fmt.Errorf("joystick: start GameCube adapter: %w", ctrlErr)
	}
	if _, err := out.Write(gcStartPayload); err != nil {
		return fmt.Errorf("joystick: start GameCube adapter: %w", errors.Join(ctrlErr, err))
	}
	return nil
}

func (a *GCAdapter) readLoop(ctx context.Context) {
	defer a.wg.Done()

	buf := make([]byte, gcReportLen)
	for {
		n, err := a.in.ReadContext(ctx, buf)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			zap.S().Warnw("GameCube adapter read failed", "error", err)
			a.mu.Lock()
			a.lost = true
			a.mu.Unlock()
			return
		}
		if n != gcReportLen || buf[0] != gcReportHeader {
			continue
		}

		a.mu.Lock()
		copy(a.latest, buf)
		a.fresh = true
		a.mu.Unlock()
	}
}

// Refresh latches the newest report. Slices returned earlier by Axes and
// Buttons are overwritten. Once the adapter stops answering every port is
// absent and Refresh keeps returning an error wrapping ErrNoAdapter.
func (a *GCAdapter) Refresh() error {
	a.mu.Lock()
	lost := a.lost
	fresh := a.fresh
	var report [gcReportLen]byte
	copy(report[:], a.latest)
	a.fresh = false
	a.mu.Unlock()

	if lost {
		for p := range a.ports {
			a.setPresent(p, false)
		}
		return fmt.Errorf("%w: read loop stopped", ErrNoAdapter)
	}
	if !fresh {
		return nil
	}

	ports, err := decodeGCReport(report[:])
	if err != nil {
		return err
	}
	for p, port := range ports {
		if port.present && !a.ports[p].present {
			a.neutral[p] = port.analog
			zap.S().Infow("GameCube controller connected", "port", p+1)
		}
		if !port.present && a.ports[p].present {
			zap.S().Infow("GameCube controller disconnected", "port", p+1)
		}
		a.ports[p] = port
		if port.present {
			port.fillButtons(a.buttons[p])
			port.fillAxes(a.neutral[p], a.axes[p])
		}
	}
	return nil
}

func (a *GCAdapter) setPresent(p int, present bool) {
	if a.ports[p].present && !present {
		zap.S().Infow("GameCube controller disconnected", "port", p+1)
	}
	a.ports[p].present = present
}

func (a *GCAdapter) MaxSlots() int { return gcPorts }

func (a *GCAdapter) Present(slot int) bool {
	return slot >= 0 && slot < gcPorts && a.ports[slot].present
}

func (a *GCAdapter) Name(slot int) string {
	return fmt.Sprintf("GameCube Controller (port %d)", slot+1)
}

func (a *GCAdapter) Axes(slot int) []float32 {
	if !a.Present(slot) {
		return nil
	}
	return a.axes[slot]
}

func (a *GCAdapter) Buttons(slot int) []ButtonState {
	if !a.Present(slot) {
		return nil
	}
	return a.buttons[slot]
}

// Close stops the reader and releases the USB device.
func (a *GCAdapter) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
	if a.done != nil {
		a.done()
		a.done = nil
	}
	var err error
	if a.dev != nil {
		err = a.dev.Close()
		a.dev = nil
	}
	if a.usb != nil {
		if cerr := a.usb.Close(); err == nil {
			err = cerr
		}
		a.usb = nil
	}
	return err
}

// discoverGCAdapters counts attached adapters without opening them.
func discoverGCAdapters(ctx context.Context) (int, error) {
	usb := gousb.NewContext()
	defer usb.Close()

	count := 0
	_, err := usb.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if uint16(desc.Vendor) == GCVendorID && uint16(desc.Product) == GCProductID {
			count++
		}
		return false
	})
	if err != nil && !errors.Is(err, gousb.ErrorAccess) {
		return count, err
	}
	return count, nil
}
