//go:build linux

package joystick

import (
	"path/filepath"
	"testing"
	"time"
)

func TestOpenJoydevEmptyDir(t *testing.T) {
	p, err := OpenJoydev(Options{DevDir: t.TempDir(), RescanInterval: time.Millisecond})
	if err != nil {
		t.Fatalf("OpenJoydev: %v", err)
	}
	defer Close(p)

	if p.MaxSlots() != JoydevSlots {
		t.Fatalf("MaxSlots() = %d, want %d", p.MaxSlots(), JoydevSlots)
	}
	if err := p.(Refresher).Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := NewCollector(p).Poll(); len(got) != 0 {
		t.Fatalf("Poll() = %d snapshots, want 0", len(got))
	}
}

func TestOpenJoydevMissingDir(t *testing.T) {
	if _, err := OpenJoydev(Options{DevDir: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

// Runs against real hardware when a joystick node exists.
func TestJoydevIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if len(joydevNodes("")) == 0 {
		t.Skip("no /dev/input/js* nodes")
	}

	p, err := OpenJoydev(Options{})
	if err != nil {
		t.Skipf("joydev unavailable: %v", err)
	}
	defer Close(p)

	_ = p.(Refresher).Refresh()
	for _, snap := range NewCollector(p).Poll() {
		t.Logf("slot %d %q: %d axes, %d buttons", snap.Slot, snap.Name, len(snap.Axes), len(snap.Buttons))
	}
}
