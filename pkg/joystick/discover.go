package joystick

import (
	"context"
	"fmt"
	"runtime"
)

// BackendInfo describes a backend detected on the host.
type BackendInfo struct {
	Kind        Kind
	Description string
	Devices     int
	Available   bool
}

// Label returns a user-friendly description for the backend.
func (b BackendInfo) Label() string {
	if b.Description != "" {
		return b.Description
	}
	return string(b.Kind)
}

// DefaultKind is the backend used when none is configured.
func DefaultKind() Kind {
	if runtime.GOOS == "linux" {
		return KindJoydev
	}
	return KindSim
}

// Discover reports which backends can run here and how many devices each
// can see. It always includes the simulator so the UI can be exercised
// without hardware. USB enumeration errors are returned alongside the
// partial result.
func Discover(ctx context.Context, devDir string) ([]BackendInfo, error) {
	var results []BackendInfo

	if runtime.GOOS == "linux" {
		nodes := joydevNodes(devDir)
		results = append(results, BackendInfo{
			Kind:        KindJoydev,
			Description: fmt.Sprintf("Linux joystick interface (%d node(s))", len(nodes)),
			Devices:     len(nodes),
			Available:   true,
		})
	}

	adapters, err := discoverGCAdapters(ctx)
	results = append(results, BackendInfo{
		Kind:        KindGCAdapter,
		Description: fmt.Sprintf("GameCube USB adapter (%d found)", adapters),
		Devices:     adapters * gcPorts,
		Available:   adapters > 0,
	})

	results = append(results, BackendInfo{
		Kind:        KindSim,
		Description: "Simulator (no hardware)",
		Available:   true,
	})

	return results, err
}
