//go:build !linux

package joystick

// OpenJoydev is only available on Linux.
func OpenJoydev(opts Options) (Platform, error) {
	return nil, ErrUnsupported
}

func joydevNodes(dir string) []string { return nil }
