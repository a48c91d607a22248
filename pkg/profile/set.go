package profile

import (
	"fmt"
	"strings"
)

// Wildcard is the device name matching every device.
const Wildcard = "*"

type labels struct {
	buttons map[int]string
	axes    map[int]string
}

// Set is a compiled, read-only collection of device profiles. A nil *Set
// has no labels.
type Set struct {
	devices  map[string]*labels
	wildcard *labels
}

// Compile validates a parsed file and indexes it by device name. Device
// names compare case-insensitively.
func Compile(file *File) (*Set, error) {
	set := &Set{devices: make(map[string]*labels)}
	if file == nil {
		return set, nil
	}

	for _, dev := range file.Devices {
		key := strings.ToLower(dev.Name)
		if key == Wildcard && set.wildcard != nil || set.devices[key] != nil {
			return nil, fmt.Errorf("%s: duplicate profile for device %q", dev.Pos, dev.Name)
		}

		l := &labels{buttons: make(map[int]string), axes: make(map[int]string)}
		for _, e := range dev.Entries {
			target := l.axes
			if e.Kind == "button" {
				target = l.buttons
			}
			if _, dup := target[e.Index]; dup {
				return nil, fmt.Errorf("%s: duplicate %s %d for device %q", e.Pos, e.Kind, e.Index, dev.Name)
			}
			target[e.Index] = e.Label
		}

		if key == Wildcard {
			set.wildcard = l
			continue
		}
		set.devices[key] = l
	}
	return set, nil
}

// Load parses and compiles a profile file.
func Load(path string) (*Set, error) {
	parser, err := NewParser()
	if err != nil {
		return nil, err
	}
	file, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	set, err := Compile(file)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return set, nil
}

// Len reports the number of device blocks, wildcard included.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	n := len(s.devices)
	if s.wildcard != nil {
		n++
	}
	return n
}

// ButtonLabel returns the label for button i of the named device. A
// device-specific entry wins over the wildcard block.
func (s *Set) ButtonLabel(device string, i int) (string, bool) {
	return s.lookup(device, i, func(l *labels) map[int]string { return l.buttons })
}

// AxisLabel returns the label for axis i of the named device.
func (s *Set) AxisLabel(device string, i int) (string, bool) {
	return s.lookup(device, i, func(l *labels) map[int]string { return l.axes })
}

func (s *Set) lookup(device string, i int, pick func(*labels) map[int]string) (string, bool) {
	if s == nil {
		return "", false
	}
	if l := s.devices[strings.ToLower(device)]; l != nil {
		if label, ok := pick(l)[i]; ok {
			return label, true
		}
	}
	if s.wildcard != nil {
		label, ok := pick(s.wildcard)[i]
		return label, ok
	}
	return "", false
}
