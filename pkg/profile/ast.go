package profile

import "github.com/alecthomas/participle/v2/lexer"

// File is a parsed profile file.
type File struct {
	Devices []*Device `@@*`
}

// Device is one `device "<name>" { ... }` block. The name "*" matches any
// device without a more specific block.
type Device struct {
	Pos lexer.Position

	Name    string   `"device" @String "{"`
	Entries []*Entry `@@* "}"`
}

// Entry labels one button or axis: `button 3 = "Start";`.
type Entry struct {
	Pos lexer.Position

	Kind  string `@( "button" | "axis" )`
	Index int    `@Int "="`
	Label string `@String ";"`
}
