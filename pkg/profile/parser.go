package profile

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser parses label profile files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new profile parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(ProfileLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a profile file from a reader
func (p *Parser) Parse(filename string, r io.Reader) (*File, error) {
	file, err := p.parser.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// ParseString parses a profile file from a string
func (p *Parser) ParseString(input string) (*File, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// ParseFile parses a profile file from a file path
func (p *Parser) ParseFile(filename string) (*File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return p.Parse(filename, f)
}
