package profile

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ProfileLexer tokenizes label profile files.
var ProfileLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Shell style comments
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[{}=;]`},
})
