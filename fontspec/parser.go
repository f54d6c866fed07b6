package fontspec

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	specLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][,:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(specLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
	)
)

// Document is the root AST node for a .fonts file. It declares the font
// faces available to the layouter and named text styles referencing them.
type Document struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    string         `parser:"Newline* 'fonts' @Ident"`
	Version string         `parser:"@Ident"`
	Decls   []*Decl        `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Decl is a top-level declaration (face or style).
type Decl struct {
	Face  *FaceDecl  `parser:"  @@"`
	Style *StyleDecl `parser:"| @@"`
}

// FaceDecl declares one font face with its source and class tags.
type FaceDecl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"'face' @Ident"`
	Block *Block         `parser:"@@"`
}

// StyleDecl declares a named text style (size, classes, fallback chain).
type StyleDecl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"'style' @Ident"`
	Block *Block         `parser:"@@"`
}

// Block is a delimited list of assignments.
type Block struct {
	Assignments []*Assignment `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Value represents generic property values.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	List   *ListValue     `parser:"| @@"`
}

// ListValue captures `[ ... ]` identifier lists.
type ListValue struct {
	Items []string `parser:"'[' Newline* ( @Ident ( (',' | ';' | Newline+) Newline* @Ident )* )? Newline* ']'"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a font spec from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses a font spec from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
