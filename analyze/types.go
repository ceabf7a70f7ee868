package analyze

import "fmt"

// RawScore is the structural intermediate between tokenization and
// validation: declared metadata plus per-section raw bars. No musical
// arithmetic has happened yet.
type RawScore struct {
	Metadata map[string]string
	// Keys holds metadata keys in first-declaration order so every
	// later stage iterates deterministically.
	Keys     []string
	Sections []RawSection
}

type RawSection struct {
	Name      string
	IsDefault bool
	Line      int
	Bars      []RawBar
}

type RawBar struct {
	Line   int
	Tokens []Token

	RepeatStart bool
	RepeatEnd   bool
	VoltaStart  bool
	VoltaEnd    bool
	VoltaNumber int
}

type TokenKind int

const (
	TokenNote TokenKind = iota
	TokenRest
	TokenVoicing
	TokenChord
)

// Token is one recognized bar element. String, Fret and Duration are
// kept as the raw source text; an empty field means the source omitted
// it and the builder inherits the previous explicit value. Tuplet is
// the enclosing tuplet count (0 when the token is not inside one).
type Token struct {
	Kind     TokenKind
	Text     string
	String   string
	Fret     string
	Duration string
	Chord    string
	Group    []Token
	Tuplet   int
	Line     int
}

// StructuralError reports a malformed construct found while tokenizing,
// with the line number in the normalized text.
type StructuralError struct {
	Line int
	Msg  string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func errAt(line int, format string, args ...any) *StructuralError {
	return &StructuralError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
