// # internal/engine/token/token.go
package token

import (
	"fmt"

	"singletuple/internal/engine/syntax"
)

// Kind classifies a lexical token.
type Kind uint8

const (
	KindIdentifier Kind = iota
	KindString
	KindNumber
	KindOperator
	KindKeyword
	KindNewline
	KindIndent
	KindDedent
	KindComment
)

var kindNames = [...]string{
	KindIdentifier: "identifier",
	KindString:     "string",
	KindNumber:     "number",
	KindOperator:   "operator",
	KindKeyword:    "keyword",
	KindNewline:    "newline",
	KindIndent:     "indent",
	KindDedent:     "dedent",
	KindComment:    "comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Semantic is false for layout and comment tokens that never take part in
// an expression.
func (k Kind) Semantic() bool {
	switch k {
	case KindNewline, KindIndent, KindDedent, KindComment:
		return false
	}
	return true
}

// Token is an immutable lexical unit of one source unit.
type Token struct {
	Kind  Kind
	Text  string
	Start syntax.Position
	End   syntax.Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%s", t.Kind, t.Text, t.Start)
}

// Is reports whether t is an operator or keyword token spelled text.
func (t Token) Is(text string) bool {
	return (t.Kind == KindOperator || t.Kind == KindKeyword) && t.Text == text
}

// Tokenizer re-derives a token stream from the raw lines of a source unit.
type Tokenizer interface {
	Tokenize(lines []string) ([]Token, error)
}
