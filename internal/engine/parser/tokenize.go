// # internal/engine/parser/tokenize.go
package parser

import (
	"slices"
	"strings"
	"unicode"

	"singletuple/internal/engine/syntax"
	"singletuple/internal/engine/token"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// collectTokens returns the leaves of the concrete tree in document order.
// A string literal, f-strings included, is a single token.
func collectTokens(root *sitter.Node, source []byte) []token.Token {
	tokens := make([]token.Token, 0, root.ChildCount()*4)
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.Kind() == "string" || n.ChildCount() == 0 {
			if n.StartByte() == n.EndByte() {
				return
			}
			text := string(source[n.StartByte():n.EndByte()])
			span := spanOf(n)
			tokens = append(tokens, token.Token{
				Kind:  classifyLeaf(n, text),
				Text:  text,
				Start: span.Start,
				End:   span.End,
			})
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			visit(n.Child(i))
		}
	}
	visit(root)
	return tokens
}

func classifyLeaf(n *sitter.Node, text string) token.Kind {
	switch n.Kind() {
	case "comment":
		return token.KindComment
	case "line_continuation":
		return token.KindNewline
	case "string", "string_start", "string_content", "string_end":
		return token.KindString
	case "integer", "float":
		return token.KindNumber
	case "true", "false", "none":
		return token.KindKeyword
	}
	if !n.IsNamed() {
		if isWord(text) {
			return token.KindKeyword
		}
		return token.KindOperator
	}
	return token.KindIdentifier
}

func isWord(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r != '_' && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// withLineEnds adds a Newline token at the end of every line not swallowed by
// a multi-line token, then restores document order.
func withLineEnds(tokens []token.Token, lines []string) []token.Token {
	covered := make(map[int]bool)
	for _, tok := range tokens {
		for line := tok.Start.Line; line < tok.End.Line; line++ {
			covered[line] = true
		}
	}

	out := make([]token.Token, 0, len(tokens)+len(lines))
	out = append(out, tokens...)
	for i, line := range lines {
		lineNo := i + 1
		if covered[lineNo] {
			continue
		}
		body := strings.TrimRight(line, "\r\n")
		out = append(out, token.Token{
			Kind:  token.KindNewline,
			Text:  line[len(body):],
			Start: syntax.Position{Line: lineNo, Column: len(body)},
			End:   syntax.Position{Line: lineNo, Column: len(line)},
		})
	}

	slices.SortFunc(out, func(a, b token.Token) int {
		return a.Start.Compare(b.Start)
	})
	return out
}
