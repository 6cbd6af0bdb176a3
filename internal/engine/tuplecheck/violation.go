// # internal/engine/tuplecheck/violation.go
package tuplecheck

import (
	"singletuple/internal/engine/syntax"
	"singletuple/internal/engine/token"
)

var keywordOperators = map[string]bool{
	"and": true, "or": true, "not": true, "in": true, "is": true,
	"if": true, "else": true, "for": true, "lambda": true,
}

var symbolOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "//": true, "%": true, "**": true, "@": true,
	"&": true, "|": true, "^": true, "~": true, "<<": true, ">>": true,
	"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true, "->": true,
}

// confirm applies the exclusion checks in order; the first that fires
// rejects the candidate.
func (p Policy) confirm(idx *token.Index, c Candidate, m MatchedSpan) bool {
	if hasTopLevelComma(idx, m) {
		return false
	}
	if c.Context != ContextCallArgument && topLevelStrings(idx, m) > 1 {
		return false
	}
	if checksOperators(c.Node.Kind) && hasTopLevelOperator(idx, m) {
		return false
	}
	return true
}

// checksOperators is false for candidates whose own tokens legitimately
// include operators.
func checksOperators(kind syntax.Kind) bool {
	return kind != syntax.KindBinaryOp && kind != syntax.KindLambda
}

func hasTopLevelComma(idx *token.Index, m MatchedSpan) bool {
	found := false
	scanTopLevel(idx, m, func(tok token.Token) bool {
		found = tok.Is(",")
		return !found
	})
	return found
}

func topLevelStrings(idx *token.Index, m MatchedSpan) int {
	count := 0
	scanTopLevel(idx, m, func(tok token.Token) bool {
		if tok.Kind == token.KindString {
			count++
		}
		return true
	})
	return count
}

func hasTopLevelOperator(idx *token.Index, m MatchedSpan) bool {
	found := false
	scanTopLevel(idx, m, func(tok token.Token) bool {
		switch tok.Kind {
		case token.KindKeyword:
			found = keywordOperators[tok.Text]
		case token.KindOperator:
			found = symbolOperators[tok.Text]
		}
		return !found
	})
	return found
}

// scanTopLevel calls fn for every token strictly inside the matched pair that
// is not nested in another bracket. fn returns false to stop.
func scanTopLevel(idx *token.Index, m MatchedSpan, fn func(token.Token) bool) {
	depth := 0
	for i := m.Open + 1; i < m.Close; i++ {
		tok := idx.At(i)
		if tok.Kind != token.KindOperator {
			if depth == 0 && !fn(tok) {
				return
			}
			continue
		}
		switch tok.Text {
		case ")", "]", "}":
			depth--
			continue
		case "(", "[", "{":
			depth++
			continue
		}
		if depth == 0 && !fn(tok) {
			return
		}
	}
}
