// # internal/engine/tuplecheck/matcher.go
package tuplecheck

import (
	"singletuple/internal/engine/syntax"
	"singletuple/internal/engine/token"
)

// tokenSpan is the first and last token index of a candidate expression.
type tokenSpan struct {
	start int
	end   int
}

// MatchedSpan is the parenthesis pair directly wrapping a candidate. For call
// arguments OuterOpen is the pair enclosing it (normally the call's own).
type MatchedSpan struct {
	Open      int
	Close     int
	OuterOpen int
	HasOuter  bool
}

// resolveSpan maps a node's source span onto token indices. The end boundary
// resolves to the token just past the node.
func resolveSpan(idx *token.Index, n *syntax.Node) (tokenSpan, bool) {
	if n == nil || !n.Span.Valid() || idx.Len() == 0 {
		return tokenSpan{}, false
	}
	start, ok := idx.FindExact(n.Span.Start)
	if !ok {
		return tokenSpan{}, false
	}
	end := idx.Len() - 1
	if next, ok := idx.FindAtOrAfter(n.Span.End); ok {
		end = next - 1
	}
	if end < start {
		return tokenSpan{}, false
	}
	return tokenSpan{start: start, end: end}, true
}

func matchEnclosing(idx *token.Index, ctx Context, span tokenSpan) (MatchedSpan, bool) {
	open, closeIdx, ok := matchPair(idx, span.start, span.end)
	if !ok {
		return MatchedSpan{}, false
	}
	m := MatchedSpan{Open: open, Close: closeIdx}
	if ctx != ContextCallArgument {
		return m, true
	}

	// A plain call has exactly one pair; only a second pair hugging the first
	// on both sides means the argument was wrapped again.
	outer, _, ok := matchPair(idx, open, closeIdx)
	if !ok {
		return MatchedSpan{}, false
	}
	m.OuterOpen = outer
	m.HasOuter = true
	return m, true
}

// matchPair finds the opening parenthesis immediately before start and its
// closer, which must immediately follow end. Comments and line breaks between
// them are ignored.
func matchPair(idx *token.Index, start, end int) (int, int, bool) {
	open, ok := idx.PrevSemantic(start)
	if !ok || !idx.At(open).Is("(") {
		return 0, 0, false
	}
	closeIdx, ok := matchCloser(idx, open)
	if !ok || closeIdx <= end {
		return 0, 0, false
	}
	if last, ok := idx.PrevSemantic(closeIdx); !ok || last < start || last > end {
		return 0, 0, false
	}
	return open, closeIdx, true
}

func matchCloser(idx *token.Index, open int) (int, bool) {
	depth := 0
	for i := open; i < idx.Len(); i++ {
		tok := idx.At(i)
		switch {
		case tok.Is("("):
			depth++
		case tok.Is(")"):
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
