// # internal/engine/token/index.go
package token

import (
	"fmt"
	"sort"

	"singletuple/internal/engine/syntax"
)

// Index is a read-only position lookup over a token stream. It is built once
// per analysis and never mutated.
type Index struct {
	tokens []Token
	starts []syntax.Position
}

// NewIndex validates that token starts are strictly increasing and builds the
// start-position array used by the lookups.
func NewIndex(tokens []Token) (*Index, error) {
	starts := make([]syntax.Position, len(tokens))
	for i, tok := range tokens {
		if i > 0 && !starts[i-1].Before(tok.Start) {
			return nil, fmt.Errorf("token %d (%s) does not start after token %d", i, tok, i-1)
		}
		starts[i] = tok.Start
	}
	return &Index{tokens: tokens, starts: starts}, nil
}

func (x *Index) Len() int {
	return len(x.tokens)
}

// At returns the token at i. Callers pass indices obtained from the index.
func (x *Index) At(i int) Token {
	return x.tokens[i]
}

// FindExact returns the index of the token starting exactly at pos.
func (x *Index) FindExact(pos syntax.Position) (int, bool) {
	i, ok := x.FindAtOrAfter(pos)
	if !ok || x.starts[i] != pos {
		return 0, false
	}
	return i, true
}

// FindAtOrAfter returns the index of the first token starting at or after pos.
func (x *Index) FindAtOrAfter(pos syntax.Position) (int, bool) {
	i := sort.Search(len(x.starts), func(i int) bool {
		return !x.starts[i].Before(pos)
	})
	if i == len(x.starts) {
		return 0, false
	}
	return i, true
}

// PrevSemantic returns the nearest token before i that is not layout or a
// comment.
func (x *Index) PrevSemantic(i int) (int, bool) {
	for j := i - 1; j >= 0; j-- {
		if x.tokens[j].Kind.Semantic() {
			return j, true
		}
	}
	return 0, false
}
