package token

import (
	"testing"

	"singletuple/internal/engine/syntax"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(kind Kind, text string, line, col int) Token {
	return Token{
		Kind:  kind,
		Text:  text,
		Start: syntax.Position{Line: line, Column: col},
		End:   syntax.Position{Line: line, Column: col + len(text)},
	}
}

// sampleStream is `x = (  # c` followed by `    "a")` on the next line.
func sampleStream() []Token {
	return []Token{
		tok(KindIdentifier, "x", 1, 0),
		tok(KindOperator, "=", 1, 2),
		tok(KindOperator, "(", 1, 4),
		tok(KindComment, "# c", 1, 7),
		tok(KindNewline, "\n", 1, 10),
		tok(KindString, `"a"`, 2, 4),
		tok(KindOperator, ")", 2, 7),
		tok(KindNewline, "\n", 2, 8),
	}
}

func TestNewIndex_RejectsUnorderedStream(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
	}{
		{"duplicate start", []Token{tok(KindIdentifier, "a", 1, 0), tok(KindIdentifier, "b", 1, 0)}},
		{"backwards", []Token{tok(KindIdentifier, "a", 2, 0), tok(KindIdentifier, "b", 1, 5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIndex(tt.tokens)
			assert.Error(t, err)
		})
	}
}

func TestNewIndex_Empty(t *testing.T) {
	idx, err := NewIndex(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())

	_, ok := idx.FindAtOrAfter(syntax.Position{Line: 1})
	assert.False(t, ok)
}

func TestIndex_FindExact(t *testing.T) {
	idx, err := NewIndex(sampleStream())
	require.NoError(t, err)

	i, ok := idx.FindExact(syntax.Position{Line: 2, Column: 4})
	require.True(t, ok)
	assert.Equal(t, `"a"`, idx.At(i).Text)

	_, ok = idx.FindExact(syntax.Position{Line: 2, Column: 5})
	assert.False(t, ok)
}

func TestIndex_FindAtOrAfter(t *testing.T) {
	idx, err := NewIndex(sampleStream())
	require.NoError(t, err)

	i, ok := idx.FindAtOrAfter(syntax.Position{Line: 2, Column: 5})
	require.True(t, ok)
	assert.Equal(t, ")", idx.At(i).Text)

	i, ok = idx.FindAtOrAfter(syntax.Position{Line: 1, Column: 0})
	require.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = idx.FindAtOrAfter(syntax.Position{Line: 3, Column: 0})
	assert.False(t, ok)
}

func TestIndex_PrevSemantic(t *testing.T) {
	idx, err := NewIndex(sampleStream())
	require.NoError(t, err)

	i, ok := idx.PrevSemantic(5)
	require.True(t, ok)
	assert.Equal(t, "(", idx.At(i).Text)

	_, ok = idx.PrevSemantic(0)
	assert.False(t, ok)
}

func TestToken_Is(t *testing.T) {
	assert.True(t, tok(KindOperator, "(", 1, 0).Is("("))
	assert.True(t, tok(KindKeyword, "in", 1, 0).Is("in"))
	assert.False(t, tok(KindString, `"("`, 1, 0).Is(`"("`))
	assert.False(t, tok(KindIdentifier, "in", 1, 0).Is("in"))
}

func TestKind_Semantic(t *testing.T) {
	for _, k := range []Kind{KindIdentifier, KindString, KindNumber, KindOperator, KindKeyword} {
		assert.True(t, k.Semantic(), k.String())
	}
	for _, k := range []Kind{KindNewline, KindIndent, KindDedent, KindComment} {
		assert.False(t, k.Semantic(), k.String())
	}
}
