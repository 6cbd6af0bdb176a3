package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_Order(t *testing.T) {
	a := Position{Line: 1, Column: 8}
	b := Position{Line: 2, Column: 0}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, "1:8", a.String())
}

func TestSpan_Valid(t *testing.T) {
	tests := []struct {
		name string
		span Span
		want bool
	}{
		{"single line", Span{Position{1, 4}, Position{1, 9}}, true},
		{"empty", Span{Position{3, 2}, Position{3, 2}}, true},
		{"zero value", Span{}, false},
		{"inverted", Span{Position{2, 0}, Position{1, 5}}, false},
		{"negative column", Span{Position{1, -1}, Position{1, 2}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.span.Valid())
		})
	}
}

func TestWalk(t *testing.T) {
	str := &Node{Kind: KindStringLiteral}
	assign := &Node{Kind: KindAssignment, Children: []*Node{{Kind: KindName}, str}, Value: str}
	root := &Node{Kind: KindModule, Children: []*Node{{Kind: KindStatement, Children: []*Node{assign}}}}

	var order []Kind
	var depths []int
	Walk(root, func(n *Node, depth int) bool {
		order = append(order, n.Kind)
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []Kind{KindModule, KindStatement, KindAssignment, KindName, KindStringLiteral}, order)
	assert.Equal(t, []int{0, 1, 2, 3, 3}, depths)

	visited := 0
	Walk(root, func(n *Node, _ int) bool {
		visited++
		return n.Kind != KindStatement
	})
	assert.Equal(t, 2, visited)

	assert.Equal(t, 1, Count(root, KindStringLiteral))
	assert.Equal(t, 0, Count(nil, KindName))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "binary_op", KindBinaryOp.String())
	assert.Equal(t, "unknown", Kind(250).String())
}

func TestParseCompareOp(t *testing.T) {
	tests := []struct {
		text string
		want CompareOp
	}{
		{"==", OpEq},
		{"!=", OpNotEq},
		{"<=", OpLtE},
		{"in", OpIn},
		{"not in", OpNotIn},
		{"is not", OpIsNot},
		{"<>", OpNotEq},
		{"~", OpUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCompareOp(tt.text))
		})
	}

	assert.True(t, OpIn.IsMembership())
	assert.True(t, OpNotIn.IsMembership())
	assert.False(t, OpIs.IsMembership())
}
