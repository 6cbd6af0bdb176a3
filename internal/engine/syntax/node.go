// # internal/engine/syntax/node.go
package syntax

import "fmt"

// Position is a source coordinate: 1-based line, 0-based byte column.
type Position struct {
	Line   int
	Column int
}

// Before reports whether p sorts strictly before o in document order.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// Compare returns -1, 0 or +1 ordering p against o.
func (p Position) Compare(o Position) int {
	switch {
	case p.Before(o):
		return -1
	case o.Before(p):
		return 1
	}
	return 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the half-open source range [Start, End) covered by a node.
type Span struct {
	Start Position
	End   Position
}

// Valid is false for nodes whose position metadata is missing or inverted.
func (s Span) Valid() bool {
	if s.Start.Line < 1 || s.End.Line < 1 || s.Start.Column < 0 || s.End.Column < 0 {
		return false
	}
	return !s.End.Before(s.Start)
}

// Node is one element of a lowered syntax tree. Nodes never point at their
// parent; consumers derive context while walking from the root.
type Node struct {
	Kind     Kind
	Span     Span
	Children []*Node

	// Value is the bound expression of an (annotated) assignment.
	Value *Node
	// Args holds the positional arguments of a call, a subset of Children.
	Args []*Node
	// Ops holds comparison operators; Ops[i] sits between Children[i] and Children[i+1].
	Ops []CompareOp
}

// Walk visits the tree rooted at n in pre-order. Returning false from visit
// skips the node's children.
func Walk(n *Node, visit func(n *Node, depth int) bool) {
	walk(n, 0, visit)
}

func walk(n *Node, depth int, visit func(*Node, int) bool) {
	if n == nil {
		return
	}
	if !visit(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, visit)
	}
}

// Count returns the number of nodes of the given kind below and including n.
func Count(n *Node, kind Kind) int {
	total := 0
	Walk(n, func(node *Node, _ int) bool {
		if node.Kind == kind {
			total++
		}
		return true
	})
	return total
}
