// # internal/engine/tuplecheck/classifier.go
package tuplecheck

import (
	"iter"

	"singletuple/internal/engine/syntax"
)

// Context is the syntactic position a candidate was found in.
type Context uint8

const (
	ContextAssignmentValue Context = iota + 1
	ContextMembershipOperand
	ContextCallArgument
)

func (c Context) String() string {
	switch c {
	case ContextAssignmentValue:
		return "assignment_value"
	case ContextMembershipOperand:
		return "membership_operand"
	case ContextCallArgument:
		return "call_argument"
	}
	return "unknown"
}

// Side tells which operand of a membership test a candidate is.
type Side uint8

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

// Candidate is an expression sitting in a position the rule inspects.
type Candidate struct {
	Node    *syntax.Node
	Context Context
	Side    Side
}

// candidates walks the tree top-down. Context comes from the node currently
// being visited, so nothing needs to remember parents.
func (p Policy) candidates(root *syntax.Node) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		p.visit(root, yield)
	}
}

func (p Policy) visit(n *syntax.Node, yield func(Candidate) bool) bool {
	if n == nil {
		return true
	}

	switch n.Kind {
	case syntax.KindAssignment, syntax.KindAnnotatedAssignment:
		if n.Value != nil && p.assignmentCandidate(n.Value.Kind) {
			if !yield(Candidate{Node: n.Value, Context: ContextAssignmentValue}) {
				return false
			}
		}
	case syntax.KindComparison:
		for i, operand := range n.Children {
			side, ok := membershipSide(n.Ops, i)
			if !ok || !p.membershipCandidate(operand.Kind) {
				continue
			}
			if !yield(Candidate{Node: operand, Context: ContextMembershipOperand, Side: side}) {
				return false
			}
		}
	case syntax.KindCall:
		if !p.strict() {
			lone := len(n.Args) == 1
			for _, arg := range n.Args {
				if !callArgumentCandidate(arg.Kind, lone) {
					continue
				}
				if !yield(Candidate{Node: arg, Context: ContextCallArgument}) {
					return false
				}
			}
		}
	case syntax.KindInvalid, syntax.KindModule, syntax.KindStatement, syntax.KindAugmentedAssignment,
		syntax.KindStringLiteral, syntax.KindLiteral, syntax.KindName, syntax.KindAttribute,
		syntax.KindSubscript, syntax.KindBinaryOp, syntax.KindUnaryOp, syntax.KindBooleanOp,
		syntax.KindGeneratorExpression, syntax.KindConditionalExpression, syntax.KindLambda,
		syntax.KindTuple, syntax.KindCollection, syntax.KindStarred, syntax.KindKeyword,
		syntax.KindNamedExpression, syntax.KindAwait, syntax.KindOther:
		// No candidate sites of their own.
	}

	for _, child := range n.Children {
		if !p.visit(child, yield) {
			return false
		}
	}
	return true
}

// membershipSide reports whether operand i of a comparison is paired with a
// membership operator, and on which side of it the operand sits.
func membershipSide(ops []syntax.CompareOp, i int) (Side, bool) {
	if i == 0 {
		if len(ops) > 0 && ops[0].IsMembership() {
			return SideLeft, true
		}
		return SideNone, false
	}
	if i-1 < len(ops) && ops[i-1].IsMembership() {
		return SideRight, true
	}
	return SideNone, false
}

func (p Policy) assignmentCandidate(kind syntax.Kind) bool {
	if p.strict() {
		return kind == syntax.KindStringLiteral
	}
	switch kind {
	case syntax.KindStringLiteral, syntax.KindLiteral, syntax.KindName, syntax.KindAttribute,
		syntax.KindSubscript, syntax.KindCall, syntax.KindLambda, syntax.KindGeneratorExpression,
		syntax.KindTuple:
		return true
	case syntax.KindBinaryOp, syntax.KindUnaryOp, syntax.KindBooleanOp, syntax.KindComparison,
		syntax.KindConditionalExpression, syntax.KindCollection, syntax.KindStarred,
		syntax.KindKeyword, syntax.KindNamedExpression, syntax.KindAwait, syntax.KindOther,
		syntax.KindInvalid, syntax.KindModule, syntax.KindStatement, syntax.KindAssignment,
		syntax.KindAnnotatedAssignment, syntax.KindAugmentedAssignment:
		return false
	}
	return false
}

func (p Policy) membershipCandidate(kind syntax.Kind) bool {
	if p.strict() {
		return kind == syntax.KindStringLiteral
	}
	switch kind {
	case syntax.KindStringLiteral, syntax.KindLiteral, syntax.KindName, syntax.KindAttribute,
		syntax.KindSubscript, syntax.KindCall, syntax.KindLambda, syntax.KindGeneratorExpression,
		syntax.KindTuple, syntax.KindBinaryOp, syntax.KindUnaryOp, syntax.KindComparison,
		syntax.KindCollection, syntax.KindAwait, syntax.KindOther:
		return true
	case syntax.KindBooleanOp, syntax.KindConditionalExpression, syntax.KindNamedExpression,
		syntax.KindStarred, syntax.KindKeyword, syntax.KindInvalid, syntax.KindModule,
		syntax.KindStatement, syntax.KindAssignment, syntax.KindAnnotatedAssignment,
		syntax.KindAugmentedAssignment:
		return false
	}
	return false
}

func callArgumentCandidate(kind syntax.Kind, lone bool) bool {
	switch kind {
	case syntax.KindGeneratorExpression:
		// A lone generator argument shares the call's parentheses.
		return !lone
	case syntax.KindConditionalExpression, syntax.KindKeyword, syntax.KindInvalid,
		syntax.KindModule, syntax.KindStatement, syntax.KindAssignment,
		syntax.KindAnnotatedAssignment, syntax.KindAugmentedAssignment:
		return false
	case syntax.KindStringLiteral, syntax.KindLiteral, syntax.KindName, syntax.KindAttribute,
		syntax.KindSubscript, syntax.KindCall, syntax.KindBinaryOp, syntax.KindUnaryOp,
		syntax.KindBooleanOp, syntax.KindComparison, syntax.KindLambda, syntax.KindTuple,
		syntax.KindCollection, syntax.KindStarred, syntax.KindNamedExpression, syntax.KindAwait,
		syntax.KindOther:
		return true
	}
	return false
}
