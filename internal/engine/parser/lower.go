// # internal/engine/parser/lower.go
package parser

import (
	"strings"

	"singletuple/internal/engine/syntax"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// lowerModule converts the concrete tree into a syntax.Node tree. Grouping
// parentheses disappear; tuples and generator expressions keep their own.
func lowerModule(root *sitter.Node) *syntax.Node {
	return &syntax.Node{
		Kind:     syntax.KindModule,
		Span:     spanOf(root),
		Children: lowerChildren(root),
	}
}

func spanOf(n *sitter.Node) syntax.Span {
	start, end := n.StartPosition(), n.EndPosition()
	return syntax.Span{
		Start: syntax.Position{Line: int(start.Row) + 1, Column: int(start.Column)},
		End:   syntax.Position{Line: int(end.Row) + 1, Column: int(end.Column)},
	}
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || !child.IsNamed() || child.IsExtra() {
			continue
		}
		out = append(out, child)
	}
	return out
}

func lowerChildren(n *sitter.Node) []*syntax.Node {
	children := namedChildren(n)
	out := make([]*syntax.Node, 0, len(children))
	for _, child := range children {
		out = append(out, lower(child))
	}
	return out
}

func branch(kind syntax.Kind, n *sitter.Node) *syntax.Node {
	return &syntax.Node{Kind: kind, Span: spanOf(n), Children: lowerChildren(n)}
}

func leaf(kind syntax.Kind, n *sitter.Node) *syntax.Node {
	return &syntax.Node{Kind: kind, Span: spanOf(n)}
}

func lower(n *sitter.Node) *syntax.Node {
	switch n.Kind() {
	case "parenthesized_expression":
		if inner := namedChildren(n); len(inner) == 1 {
			return lower(inner[0])
		}
		return branch(syntax.KindOther, n)
	case "assignment":
		return lowerAssignment(n)
	case "augmented_assignment":
		return branch(syntax.KindAugmentedAssignment, n)
	case "identifier":
		return leaf(syntax.KindName, n)
	case "string", "concatenated_string":
		// f-string replacement fields are not inspected.
		return leaf(syntax.KindStringLiteral, n)
	case "integer", "float", "true", "false", "none", "ellipsis":
		return leaf(syntax.KindLiteral, n)
	case "attribute":
		return branch(syntax.KindAttribute, n)
	case "subscript":
		return branch(syntax.KindSubscript, n)
	case "call":
		return lowerCall(n)
	case "binary_operator":
		return branch(syntax.KindBinaryOp, n)
	case "unary_operator", "not_operator":
		return branch(syntax.KindUnaryOp, n)
	case "boolean_operator":
		return branch(syntax.KindBooleanOp, n)
	case "comparison_operator":
		return lowerComparison(n)
	case "conditional_expression":
		return branch(syntax.KindConditionalExpression, n)
	case "lambda":
		return branch(syntax.KindLambda, n)
	case "generator_expression":
		return branch(syntax.KindGeneratorExpression, n)
	case "tuple", "expression_list":
		return branch(syntax.KindTuple, n)
	case "list", "set", "dictionary", "list_comprehension", "set_comprehension", "dictionary_comprehension":
		return branch(syntax.KindCollection, n)
	case "list_splat", "dictionary_splat", "parenthesized_list_splat":
		return branch(syntax.KindStarred, n)
	case "keyword_argument":
		return branch(syntax.KindKeyword, n)
	case "named_expression":
		return branch(syntax.KindNamedExpression, n)
	case "await":
		return branch(syntax.KindAwait, n)
	case "module":
		return branch(syntax.KindModule, n)
	}
	if isStatementKind(n.Kind()) {
		return branch(syntax.KindStatement, n)
	}
	return branch(syntax.KindOther, n)
}

func isStatementKind(kind string) bool {
	return kind == "block" ||
		strings.HasSuffix(kind, "_statement") ||
		strings.HasSuffix(kind, "_definition") ||
		strings.HasSuffix(kind, "_clause")
}

// lowerAssignment flattens chained bindings (a = b = value) into one node
// whose Value is the final right-hand side.
func lowerAssignment(n *sitter.Node) *syntax.Node {
	out := &syntax.Node{Kind: syntax.KindAssignment, Span: spanOf(n)}
	cur := n
	for {
		if left := cur.ChildByFieldName("left"); left != nil {
			out.Children = append(out.Children, lower(left))
		}
		if typ := cur.ChildByFieldName("type"); typ != nil {
			out.Kind = syntax.KindAnnotatedAssignment
			out.Children = append(out.Children, lower(typ))
		}
		right := cur.ChildByFieldName("right")
		if right == nil {
			return out
		}
		if right.Kind() == "assignment" {
			cur = right
			continue
		}
		out.Value = lower(right)
		out.Children = append(out.Children, out.Value)
		return out
	}
}

func lowerCall(n *sitter.Node) *syntax.Node {
	out := &syntax.Node{Kind: syntax.KindCall, Span: spanOf(n)}
	if fn := n.ChildByFieldName("function"); fn != nil {
		out.Children = append(out.Children, lower(fn))
	}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return out
	}
	if args.Kind() == "generator_expression" {
		// f(x for x in y): the generator owns the call's parentheses.
		gen := lower(args)
		out.Args = []*syntax.Node{gen}
		out.Children = append(out.Children, gen)
		return out
	}
	for _, arg := range namedChildren(args) {
		lowered := lower(arg)
		out.Children = append(out.Children, lowered)
		switch arg.Kind() {
		case "keyword_argument", "dictionary_splat":
		default:
			out.Args = append(out.Args, lowered)
		}
	}
	return out
}

func lowerComparison(n *sitter.Node) *syntax.Node {
	out := &syntax.Node{Kind: syntax.KindComparison, Span: spanOf(n)}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || child.IsExtra() {
			continue
		}
		if child.IsNamed() {
			out.Children = append(out.Children, lower(child))
			continue
		}
		out.Ops = append(out.Ops, syntax.ParseCompareOp(strings.Join(strings.Fields(child.Kind()), " ")))
	}
	return out
}
