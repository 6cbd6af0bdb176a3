// # internal/engine/syntax/kind.go
package syntax

// Kind is the closed set of node kinds the analysis understands. Every switch
// over Kind in this module lists all members; adding a kind means revisiting
// each of them.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindModule
	KindStatement
	KindAssignment
	KindAnnotatedAssignment
	KindAugmentedAssignment
	KindStringLiteral
	KindLiteral
	KindName
	KindAttribute
	KindSubscript
	KindCall
	KindBinaryOp
	KindUnaryOp
	KindBooleanOp
	KindComparison
	KindGeneratorExpression
	KindConditionalExpression
	KindLambda
	KindTuple
	KindCollection
	KindStarred
	KindKeyword
	KindNamedExpression
	KindAwait
	KindOther
)

var kindNames = [...]string{
	KindInvalid:               "invalid",
	KindModule:                "module",
	KindStatement:             "statement",
	KindAssignment:            "assignment",
	KindAnnotatedAssignment:   "annotated_assignment",
	KindAugmentedAssignment:   "augmented_assignment",
	KindStringLiteral:         "string",
	KindLiteral:               "literal",
	KindName:                  "name",
	KindAttribute:             "attribute",
	KindSubscript:             "subscript",
	KindCall:                  "call",
	KindBinaryOp:              "binary_op",
	KindUnaryOp:               "unary_op",
	KindBooleanOp:             "boolean_op",
	KindComparison:            "comparison",
	KindGeneratorExpression:   "generator_expression",
	KindConditionalExpression: "conditional_expression",
	KindLambda:                "lambda",
	KindTuple:                 "tuple",
	KindCollection:            "collection",
	KindStarred:               "starred",
	KindKeyword:               "keyword",
	KindNamedExpression:       "named_expression",
	KindAwait:                 "await",
	KindOther:                 "other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// CompareOp is an operator of a (possibly chained) comparison.
type CompareOp uint8

const (
	OpUnknown CompareOp = iota
	OpEq
	OpNotEq
	OpLt
	OpLtE
	OpGt
	OpGtE
	OpIs
	OpIsNot
	OpIn
	OpNotIn
)

// ParseCompareOp maps operator source text to a CompareOp. Whitespace inside
// the two-word operators is normalised by the caller.
func ParseCompareOp(text string) CompareOp {
	switch text {
	case "==":
		return OpEq
	case "!=", "<>":
		return OpNotEq
	case "<":
		return OpLt
	case "<=":
		return OpLtE
	case ">":
		return OpGt
	case ">=":
		return OpGtE
	case "is":
		return OpIs
	case "is not":
		return OpIsNot
	case "in":
		return OpIn
	case "not in":
		return OpNotIn
	}
	return OpUnknown
}

// IsMembership reports whether the operator is `in` or `not in`.
func (op CompareOp) IsMembership() bool {
	return op == OpIn || op == OpNotIn
}
