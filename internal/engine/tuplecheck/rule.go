// # internal/engine/tuplecheck/rule.go
package tuplecheck

import (
	"iter"
	"log/slog"

	"singletuple/internal/engine/syntax"
	"singletuple/internal/engine/token"
)

// Unit is one source unit handed to the rule by its host: the parsed tree and
// the raw lines the token stream is re-derived from.
type Unit struct {
	Path  string
	Tree  *syntax.Node
	Lines []string
}

// Diagnostic is a confirmed violation positioned at the offending opening
// parenthesis. Line is 1-based, Column 0-based.
type Diagnostic struct {
	Line    int
	Column  int
	RuleID  string
	Message string
}

// Rule binds a policy to the tokenizer used to re-derive token streams.
type Rule struct {
	policy    Policy
	tokenizer token.Tokenizer
}

func NewRule(policy Policy, tokenizer token.Tokenizer) *Rule {
	return &Rule{policy: policy, tokenizer: tokenizer}
}

func (r *Rule) Policy() Policy {
	return r.policy
}

// Check lazily produces the diagnostics of unit. A unit whose lines cannot be
// tokenized yields nothing. Ranging over the result twice repeats the
// analysis; hosts are expected to consume it once.
func (r *Rule) Check(unit *Unit) iter.Seq[Diagnostic] {
	return func(yield func(Diagnostic) bool) {
		if unit == nil || unit.Tree == nil || r.tokenizer == nil {
			return
		}
		tokens, err := r.tokenizer.Tokenize(unit.Lines)
		if err != nil {
			slog.Debug("tokenize failed, skipping unit", "path", unit.Path, "error", err)
			return
		}
		for d := range Analyze(unit.Tree, tokens, r.policy) {
			if !yield(d) {
				return
			}
		}
	}
}

// Analyze is the pure pipeline: candidates from the tree, paren matching and
// confirmation against the token stream, diagnostics in traversal order.
func Analyze(tree *syntax.Node, tokens []token.Token, policy Policy) iter.Seq[Diagnostic] {
	return func(yield func(Diagnostic) bool) {
		if tree == nil {
			return
		}
		idx, err := token.NewIndex(tokens)
		if err != nil {
			slog.Debug("malformed token stream, skipping unit", "error", err)
			return
		}
		for c := range policy.candidates(tree) {
			d, ok := policy.evaluate(idx, c)
			if !ok {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

func (p Policy) evaluate(idx *token.Index, c Candidate) (Diagnostic, bool) {
	span, ok := resolveSpan(idx, c.Node)
	if !ok {
		return Diagnostic{}, false
	}
	m, ok := matchEnclosing(idx, c.Context, span)
	if !ok {
		return Diagnostic{}, false
	}
	if !p.confirm(idx, c, m) {
		return Diagnostic{}, false
	}
	return p.report(idx.At(m.Open)), true
}

func (p Policy) report(open token.Token) Diagnostic {
	return Diagnostic{
		Line:    open.Start.Line,
		Column:  open.Start.Column,
		RuleID:  p.RuleID,
		Message: p.Message,
	}
}

// Collect drains a diagnostic sequence into a slice.
func Collect(seq iter.Seq[Diagnostic]) []Diagnostic {
	out := make([]Diagnostic, 0)
	for d := range seq {
		out = append(out, d)
	}
	return out
}
