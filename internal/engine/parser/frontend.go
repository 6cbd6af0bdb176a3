// # internal/engine/parser/frontend.go
package parser

import (
	"strings"

	"singletuple/internal/core/errors"
	"singletuple/internal/engine/token"
	"singletuple/internal/engine/tuplecheck"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// PythonLanguage returns the tree-sitter Python grammar.
func PythonLanguage() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_python.Language())
}

// Frontend turns Python source into the units the rule consumes. It also
// serves as the rule's tokenizer. Safe for concurrent use.
type Frontend struct {
	pool *ParserPool
}

func NewFrontend() *Frontend {
	return &Frontend{pool: NewParserPool(PythonLanguage())}
}

// Parse lowers content into a syntax tree. Sources with syntax errors are
// rejected the way a Python compiler would reject them.
func (f *Frontend) Parse(path string, content []byte) (*tuplecheck.Unit, error) {
	sp := f.pool.Get()
	defer f.pool.Put(sp)

	tree := sp.Parse(content, nil)
	if tree == nil {
		return nil, errors.AddContext(errors.New(errors.CodeInternal, "parse failed"), errors.CtxPath, path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, errors.AddContext(errors.New(errors.CodeInternal, "parse returned no root"), errors.CtxPath, path)
	}
	if root.HasError() {
		return nil, errors.AddContext(errors.New(errors.CodeSyntax, "source contains syntax errors"), errors.CtxPath, path)
	}

	return &tuplecheck.Unit{
		Path:  path,
		Tree:  lowerModule(root),
		Lines: SplitLines(content),
	}, nil
}

// Tokenize re-derives the token stream of a unit from its lines.
func (f *Frontend) Tokenize(lines []string) ([]token.Token, error) {
	content := []byte(JoinLines(lines))

	sp := f.pool.Get()
	defer f.pool.Put(sp)

	tree := sp.Parse(content, nil)
	if tree == nil {
		return nil, errors.New(errors.CodeInternal, "tokenize failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, errors.New(errors.CodeSyntax, "source cannot be tokenized")
	}
	return withLineEnds(collectTokens(root, content), lines), nil
}

// SplitLines splits content into lines that keep their terminators.
func SplitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.SplitAfter(string(content), "\n")
}

// JoinLines is the inverse of SplitLines; lines without a terminator other
// than the last get one.
func JoinLines(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(line)
		if i < len(lines)-1 && !strings.HasSuffix(line, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

var _ token.Tokenizer = (*Frontend)(nil)
