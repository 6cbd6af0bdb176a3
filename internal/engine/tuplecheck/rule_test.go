package tuplecheck_test

import (
	"testing"

	"singletuple/internal/engine/parser"
	"singletuple/internal/engine/tuplecheck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var frontend = parser.NewFrontend()

func runRule(t *testing.T, src string, mode tuplecheck.Mode) []tuplecheck.Diagnostic {
	t.Helper()
	unit, err := frontend.Parse("example.py", []byte(src))
	require.NoError(t, err)
	rule := tuplecheck.NewRule(tuplecheck.DefaultPolicy().WithMode(mode), frontend)
	return tuplecheck.Collect(rule.Check(unit))
}

func TestRule_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"assignment string", `x = ("only_item")`, 1},
		{"assignment trailing comma", `x = ("item",)`, 0},
		{"assignment multiline", "x = (\n    \"item\"\n)", 1},
		{"assignment comment inside", "x = (  # note\n    \"item\"\n)", 1},
		{"redundant wrap around tuple", `x = ((1,))`, 1},
		{"fstring", `x = (f"hello {name}")`, 1},
		{"fstring trailing comma", `x = (f"id_{id}",)`, 0},
		{"lambda", `x = (lambda x: x+1)`, 1},
		{"name", `x = (value)`, 1},
		{"attribute", `x = (obj.attr)`, 1},
		{"subscript", `x = (items[1 + 2])`, 1},
		{"call", `x = (build(a, b))`, 1},
		{"annotated", `x: str = ("a")`, 1},
		{"chained", `a = b = ("x")`, 1},
		{"unparenthesized", `x = "item"`, 0},
		{"binary op in assignment", `x = (a + b)`, 0},
		{"conditional", `x = (a if cond else b)`, 0},
		{"boolean op", `x = (a or b)`, 0},
		{"augmented assignment", `x += ("a")`, 0},
		{"string join", `x = ("foo" "bar")`, 0},
		{"string join across lines", "x = (\"foo\"\n     \"bar\")", 0},
		{"string concat operator", `x = ("foo" + "bar")`, 0},
		{"generator", `x = (i for i in range(10))`, 0},
		{"double wrapped generator", `x = ((i for i in y))`, 1},
		{"membership right", `if x in ("A"): pass`, 1},
		{"membership right tuple", `if x in ("A",): pass`, 0},
		{"membership left", `if ("A") in x: pass`, 1},
		{"membership left tuple", `if ("A",) in x: pass`, 0},
		{"membership both", `if ("A") in ("B"): pass`, 2},
		{"not in", `if x not in ("A"): pass`, 1},
		{"equality ignored", `if ("A") == x: pass`, 0},
		{"list literal", `x in [ "literal" ]`, 0},
		{"membership binary op", `ok = x in (a + b)`, 1},
		{"membership string join", `ok = x in ("a" "b")`, 0},
		{"compound boolean", `if (a in x and b in x): pass`, 0},
		{"membership conditional", `ok = x in (a if c else b)`, 0},
		{"arithmetic membership in call", `print(a + b in c)`, 0},
		{"arithmetic membership in generator", `ok = any(x + 1 in s for x in xs)`, 0},
		{"grouped arithmetic membership", `if (a - 1 in seen): pass`, 0},
		{"plain call", `containers.append(c)`, 0},
		{"double wrapped argument", `func(("item"))`, 1},
		{"tuple argument", `func((a, b))`, 0},
		{"wrapped first of several arguments", `func((a), b)`, 0},
		{"wrapped last of several arguments", `f(x, ("b"))`, 0},
		{"plain argument", `func(item)`, 0},
		{"generator argument", `list(i for i in range(10))`, 0},
		{"boolean argument", `func((a and b))`, 0},
		{"keyword argument", `func(key=("v"))`, 0},
		{"assert", `assert (x == y)`, 0},
		{"return", "def f():\n    return (x)", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runRule(t, tt.src, tuplecheck.ModeBroad)
			assert.Len(t, got, tt.want, "diagnostics: %+v", got)
			for _, d := range got {
				assert.Equal(t, tuplecheck.RuleID, d.RuleID)
				assert.Contains(t, d.Message, "STC001")
			}
		})
	}
}

func TestRule_Positions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []tuplecheck.Diagnostic
	}{
		{
			name: "assignment reports opening parenthesis",
			src:  `x = ("only_item")`,
			want: []tuplecheck.Diagnostic{{Line: 1, Column: 4}},
		},
		{
			name: "membership column",
			src:  `if x in ("A"): pass`,
			want: []tuplecheck.Diagnostic{{Line: 1, Column: 8}},
		},
		{
			name: "both sides in traversal order",
			src:  `if ("A") in ("B"): pass`,
			want: []tuplecheck.Diagnostic{{Line: 1, Column: 3}, {Line: 1, Column: 12}},
		},
		{
			name: "double wrap reports the redundant pair",
			src:  `func(("item"))`,
			want: []tuplecheck.Diagnostic{{Line: 1, Column: 5}},
		},
		{
			name: "generator reports the outer pair",
			src:  `x = ((i for i in y))`,
			want: []tuplecheck.Diagnostic{{Line: 1, Column: 4}},
		},
		{
			name: "later line",
			src:  "import os\n\nvalue = (os.sep)\n",
			want: []tuplecheck.Diagnostic{{Line: 3, Column: 8}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runRule(t, tt.src, tuplecheck.ModeBroad)
			require.Len(t, got, len(tt.want))
			for i, d := range got {
				assert.Equal(t, tt.want[i].Line, d.Line)
				assert.Equal(t, tt.want[i].Column, d.Column)
			}
		})
	}
}

func TestRule_StrictMode(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"string assignment", `x = ("item")`, 1},
		{"fstring assignment", `x = (f"{a}")`, 1},
		{"name assignment", `x = (value)`, 0},
		{"lambda assignment", `x = (lambda: 1)`, 0},
		{"string membership", `if x in ("A"): pass`, 1},
		{"name membership", `if x in (names): pass`, 0},
		{"call argument", `func(("item"))`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, runRule(t, tt.src, tuplecheck.ModeStrict), tt.want)
		})
	}
}

func TestRule_Idempotent(t *testing.T) {
	src := "a = (\"x\")\nif (\"A\") in (\"B\"):\n    func((b))\n"
	unit, err := frontend.Parse("example.py", []byte(src))
	require.NoError(t, err)

	rule := tuplecheck.NewRule(tuplecheck.DefaultPolicy(), frontend)
	first := tuplecheck.Collect(rule.Check(unit))
	second := tuplecheck.Collect(rule.Check(unit))
	require.Len(t, first, 4)
	assert.Equal(t, first, second)
}

func TestRule_StopsWhenConsumerStops(t *testing.T) {
	unit, err := frontend.Parse("example.py", []byte("a = (\"x\")\nb = (\"y\")\n"))
	require.NoError(t, err)

	rule := tuplecheck.NewRule(tuplecheck.DefaultPolicy(), frontend)
	seen := 0
	for range rule.Check(unit) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestRule_NilUnit(t *testing.T) {
	rule := tuplecheck.NewRule(tuplecheck.DefaultPolicy(), frontend)
	assert.Empty(t, tuplecheck.Collect(rule.Check(nil)))
	assert.Empty(t, tuplecheck.Collect(rule.Check(&tuplecheck.Unit{Path: "empty.py"})))
}

func TestRule_UntokenizableLinesYieldNothing(t *testing.T) {
	unit, err := frontend.Parse("example.py", []byte(`x = ("only_item")`))
	require.NoError(t, err)

	unit.Lines = []string{"x = (\"unterminated\n"}
	rule := tuplecheck.NewRule(tuplecheck.DefaultPolicy(), frontend)
	assert.Empty(t, tuplecheck.Collect(rule.Check(unit)))
}

func TestParseMode(t *testing.T) {
	mode, err := tuplecheck.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, tuplecheck.ModeBroad, mode)

	mode, err = tuplecheck.ParseMode(" Strict ")
	require.NoError(t, err)
	assert.Equal(t, tuplecheck.ModeStrict, mode)

	_, err = tuplecheck.ParseMode("loose")
	assert.Error(t, err)
}
