package earley

import (
	"testing"
)

func TestGrammarBuilder(t *testing.T) {
	g, err := NewGrammarBuilder().
		Rule("sum", "num").
		Rule("sum", "sum", "plus", "num").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if g.Start() != "sum" {
		t.Errorf("start %q, want first rule's lhs", g.Start())
	}
	if g.NumRules() != 2 {
		t.Errorf("%d rules", g.NumRules())
	}
	if g.Terminal("sum") {
		t.Error("sum classified as terminal")
	}
	for _, sym := range []string{"num", "plus"} {
		if !g.Terminal(sym) {
			t.Errorf("%s not classified as terminal", sym)
		}
	}
	if got := g.RuleAt(1).String(); got != "sum := sum plus num" {
		t.Errorf("rule string %q", got)
	}
}

func TestGrammarExplicitStart(t *testing.T) {
	g, err := NewGrammarBuilder().
		Rule("a", "x").
		Rule("b", "a").
		Start("b").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if g.Start() != "b" {
		t.Errorf("start %q", g.Start())
	}
	if _, err := NewGrammarBuilder().Rule("a", "x").Start("nosuch").Build(); err == nil {
		t.Error("undefined start symbol accepted")
	}
}

func TestGrammarNoRules(t *testing.T) {
	if _, err := NewGrammarBuilder().Build(); err == nil {
		t.Error("empty grammar accepted")
	}
}

func TestGrammarNullable(t *testing.T) {
	g, err := NewGrammarBuilder().
		Rule("s", "opt", "word").
		Rule("opt").
		Rule("optchain", "opt", "opt").
		Rule("solid", "word").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		sym  string
		want bool
	}{
		{"opt", true},
		{"optchain", true},
		{"s", false},
		{"solid", false},
	}
	for _, c := range cases {
		if g.Nullable(c.sym) != c.want {
			t.Errorf("Nullable(%q) = %v, want %v", c.sym, !c.want, c.want)
		}
	}
}
