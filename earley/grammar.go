// Package earley is a reference Earley-style recognition engine for the
// repa lexer. It implements the alternative input model: candidate
// terminals of different lengths may be proposed at one position, and the
// chart decides which of them are grammatically viable. Recognition only;
// it builds no parse trees.
package earley

import (
	"errors"
	"fmt"
	"strings"
)

// Rule is one production. Symbols are plain names; a symbol is a
// nonterminal iff it appears as some rule's Lhs, a terminal otherwise.
type Rule struct {
	id  int
	lhs string
	rhs []string
}

func (r *Rule) Lhs() string   { return r.lhs }
func (r *Rule) Rhs() []string { return append([]string(nil), r.rhs...) }
func (r *Rule) RhsLen() int   { return len(r.rhs) }
func (r *Rule) RhsAt(i int) string {
	if i < 0 || i >= len(r.rhs) {
		panic("rule RHS index out of range")
	}
	return r.rhs[i]
}

func (r *Rule) String() string {
	if len(r.rhs) == 0 {
		return r.lhs + " := `e"
	}
	return r.lhs + " := " + strings.Join(r.rhs, " ")
}

// Grammar is an immutable rule set with a start symbol, produced by
// GrammarBuilder.
type Grammar struct {
	start    string
	rules    []*Rule
	byLhs    map[string][]*Rule
	nullable map[string]bool
}

func (g *Grammar) Start() string { return g.start }

func (g *Grammar) NumRules() int { return len(g.rules) }

func (g *Grammar) RuleAt(i int) *Rule {
	if i < 0 || i >= len(g.rules) {
		panic("rule index out of range")
	}
	return g.rules[i]
}

// Terminal reports whether sym is a terminal of the grammar, that is, a
// symbol no rule derives.
func (g *Grammar) Terminal(sym string) bool {
	_, has := g.byLhs[sym]
	return !has
}

// Nullable reports whether the nonterminal can derive the empty string.
func (g *Grammar) Nullable(sym string) bool {
	return g.nullable[sym]
}

type GrammarBuilder struct {
	start string
	rules []*Rule
	seen  map[string]bool
}

func NewGrammarBuilder() *GrammarBuilder {
	return &GrammarBuilder{seen: make(map[string]bool)}
}

// Start names the start symbol. When never called, the first rule's Lhs
// is the start.
func (gb *GrammarBuilder) Start(sym string) *GrammarBuilder {
	gb.start = sym
	return gb
}

// Rule appends a production. An empty rhs is an epsilon rule.
func (gb *GrammarBuilder) Rule(lhs string, rhs ...string) *GrammarBuilder {
	key := lhs + " := " + strings.Join(rhs, " ")
	if gb.seen[key] {
		panic("duplicate rule: " + key)
	}
	gb.seen[key] = true
	gb.rules = append(gb.rules, &Rule{
		id:  len(gb.rules),
		lhs: lhs,
		rhs: append([]string(nil), rhs...),
	})
	return gb
}

func (gb *GrammarBuilder) Build() (*Grammar, error) {
	if len(gb.rules) == 0 {
		return nil, errors.New("grammar has no rules")
	}
	g := &Grammar{
		start:    gb.start,
		rules:    gb.rules,
		byLhs:    make(map[string][]*Rule),
		nullable: make(map[string]bool),
	}
	if g.start == "" {
		g.start = gb.rules[0].lhs
	}
	for _, r := range g.rules {
		g.byLhs[r.lhs] = append(g.byLhs[r.lhs], r)
	}
	if _, has := g.byLhs[g.start]; !has {
		return nil, fmt.Errorf("start symbol %q has no rules", g.start)
	}
	g.computeNullable()
	return g, nil
}

// computeNullable runs the usual fixpoint: a nonterminal is nullable once
// some rule for it has an all-nullable RHS.
func (g *Grammar) computeNullable() {
	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			if g.nullable[r.lhs] {
				continue
			}
			nullDeriv := true
			for _, sym := range r.rhs {
				if g.Terminal(sym) || !g.nullable[sym] {
					nullDeriv = false
					break
				}
			}
			if nullDeriv {
				g.nullable[r.lhs] = true
				changed = true
			}
		}
	}
}
