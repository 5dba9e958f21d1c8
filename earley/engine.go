package earley

import (
	"fmt"

	"github.com/ruz/repa"
)

// item is a dotted rule with its origin position. Chart items carry no
// semantic values; this engine recognizes, it does not evaluate.
type item struct {
	r      *Rule
	dot    int
	origin int
}

func (it item) complete() bool { return it.dot == len(it.r.rhs) }

func (it item) next() string { return it.r.rhs[it.dot] }

func (it item) String() string {
	s := it.r.lhs + " :="
	for i, sym := range it.r.rhs {
		if i == it.dot {
			s += " ."
		}
		s += " " + sym
	}
	if it.complete() {
		s += " ."
	}
	return fmt.Sprintf("%s @%d", s, it.origin)
}

type stateSet struct {
	items []item
	seen  map[item]bool
}

func newStateSet() *stateSet {
	return &stateSet{seen: make(map[item]bool)}
}

func (ss *stateSet) add(it item) bool {
	if ss.seen[it] {
		return false
	}
	ss.seen[it] = true
	ss.items = append(ss.items, it)
	return true
}

// Recognizer is a chart recognizer over positions of uniform width: a
// token of length n submitted at position i ends at position i+n, so a
// lexer driving it one byte per position gets Marpa-style variable-length
// tokens for free. It implements the repa.Engine interface.
type Recognizer struct {
	g *Grammar

	pos       int
	sets      []*stateSet
	pending   map[int]*stateSet
	exhausted bool
	failed    bool
}

var _ repa.Engine = (*Recognizer)(nil)

func NewRecognizer(g *Grammar) *Recognizer {
	r := &Recognizer{
		g:       g,
		pending: make(map[int]*stateSet),
	}
	first := newStateSet()
	r.sets = append(r.sets, first)
	for _, rl := range g.byLhs[g.start] {
		first.add(item{r: rl, origin: 0})
	}
	r.closure(first, 0)
	if len(r.Expected()) == 0 && r.Accepted() {
		// Nullable start symbol: satisfied before any input arrives.
		r.exhausted = true
	}
	return r
}

// Expected returns the terminal names items of the current set are
// waiting on, deduplicated, in chart order.
func (r *Recognizer) Expected() []string {
	if r.exhausted {
		return nil
	}
	set := r.sets[r.pos]
	var out []string
	seen := make(map[string]bool)
	for _, it := range set.items {
		if it.complete() {
			continue
		}
		sym := it.next()
		if !r.g.Terminal(sym) || seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	return out
}

// Alternative proposes terminal spanning positions [pos, pos+length).
// Every item waiting on the terminal is advanced into the set where the
// token ends. The value is accepted for protocol compatibility and
// discarded; recognition needs only the spans.
func (r *Recognizer) Alternative(terminal string, value interface{}, length int) error {
	if r.exhausted {
		return fmt.Errorf("alternative %q after engine exhaustion", terminal)
	}
	if length <= 0 {
		return fmt.Errorf("alternative %q has non-positive length %d", terminal, length)
	}
	set := r.sets[r.pos]
	advanced := 0
	for _, it := range set.items {
		if it.complete() || it.next() != terminal {
			continue
		}
		at := r.pos + length
		ps, has := r.pending[at]
		if !has {
			ps = newStateSet()
			r.pending[at] = ps
		}
		ps.add(item{r: it.r, dot: it.dot + 1, origin: it.origin})
		advanced++
	}
	if advanced == 0 {
		return fmt.Errorf("terminal %q is not expected at position %d", terminal, r.pos)
	}
	return nil
}

// Complete closes the current position and advances by one. The result
// follows the step protocol of the repa driver: MoreNeeded while the new
// position falls inside every in-flight token, NextExpected when items
// want terminals there, Exhausted when the start rule is complete and
// nothing can continue, Failure when no derivation remains.
func (r *Recognizer) Complete() (repa.Step, error) {
	if r.exhausted {
		return repa.Step{}, fmt.Errorf("complete after engine exhaustion")
	}
	r.pos++
	set, has := r.pending[r.pos]
	if has {
		delete(r.pending, r.pos)
	} else {
		set = newStateSet()
	}
	r.sets = append(r.sets, set)
	r.closure(set, r.pos)

	expected := r.Expected()
	if len(expected) > 0 {
		return repa.Step{Kind: repa.StepNextExpected, Expected: expected}, nil
	}
	if r.Accepted() {
		r.exhausted = true
		return repa.Step{Kind: repa.StepExhausted}, nil
	}
	if len(r.pending) > 0 {
		return repa.Step{Kind: repa.StepMoreNeeded}, nil
	}
	r.exhausted = true
	r.failed = true
	detail := fmt.Sprintf("no viable derivation at position %d", r.pos)
	return repa.Step{Kind: repa.StepFailure, Detail: detail}, nil
}

// Exhausted reports whether the engine can accept no further input,
// whether by satisfying the grammar or by dead-ending.
func (r *Recognizer) Exhausted() bool {
	return r.exhausted
}

// Accepted reports whether a complete derivation of the start symbol
// spans positions 0 through the current one.
func (r *Recognizer) Accepted() bool {
	for _, it := range r.sets[r.pos].items {
		if it.complete() && it.origin == 0 && it.r.lhs == r.g.start {
			return true
		}
	}
	return false
}

// Position returns the engine's current position.
func (r *Recognizer) Position() int {
	return r.pos
}

// Failed reports whether the engine dead-ended.
func (r *Recognizer) Failed() bool {
	return r.failed
}

// closure runs prediction and completion to a fixpoint over the set at
// position pos. Nullable nonterminals advance the predicting item
// immediately, the Aycock-Horspool treatment of epsilon derivations.
func (r *Recognizer) closure(set *stateSet, pos int) {
	for i := 0; i < len(set.items); i++ {
		it := set.items[i]
		if it.complete() {
			parents := r.sets[it.origin]
			for _, p := range parents.items {
				if !p.complete() && p.next() == it.r.lhs {
					set.add(item{r: p.r, dot: p.dot + 1, origin: p.origin})
				}
			}
			continue
		}
		sym := it.next()
		if r.g.Terminal(sym) {
			continue
		}
		for _, rl := range r.g.byLhs[sym] {
			set.add(item{r: rl, origin: pos})
		}
		if r.g.Nullable(sym) {
			set.add(item{r: it.r, dot: it.dot + 1, origin: it.origin})
		}
	}
}
