package repa

import "fmt"

// Match is one candidate token found at the current position. Several
// may exist at once under lexical ambiguity; none is preferred here.
// Grammatical disambiguation belongs to the engine.
type Match struct {
	Terminal string
	Text     string
	Length   int

	spec *tokenSpec
}

// match attempts one terminal against the front of the buffer. Pattern
// tokens follow the growth-retry policy: a match spanning the entire
// buffer is not accepted while more data may arrive, because the next
// chunk could extend it. Once the source is dry the spanning match is
// accepted as-is; a stream that simply ends mid-pattern is not an error.
func (l *Lexer) match(ts *tokenSpec, b *buffer) (Match, bool, error) {
	switch ts.kind {
	case kindSingleChar:
		if len(b.data) > 0 && b.data[0] == ts.char {
			return Match{Terminal: ts.name, Text: string(ts.char), Length: 1, spec: ts}, true, nil
		}
		return Match{}, false, nil
	case kindLiteral:
		if len(b.data) >= len(ts.lit) && string(b.data[:len(ts.lit)]) == ts.lit {
			return Match{Terminal: ts.name, Text: ts.lit, Length: len(ts.lit), spec: ts}, true, nil
		}
		return Match{}, false, nil
	case kindPattern:
		for {
			loc := ts.pattern.FindIndex(b.data)
			if loc == nil {
				return Match{}, false, nil
			}
			if loc[1] == 0 {
				return Match{}, false, fmt.Errorf("%w: token %q matched a zero-length prefix", ErrInvalidTokenSpec, ts.name)
			}
			if loc[1] < len(b.data) || !b.mayGrow {
				text := string(b.data[:loc[1]])
				return Match{Terminal: ts.name, Text: text, Length: loc[1], spec: ts}, true, nil
			}
			l.debugf("token %q spans the whole buffer, growing and retrying\n", ts.name)
			before := len(b.data)
			if _, err := b.grow(); err != nil {
				return Match{}, false, err
			}
			if len(b.data) == before && b.mayGrow {
				// A source that yields nothing without signaling
				// end-of-data cannot extend the match; accept it rather
				// than retry forever.
				text := string(b.data[:loc[1]])
				return Match{Terminal: ts.name, Text: text, Length: loc[1], spec: ts}, true, nil
			}
		}
	}
	panic("unreachable token kind " + fmt.Sprint(int(ts.kind)))
}

// matchExpected runs every terminal the engine currently expects against
// the buffer, in the engine's order. Unknown terminal names and
// non-matches are skipped with only a debug note.
func (l *Lexer) matchExpected(expected []string, b *buffer) ([]Match, error) {
	var out []Match
	for _, name := range expected {
		ts, has := l.tokens.get(name)
		if !has {
			l.debugf("expected terminal %q has no token spec, skipping\n", name)
			continue
		}
		m, ok, err := l.match(ts, b)
		if err != nil {
			return nil, err
		}
		if !ok {
			l.debugf("%q: no match\n", name)
			continue
		}
		l.debugf("%q matched %q (%d bytes)\n", name, m.Text, m.Length)
		out = append(out, m)
	}
	return out, nil
}
