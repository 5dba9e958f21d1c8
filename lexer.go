package repa

import (
	"fmt"
	"io"
)

const DefaultMinBuffer = 4096

// FullBuffering as a MinBuffer value makes the first grow read the entire
// source before any token is attempted, so no token can ever be truncated
// at a chunk boundary.
const FullBuffering = -1

// Config is the lexer construction surface.
type Config struct {
	// Tokens maps terminal names to their matchers.
	Tokens map[string]TokenDef

	// Store is the table-wide default store mode, StoreStruct when left
	// as StoreDefault. StoreFunc backs it when Store is StoreCustom.
	Store     StoreMode
	StoreFunc StoreFunc

	// MinBuffer is the minimum-buffer threshold: refills trigger once the
	// buffer falls below it. Zero selects DefaultMinBuffer; FullBuffering
	// reads the whole source up front.
	MinBuffer int

	// Debug, when non-nil, receives human-readable diagnostics. It never
	// affects control flow.
	Debug io.Writer

	// Filter, when non-nil, runs after every successful buffer growth and
	// may rewrite the buffer (stripping line-ending noise and the like)
	// before matching proceeds.
	Filter func([]byte) []byte
}

// Lexer matches registered tokens against a streaming source and feeds
// the candidates, one position at a time, into an Engine. Configuration
// is compiled once at construction and immutable afterwards; all mutable
// run state lives in the buffer created per Recognize call.
type Lexer struct {
	tokens *tokenTable
	minBuf int
	debug  io.Writer
	filter func([]byte) []byte
}

func NewLexer(cfg Config) (*Lexer, error) {
	tt, err := compileTokens(cfg.Tokens, cfg.Store, cfg.StoreFunc)
	if err != nil {
		return nil, err
	}
	minBuf := cfg.MinBuffer
	switch {
	case minBuf == 0:
		minBuf = DefaultMinBuffer
	case minBuf < 0:
		minBuf = 0
	}
	return &Lexer{
		tokens: tt,
		minBuf: minBuf,
		debug:  cfg.Debug,
		filter: cfg.Filter,
	}, nil
}

type Outcome int

const (
	// OutcomeSuccess: the engine is exhausted with the grammar satisfied.
	OutcomeSuccess Outcome = iota
	// OutcomeFailure: the engine dead-ended; no viable derivation can
	// continue. Not an error from the lexer's perspective; the caller
	// decides severity.
	OutcomeFailure
	// OutcomeOutOfInput: the source ended while the engine still expected
	// terminals. Distinct from failure: some grammars legitimately end
	// there, others do not, and the lexer does not judge.
	OutcomeOutOfInput
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeOutOfInput:
		return "out-of-input"
	}
	return "unknown"
}

// Result is the terminal state of one Recognize run. Detail carries the
// engine's failure text for OutcomeFailure.
type Result struct {
	Outcome Outcome
	Detail  string
}

// Recognize drives the engine over the source until the input is
// exhausted, the grammar is satisfied, or parsing fails. The engine is
// owned exclusively by this call for its duration. Errors are reserved
// for configuration faults, source read errors and engine protocol
// errors; a rejected input is a Result, not an error.
func (l *Lexer) Recognize(eng Engine, src io.Reader) (Result, error) {
	expected := eng.Expected()
	if len(expected) == 0 {
		if eng.Exhausted() {
			return Result{Outcome: OutcomeSuccess}, nil
		}
		return Result{Outcome: OutcomeFailure, Detail: "engine expects no terminals"}, nil
	}

	b := newBuffer(src, l.minBuf, l.filter)
	if _, err := b.grow(); err != nil {
		return Result{}, err
	}

	for {
		if len(b.data) == 0 {
			if b.mayGrow {
				if _, err := b.grow(); err != nil {
					return Result{}, err
				}
			}
			if len(b.data) == 0 {
				l.debugf("out of input with expected %q\n", expected)
				return Result{Outcome: OutcomeOutOfInput}, nil
			}
		}

		l.debugf("expect %q\n", expected)
		l.debugf("buffer %s\n", b.preview(40))

		matches, err := l.matchExpected(expected, b)
		if err != nil {
			return Result{}, err
		}
		for _, m := range matches {
			value, ok := m.spec.encode(m.Terminal, m.Text)
			if !ok {
				value = nil
			}
			if err := eng.Alternative(m.Terminal, value, m.Length); err != nil {
				return Result{}, fmt.Errorf("alternative %q: %w", m.Terminal, err)
			}
		}

		// Advance. Each Complete call moves the engine one position; the
		// skip count is how many buffer bytes that made obsolete. The
		// engine stays quiet until the shortest accepted alternative ends.
		skip := 0
	advance:
		for {
			skip++
			step, err := eng.Complete()
			if err != nil {
				return Result{}, err
			}
			switch step.Kind {
			case StepMoreNeeded:
				continue
			case StepNextExpected:
				expected = step.Expected
				break advance
			case StepExhausted:
				b.consume(skip)
				return Result{Outcome: OutcomeSuccess}, nil
			case StepFailure:
				l.debugf("engine failure: %s\n", step.Detail)
				return Result{Outcome: OutcomeFailure, Detail: step.Detail}, nil
			default:
				return Result{}, fmt.Errorf("engine returned unknown step kind %d", step.Kind)
			}
		}

		// Shrink, then refill if the streaming threshold says so.
		b.consume(skip)
		if b.low() && b.mayGrow {
			if _, err := b.grow(); err != nil {
				return Result{}, err
			}
		}
	}
}

func (l *Lexer) debugf(format string, args ...interface{}) {
	if l.debug == nil {
		return
	}
	fmt.Fprintf(l.debug, format, args...)
}
