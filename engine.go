package repa

// Engine is the external parsing engine driven by a Lexer. It follows the
// alternative input model: any number of candidate terminals, of possibly
// different lengths, may be proposed at the current position before the
// position is completed. The engine, not the lexer, decides which
// alternatives are grammatically viable.
type Engine interface {
	// Expected returns the terminal names the engine can accept at the
	// current position, in the order the lexer should try them.
	Expected() []string

	// Alternative proposes a candidate token at the current position.
	// The value is whatever the configured store mode produced; length is
	// the number of positions the token spans.
	Alternative(terminal string, value interface{}, length int) error

	// Complete closes out the current position and advances the engine by
	// one position. The lexer calls it repeatedly until the engine asks
	// for new alternatives, is exhausted, or dead-ends.
	Complete() (Step, error)

	// Exhausted reports whether the engine can accept no further input.
	Exhausted() bool
}

type StepKind int

const (
	// StepMoreNeeded: nothing ends at the new position; complete again.
	StepMoreNeeded StepKind = iota
	// StepNextExpected: the engine wants alternatives for a new position;
	// the expected terminal set is in Step.Expected.
	StepNextExpected
	// StepExhausted: the grammar is fully satisfied and can accept no more.
	StepExhausted
	// StepFailure: no viable derivation can continue; detail in Step.Detail.
	StepFailure
)

// Step is the result of one Engine.Complete call. Kind selects which of
// the other fields are meaningful.
type Step struct {
	Kind     StepKind
	Expected []string
	Detail   string
}

func (k StepKind) String() string {
	switch k {
	case StepMoreNeeded:
		return "more-needed"
	case StepNextExpected:
		return "next-expected"
	case StepExhausted:
		return "exhausted"
	case StepFailure:
		return "failure"
	}
	return "unknown"
}
