package repa

import (
	"fmt"
	"regexp"
)

// StoreMode selects the shape of the value submitted to the engine for a
// matched token.
type StoreMode int

const (
	// StoreDefault defers to the table-wide default mode.
	StoreDefault StoreMode = iota
	// StoreStruct submits a TokenValue{Terminal, Value}.
	StoreStruct
	// StoreTuple submits a [2]string{terminal, value}.
	StoreTuple
	// StoreValue submits the matched text alone.
	StoreValue
	// StoreDiscard submits the Discarded sentinel; later consumers should
	// ignore the token's contribution.
	StoreDiscard
	// StoreCustom invokes the token's StoreFunc.
	StoreCustom
)

// TokenValue is the shape produced by StoreStruct.
type TokenValue struct {
	Terminal string
	Value    string
}

type discarded struct{}

func (discarded) String() string { return "<discarded>" }

// Discarded is the sentinel submitted for StoreDiscard tokens.
var Discarded interface{} = discarded{}

// StoreFunc maps a matched token to the value submitted to the engine.
// Returning ok == false means "produce nothing": the alternative is still
// submitted (its length matters for advancing position) with a nil value.
type StoreFunc func(terminal, text string) (value interface{}, ok bool)

// TokenDef defines one terminal's matcher. Exactly one of Char, Lit and
// Pattern must be set. Store, when not StoreDefault, overrides the
// table-wide default mode; setting StoreFunc implies StoreCustom.
type TokenDef struct {
	Char    byte
	Lit     string
	Pattern *regexp.Regexp

	Store     StoreMode
	StoreFunc StoreFunc
}

type tokenKind int

const (
	kindSingleChar tokenKind = iota
	kindLiteral
	kindPattern
)

// tokenSpec is the normalized form of a TokenDef. The store mode is
// resolved into encode once at compile time and never re-dispatched.
type tokenSpec struct {
	name    string
	kind    tokenKind
	char    byte
	lit     string
	pattern *regexp.Regexp
	encode  StoreFunc
}

type tokenTable struct {
	specs map[string]*tokenSpec
}

// compileTokens normalizes raw token definitions into a lookup table keyed
// by terminal name. A Lit of length one is classified as a single-char
// token.
func compileTokens(defs map[string]TokenDef, defaultStore StoreMode, defaultFn StoreFunc) (*tokenTable, error) {
	if defaultStore == StoreDefault {
		defaultStore = StoreStruct
	}
	if defaultStore < StoreStruct || defaultStore > StoreCustom {
		return nil, fmt.Errorf("%w: default store mode %d", ErrInvalidStoreMode, defaultStore)
	}
	if defaultStore == StoreCustom && defaultFn == nil {
		return nil, fmt.Errorf("%w: default store mode is custom but no store func given", ErrInvalidStoreMode)
	}
	tt := &tokenTable{specs: make(map[string]*tokenSpec, len(defs))}
	for name, def := range defs {
		ts := &tokenSpec{name: name}
		switch {
		case def.Pattern != nil:
			if def.Char != 0 || def.Lit != "" {
				return nil, fmt.Errorf("token %q: more than one of Char, Lit, Pattern set", name)
			}
			ts.kind = kindPattern
			// Matches must start at the cursor; recompile anchored so the
			// matcher never has to scan past offset zero.
			anchored, err := regexp.Compile(`\A(?:` + def.Pattern.String() + `)`)
			if err != nil {
				return nil, fmt.Errorf("token %q: %v", name, err)
			}
			ts.pattern = anchored
		case def.Char != 0:
			if def.Lit != "" {
				return nil, fmt.Errorf("token %q: more than one of Char, Lit, Pattern set", name)
			}
			ts.kind = kindSingleChar
			ts.char = def.Char
		case len(def.Lit) == 1:
			ts.kind = kindSingleChar
			ts.char = def.Lit[0]
		case def.Lit != "":
			ts.kind = kindLiteral
			ts.lit = def.Lit
		default:
			return nil, fmt.Errorf("token %q: no matcher set", name)
		}
		mode, fn := def.Store, def.StoreFunc
		if fn != nil {
			mode = StoreCustom
		} else if mode == StoreDefault {
			mode, fn = defaultStore, defaultFn
		}
		enc, err := resolveStore(name, mode, fn)
		if err != nil {
			return nil, err
		}
		ts.encode = enc
		tt.specs[name] = ts
	}
	return tt, nil
}

func resolveStore(name string, mode StoreMode, fn StoreFunc) (StoreFunc, error) {
	switch mode {
	case StoreStruct:
		return func(terminal, text string) (interface{}, bool) {
			return TokenValue{Terminal: terminal, Value: text}, true
		}, nil
	case StoreTuple:
		return func(terminal, text string) (interface{}, bool) {
			return [2]string{terminal, text}, true
		}, nil
	case StoreValue:
		return func(terminal, text string) (interface{}, bool) {
			return text, true
		}, nil
	case StoreDiscard:
		return func(terminal, text string) (interface{}, bool) {
			return Discarded, true
		}, nil
	case StoreCustom:
		if fn == nil {
			return nil, fmt.Errorf("%w: token %q: custom store mode without store func", ErrInvalidStoreMode, name)
		}
		return fn, nil
	}
	return nil, fmt.Errorf("%w: token %q: store mode %d", ErrInvalidStoreMode, name, mode)
}

func (tt *tokenTable) get(name string) (*tokenSpec, bool) {
	ts, has := tt.specs[name]
	return ts, has
}
