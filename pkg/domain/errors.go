package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSection is returned when states, sigma or rules is absent (or states/sigma empty).
	ErrMissingSection = errors.New("missing section")
	// ErrArityMismatch is returned when a rule does not have the field count of its kind.
	ErrArityMismatch = errors.New("rule arity mismatch")
	// ErrUnknownReference is returned when a rule cites an undeclared state or symbol.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrMalformedEntryRule is returned when the first rule does not leave the Start state.
	ErrMalformedEntryRule = errors.New("first rule does not start from the start state")
	// ErrSymbolNotInAlphabet is returned when run input contains a symbol outside the alphabet.
	ErrSymbolNotInAlphabet = errors.New("symbol not in alphabet")
	// ErrStateRoles is returned when Start/Final tags are missing or repeated.
	ErrStateRoles = errors.New("invalid state roles")
	// ErrDuplicateState is returned when one state id is declared with different roles.
	ErrDuplicateState = errors.New("duplicate state")
	// ErrUnknownKind is returned for an unsupported machine kind.
	ErrUnknownKind = errors.New("unknown machine kind")
	// ErrMachineNotFound is returned by loaders when no description exists under a name.
	ErrMachineNotFound = errors.New("machine not found")
)

// Validation check names, reported in ValidationError.Check.
const (
	CheckStructure = "structure"
	CheckStates    = "states"
	CheckRules     = "rules"
	CheckEntryRule = "entry_rule"
	CheckInput     = "input"
	CheckKind      = "kind"
)

// ValidationError explains which check rejected a table and, for rule checks,
// which rule.
type ValidationError struct {
	Check  string
	Index  int // rule index, -1 when not about a rule
	Rule   Rule
	Detail string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s check failed at rule %d (%s): %s: %v", e.Check, e.Index+1, e.Rule, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s check failed: %s: %v", e.Check, e.Detail, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// InputError reports the first run input symbol outside the alphabet.
type InputError struct {
	Position int
	Symbol   string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %q at position %d", ErrSymbolNotInAlphabet, e.Symbol, e.Position+1)
}

func (e *InputError) Unwrap() error { return ErrSymbolNotInAlphabet }
