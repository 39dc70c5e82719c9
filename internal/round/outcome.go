// Package round processes discovered units once per compilation round.
package round

import (
	"inflater-generator/internal/analyze"
)

//go:generate go tool stringer -type=State -trimprefix=State -output=state_string.go

// State is the result state of processing one unit in one round.
type State int

const (
	// StateComplete means the unit is fully processed and can be retired.
	StateComplete State = iota
	// StatePartial means the unit cannot be processed yet and is retried next round.
	StatePartial
	// StateError means processing failed; the unit stays pending.
	StateError
)

// defaultErrorMessage replaces an empty message on failed outcomes.
const defaultErrorMessage = "inflater generation failed"

// Outcome is the result of processing one unit.
type Outcome struct {
	State State
	// Symbol is the offending source element, set only for StateError.
	Symbol *analyze.Symbol
	// Message describes the failure, set only for StateError.
	Message string
}

// Complete returns a StateComplete outcome.
func Complete() Outcome {
	return Outcome{State: StateComplete}
}

// Partial returns a StatePartial outcome.
func Partial() Outcome {
	return Outcome{State: StatePartial}
}

// Failed returns a StateError outcome. An error always carries a message.
func Failed(sym *analyze.Symbol, message string) Outcome {
	if message == "" {
		message = defaultErrorMessage
	}

	return Outcome{State: StateError, Symbol: sym, Message: message}
}
