// # internal/engine/tuplecheck/policy.go
package tuplecheck

import (
	"fmt"
	"strings"
)

const (
	// RuleID is the code every diagnostic message starts with.
	RuleID = "STC001"
	// CheckerName identifies the rule to hosts that aggregate several checkers.
	CheckerName = "singletuple"
	// DefaultMessage is the text reported for each confirmed violation.
	DefaultMessage = RuleID + " single-item tuple missing trailing comma; did you mean `(x,)`?"
)

// Mode selects which candidate sites the rule inspects.
type Mode string

const (
	// ModeBroad inspects leaf-like assignment values, membership operands of
	// any non-compound kind, and double-wrapped call arguments.
	ModeBroad Mode = "broad"
	// ModeStrict only inspects string literals in assignment and membership
	// positions and skips call arguments.
	ModeStrict Mode = "strict"
)

// ParseMode accepts the config spelling of a mode; empty means broad.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeBroad:
		return ModeBroad, nil
	case ModeStrict:
		return ModeStrict, nil
	}
	return "", fmt.Errorf("unknown mode %q (expected %q or %q)", raw, ModeBroad, ModeStrict)
}

// Policy is the immutable configuration of one rule instance.
type Policy struct {
	RuleID  string
	Message string
	Mode    Mode
}

func DefaultPolicy() Policy {
	return Policy{RuleID: RuleID, Message: DefaultMessage, Mode: ModeBroad}
}

// WithMode returns a copy of p using mode.
func (p Policy) WithMode(mode Mode) Policy {
	p.Mode = mode
	return p
}

func (p Policy) strict() bool {
	return p.Mode == ModeStrict
}
