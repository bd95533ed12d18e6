package receive

import (
	"fmt"
)

// Receive is a frozen, ordered chain of match clauses. Clauses are tried in
// insertion order and the first one whose test accepts the message wins.
// A Receive is immutable and can be shared freely between behaviors.
type Receive struct {
	clauses []clause
}

type clause struct {
	test   func(msg any) bool
	action func(msg any)
}

// Empty matches nothing. Useful as a stack floor or a safe default.
var Empty = Receive{}

// IsDefinedAt reports whether some clause matches msg. Guards are evaluated
// in insertion order and evaluation stops at the first success. A panicking
// guard aborts matching and propagates.
func (r Receive) IsDefinedAt(msg any) bool {
	for _, c := range r.clauses {
		if c.test(msg) {
			return true
		}
	}
	return false
}

// Apply runs the first matching clause's action. Calling Apply with a message
// for which IsDefinedAt is false is a programming error and panics with
// *UnmatchedError.
func (r Receive) Apply(msg any) {
	for _, c := range r.clauses {
		if c.test(msg) {
			c.action(msg)
			return
		}
	}
	panic(&UnmatchedError{Message: msg})
}

// OrElse returns a Receive defined wherever r or other is defined. On
// overlap r wins. Neither operand is modified.
func (r Receive) OrElse(other Receive) Receive {
	merged := make([]clause, 0, len(r.clauses)+len(other.clauses))
	merged = append(merged, r.clauses...)
	merged = append(merged, other.clauses...)
	return Receive{clauses: merged}
}

// UnmatchedError reports an Apply on a message no clause matches.
type UnmatchedError struct {
	Message any
}

func (e *UnmatchedError) Error() string {
	return fmt.Sprintf("receive: no matching clause for message of type %T", e.Message)
}
