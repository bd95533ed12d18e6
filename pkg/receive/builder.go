package receive

import (
	"reflect"
)

// Builder accumulates match clauses and freezes them into a Receive. Clause
// order is priority order: a clause added first shadows any later clause that
// would also match. Adding a clause after Build panics.
//
// MatchAny swallows everything, so clauses added after it are unreachable.
// The builder does not reject that; keeping them reachable is the caller's
// responsibility.
type Builder struct {
	clauses []clause
	built   bool
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Match appends a clause matching any message whose dynamic type is
// assignable to T. T may be an interface type, in which case every
// implementation matches.
func Match[T any](b *Builder, action func(T)) *Builder {
	return b.add(clause{
		test: func(msg any) bool {
			_, ok := msg.(T)
			return ok
		},
		action: func(msg any) {
			action(msg.(T))
		},
	})
}

// MatchWhen appends a typed clause narrowed by a guard. The guard only runs
// for messages assignable to T. A panicking guard aborts matching for the
// current message and propagates to the caller.
func MatchWhen[T any](b *Builder, guard func(T) bool, action func(T)) *Builder {
	return b.add(clause{
		test: func(msg any) bool {
			m, ok := msg.(T)
			return ok && guard(m)
		},
		action: func(msg any) {
			action(msg.(T))
		},
	})
}

// MatchEquals appends a clause matching messages structurally equal to value.
// Equality is value equality (reflect.DeepEqual), not identity.
func (b *Builder) MatchEquals(value any, action func(msg any)) *Builder {
	return b.add(clause{
		test: func(msg any) bool {
			return reflect.DeepEqual(msg, value)
		},
		action: action,
	})
}

// MatchAny appends a clause matching every message.
func (b *Builder) MatchAny(action func(msg any)) *Builder {
	return b.add(clause{
		test: func(any) bool {
			return true
		},
		action: action,
	})
}

// Build freezes the accumulated clauses into an immutable Receive. The
// builder is spent afterwards.
func (b *Builder) Build() Receive {
	b.built = true
	frozen := make([]clause, len(b.clauses))
	copy(frozen, b.clauses)
	return Receive{clauses: frozen}
}

func (b *Builder) add(c clause) *Builder {
	if b.built {
		panic("receive: clause added to a builder after Build")
	}
	b.clauses = append(b.clauses, c)
	return b
}
