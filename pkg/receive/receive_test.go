package receive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testMsg interface {
	isTestMsg()
}

type msg1 struct{}

func (msg1) isTestMsg() {}

type msg2 struct {
	value string
}

func (msg2) isTestMsg() {}

func TestEmptyReceiveMatchesNothing(t *testing.T) {
	rcv := NewBuilder().Build()

	assert.False(t, rcv.IsDefinedAt("hello"))
	assert.False(t, rcv.IsDefinedAt(42))
	assert.False(t, rcv.IsDefinedAt(msg1{}))

	assert.False(t, Empty.IsDefinedAt("hello"))
	assert.False(t, Empty.IsDefinedAt(42))
}

func TestMatchByType(t *testing.T) {
	var result string
	rcv := Match(NewBuilder(), func(msg1) {
		result = "match msg1"
	}).Build()

	assert.True(t, rcv.IsDefinedAt(msg1{}))
	rcv.Apply(msg1{})
	assert.Equal(t, "match msg1", result)

	assert.False(t, rcv.IsDefinedAt(msg2{value: "foo"}))
	assert.False(t, rcv.IsDefinedAt("hello"))
	assert.False(t, rcv.IsDefinedAt(42))
}

func TestMatchByInterface(t *testing.T) {
	var result string
	rcv := Match(NewBuilder(), func(testMsg) {
		result = "match testMsg"
	}).Build()

	assert.True(t, rcv.IsDefinedAt(msg1{}))
	rcv.Apply(msg1{})
	assert.Equal(t, "match testMsg", result)

	assert.True(t, rcv.IsDefinedAt(msg2{value: "foo"}))
	rcv.Apply(msg2{value: "foo"})
	assert.Equal(t, "match testMsg", result)

	assert.False(t, rcv.IsDefinedAt("hello"))
	assert.False(t, rcv.IsDefinedAt(42))
}

func TestMatchWithGuard(t *testing.T) {
	var result string
	b := Match(NewBuilder(), func(msg1) {
		result = "match msg1"
	})
	b = MatchWhen(b, func(m msg2) bool {
		return m.value == "foo"
	}, func(msg2) {
		result = "match msg2"
	})
	rcv := b.Build()

	assert.True(t, rcv.IsDefinedAt(msg1{}))
	rcv.Apply(msg1{})
	assert.Equal(t, "match msg1", result)

	assert.True(t, rcv.IsDefinedAt(msg2{value: "foo"}))
	rcv.Apply(msg2{value: "foo"})
	assert.Equal(t, "match msg2", result)

	assert.False(t, rcv.IsDefinedAt(msg2{value: "bar"}))
	assert.False(t, rcv.IsDefinedAt("hello"))
	assert.False(t, rcv.IsDefinedAt(42))
}

func TestInsertionOrderBeatsSpecificity(t *testing.T) {
	// interface clause first, concrete clause second: the broad clause wins
	var result string
	b := Match(NewBuilder(), func(testMsg) {
		result = "broad"
	})
	b = Match(b, func(msg2) {
		result = "narrow"
	})
	rcv := b.Build()

	rcv.Apply(msg2{value: "foo"})
	assert.Equal(t, "broad", result)

	// same for two guarded clauses on the same type
	result = ""
	b = MatchWhen(NewBuilder(), func(msg2) bool {
		return true
	}, func(msg2) {
		result = "first"
	})
	b = MatchWhen(b, func(m msg2) bool {
		return m.value == "foo"
	}, func(msg2) {
		result = "second"
	})
	rcv = b.Build()

	rcv.Apply(msg2{value: "foo"})
	assert.Equal(t, "first", result)
}

func TestMatchEquals(t *testing.T) {
	var result string
	rcv := NewBuilder().
		MatchEquals(msg2{value: "foo"}, func(any) {
			result = "match msg2"
		}).
		MatchEquals("foo", func(any) {
			result = "match foo"
		}).
		MatchEquals(17, func(any) {
			result = "match 17"
		}).
		Build()

	// separately constructed but structurally equal value
	assert.True(t, rcv.IsDefinedAt(msg2{value: "foo"}))
	rcv.Apply(msg2{value: "foo"})
	assert.Equal(t, "match msg2", result)

	assert.True(t, rcv.IsDefinedAt("foo"))
	rcv.Apply("foo")
	assert.Equal(t, "match foo", result)

	assert.True(t, rcv.IsDefinedAt(17))
	rcv.Apply(17)
	assert.Equal(t, "match 17", result)

	assert.False(t, rcv.IsDefinedAt(msg2{value: "bar"}))
	assert.False(t, rcv.IsDefinedAt("hello"))
	assert.False(t, rcv.IsDefinedAt(42))
}

func TestMatchAny(t *testing.T) {
	var result string
	rcv := Match(NewBuilder(), func(msg1) {
		result = "match msg1"
	}).MatchAny(func(any) {
		result = "match any"
	}).Build()

	rcv.Apply(msg1{})
	assert.Equal(t, "match msg1", result)

	rcv.Apply(msg2{value: "foo"})
	assert.Equal(t, "match any", result)

	assert.True(t, rcv.IsDefinedAt("hello"))
	rcv.Apply("hello")
	assert.Equal(t, "match any", result)

	assert.True(t, rcv.IsDefinedAt(42))
	rcv.Apply(42)
	assert.Equal(t, "match any", result)
}

func TestClausesAfterMatchAnyArePermitted(t *testing.T) {
	// unreachable but allowed; the earlier clause keeps winning
	var result string
	rcv := NewBuilder().
		MatchAny(func(any) {
			result = "any"
		}).
		MatchEquals("foo", func(any) {
			result = "foo"
		}).
		Build()

	rcv.Apply("foo")
	assert.Equal(t, "any", result)
}

func TestOrElse(t *testing.T) {
	var result string
	a := Match(NewBuilder(), func(msg1) {
		result = "from a"
	}).Build()
	b := Match(NewBuilder(), func(msg2) {
		result = "from b"
	}).Build()

	combined := a.OrElse(b)

	assert.True(t, combined.IsDefinedAt(msg1{}))
	combined.Apply(msg1{})
	assert.Equal(t, "from a", result)

	assert.True(t, combined.IsDefinedAt(msg2{value: "x"}))
	combined.Apply(msg2{value: "x"})
	assert.Equal(t, "from b", result)

	assert.False(t, combined.IsDefinedAt("hello"))
}

func TestOrElseFirstWinsOnOverlap(t *testing.T) {
	var result string
	a := Match(NewBuilder(), func(msg1) {
		result = "from a"
	}).Build()
	b := Match(NewBuilder(), func(msg1) {
		result = "from b"
	}).Build()

	a.OrElse(b).Apply(msg1{})
	assert.Equal(t, "from a", result)

	b.OrElse(a).Apply(msg1{})
	assert.Equal(t, "from b", result)
}

func TestOrElseDoesNotMutateOperands(t *testing.T) {
	a := Match(NewBuilder(), func(msg1) {}).Build()
	b := Match(NewBuilder(), func(msg2) {}).Build()

	_ = a.OrElse(b)
	_ = b.OrElse(a)

	assert.False(t, a.IsDefinedAt(msg2{value: "x"}))
	assert.False(t, b.IsDefinedAt(msg1{}))
}

func TestOrElseAssociative(t *testing.T) {
	var result string
	a := Match(NewBuilder(), func(msg1) {
		result = "a"
	}).Build()
	b := Match(NewBuilder(), func(msg2) {
		result = "b"
	}).Build()
	c := NewBuilder().MatchEquals(17, func(any) {
		result = "c"
	}).Build()

	left := a.OrElse(b).OrElse(c)
	right := a.OrElse(b.OrElse(c))

	for _, msg := range []any{msg1{}, msg2{value: "x"}, 17} {
		left.Apply(msg)
		lr := result
		right.Apply(msg)
		assert.Equal(t, lr, result)
	}
	assert.False(t, left.IsDefinedAt("nope"))
	assert.False(t, right.IsDefinedAt("nope"))
}

func TestApplyUnmatchedPanics(t *testing.T) {
	rcv := Match(NewBuilder(), func(msg1) {}).Build()

	defer func() {
		r := recover()
		assert.NotNil(t, r)
		err, ok := r.(*UnmatchedError)
		assert.True(t, ok)
		assert.Equal(t, "hello", err.Message)
	}()
	rcv.Apply("hello")
}

func TestBuilderSpentAfterBuild(t *testing.T) {
	b := Match(NewBuilder(), func(msg1) {})
	built := b.Build()
	assert.True(t, built.IsDefinedAt(msg1{}))

	assert.Panics(t, func() {
		b.MatchAny(func(any) {})
	})
	assert.Panics(t, func() {
		Match(b, func(msg2) {})
	})
}

func TestGuardPanicPropagates(t *testing.T) {
	rcv := MatchWhen(NewBuilder(), func(msg2) bool {
		panic("guard blew up")
	}, func(msg2) {}).Build()

	assert.PanicsWithValue(t, "guard blew up", func() {
		rcv.IsDefinedAt(msg2{value: "x"})
	})
	assert.PanicsWithValue(t, "guard blew up", func() {
		rcv.Apply(msg2{value: "x"})
	})
}

func TestGuardShortCircuit(t *testing.T) {
	evals := 0
	b := Match(NewBuilder(), func(msg1) {})
	b = MatchWhen(b, func(msg1) bool {
		evals++
		return true
	}, func(msg1) {})
	rcv := b.Build()

	// first clause wins, second guard never runs
	assert.True(t, rcv.IsDefinedAt(msg1{}))
	rcv.Apply(msg1{})
	assert.Equal(t, 0, evals)
}
