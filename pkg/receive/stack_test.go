package receive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ping struct{}

type pong struct{}

func constant(out *string, value string) Receive {
	return NewBuilder().MatchAny(func(any) {
		*out = value
	}).Build()
}

func TestBecomeReplacesTop(t *testing.T) {
	var result string
	initial := Match(NewBuilder(), func(ping) {
		result = "ping"
	}).Build()

	s := NewStack(initial)
	assert.True(t, s.Dispatch(ping{}))
	assert.Equal(t, "ping", result)

	s.Become(Match(NewBuilder(), func(pong) {
		result = "pong"
	}).Build())

	// the replaced behavior no longer matches what it used to
	assert.False(t, s.Dispatch(ping{}))
	assert.True(t, s.Dispatch(pong{}))
	assert.Equal(t, "pong", result)
	assert.Equal(t, 1, s.Depth())
}

func TestBecomeStackedRoundTrip(t *testing.T) {
	var result string
	s := NewStack(constant(&result, "base"))

	s.BecomeStacked(constant(&result, "sub"))
	assert.Equal(t, 2, s.Depth())
	s.Dispatch(ping{})
	assert.Equal(t, "sub", result)

	s.UnbecomeStacked()
	assert.Equal(t, 1, s.Depth())
	s.Dispatch(ping{})
	assert.Equal(t, "base", result)
}

func TestUnbecomeKeepsFloor(t *testing.T) {
	var result string
	s := NewStack(constant(&result, "floor"))

	s.UnbecomeStacked()
	s.UnbecomeStacked()
	assert.Equal(t, 1, s.Depth())
	assert.True(t, s.Dispatch(ping{}))
	assert.Equal(t, "floor", result)
}

func TestDispatchUnhandled(t *testing.T) {
	handled := false
	s := NewStack(Match(NewBuilder(), func(ping) {
		handled = true
	}).Build())

	assert.False(t, s.Dispatch(pong{}))
	assert.False(t, handled)
	assert.True(t, s.Dispatch(ping{}))
	assert.True(t, handled)
}

func TestEmptyFloorHandlesNothing(t *testing.T) {
	s := NewStack(Empty)
	assert.False(t, s.Dispatch(ping{}))
	assert.False(t, s.Dispatch("anything"))
}

func TestBecomeTakesEffectNextMessage(t *testing.T) {
	var trace []string
	s := NewStack(Empty)

	var second Receive
	first := NewBuilder().MatchAny(func(any) {
		trace = append(trace, "first")
		// switching mid-handler must not re-route the current message
		s.Become(second)
	}).Build()
	second = NewBuilder().MatchAny(func(any) {
		trace = append(trace, "second")
	}).Build()

	s.Become(first)
	s.Dispatch(ping{})
	s.Dispatch(ping{})
	assert.Equal(t, []string{"first", "second"}, trace)
}

func TestUnbecomeInsideHandler(t *testing.T) {
	var trace []string
	s := NewStack(NewBuilder().MatchAny(func(any) {
		trace = append(trace, "base")
	}).Build())

	s.BecomeStacked(NewBuilder().MatchAny(func(any) {
		trace = append(trace, "sub")
		s.UnbecomeStacked()
	}).Build())

	s.Dispatch(ping{})
	s.Dispatch(ping{})
	assert.Equal(t, []string{"sub", "base"}, trace)
	assert.Equal(t, 1, s.Depth())
}
