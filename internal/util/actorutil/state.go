package actorutil

import (
	"github.com/berfenger/beckon/pkg/receive"

	"github.com/asynkron/protoactor-go/actor"
)

// ActorState is one named mode of an actor. Receive builds the frozen match
// chain active while the actor is in this state; it is rebuilt on every
// transition, so states may close over mutable actor fields.
type ActorState interface {
	Name() string
	Receive() receive.Receive
}

// ActorWithStates is a mixin for protoactor actors whose behavior is a stack
// of receive chains. The stack starts on an empty floor, so a freshly
// constructed actor handles nothing until its first Become.
type ActorWithStates struct {
	Behavior *receive.Stack
}

func NewActorWithStates() ActorWithStates {
	return ActorWithStates{
		Behavior: receive.NewStack(receive.Empty),
	}
}

func (s *ActorWithStates) Become(state ActorState) {
	s.Behavior.Become(state.Receive())
}

func (s *ActorWithStates) BecomeStacked(state ActorState) {
	s.Behavior.BecomeStacked(state.Receive())
}

func (s *ActorWithStates) UnbecomeStacked() {
	s.Behavior.UnbecomeStacked()
}

// Dispatch runs the current protoactor message through the behavior stack.
// Returns false when no clause of the current state matches; the caller
// decides how to escalate, typically a debug log mirroring protoactor's
// unhandled path.
func (s *ActorWithStates) Dispatch(ctx actor.Context) bool {
	return s.Behavior.Dispatch(ctx.Message())
}
