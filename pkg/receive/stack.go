package receive

// Stack is a LIFO of Receive values; only the top one sees messages. The
// initial behavior passed to NewStack is the permanent floor: it can be
// replaced with Become but never popped. A Stack belongs to a single actor
// and must only be touched from that actor's own message-processing turn.
type Stack struct {
	stack []Receive
}

func NewStack(initial Receive) *Stack {
	return &Stack{stack: []Receive{initial}}
}

// Become replaces the current behavior. This is the default transition: it
// keeps the stack depth constant, so an actor that switches modes forever
// does not grow without bound.
func (s *Stack) Become(r Receive) {
	s.stack[len(s.stack)-1] = r
}

// BecomeStacked pushes r on top of the current behavior, which is restored
// by UnbecomeStacked. Intended for short-lived sub-protocols.
func (s *Stack) BecomeStacked(r Receive) {
	s.stack = append(s.stack, r)
}

// UnbecomeStacked reverts to the behavior active before the last
// BecomeStacked. The floor is never popped; at depth 1 this is a no-op.
func (s *Stack) UnbecomeStacked() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// Current returns the behavior that will handle the next message.
func (s *Stack) Current() Receive {
	return s.stack[len(s.stack)-1]
}

func (s *Stack) Depth() int {
	return len(s.stack)
}

// Dispatch runs one message through the current behavior. It returns false
// when the behavior is not defined at msg, leaving escalation to the caller.
// The top is captured before the action runs, so Become or UnbecomeStacked
// inside a handler only take effect for the next message.
func (s *Stack) Dispatch(msg any) bool {
	top := s.Current()
	if !top.IsDefinedAt(msg) {
		return false
	}
	top.Apply(msg)
	return true
}
