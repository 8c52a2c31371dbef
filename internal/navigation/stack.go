package navigation

import "sync"

// Stack is an in-memory Router keeping a history of visited routes.
type Stack struct {
	mu      sync.Mutex
	history []Route
}

// NewStack starts a history at root.
func NewStack(root Route) *Stack {
	return &Stack{history: []Route{root}}
}

func (s *Stack) Push(route Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, route)
}

// Replace swaps the current route, so Back skips it.
func (s *Stack) Replace(route Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		s.history = []Route{route}
		return
	}
	s.history[len(s.history)-1] = route
}

// Back pops the current route. The root is never popped.
func (s *Stack) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) > 1 {
		s.history = s.history[:len(s.history)-1]
	}
}

// Current returns the route on top of the history.
func (s *Stack) Current() Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return ""
	}
	return s.history[len(s.history)-1]
}

// History returns a copy of the visited routes, oldest first.
func (s *Stack) History() []Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Route, len(s.history))
	copy(out, s.history)
	return out
}
