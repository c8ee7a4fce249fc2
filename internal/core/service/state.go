package service

import "sync"

// StateStream publishes the authenticated flag. Nothing is emitted until the
// first known state is published, consecutive duplicates are dropped, and a
// new subscriber immediately receives the current known state.
type StateStream struct {
	mu     sync.Mutex
	known  bool
	value  bool
	subs   map[int]func(bool)
	nextID int
	closed bool
}

func newStateStream() *StateStream {
	return &StateStream{subs: make(map[int]func(bool))}
}

// Subscribe registers fn and returns a function that removes it.
func (s *StateStream) Subscribe(fn func(bool)) (unsubscribe func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	known, value := s.known, s.value
	s.mu.Unlock()

	if known {
		fn(value)
	}
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Current returns the last published value and whether one exists yet.
func (s *StateStream) Current() (value, known bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.known
}

// publish records v and notifies subscribers when it differs from the last
// known value. It reports whether a transition happened.
func (s *StateStream) publish(v bool) bool {
	s.mu.Lock()
	if s.closed || (s.known && s.value == v) {
		s.mu.Unlock()
		return false
	}
	s.known = true
	s.value = v
	fns := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
	return true
}

func (s *StateStream) close() {
	s.mu.Lock()
	s.closed = true
	s.subs = make(map[int]func(bool))
	s.mu.Unlock()
}
