package service

import "testing"

func TestStateStream_SuppressesUnknownAndDuplicates(t *testing.T) {
	s := newStateStream()

	var early []bool
	s.Subscribe(func(v bool) { early = append(early, v) })
	if len(early) != 0 {
		t.Fatalf("unknown state must not be emitted, got %v", early)
	}

	s.publish(false)
	s.publish(false)
	s.publish(true)
	s.publish(true)
	s.publish(false)

	want := []bool{false, true, false}
	if len(early) != len(want) {
		t.Fatalf("got %v, want %v", early, want)
	}
	for i := range want {
		if early[i] != want[i] {
			t.Fatalf("got %v, want %v", early, want)
		}
	}

	var late []bool
	s.Subscribe(func(v bool) { late = append(late, v) })
	if len(late) != 1 || late[0] != false {
		t.Errorf("late subscriber should get the current state, got %v", late)
	}
}

func TestStateStream_Unsubscribe(t *testing.T) {
	s := newStateStream()
	calls := 0
	unsubscribe := s.Subscribe(func(bool) { calls++ })

	s.publish(true)
	unsubscribe()
	s.publish(false)

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}
