package application

import "sync"

// senderLocks is a keyed mutex. Entries are dropped when the last holder
// unlocks, so the map only contains senders with messages in flight.
type senderLocks struct {
	mu sync.Mutex
	m  map[int64]*senderLock
}

type senderLock struct {
	mu   sync.Mutex
	refs int
}

func newSenderLocks() *senderLocks {
	return &senderLocks{m: make(map[int64]*senderLock)}
}

// Lock blocks until id is free and returns the matching unlock.
func (s *senderLocks) Lock(id int64) func() {
	s.mu.Lock()
	l, ok := s.m[id]
	if !ok {
		l = &senderLock{}
		s.m[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.m, id)
		}
		s.mu.Unlock()
	}
}

func (s *senderLocks) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
