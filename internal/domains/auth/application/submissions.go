package application

import "sync"

// submissions hands out increasing tokens so that only the latest login
// attempt of a client may write the session. Tokens come from one counter and
// never repeat, so a client's entry can be dropped once its latest attempt ends.
type submissions struct {
	mu     sync.Mutex
	next   uint64
	latest map[string]uint64
}

func newSubmissions() *submissions {
	return &submissions{latest: map[string]uint64{}}
}

func (s *submissions) begin(clientID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.latest[clientID] = s.next
	return s.next
}

// finish reports whether token is still the client's latest attempt and
// forgets the client when it is.
func (s *submissions) finish(clientID string, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest[clientID] != token {
		return false
	}
	delete(s.latest, clientID)
	return true
}

func (s *submissions) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.latest)
}
