package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/revline/review-flow/internal/review"
)

type storedResult struct {
	result   review.Result
	storedAt time.Time
}

// resultStore maps correlation tokens to finished results. Entries are
// write-once and removed either on first read or by the TTL sweep.
type resultStore struct {
	mu      sync.Mutex
	results map[uuid.UUID]storedResult
}

func newResultStore() *resultStore {
	return &resultStore{
		results: make(map[uuid.UUID]storedResult),
	}
}

func (s *resultStore) put(token uuid.UUID, res review.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[token] = storedResult{result: res, storedAt: time.Now()}
}

// take removes and returns the result for token, if present.
func (s *resultStore) take(token uuid.UUID) (review.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.results[token]
	if !ok {
		return review.Result{}, false
	}
	delete(s.results, token)
	return stored.result, true
}

// sweep drops results that were never collected within ttl and returns
// how many were evicted.
func (s *resultStore) sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for token, stored := range s.results {
		if stored.storedAt.Before(cutoff) {
			delete(s.results, token)
			evicted++
		}
	}
	return evicted
}

func (s *resultStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}
