package pipeline

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/revline/review-flow/internal/review"
)

func TestStorePutTake(t *testing.T) {
	s := newResultStore()
	token := uuid.New()

	if _, ok := s.take(token); ok {
		t.Fatal("take() on empty store should miss")
	}

	s.put(token, review.Result{Completed: true})

	res, ok := s.take(token)
	if !ok {
		t.Fatal("take() should return stored result")
	}
	if !res.Completed {
		t.Error("stored result lost its fields")
	}

	// First read removes the entry.
	if _, ok := s.take(token); ok {
		t.Error("second take() should miss")
	}
}

func TestStoreSweep(t *testing.T) {
	s := newResultStore()

	stale := uuid.New()
	s.put(stale, review.Result{Completed: true})

	// Backdate the entry past the TTL.
	s.mu.Lock()
	entry := s.results[stale]
	entry.storedAt = time.Now().Add(-time.Hour)
	s.results[stale] = entry
	s.mu.Unlock()

	fresh := uuid.New()
	s.put(fresh, review.Result{Completed: true})

	if evicted := s.sweep(30 * time.Minute); evicted != 1 {
		t.Fatalf("sweep() evicted %d, want 1", evicted)
	}

	if _, ok := s.take(stale); ok {
		t.Error("stale entry should be gone")
	}
	if _, ok := s.take(fresh); !ok {
		t.Error("fresh entry should survive the sweep")
	}
}

func TestStoreLen(t *testing.T) {
	s := newResultStore()
	if s.len() != 0 {
		t.Fatalf("len() = %d, want 0", s.len())
	}

	s.put(uuid.New(), review.Result{})
	s.put(uuid.New(), review.Result{})

	if s.len() != 2 {
		t.Errorf("len() = %d, want 2", s.len())
	}
}
