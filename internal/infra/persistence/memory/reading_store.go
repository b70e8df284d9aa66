// Package memory implements the process-lifetime in-memory stores. All data
// is lost on restart; that is the designed behavior, not a limitation to fix.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthboard/internal/domain/entity"
	"healthboard/internal/domain/repository"

	"github.com/google/uuid"
)

// ReadingStore holds every user's readings behind a single coarse mutex.
// The workload is tiny and bursty; per-user locking buys nothing here.
type ReadingStore struct {
	mu        sync.Mutex
	readings  []entity.Reading
	idCounter int64
	now       func() time.Time
}

// NewReadingStore creates an empty reading store.
func NewReadingStore() *ReadingStore {
	return &ReadingStore{now: time.Now}
}

// NewReadingStoreWithClock creates a reading store with an injected clock.
func NewReadingStoreWithClock(now func() time.Time) *ReadingStore {
	return &ReadingStore{now: now}
}

var _ repository.ReadingRepository = (*ReadingStore)(nil)

// Insert assigns the next process-wide id, stamps the insertion time and
// appends the reading. The id counter and the slice mutate under one lock, so
// concurrent inserts can neither reuse an id nor interleave a partial append.
func (s *ReadingStore) Insert(ctx context.Context, reading *entity.Reading) (*entity.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.idCounter++

	stored := *reading
	stored.ID = s.idCounter
	stored.Timestamp = s.now()
	s.readings = append(s.readings, stored)

	// Return a copy so the caller cannot mutate stored state.
	result := stored

	return &result, nil
}

// ListByUser returns detached copies of the user's readings ordered by
// timestamp descending. Ids are strictly increasing, so an id-descending
// tiebreak puts the later insertion first on equal timestamps.
func (s *ReadingStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]entity.Reading, 0)
	for _, r := range s.readings {
		if r.UserID == userID {
			result = append(result, r)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].Timestamp.After(result[j].Timestamp)
		}

		return result[i].ID > result[j].ID
	})

	return result, nil
}

// DeleteByUser removes every reading owned by the user and nothing else.
func (s *ReadingStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.readings[:0]
	for _, r := range s.readings {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	s.readings = kept

	return nil
}
