package memory

import (
	"context"
	"sync"

	"healthboard/internal/domain/entity"
	"healthboard/internal/domain/repository"

	"github.com/google/uuid"
)

// WatchSampleStore keeps the single most-recent watch sample per user.
type WatchSampleStore struct {
	mu      sync.Mutex
	samples map[uuid.UUID]entity.LatestWatchSample
}

// NewWatchSampleStore creates an empty watch sample store.
func NewWatchSampleStore() *WatchSampleStore {
	return &WatchSampleStore{
		samples: make(map[uuid.UUID]entity.LatestWatchSample),
	}
}

var _ repository.WatchSampleRepository = (*WatchSampleStore)(nil)

// Upsert replaces the user's stored sample in full. A sample carrying only a
// heart rate erases a previously stored temperature; that replace-not-merge
// contract is observable by clients and must hold.
func (s *WatchSampleStore) Upsert(ctx context.Context, sample *entity.LatestWatchSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples[sample.UserID] = *sample

	return nil
}

// FindByUser returns a detached copy of the user's sample, or nil when the
// user has never synced.
func (s *WatchSampleStore) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.LatestWatchSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sample, ok := s.samples[userID]
	if !ok {
		return nil, nil
	}

	result := sample

	return &result, nil
}
