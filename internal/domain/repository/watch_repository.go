package repository

import (
	"context"

	"healthboard/internal/domain/entity"

	"github.com/google/uuid"
)

// WatchSampleRepository keeps at most one watch sample per user.
type WatchSampleRepository interface {
	// Upsert replaces the user's stored sample in full. Fields absent from
	// the new sample become absent in the store; nothing is merged.
	Upsert(ctx context.Context, sample *entity.LatestWatchSample) error

	// FindByUser returns a detached copy of the user's sample, or nil when
	// the user has never synced. The nil case is not an error.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.LatestWatchSample, error)
}
