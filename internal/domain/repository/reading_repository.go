// Package repository defines the persistence interfaces consumed by the
// use case layer. The concrete implementations live under internal/infra.
package repository

import (
	"context"

	"healthboard/internal/domain/entity"

	"github.com/google/uuid"
)

// ReadingRepository holds every user's readings for the lifetime of the
// process. Implementations must serialize mutations: concurrent inserts may
// not corrupt the id counter, and readers must observe either the pre- or
// post-write state of a racing insert.
type ReadingRepository interface {
	// Insert assigns the next process-wide id, stamps the insertion time and
	// stores the reading. The stored copy is returned.
	Insert(ctx context.Context, reading *entity.Reading) (*entity.Reading, error)

	// ListByUser returns detached copies of the user's readings ordered by
	// timestamp descending, with the later insertion first on equal
	// timestamps. An unknown user yields an empty slice, never an error.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Reading, error)

	// DeleteByUser removes every reading owned by the user and nothing else.
	// Deleting an empty set is a no-op.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
