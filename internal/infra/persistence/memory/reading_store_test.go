package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"healthboard/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingStore_Insert_ConcurrentIDsAreUnique(t *testing.T) {
	store := NewReadingStore()
	ctx := context.Background()
	userID := uuid.New()

	const workers = 50

	var wg sync.WaitGroup
	ids := make(chan int64, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored, err := store.Insert(ctx, &entity.Reading{
				UserID:     userID,
				DeviceID:   "watch-1",
				DeviceType: "HeartRate",
				Value:      72,
				Unit:       "bpm",
			})
			assert.NoError(t, err)
			ids <- stored.ID
		}()
	}

	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}

func TestReadingStore_ListByUser_ReturnsDetachedCopies(t *testing.T) {
	clock := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	store := NewReadingStoreWithClock(func() time.Time { return clock })
	ctx := context.Background()
	userID := uuid.New()

	_, err := store.Insert(ctx, &entity.Reading{
		UserID:     userID,
		DeviceID:   "watch-1",
		DeviceType: "HeartRate",
		Value:      72,
		Unit:       "bpm",
	})
	require.NoError(t, err)

	first, err := store.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Mutating the returned slice must not leak into the store.
	first[0].Value = 999

	second, err := store.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, float64(72), second[0].Value)
}

func TestReadingStore_ListByUser_UnknownUserEmpty(t *testing.T) {
	store := NewReadingStore()

	readings, err := store.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, readings)
	assert.Empty(t, readings)
}

func TestReadingStore_DeleteByUser_LeavesOthersIntact(t *testing.T) {
	store := NewReadingStore()
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	for _, owner := range []uuid.UUID{alice, bob, alice} {
		_, err := store.Insert(ctx, &entity.Reading{
			UserID:     owner,
			DeviceID:   "watch-1",
			DeviceType: "HeartRate",
			Value:      72,
			Unit:       "bpm",
		})
		require.NoError(t, err)
	}

	require.NoError(t, store.DeleteByUser(ctx, alice))

	aliceReadings, err := store.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, aliceReadings)

	bobReadings, err := store.ListByUser(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, bobReadings, 1)
}
