package memory

import (
	"context"
	"testing"
	"time"

	"healthboard/internal/domain/entity"
	domainerrors "healthboard/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(email string) *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
}

func TestUserStore_Create_DuplicateEmailCaseInsensitive(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestUser("alice@example.com")))

	err := store.Create(ctx, newTestUser("ALICE@Example.COM"))
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserStore_FindByEmail_CaseInsensitive(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	user := newTestUser("alice@example.com")
	require.NoError(t, store.Create(ctx, user))

	found, err := store.FindByEmail(ctx, "Alice@Example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	missing, err := store.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserStore_FindByID(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	user := newTestUser("alice@example.com")
	require.NoError(t, store.Create(ctx, user))

	found, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.Email, found.Email)

	// The copy is detached from the stored record.
	found.Name = "Changed"
	again, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", again.Name)

	missing, err := store.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWatchSampleStore_Upsert_Replaces(t *testing.T) {
	store := NewWatchSampleStore()
	ctx := context.Background()
	userID := uuid.New()

	hr := 72.0
	temp := 36.6
	require.NoError(t, store.Upsert(ctx, &entity.LatestWatchSample{
		UserID:       userID,
		HeartRateBpm: &hr,
		TemperatureC: &temp,
		Source:       "AppleWatch_HealthKit",
		LastSyncUTC:  time.Now().UTC(),
	}))

	hr2 := 90.0
	require.NoError(t, store.Upsert(ctx, &entity.LatestWatchSample{
		UserID:       userID,
		HeartRateBpm: &hr2,
		Source:       "AppleWatch_HealthKit",
		LastSyncUTC:  time.Now().UTC(),
	}))

	sample, err := store.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, sample)
	assert.Equal(t, 90.0, *sample.HeartRateBpm)
	assert.Nil(t, sample.TemperatureC)
}

func TestWatchSampleStore_FindByUser_NeverSynced(t *testing.T) {
	store := NewWatchSampleStore()

	sample, err := store.FindByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, sample)
}
