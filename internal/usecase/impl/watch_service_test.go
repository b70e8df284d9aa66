package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"healthboard/internal/domain/entity"
	domainerrors "healthboard/internal/domain/errors"
	"healthboard/internal/infra/persistence/memory"
	"healthboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// watchServiceFixtures holds all test dependencies for watch service tests.
type watchServiceFixtures struct {
	service   usecase.WatchUsecase
	watchRepo *memory.WatchSampleStore
	userRepo  *memory.UserStore
	clock     *fakeClock
}

func createTestWatchService(t *testing.T) watchServiceFixtures {
	t.Helper()

	clock := &fakeClock{current: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	watchRepo := memory.NewWatchSampleStore()
	userRepo := memory.NewUserStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := newWatchServiceWithClock(watchRepo, userRepo, logger, clock.Now)

	return watchServiceFixtures{
		service:   service,
		watchRepo: watchRepo,
		userRepo:  userRepo,
		clock:     clock,
	}
}

func (f watchServiceFixtures) createUser(t *testing.T, email string) uuid.UUID {
	t.Helper()

	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "irrelevant",
		CreatedAt:    f.clock.Now(),
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))

	return user.ID
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestWatchService_SyncAuthenticated_StoresSample(t *testing.T) {
	fx := createTestWatchService(t)
	ctx := context.Background()
	userID := uuid.New()

	err := fx.service.SyncAuthenticated(ctx, userID, &usecase.WatchSyncPayload{
		HeartRateBpm: floatPtr(72),
		TemperatureC: floatPtr(36.6),
	})
	require.NoError(t, err)

	view, err := fx.service.Latest(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, view.HeartRateBpm)
	assert.Equal(t, float64(72), *view.HeartRateBpm)
	require.NotNil(t, view.TemperatureC)
	assert.Equal(t, 36.6, *view.TemperatureC)
	assert.True(t, view.HasTemperature)
	assert.Equal(t, "AppleWatch_HealthKit", view.Source)
	require.NotNil(t, view.LastSyncUTC)
	assert.Equal(t, fx.clock.Now().UTC(), *view.LastSyncUTC)
}

func TestWatchService_SyncAuthenticated_NilUserRejected(t *testing.T) {
	fx := createTestWatchService(t)

	err := fx.service.SyncAuthenticated(context.Background(), uuid.Nil, &usecase.WatchSyncPayload{
		HeartRateBpm: floatPtr(72),
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestWatchService_SyncAuthenticated_EmptyPayloadStoresNothing(t *testing.T) {
	fx := createTestWatchService(t)
	ctx := context.Background()
	userID := uuid.New()

	err := fx.service.SyncAuthenticated(ctx, userID, &usecase.WatchSyncPayload{Source: "Manual"})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyPayload)

	err = fx.service.SyncAuthenticated(ctx, userID, nil)
	assert.ErrorIs(t, err, domainerrors.ErrEmptyPayload)

	view, err := fx.service.Latest(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, view.HeartRateBpm)
	assert.Nil(t, view.LastSyncUTC)
}

func TestWatchService_Sync_ReplacesNotMerges(t *testing.T) {
	fx := createTestWatchService(t)
	ctx := context.Background()
	userID := uuid.New()

	err := fx.service.SyncAuthenticated(ctx, userID, &usecase.WatchSyncPayload{
		HeartRateBpm: floatPtr(72),
		TemperatureC: floatPtr(36.6),
	})
	require.NoError(t, err)

	// A heart-rate-only push erases the stored temperature.
	fx.clock.Advance(time.Minute)
	err = fx.service.SyncAuthenticated(ctx, userID, &usecase.WatchSyncPayload{
		HeartRateBpm: floatPtr(90),
	})
	require.NoError(t, err)

	view, err := fx.service.Latest(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, view.HeartRateBpm)
	assert.Equal(t, float64(90), *view.HeartRateBpm)
	assert.Nil(t, view.TemperatureC)
	assert.False(t, view.HasTemperature)
}

func TestWatchService_Sync_PayloadTimestampWins(t *testing.T) {
	fx := createTestWatchService(t)
	ctx := context.Background()
	userID := uuid.New()

	sampledAt := time.Date(2025, 6, 15, 11, 30, 0, 0, time.UTC)
	err := fx.service.SyncAuthenticated(ctx, userID, &usecase.WatchSyncPayload{
		HeartRateBpm: floatPtr(72),
		Source:       "AppleWatch_Workout",
		TimestampUTC: &sampledAt,
	})
	require.NoError(t, err)

	view, err := fx.service.Latest(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, view.LastSyncUTC)
	assert.Equal(t, sampledAt, *view.LastSyncUTC)
	assert.Equal(t, "AppleWatch_Workout", view.Source)
}

func TestWatchService_SyncWithKey_ResolvesUserByEmail(t *testing.T) {
	fx := createTestWatchService(t)
	ctx := context.Background()
	userID := fx.createUser(t, "watch@example.com")

	resolved, err := fx.service.SyncWithKey(ctx, &usecase.WatchSyncPayload{
		APIKey:       "watch@example.com",
		HeartRateBpm: floatPtr(65),
	})
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)

	view, err := fx.service.Latest(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, view.HeartRateBpm)
	assert.Equal(t, float64(65), *view.HeartRateBpm)
}

func TestWatchService_SyncWithKey_MissingKey(t *testing.T) {
	fx := createTestWatchService(t)

	_, err := fx.service.SyncWithKey(context.Background(), &usecase.WatchSyncPayload{
		HeartRateBpm: floatPtr(65),
	})
	assert.ErrorIs(t, err, domainerrors.ErrMissingAPIKey)

	_, err = fx.service.SyncWithKey(context.Background(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrMissingAPIKey)
}

func TestWatchService_SyncWithKey_UnknownKey(t *testing.T) {
	fx := createTestWatchService(t)

	// The key gate runs before payload validation, so even an empty payload
	// only reports the bad key.
	_, err := fx.service.SyncWithKey(context.Background(), &usecase.WatchSyncPayload{
		APIKey: "nobody@example.com",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnknownAPIKey)
}

func TestWatchService_SyncWithKey_EmptyPayloadAfterKeyResolves(t *testing.T) {
	fx := createTestWatchService(t)
	fx.createUser(t, "watch@example.com")

	_, err := fx.service.SyncWithKey(context.Background(), &usecase.WatchSyncPayload{
		APIKey: "watch@example.com",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyPayload)
}

func TestWatchService_Latest_NeverSyncedReturnsEmptyView(t *testing.T) {
	fx := createTestWatchService(t)

	view, err := fx.service.Latest(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Nil(t, view.HeartRateBpm)
	assert.Nil(t, view.TemperatureC)
	assert.False(t, view.HasTemperature)
	assert.Empty(t, view.Source)
	assert.Nil(t, view.LastSyncUTC)
}
