package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"healthboard/internal/domain/entity"
	domainerrors "healthboard/internal/domain/errors"
	"healthboard/internal/domain/repository"
	"healthboard/internal/usecase"

	"github.com/google/uuid"
)

// defaultSource tags pushes that carry no source of their own. The value is
// what the iOS companion app has always sent.
const defaultSource = "AppleWatch_HealthKit"

type watchService struct {
	watchRepo repository.WatchSampleRepository
	userRepo  repository.UserRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewWatchService creates the watch sync ingestion service.
func NewWatchService(watchRepo repository.WatchSampleRepository, userRepo repository.UserRepository, logger *slog.Logger) usecase.WatchUsecase {
	return &watchService{
		watchRepo: watchRepo,
		userRepo:  userRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// newWatchServiceWithClock is used by tests that need a deterministic "now".
func newWatchServiceWithClock(watchRepo repository.WatchSampleRepository, userRepo repository.UserRepository, logger *slog.Logger, now func() time.Time) usecase.WatchUsecase {
	return &watchService{
		watchRepo: watchRepo,
		userRepo:  userRepo,
		logger:    logger,
		now:       now,
	}
}

// SyncAuthenticated stores a push for a session-resolved user.
func (s *watchService) SyncAuthenticated(ctx context.Context, userID uuid.UUID, payload *usecase.WatchSyncPayload) error {
	if userID == uuid.Nil {
		return domainerrors.ErrUnauthenticated
	}

	if err := validatePayload(payload); err != nil {
		return err
	}

	if err := s.store(ctx, userID, payload); err != nil {
		return err
	}

	s.logger.Info("Watch sync accepted",
		slog.String("user_id", userID.String()),
		slog.Any("heart_rate_bpm", payload.HeartRateBpm),
		slog.Any("temperature_c", payload.TemperatureC),
	)

	return nil
}

// SyncWithKey resolves the user by API key (the registered email) and stores
// the push. The key gate runs before content validation so a caller with a
// bad key learns nothing about payload rules.
func (s *watchService) SyncWithKey(ctx context.Context, payload *usecase.WatchSyncPayload) (uuid.UUID, error) {
	if payload == nil || strings.TrimSpace(payload.APIKey) == "" {
		return uuid.Nil, domainerrors.ErrMissingAPIKey
	}

	user, err := s.userRepo.FindByEmail(ctx, payload.APIKey)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve api key: %w", err)
	}
	if user == nil {
		return uuid.Nil, domainerrors.ErrUnknownAPIKey
	}

	if err := validatePayload(payload); err != nil {
		return uuid.Nil, err
	}

	if err := s.store(ctx, user.ID, payload); err != nil {
		return uuid.Nil, err
	}

	s.logger.Info("Watch sync via API key accepted",
		slog.String("user_id", user.ID.String()),
		slog.Any("heart_rate_bpm", payload.HeartRateBpm),
		slog.Any("temperature_c", payload.TemperatureC),
	)

	return user.ID, nil
}

// Latest returns the user's stored sample shaped for display. A user who has
// never synced gets the empty view as a normal success.
func (s *watchService) Latest(ctx context.Context, userID uuid.UUID) (*usecase.LatestWatchView, error) {
	sample, err := s.watchRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find watch sample: %w", err)
	}

	if sample == nil {
		return &usecase.LatestWatchView{}, nil
	}

	lastSync := sample.LastSyncUTC

	return &usecase.LatestWatchView{
		HeartRateBpm:   sample.HeartRateBpm,
		TemperatureC:   sample.TemperatureC,
		HasTemperature: sample.TemperatureC != nil,
		Source:         sample.Source,
		LastSyncUTC:    &lastSync,
	}, nil
}

// validatePayload rejects pushes that carry no measurable field.
func validatePayload(payload *usecase.WatchSyncPayload) error {
	if payload == nil || (payload.HeartRateBpm == nil && payload.TemperatureC == nil) {
		return domainerrors.ErrEmptyPayload
	}

	return nil
}

// store replaces the user's latest sample in full. Fields absent from the
// payload become absent in the stored record.
func (s *watchService) store(ctx context.Context, userID uuid.UUID, payload *usecase.WatchSyncPayload) error {
	source := payload.Source
	if source == "" {
		source = defaultSource
	}

	lastSync := s.now().UTC()
	if payload.TimestampUTC != nil {
		lastSync = payload.TimestampUTC.UTC()
	}

	sample := &entity.LatestWatchSample{
		UserID:       userID,
		HeartRateBpm: payload.HeartRateBpm,
		TemperatureC: payload.TemperatureC,
		Source:       source,
		LastSyncUTC:  lastSync,
	}

	if err := s.watchRepo.Upsert(ctx, sample); err != nil {
		return fmt.Errorf("failed to store watch sample: %w", err)
	}

	return nil
}
