package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WatchSyncPayload is the push body the iOS companion app sends. At least one
// of HeartRateBpm and TemperatureC must be present for the push to be
// accepted.
type WatchSyncPayload struct {
	APIKey       string     `json:"apiKey"` // Only used by the key-authenticated path.
	HeartRateBpm *float64   `json:"heartRateBpm"`
	TemperatureC *float64   `json:"temperatureC"`
	Source       string     `json:"source"`
	TimestampUTC *time.Time `json:"timestampUtc"`
}

// LatestWatchView is the stored latest sample shaped for display.
// HasTemperature distinguishes "no data" from "value present but zero".
type LatestWatchView struct {
	HeartRateBpm   *float64   `json:"heartRateBpm"`
	TemperatureC   *float64   `json:"temperatureC"`
	HasTemperature bool       `json:"hasTemperature"`
	Source         string     `json:"source"`
	LastSyncUTC    *time.Time `json:"lastSyncUtc"`
}

// WatchUsecase ingests Apple Watch pushes and serves the latest sample.
// Each request walks Received -> Validated -> UserResolved -> Stored ->
// Acknowledged, short-circuiting with a domain error at the first failing
// gate.
type WatchUsecase interface {
	// SyncAuthenticated stores a push for a session-resolved user. Fails
	// with ErrUnauthenticated when userID is absent and ErrEmptyPayload when
	// the payload carries no measurement. An accepted push replaces the
	// user's stored sample in full.
	SyncAuthenticated(ctx context.Context, userID uuid.UUID, payload *WatchSyncPayload) error

	// SyncWithKey resolves the user from payload.APIKey (the registered
	// email) and then behaves like SyncAuthenticated. Fails with
	// ErrMissingAPIKey or ErrUnknownAPIKey before any validation of the
	// measurement content. Returns the resolved user id.
	SyncWithKey(ctx context.Context, payload *WatchSyncPayload) (uuid.UUID, error)

	// Latest returns the user's stored sample shaped for display. A user who
	// has never synced gets an empty view; that is a success, not an error.
	Latest(ctx context.Context, userID uuid.UUID) (*LatestWatchView, error)
}
