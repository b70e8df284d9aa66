// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Reading is a single manually-recorded health measurement owned by one user.
// ID and Timestamp are assigned by the store at insertion time and are never
// client-supplied. A Reading is immutable once created; it only disappears
// when the owner clears their history.
type Reading struct {
	ID         int64     `json:"id"`         // Process-wide sequential identifier, strictly increasing.
	UserID     uuid.UUID `json:"userId"`     // The owning user's identifier, set by the ingesting layer.
	DeviceID   string    `json:"deviceId"`   // Free-text identifier of the originating device.
	DeviceType string    `json:"deviceType"` // Free-text category, e.g. "Thermometer"; matched case-insensitively.
	Value      float64   `json:"value"`      // The numeric measurement.
	Unit       string    `json:"unit"`       // Free-text unit label, e.g. "bpm".
	Timestamp  time.Time `json:"timestamp"`  // Server-assigned insertion time, used for ordering and windowing.
	Notes      string    `json:"notes"`      // Optional free text.
}

// LatestWatchSample is the single most-recent Apple Watch push for one user.
// Each accepted sync replaces the prior record in full: fields absent from
// the new payload become absent in the stored record, never merged.
type LatestWatchSample struct {
	UserID       uuid.UUID `json:"userId"`
	HeartRateBpm *float64  `json:"heartRateBpm"` // nil when the push carried no heart rate.
	TemperatureC *float64  `json:"temperatureC"` // nil when the push carried no temperature.
	Source       string    `json:"source"`       // Originating client identifier, e.g. "AppleWatch_HealthKit".
	LastSyncUTC  time.Time `json:"lastSyncUtc"`  // Timestamp of the last accepted push.
}
