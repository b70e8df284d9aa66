// Package usecase defines the application's use case interfaces and the view
// types they return. Handlers depend on these interfaces, never on the
// implementations in usecase/impl.
package usecase

import (
	"context"
	"time"

	"healthboard/internal/domain/entity"

	"github.com/google/uuid"
)

// ReadingInput carries the client-supplied fields of a new reading. Id,
// owner and timestamp are assigned server-side.
type ReadingInput struct {
	DeviceID   string  `json:"deviceId"`
	DeviceType string  `json:"deviceType"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Notes      string  `json:"notes"`
}

// DashboardView is the composite view backing the dashboard page.
type DashboardView struct {
	RecentReadings   []entity.Reading            `json:"recentReadings"`   // Top 20, most recent first.
	ReadingsByDevice map[string][]entity.Reading `json:"readingsByDevice"` // Keyed by device id.
	AveragesByType   map[string]float64          `json:"averagesByType"`   // Keyed by device type.
	TotalReadings    int                         `json:"totalReadings"`
	LastReadingTime  *time.Time                  `json:"lastReadingTime"` // nil when the user has no readings.
}

// StatisticsView summarizes a user's full reading history.
// MaxValue and MinValue are deliberate zero-defaults when the history is
// empty, matching the behavior dashboards already depend on.
type StatisticsView struct {
	TotalReadings       int                `json:"totalReadings"`
	DeviceTypes         []string           `json:"deviceTypes"` // Distinct, first-seen order.
	AveragesByType      map[string]float64 `json:"averagesByType"`
	ReadingsLast24Hours int                `json:"readingsLast24Hours"`
	MaxValue            float64            `json:"maxValue"`
	MinValue            float64            `json:"minValue"`
}

// HourCount is one bucket of the hourly histogram.
type HourCount struct {
	Hour  int `json:"hour"` // Hour of day, 0-23.
	Count int `json:"count"`
}

// DeviceCount is the number of readings recorded by one device.
type DeviceCount struct {
	Device string `json:"device"`
	Count  int    `json:"count"`
}

// TypeTrend summarizes one device type over the trailing 24 hours.
type TypeTrend struct {
	Type    string  `json:"type"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
	Latest  float64 `json:"latest"` // Value of the most recent reading in the group.
}

// AnalyticsView is the reporting surface over a user's readings.
type AnalyticsView struct {
	ReadingsByHour   []HourCount   `json:"readingsByHour"`   // Ascending by hour, empty hours omitted.
	ReadingsByDevice []DeviceCount `json:"readingsByDevice"` // Descending by count.
	RecentTrends     []TypeTrend   `json:"recentTrends"`     // Per device type, trailing 24h.
}

// HealthUsecase covers recording, browsing and summarizing a user's
// readings. Every operation is scoped by the calling user; queries on an
// unknown or empty user return empty collections and zero defaults, never an
// error.
type HealthUsecase interface {
	// AddReading stores a new reading for the user and returns it with the
	// server-assigned id and timestamp.
	AddReading(ctx context.Context, userID uuid.UUID, input *ReadingInput) (*entity.Reading, error)

	// ImportReadings bulk-adds readings and returns how many were stored.
	ImportReadings(ctx context.Context, userID uuid.UUID, inputs []ReadingInput) (int, error)

	// ListReadings returns all of the user's readings, most recent first.
	ListReadings(ctx context.Context, userID uuid.UUID) ([]entity.Reading, error)

	// RecentReadings returns the first count readings of ListReadings.
	// A count of zero or less falls back to the default of 10.
	RecentReadings(ctx context.Context, userID uuid.UUID, count int) ([]entity.Reading, error)

	// ReadingsByDeviceType filters by device type, case-insensitively.
	ReadingsByDeviceType(ctx context.Context, userID uuid.UUID, deviceType string) ([]entity.Reading, error)

	// ReadingsGroupedByDevice partitions the user's readings by device id,
	// each group most recent first.
	ReadingsGroupedByDevice(ctx context.Context, userID uuid.UUID) (map[string][]entity.Reading, error)

	// AveragesByType returns the arithmetic mean of value per device type.
	AveragesByType(ctx context.Context, userID uuid.UUID) (map[string]float64, error)

	// Dashboard assembles the composite dashboard view.
	Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardView, error)

	// Statistics summarizes the user's full history.
	Statistics(ctx context.Context, userID uuid.UUID) (*StatisticsView, error)

	// Analytics builds the reporting view (histogram, device counts, trends).
	Analytics(ctx context.Context, userID uuid.UUID) (*AnalyticsView, error)

	// ClearReadings removes every reading of the user. Idempotent.
	ClearReadings(ctx context.Context, userID uuid.UUID) error
}
