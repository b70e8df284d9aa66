// Package impl contains the concrete use case implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"healthboard/config"
	"healthboard/internal/domain/entity"
	"healthboard/internal/domain/repository"
	"healthboard/internal/usecase"

	"github.com/google/uuid"
)

const (
	defaultRecentCount   = 10
	dashboardRecentCount = 20
	trendWindow          = 24 * time.Hour
)

type healthService struct {
	readingRepo     repository.ReadingRepository
	logger          *slog.Logger
	now             func() time.Time
	dashboardRecent int
}

// NewHealthService creates the reading aggregation service.
func NewHealthService(cfg *config.Config, readingRepo repository.ReadingRepository, logger *slog.Logger) usecase.HealthUsecase {
	dashboardRecent := dashboardRecentCount
	if cfg.Dashboard != nil && cfg.Dashboard.RecentCount > 0 {
		dashboardRecent = cfg.Dashboard.RecentCount
	}

	return &healthService{
		readingRepo:     readingRepo,
		logger:          logger,
		now:             time.Now,
		dashboardRecent: dashboardRecent,
	}
}

// newHealthServiceWithClock is used by tests that need a deterministic "now".
func newHealthServiceWithClock(readingRepo repository.ReadingRepository, logger *slog.Logger, now func() time.Time) usecase.HealthUsecase {
	return &healthService{
		readingRepo:     readingRepo,
		logger:          logger,
		now:             now,
		dashboardRecent: dashboardRecentCount,
	}
}

// AddReading stores a new reading for the user. The store assigns the id and
// timestamp; the input only carries client-supplied fields.
func (s *healthService) AddReading(ctx context.Context, userID uuid.UUID, input *usecase.ReadingInput) (*entity.Reading, error) {
	reading := &entity.Reading{
		UserID:     userID,
		DeviceID:   input.DeviceID,
		DeviceType: input.DeviceType,
		Value:      input.Value,
		Unit:       input.Unit,
		Notes:      input.Notes,
	}

	stored, err := s.readingRepo.Insert(ctx, reading)
	if err != nil {
		return nil, fmt.Errorf("failed to insert reading: %w", err)
	}

	return stored, nil
}

// ImportReadings bulk-adds readings in input order and returns the count.
func (s *healthService) ImportReadings(ctx context.Context, userID uuid.UUID, inputs []usecase.ReadingInput) (int, error) {
	for i := range inputs {
		if _, err := s.AddReading(ctx, userID, &inputs[i]); err != nil {
			return i, fmt.Errorf("failed to import reading %d: %w", i, err)
		}
	}

	s.logger.Info("Imported readings",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(inputs)),
	)

	return len(inputs), nil
}

// ListReadings returns all of the user's readings, most recent first.
func (s *healthService) ListReadings(ctx context.Context, userID uuid.UUID) ([]entity.Reading, error) {
	readings, err := s.readingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}

	return readings, nil
}

// RecentReadings returns the first count readings, defaulting to 10.
func (s *healthService) RecentReadings(ctx context.Context, userID uuid.UUID, count int) ([]entity.Reading, error) {
	if count <= 0 {
		count = defaultRecentCount
	}

	readings, err := s.ListReadings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(readings) > count {
		readings = readings[:count]
	}

	return readings, nil
}

// ReadingsByDeviceType filters the user's readings by device type,
// case-insensitively, preserving the descending order.
func (s *healthService) ReadingsByDeviceType(ctx context.Context, userID uuid.UUID, deviceType string) ([]entity.Reading, error) {
	readings, err := s.ListReadings(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := make([]entity.Reading, 0)
	for _, r := range readings {
		if strings.EqualFold(r.DeviceType, deviceType) {
			filtered = append(filtered, r)
		}
	}

	return filtered, nil
}

// ReadingsGroupedByDevice partitions the user's readings by device id. Each
// group inherits the descending order of the full list.
func (s *healthService) ReadingsGroupedByDevice(ctx context.Context, userID uuid.UUID) (map[string][]entity.Reading, error) {
	readings, err := s.ListReadings(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]entity.Reading)
	for _, r := range readings {
		groups[r.DeviceID] = append(groups[r.DeviceID], r)
	}

	return groups, nil
}

// AveragesByType returns the arithmetic mean of value per device type.
// Types are grouped case-insensitively; the first-seen casing becomes the
// map key.
func (s *healthService) AveragesByType(ctx context.Context, userID uuid.UUID) (map[string]float64, error) {
	readings, err := s.ListReadings(ctx, userID)
	if err != nil {
		return nil, err
	}

	return averagesByType(readings), nil
}

// Dashboard assembles the composite dashboard view in one pass over the
// user's readings.
func (s *healthService) Dashboard(ctx context.Context, userID uuid.UUID) (*usecase.DashboardView, error) {
	readings, err := s.ListReadings(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent := readings
	if len(recent) > s.dashboardRecent {
		recent = recent[:s.dashboardRecent]
	}

	groups := make(map[string][]entity.Reading)
	for _, r := range readings {
		groups[r.DeviceID] = append(groups[r.DeviceID], r)
	}

	view := &usecase.DashboardView{
		RecentReadings:   recent,
		ReadingsByDevice: groups,
		AveragesByType:   averagesByType(readings),
		TotalReadings:    len(readings),
	}

	// Readings are sorted descending, so the first one carries the max timestamp.
	if len(readings) > 0 {
		last := readings[0].Timestamp
		view.LastReadingTime = &last
	}

	return view, nil
}

// Statistics summarizes the user's full history. Max and min are deliberate
// zero-defaults on an empty history.
func (s *healthService) Statistics(ctx context.Context, userID uuid.UUID) (*usecase.StatisticsView, error) {
	readings, err := s.ListReadings(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &usecase.StatisticsView{
		TotalReadings:  len(readings),
		DeviceTypes:    make([]string, 0),
		AveragesByType: averagesByType(readings),
	}

	cutoff := s.now().Add(-trendWindow)
	seen := make(map[string]bool)

	for i, r := range readings {
		lower := strings.ToLower(r.DeviceType)
		if !seen[lower] {
			seen[lower] = true
			stats.DeviceTypes = append(stats.DeviceTypes, r.DeviceType)
		}

		if !r.Timestamp.Before(cutoff) {
			stats.ReadingsLast24Hours++
		}

		if i == 0 {
			stats.MaxValue = r.Value
			stats.MinValue = r.Value

			continue
		}

		if r.Value > stats.MaxValue {
			stats.MaxValue = r.Value
		}
		if r.Value < stats.MinValue {
			stats.MinValue = r.Value
		}
	}

	return stats, nil
}

// Analytics builds the reporting view: an hourly histogram over the full
// history, per-device counts and per-type trends over the trailing 24 hours.
func (s *healthService) Analytics(ctx context.Context, userID uuid.UUID) (*usecase.AnalyticsView, error) {
	readings, err := s.ListReadings(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &usecase.AnalyticsView{
		ReadingsByHour:   readingsByHour(readings),
		ReadingsByDevice: readingsByDevice(readings),
		RecentTrends:     recentTrends(readings, s.now().Add(-trendWindow)),
	}, nil
}

// ClearReadings removes every reading of the user only.
func (s *healthService) ClearReadings(ctx context.Context, userID uuid.UUID) error {
	if err := s.readingRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear readings: %w", err)
	}

	s.logger.Info("Cleared readings", slog.String("user_id", userID.String()))

	return nil
}

// averagesByType computes the mean value per device type. Grouping is
// case-insensitive; the first-seen casing is kept as the display key.
func averagesByType(readings []entity.Reading) map[string]float64 {
	display := make(map[string]string)
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, r := range readings {
		lower := strings.ToLower(r.DeviceType)
		key, ok := display[lower]
		if !ok {
			key = r.DeviceType
			display[lower] = key
		}
		sums[key] += r.Value
		counts[key]++
	}

	averages := make(map[string]float64, len(sums))
	for key, sum := range sums {
		averages[key] = sum / float64(counts[key])
	}

	return averages
}

// readingsByHour counts readings per hour of day. Hours with no readings are
// omitted; buckets are ascending by hour.
func readingsByHour(readings []entity.Reading) []usecase.HourCount {
	counts := make(map[int]int)
	for _, r := range readings {
		counts[r.Timestamp.Hour()]++
	}

	histogram := make([]usecase.HourCount, 0, len(counts))
	for hour, count := range counts {
		histogram = append(histogram, usecase.HourCount{Hour: hour, Count: count})
	}

	sort.Slice(histogram, func(i, j int) bool {
		return histogram[i].Hour < histogram[j].Hour
	})

	return histogram
}

// readingsByDevice counts readings per device, descending by count. Stable
// sort keeps first-seen order between equal counts.
func readingsByDevice(readings []entity.Reading) []usecase.DeviceCount {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, r := range readings {
		if _, ok := counts[r.DeviceID]; !ok {
			order = append(order, r.DeviceID)
		}
		counts[r.DeviceID]++
	}

	result := make([]usecase.DeviceCount, 0, len(order))
	for _, device := range order {
		result = append(result, usecase.DeviceCount{Device: device, Count: counts[device]})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	return result
}

// recentTrends summarizes readings newer than cutoff per device type. The
// input is sorted descending, so the first reading seen for a type is the
// latest one in its group.
func recentTrends(readings []entity.Reading, cutoff time.Time) []usecase.TypeTrend {
	type acc struct {
		sum    float64
		count  int
		latest float64
	}

	display := make(map[string]string)
	groups := make(map[string]*acc)
	order := make([]string, 0)

	for _, r := range readings {
		if r.Timestamp.Before(cutoff) {
			continue
		}

		lower := strings.ToLower(r.DeviceType)
		key, ok := display[lower]
		if !ok {
			key = r.DeviceType
			display[lower] = key
			groups[key] = &acc{latest: r.Value}
			order = append(order, key)
		}

		groups[key].sum += r.Value
		groups[key].count++
	}

	trends := make([]usecase.TypeTrend, 0, len(order))
	for _, key := range order {
		g := groups[key]
		trends = append(trends, usecase.TypeTrend{
			Type:    key,
			Average: g.sum / float64(g.count),
			Count:   g.count,
			Latest:  g.latest,
		})
	}

	return trends
}
