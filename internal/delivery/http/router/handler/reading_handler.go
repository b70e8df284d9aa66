// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"healthboard/internal/delivery/http/response"
	"healthboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReadingHandlerParams holds dependencies for ReadingHandler, injected by Fx.
type ReadingHandlerParams struct {
	fx.In

	HealthUC usecase.HealthUsecase
	Logger   *slog.Logger
}

// ReadingHandler holds dependencies for reading-related handlers
type ReadingHandler struct {
	healthUC usecase.HealthUsecase
	logger   *slog.Logger
}

// NewReadingHandler is the constructor for ReadingHandler
func NewReadingHandler(params ReadingHandlerParams) *ReadingHandler {
	return &ReadingHandler{
		healthUC: params.HealthUC,
		logger:   params.Logger,
	}
}

// SubmitReadingRequest represents the request body for recording a reading
type SubmitReadingRequest struct {
	DeviceID   string  `json:"deviceId" validate:"required"`
	DeviceType string  `json:"deviceType" validate:"required"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit" validate:"required"`
	Notes      string  `json:"notes"`
}

// SubmitReading handles recording a new reading
func (h *ReadingHandler) SubmitReading(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req SubmitReadingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reading input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	reading, err := h.healthUC.AddReading(c.Request().Context(), userID, &usecase.ReadingInput{
		DeviceID:   req.DeviceID,
		DeviceType: req.DeviceType,
		Value:      req.Value,
		Unit:       req.Unit,
		Notes:      req.Notes,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, reading, "Reading added successfully")
}

// ImportReadings handles bulk-importing readings
func (h *ReadingHandler) ImportReadings(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var reqs []SubmitReadingRequest
	if err := c.Bind(&reqs); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid import input")
	}

	if len(reqs) == 0 {
		return response.BadRequest(c, "VALIDATION_FAILED", "No valid readings provided")
	}

	inputs := make([]usecase.ReadingInput, 0, len(reqs))
	for i := range reqs {
		if err := c.Validate(&reqs[i]); err != nil {
			return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
		}
		inputs = append(inputs, usecase.ReadingInput{
			DeviceID:   reqs[i].DeviceID,
			DeviceType: reqs[i].DeviceType,
			Value:      reqs[i].Value,
			Unit:       reqs[i].Unit,
			Notes:      reqs[i].Notes,
		})
	}

	count, err := h.healthUC.ImportReadings(c.Request().Context(), userID, inputs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"imported": count}, "Readings imported successfully")
}

// GetReadings handles retrieving all readings of the current user
func (h *ReadingHandler) GetReadings(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	readings, err := h.healthUC.ListReadings(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, readings, "Readings retrieved successfully")
}

// GetRecentReadings handles retrieving the most recent readings
func (h *ReadingHandler) GetRecentReadings(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	// A missing or malformed count falls back to the service default.
	count, _ := strconv.Atoi(c.QueryParam("count"))

	readings, err := h.healthUC.RecentReadings(c.Request().Context(), userID, count)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, readings, "Recent readings retrieved successfully")
}

// GetReadingsByType handles filtering readings by device type
func (h *ReadingHandler) GetReadingsByType(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	deviceType := c.QueryParam("type")
	if deviceType == "" {
		return response.BadRequest(c, "VALIDATION_FAILED", "Query parameter 'type' is required")
	}

	readings, err := h.healthUC.ReadingsByDeviceType(c.Request().Context(), userID, deviceType)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, readings, "Readings retrieved successfully")
}

// GetReadingsGrouped handles retrieving readings grouped by device
func (h *ReadingHandler) GetReadingsGrouped(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	groups, err := h.healthUC.ReadingsGroupedByDevice(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, groups, "Grouped readings retrieved successfully")
}

// GetAverages handles retrieving per-type averages
func (h *ReadingHandler) GetAverages(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	averages, err := h.healthUC.AveragesByType(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, averages, "Averages retrieved successfully")
}

// GetDashboard handles retrieving the composite dashboard view
func (h *ReadingHandler) GetDashboard(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	view, err := h.healthUC.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view, "Dashboard retrieved successfully")
}

// GetStatistics handles retrieving history-wide statistics
func (h *ReadingHandler) GetStatistics(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.healthUC.Statistics(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats, "Statistics retrieved successfully")
}

// GetAnalytics handles retrieving the reporting view
func (h *ReadingHandler) GetAnalytics(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	analytics, err := h.healthUC.Analytics(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, analytics, "Analytics retrieved successfully")
}

// ClearReadings handles deleting every reading of the current user
func (h *ReadingHandler) ClearReadings(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	if err := h.healthUC.ClearReadings(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "All readings cleared")
}

// getUserID extracts the user ID from the context
func (h *ReadingHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}
