package handler

import (
	"encoding/json"
	"encoding/xml"
	"log/slog"
	"net/http"
	"time"

	"healthboard/internal/delivery/http/response"
	"healthboard/internal/errors"
	"healthboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ExportHandlerParams holds dependencies for ExportHandler, injected by Fx.
type ExportHandlerParams struct {
	fx.In

	HealthUC usecase.HealthUsecase
	Logger   *slog.Logger
}

// ExportHandler serialises a user's reading history for download.
type ExportHandler struct {
	healthUC usecase.HealthUsecase
	logger   *slog.Logger
}

// NewExportHandler is the constructor for ExportHandler
func NewExportHandler(params ExportHandlerParams) *ExportHandler {
	return &ExportHandler{
		healthUC: params.HealthUC,
		logger:   params.Logger,
	}
}

// xmlReading mirrors entity.Reading with element names stable for consumers.
type xmlReading struct {
	ID         int64   `xml:"Id"`
	DeviceID   string  `xml:"DeviceId"`
	DeviceType string  `xml:"DeviceType"`
	Value      float64 `xml:"Value"`
	Unit       string  `xml:"Unit"`
	Timestamp  string  `xml:"Timestamp"`
	Notes      string  `xml:"Notes,omitempty"`
}

type xmlReadingList struct {
	XMLName  xml.Name     `xml:"HealthReadings"`
	Readings []xmlReading `xml:"Reading"`
}

// ExportJSON streams the full reading history as indented JSON
func (h *ExportHandler) ExportJSON(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	readings, err := h.healthUC.ListReadings(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	data, err := json.MarshalIndent(readings, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal readings export")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="readings.json"`)

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// ExportXML streams the full reading history as XML
func (h *ExportHandler) ExportXML(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	readings, err := h.healthUC.ListReadings(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	list := xmlReadingList{Readings: make([]xmlReading, 0, len(readings))}
	for _, r := range readings {
		list.Readings = append(list.Readings, xmlReading{
			ID:         r.ID,
			DeviceID:   r.DeviceID,
			DeviceType: r.DeviceType,
			Value:      r.Value,
			Unit:       r.Unit,
			Timestamp:  r.Timestamp.UTC().Format(time.RFC3339),
			Notes:      r.Notes,
		})
	}

	data, err := xml.MarshalIndent(list, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal readings export")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="readings.xml"`)

	return c.Blob(http.StatusOK, echo.MIMEApplicationXML, append([]byte(xml.Header), data...))
}

// getUserID extracts the user ID from the context
func (h *ExportHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}
