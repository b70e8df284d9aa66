package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"healthboard/config"
	"healthboard/internal/delivery/http/validator"
	"healthboard/internal/infra/persistence/memory"
	"healthboard/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readingHandlerFixtures struct {
	handler *ReadingHandler
	echo    *echo.Echo
}

func createTestReadingHandler(t *testing.T) readingHandlerFixtures {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewReadingStore()
	healthUC := impl.NewHealthService(&config.Config{}, store, logger)

	e := echo.New()
	e.Validator = validator.New()

	return readingHandlerFixtures{
		handler: &ReadingHandler{healthUC: healthUC, logger: logger},
		echo:    e,
	}
}

func (f readingHandlerFixtures) request(method, path, body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)
	c.Set("userID", userID)

	return c, rec
}

func TestReadingHandler_SubmitReading_Integration(t *testing.T) {
	fx := createTestReadingHandler(t)
	userID := uuid.New()

	c, rec := fx.request(http.MethodPost, "/api/readings",
		`{"deviceId":"watch-1","deviceType":"HeartRate","value":72,"unit":"bpm","notes":"resting"}`, userID)
	require.NoError(t, fx.handler.SubmitReading(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"deviceId":"watch-1"`)
}

func TestReadingHandler_SubmitReading_MissingFields(t *testing.T) {
	fx := createTestReadingHandler(t)

	c, rec := fx.request(http.MethodPost, "/api/readings", `{"value":72}`, uuid.New())
	require.NoError(t, fx.handler.SubmitReading(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestReadingHandler_SubmitReading_MissingUser(t *testing.T) {
	fx := createTestReadingHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/readings",
		strings.NewReader(`{"deviceId":"watch-1","deviceType":"HeartRate","value":72,"unit":"bpm"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := fx.echo.NewContext(req, rec)

	require.NoError(t, fx.handler.SubmitReading(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReadingHandler_ImportThenDashboard_Integration(t *testing.T) {
	fx := createTestReadingHandler(t)
	userID := uuid.New()

	c, rec := fx.request(http.MethodPost, "/api/readings/import",
		`[{"deviceId":"watch-1","deviceType":"HeartRate","value":70,"unit":"bpm"},
		  {"deviceId":"watch-1","deviceType":"HeartRate","value":80,"unit":"bpm"}]`, userID)
	require.NoError(t, fx.handler.ImportReadings(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imported":2`)

	c, rec = fx.request(http.MethodGet, "/api/dashboard", "", userID)
	require.NoError(t, fx.handler.GetDashboard(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalReadings":2`)
	assert.Contains(t, rec.Body.String(), `"HeartRate":75`)
}

func TestReadingHandler_ImportEmptyRejected(t *testing.T) {
	fx := createTestReadingHandler(t)

	c, rec := fx.request(http.MethodPost, "/api/readings/import", `[]`, uuid.New())
	require.NoError(t, fx.handler.ImportReadings(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No valid readings provided")
}

func TestReadingHandler_GetReadingsByType_MissingParam(t *testing.T) {
	fx := createTestReadingHandler(t)

	c, rec := fx.request(http.MethodGet, "/api/readings/by-type", "", uuid.New())
	require.NoError(t, fx.handler.GetReadingsByType(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadingHandler_ClearReadings_Integration(t *testing.T) {
	fx := createTestReadingHandler(t)
	userID := uuid.New()

	c, _ := fx.request(http.MethodPost, "/api/readings",
		`{"deviceId":"watch-1","deviceType":"HeartRate","value":72,"unit":"bpm"}`, userID)
	require.NoError(t, fx.handler.SubmitReading(c))

	c, rec := fx.request(http.MethodDelete, "/api/readings", "", userID)
	require.NoError(t, fx.handler.ClearReadings(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = fx.request(http.MethodGet, "/api/readings", "", userID)
	require.NoError(t, fx.handler.GetReadings(c))
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}
