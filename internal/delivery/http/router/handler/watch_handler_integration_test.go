package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healthboard/internal/domain/entity"
	"healthboard/internal/infra/persistence/memory"
	"healthboard/internal/usecase"
	"healthboard/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type watchHandlerFixtures struct {
	handler  *WatchHandler
	watchUC  usecase.WatchUsecase
	userRepo *memory.UserStore
	echo     *echo.Echo
}

func createTestWatchHandler(t *testing.T) watchHandlerFixtures {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	watchRepo := memory.NewWatchSampleStore()
	userRepo := memory.NewUserStore()
	watchUC := impl.NewWatchService(watchRepo, userRepo, logger)

	return watchHandlerFixtures{
		handler:  &WatchHandler{watchUC: watchUC, logger: logger},
		watchUC:  watchUC,
		userRepo: userRepo,
		echo:     echo.New(),
	}
}

func (f watchHandlerFixtures) createUser(t *testing.T, email string) uuid.UUID {
	t.Helper()

	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Watch Owner",
		PasswordHash: "irrelevant",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))

	return user.ID
}

func (f watchHandlerFixtures) postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return f.echo.NewContext(req, rec), rec
}

func TestWatchHandler_SyncWithKey_Integration(t *testing.T) {
	fx := createTestWatchHandler(t)
	userID := fx.createUser(t, "watch@example.com")

	c, rec := fx.postJSON("/api/watch/sync-key", `{"apiKey":"watch@example.com","heartRateBpm":72.5}`)
	require.NoError(t, fx.handler.SyncWithKey(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), "Data synced successfully")

	view, err := fx.watchUC.Latest(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, view.HeartRateBpm)
	assert.Equal(t, 72.5, *view.HeartRateBpm)
}

func TestWatchHandler_SyncWithKey_UnknownKey(t *testing.T) {
	fx := createTestWatchHandler(t)

	c, rec := fx.postJSON("/api/watch/sync-key", `{"apiKey":"nobody@example.com","heartRateBpm":72}`)
	require.NoError(t, fx.handler.SyncWithKey(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_API_KEY")
}

func TestWatchHandler_Sync_EmptyPayload(t *testing.T) {
	fx := createTestWatchHandler(t)

	c, rec := fx.postJSON("/api/watch/sync", `{"source":"Manual"}`)
	c.Set("userID", uuid.New())
	require.NoError(t, fx.handler.Sync(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMPTY_PAYLOAD")
}

func TestWatchHandler_Latest_NeverSynced(t *testing.T) {
	fx := createTestWatchHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/watch/latest", nil)
	rec := httptest.NewRecorder()
	c := fx.echo.NewContext(req, rec)
	c.Set("userID", uuid.New())

	require.NoError(t, fx.handler.Latest(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hasTemperature":false`)
}
