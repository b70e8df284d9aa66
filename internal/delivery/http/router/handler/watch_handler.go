package handler

import (
	"log/slog"
	"net/http"

	"healthboard/internal/delivery/http/response"
	"healthboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// WatchHandlerParams holds dependencies for WatchHandler, injected by Fx.
type WatchHandlerParams struct {
	fx.In

	WatchUC usecase.WatchUsecase
	Logger  *slog.Logger
}

// WatchHandler holds dependencies for watch sync handlers
type WatchHandler struct {
	watchUC usecase.WatchUsecase
	logger  *slog.Logger
}

// NewWatchHandler is the constructor for WatchHandler
func NewWatchHandler(params WatchHandlerParams) *WatchHandler {
	return &WatchHandler{
		watchUC: params.WatchUC,
		logger:  params.Logger,
	}
}

// Sync handles a session-authenticated watch push
func (h *WatchHandler) Sync(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var payload usecase.WatchSyncPayload
	if err := c.Bind(&payload); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sync payload")
	}

	if err := h.watchUC.SyncAuthenticated(c.Request().Context(), userID, &payload); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Data synced successfully")
}

// SyncWithKey handles an API-key-authenticated watch push. The route is
// anonymous; the key inside the payload identifies the user.
func (h *WatchHandler) SyncWithKey(c echo.Context) error {
	var payload usecase.WatchSyncPayload
	if err := c.Bind(&payload); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sync payload")
	}

	if _, err := h.watchUC.SyncWithKey(c.Request().Context(), &payload); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Data synced successfully")
}

// Latest handles retrieving the latest synced watch sample
func (h *WatchHandler) Latest(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	view, err := h.watchUC.Latest(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view, "Latest watch data retrieved")
}

// getUserID extracts the user ID from the context
func (h *WatchHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}
