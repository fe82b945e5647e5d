package handler

import (
	"net/http"
	"storefront-api/internal/dto"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type SyncHandler struct {
	syncService service.SyncService
}

func NewSyncHandler(syncService service.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

func (h *SyncHandler) Run(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SyncRequestBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.RequestID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing request_id")
	}

	result, err := h.syncService.Run(ctx, req.RequestID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
