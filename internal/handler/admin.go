package handler

import (
	"net/http"
	"storefront-api/internal/dto"
	"storefront-api/internal/middleware"
	"storefront-api/internal/service"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	token, err := h.adminService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}

func (h *AdminHandler) CreateSyncRequest(c echo.Context) error {
	ctx := c.Request().Context()

	req, err := h.adminService.CreateSyncRequest(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CreateSyncRequestResponse{
		RequestID: req.ID,
		ExpiresAt: req.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *AdminHandler) ListFeed(c echo.Context) error {
	ctx := c.Request().Context()

	entries, err := h.adminService.ListFeed(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entries)
}

func (h *AdminHandler) CreateFeedEntry(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.FeedEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	entry, err := h.adminService.CreateFeedEntry(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entry)
}

func (h *AdminHandler) UpdateFeedEntry(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := entryID(c)
	if err != nil {
		return err
	}

	var req dto.FeedEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.adminService.UpdateFeedEntry(ctx, id, &req); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) DeleteFeedEntry(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := entryID(c)
	if err != nil {
		return err
	}

	if err := h.adminService.DeleteFeedEntry(ctx, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) SetProductActive(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := entryID(c)
	if err != nil {
		return err
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.adminService.SetProductActive(ctx, id, req.Active); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) UploadMedia(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	defer src.Close()

	result, err := h.adminService.UploadMedia(ctx, src, fileHeader.Filename)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func entryID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
