package handler

import (
	"errors"
	"net/http"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type StoreHandler struct {
	storeService service.StoreService
}

func NewStoreHandler(storeService service.StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
	}
}

func (h *StoreHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.storeService.ListProducts(ctx, c.QueryParam("category"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}

func (h *StoreHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.storeService.GetProduct(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *StoreHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.storeService.ListCategories(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *StoreHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing user_id")
	}

	orders, err := h.storeService.ListOrders(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *StoreHandler) Feed(c echo.Context) error {
	ctx := c.Request().Context()

	entries, err := h.storeService.Feed(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entries)
}
