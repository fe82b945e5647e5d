package server

import (
	"context"
	"log"
	"net/http"
	"storefront-api/internal/apperr"
	"storefront-api/internal/dto"
	"storefront-api/internal/handler"
	authmw "storefront-api/internal/middleware"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	syncHandler     *handler.SyncHandler
	checkoutHandler *handler.CheckoutHandler
	storeHandler    *handler.StoreHandler
	adminHandler    *handler.AdminHandler
	adminService    service.AdminService
}

func NewServer(
	syncService service.SyncService,
	checkoutService service.CheckoutService,
	storeService service.StoreService,
	adminService service.AdminService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		syncHandler:     handler.NewSyncHandler(syncService),
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		storeHandler:    handler.NewStoreHandler(storeService),
		adminHandler:    handler.NewAdminHandler(adminService),
		adminService:    adminService,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- storefront --------
	api.GET("/products", s.storeHandler.ListProducts)
	api.GET("/products/:slug", s.storeHandler.GetProduct)
	api.GET("/categories", s.storeHandler.ListCategories)
	api.GET("/orders", s.storeHandler.ListOrders)
	api.GET("/feed", s.storeHandler.Feed)

	// -------- checkout & catalog sync --------
	api.POST("/checkout", s.checkoutHandler.Capture)
	api.POST("/sync", s.syncHandler.Run) // gated by the sync-request nonce, not a session

	// -------- admin back-office --------
	api.POST("/admin/login", s.adminHandler.Login)

	admin := api.Group("/admin", authmw.AdminAuth(s.adminService))
	admin.POST("/sync-requests", s.adminHandler.CreateSyncRequest)
	admin.GET("/feed", s.adminHandler.ListFeed)
	admin.POST("/feed", s.adminHandler.CreateFeedEntry)
	admin.PUT("/feed/:id", s.adminHandler.UpdateFeedEntry)
	admin.DELETE("/feed/:id", s.adminHandler.DeleteFeedEntry)
	admin.PATCH("/products/:id/active", s.adminHandler.SetProductActive)
	admin.POST("/media", s.adminHandler.UploadMedia)
}

// errorHandler maps coded service errors to their status and JSON envelope,
// leaving echo's own HTTP errors alone.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if appErr, ok := apperr.As(err); ok {
		msg := appErr.Message
		if appErr.Err != nil {
			msg = msg + ": " + appErr.Err.Error()
		}
		if jsonErr := c.JSON(appErr.HTTPStatus(), dto.ErrorResponse{
			Code:  appErr.Code,
			Error: msg,
		}); jsonErr != nil {
			log.Println("write error response:", jsonErr)
		}
		return
	}

	if httpErr, ok := err.(*echo.HTTPError); ok {
		msg, _ := httpErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(httpErr.Code)
		}
		code := apperr.CodeValidation
		switch httpErr.Code {
		case http.StatusUnauthorized:
			code = apperr.CodeUnauthorized
		case http.StatusForbidden:
			code = apperr.CodeForbidden
		case http.StatusNotFound:
			code = apperr.CodeNotFound
		case http.StatusInternalServerError:
			code = apperr.CodePersistence
		}
		if jsonErr := c.JSON(httpErr.Code, dto.ErrorResponse{
			Code:  code,
			Error: msg,
		}); jsonErr != nil {
			log.Println("write error response:", jsonErr)
		}
		return
	}

	log.Println("unhandled error:", err)
	if jsonErr := c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Code:  apperr.CodePersistence,
		Error: "internal error",
	}); jsonErr != nil {
		log.Println("write error response:", jsonErr)
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
