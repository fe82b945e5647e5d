package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/repository"
	"storefront-api/internal/server"
	"storefront-api/internal/service"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitDBClient(cfg.Database.Driver, cfg.Database.URL)
	catalogClient := client.NewCatalogClient(&cfg.Catalog)
	mediaClient := client.NewCloudinaryClient(&cfg.Cloudinary)

	var paymentClient client.PaymentClient
	if cfg.Payment.Provider == "braintree" {
		paymentClient = client.NewBraintreePaymentClient(&cfg.BrainTree)
	} else {
		paymentClient = client.NewSquarePaymentClient(&cfg.Payment)
	}

	productRepo := repository.NewProductRepository(db)
	syncRepo := repository.NewSyncRequestRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	feedRepo := repository.NewFeedRepository(db)

	syncService := service.NewSyncService(catalogClient, productRepo, syncRepo, profileRepo)
	checkoutService := service.NewCheckoutService(paymentClient, orderRepo, cfg.Payment.Currency)
	storeService := service.NewStoreService(productRepo, orderRepo, feedRepo)
	adminService := service.NewAdminService(&cfg.Auth, &cfg.Sync, syncRepo, profileRepo, feedRepo, productRepo, mediaClient)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(syncService, checkoutService, storeService, adminService)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
