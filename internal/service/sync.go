package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"storefront-api/internal/apperr"
	"storefront-api/internal/client"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SyncService interface {
	// Run consumes the sync-request nonce and reconciles the external catalog
	// into the product tables.
	Run(ctx context.Context, requestID string) (*dto.SyncResult, error)
}

type syncServiceImpl struct {
	catalogClient client.CatalogClient
	productRepo   repository.ProductRepository
	syncRepo      repository.SyncRequestRepository
	profileRepo   repository.ProfileRepository
}

func NewSyncService(
	catalogClient client.CatalogClient,
	productRepo repository.ProductRepository,
	syncRepo repository.SyncRequestRepository,
	profileRepo repository.ProfileRepository,
) SyncService {
	return &syncServiceImpl{
		catalogClient: catalogClient,
		productRepo:   productRepo,
		syncRepo:      syncRepo,
		profileRepo:   profileRepo,
	}
}

func (s *syncServiceImpl) Run(ctx context.Context, requestID string) (*dto.SyncResult, error) {
	req, err := s.syncRepo.FindPending(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeUnauthorized, "invalid or already used sync request")
		}
		return nil, apperr.Wrap(apperr.CodePersistence, "load sync request", err)
	}

	if time.Now().After(req.ExpiresAt) {
		if err := s.syncRepo.MarkFailed(ctx, req.ID, "sync request expired"); err != nil {
			log.Println("mark expired sync request failed:", err)
		}
		return nil, apperr.New(apperr.CodeUnauthorized, "sync request expired")
	}

	isAdmin, err := s.profileRepo.IsAdmin(ctx, req.UserID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodePersistence, "check admin profile", err)
	}
	if !isAdmin {
		if err := s.syncRepo.MarkFailed(ctx, req.ID, "requesting user is not an admin"); err != nil {
			log.Println("mark forbidden sync request failed:", err)
		}
		return nil, apperr.New(apperr.CodeForbidden, "admin access required")
	}

	if err := s.syncRepo.MarkProcessing(ctx, req.ID); err != nil {
		return nil, apperr.Wrap(apperr.CodePersistence, "mark sync request processing", err)
	}

	result, err := s.reconcile(ctx)
	if err != nil {
		if markErr := s.syncRepo.MarkFailed(ctx, req.ID, err.Error()); markErr != nil {
			log.Println("mark sync request failed:", markErr)
		}
		return nil, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		payload = []byte(`{}`)
	}
	if err := s.syncRepo.MarkCompleted(ctx, req.ID, string(payload)); err != nil {
		log.Println("mark sync request completed:", err)
	}

	return result, nil
}

// reconcile pages the whole catalog, upserts products and variants, then
// writes inventory counts. A listing failure aborts; per-item database
// failures are collected and returned alongside the success count.
func (s *syncServiceImpl) reconcile(ctx context.Context) (*dto.SyncResult, error) {
	var objects []model.CatalogObject
	cursor := ""
	for {
		page, err := s.catalogClient.ListPage(ctx, cursor)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeUpstream, "list catalog", err)
		}
		objects = append(objects, page.Objects...)
		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}

	imageURLs := make(map[string]string)
	categoryNames := make(map[string]string)
	var items []model.CatalogObject
	for _, obj := range objects {
		switch obj.Type {
		case model.CatalogObjectImage:
			if obj.ImageData != nil {
				imageURLs[obj.ID] = obj.ImageData.URL
			}
		case model.CatalogObjectCategory:
			if obj.CategoryData != nil {
				categoryNames[obj.ID] = obj.CategoryData.Name
			}
		case model.CatalogObjectItem:
			if obj.ItemData != nil {
				items = append(items, obj)
			}
		}
	}

	now := time.Now()
	synced := 0
	var errs []string
	var variationIDs []string

	for _, item := range items {
		data := item.ItemData
		slug := Slugify(data.Name)

		var urls []string
		for _, imageID := range data.ImageIDs {
			if u, ok := imageURLs[imageID]; ok {
				urls = append(urls, u)
			}
		}
		encodedURLs, _ := json.Marshal(urls)

		category, ok := categoryNames[data.CategoryID]
		if !ok || category == "" {
			category = "Uncategorized"
		}

		// Price comes from the first listed variation only; items with
		// differing per-variation prices collapse to the first.
		var price int64
		currency := "USD"
		if len(data.Variations) > 0 && data.Variations[0].VariationData != nil {
			if m := data.Variations[0].VariationData.PriceMoney; m != nil {
				price = m.Amount
				if m.Currency != "" {
					currency = m.Currency
				}
			}
		}

		product := &model.Product{
			CatalogID:   item.ID,
			Name:        data.Name,
			Slug:        slug,
			Description: data.Description,
			Price:       price,
			Currency:    currency,
			ImageURLs:   string(encodedURLs),
			Category:    category,
			Active:      true,
			SyncedAt:    now,
		}
		if err := s.productRepo.Upsert(ctx, product); err != nil {
			errs = append(errs, fmt.Sprintf("item %s: %v", item.ID, err))
			continue
		}

		stored, err := s.productRepo.FindByCatalogID(ctx, item.ID)
		if err != nil {
			errs = append(errs, fmt.Sprintf("item %s: reload after upsert: %v", item.ID, err))
			continue
		}

		for _, variation := range data.Variations {
			variationIDs = append(variationIDs, variation.ID)

			size := "One Size"
			sku := ""
			if variation.VariationData != nil {
				if variation.VariationData.Name != "" {
					size = variation.VariationData.Name
				}
				sku = variation.VariationData.SKU
			}
			if sku == "" {
				sku = fallbackSKU(slug, variation.ID)
			}

			variant := &model.ProductVariant{
				VariationID: variation.ID,
				ProductID:   stored.ID,
				Size:        size,
				Color:       "Default",
				SKU:         sku,
			}
			if err := s.productRepo.UpsertVariant(ctx, variant); err != nil {
				errs = append(errs, fmt.Sprintf("variation %s: %v", variation.ID, err))
			}
		}

		synced++
	}

	if len(variationIDs) > 0 {
		if err := s.writeInventory(ctx, variationIDs); err != nil {
			errs = append(errs, err.Error())
		}
	}

	return &dto.SyncResult{
		Success:    true,
		Synced:     synced,
		TotalItems: len(items),
		Errors:     errs,
	}, nil
}

// writeInventory overwrites stock for counts reported in stock. Other states
// leave the previously stored quantity untouched.
func (s *syncServiceImpl) writeInventory(ctx context.Context, variationIDs []string) error {
	counts, err := s.catalogClient.BatchInventoryCounts(ctx, variationIDs)
	if err != nil {
		return fmt.Errorf("inventory counts: %w", err)
	}

	for _, count := range counts {
		if count.State != model.InventoryStateInStock {
			continue
		}
		parsed, err := decimal.NewFromString(count.Quantity)
		if err != nil {
			log.Printf("skip unparsable quantity %q for %s", count.Quantity, count.CatalogObjectID)
			continue
		}
		qty := parsed.IntPart()
		if qty > math.MaxInt32 {
			log.Printf("clamp oversized quantity %q for %s", count.Quantity, count.CatalogObjectID)
			qty = math.MaxInt32
		}
		if qty < 0 {
			log.Printf("clamp negative quantity %q for %s", count.Quantity, count.CatalogObjectID)
			qty = 0
		}
		if err := s.productRepo.WriteStock(ctx, count.CatalogObjectID, int32(qty)); err != nil {
			log.Printf("write stock for %s: %v", count.CatalogObjectID, err)
		}
	}

	return nil
}

func fallbackSKU(slug, variationID string) string {
	suffix := variationID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return slug + "-" + suffix
}
