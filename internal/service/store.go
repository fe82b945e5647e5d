package service

import (
	"context"
	"encoding/json"
	"fmt"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"time"

	"github.com/shopspring/decimal"
)

// StoreService serves the public storefront reads: product browsing, the
// homepage feed, and a user's order history.
type StoreService interface {
	ListProducts(ctx context.Context, category string) ([]*dto.ProductResponse, error)
	GetProduct(ctx context.Context, slug string) (*dto.ProductResponse, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListOrders(ctx context.Context, userID string) ([]*dto.OrderResponse, error)
	Feed(ctx context.Context) ([]*dto.FeedEntryResponse, error)
}

type storeServiceImpl struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	feedRepo    repository.FeedRepository
}

func NewStoreService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	feedRepo repository.FeedRepository,
) StoreService {
	return &storeServiceImpl{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		feedRepo:    feedRepo,
	}
}

func (s *storeServiceImpl) ListProducts(ctx context.Context, category string) ([]*dto.ProductResponse, error) {
	products, err := s.productRepo.ListActive(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]*dto.ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out, nil
}

func (s *storeServiceImpl) GetProduct(ctx context.Context, slug string) (*dto.ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (s *storeServiceImpl) ListCategories(ctx context.Context) ([]string, error) {
	return s.productRepo.ListCategories(ctx)
}

func (s *storeServiceImpl) ListOrders(ctx context.Context, userID string) ([]*dto.OrderResponse, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]*dto.OrderResponse, len(orders))
	for i, o := range orders {
		items := make([]dto.OrderItemResponse, len(o.Items))
		for j, item := range o.Items {
			items[j] = dto.OrderItemResponse{
				ProductID:   item.ProductID,
				VariantID:   item.VariantID,
				ProductName: item.ProductName,
				Size:        item.Size,
				Color:       item.Color,
				UnitPrice:   item.UnitPrice,
				Quantity:    item.Quantity,
			}
		}
		out[i] = &dto.OrderResponse{
			ID:        o.ID,
			PaymentID: o.PaymentID,
			Status:    o.Status,
			Total:     o.Total,
			Currency:  o.Currency,
			CreatedAt: o.CreatedAt.Format(time.RFC3339),
			Items:     items,
		}
	}
	return out, nil
}

func (s *storeServiceImpl) Feed(ctx context.Context) ([]*dto.FeedEntryResponse, error) {
	entries, err := s.feedRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}

	out := make([]*dto.FeedEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = toFeedResponse(e)
	}
	return out, nil
}

func toProductResponse(p *model.Product) *dto.ProductResponse {
	var urls []string
	if p.ImageURLs != "" {
		_ = json.Unmarshal([]byte(p.ImageURLs), &urls)
	}

	variants := make([]dto.VariantResponse, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = dto.VariantResponse{
			VariationID: v.VariationID,
			Size:        v.Size,
			Color:       v.Color,
			SKU:         v.SKU,
			Stock:       v.Stock,
		}
	}

	return &dto.ProductResponse{
		ID:           p.ID,
		CatalogID:    p.CatalogID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price,
		DisplayPrice: DisplayPrice(p.Price),
		Currency:     p.Currency,
		ImageURLs:    urls,
		Category:     p.Category,
		Variants:     variants,
	}
}

func toFeedResponse(e *model.FeedEntry) *dto.FeedEntryResponse {
	return &dto.FeedEntryResponse{
		ID:        e.ID,
		Title:     e.Title,
		Body:      e.Body,
		MediaURL:  e.MediaURL,
		LinkURL:   e.LinkURL,
		Position:  e.Position,
		Published: e.Published,
	}
}

// DisplayPrice formats minor units as a two-decimal amount string.
func DisplayPrice(minor int64) string {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100)).StringFixed(2)
}
