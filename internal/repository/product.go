package repository

import (
	"context"
	"storefront-api/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Upsert(ctx context.Context, product *model.Product) error
	UpsertVariant(ctx context.Context, variant *model.ProductVariant) error
	WriteStock(ctx context.Context, variationID string, quantity int32) error
	FindByCatalogID(ctx context.Context, catalogID string) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	ListActive(ctx context.Context, category string) ([]*model.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

// Upsert writes the product keyed on its external catalog id. Safe to re-run
// against an unchanged catalog; the Active flag is admin-owned and never
// touched on conflict.
func (r *productRepoImpl) Upsert(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "catalog_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":        product.Name,
			"slug":        product.Slug,
			"description": product.Description,
			"price":       product.Price,
			"currency":    product.Currency,
			"image_urls":  product.ImageURLs,
			"category":    product.Category,
			"synced_at":   product.SyncedAt,
			"updated_at":  time.Now(),
		}),
	}).Create(product).Error
}

func (r *productRepoImpl) UpsertVariant(ctx context.Context, variant *model.ProductVariant) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "variation_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"product_id": variant.ProductID,
			"size":       variant.Size,
			"color":      variant.Color,
			"sku":        variant.SKU,
			"updated_at": time.Now(),
		}),
	}).Create(variant).Error
}

func (r *productRepoImpl) WriteStock(ctx context.Context, variationID string, quantity int32) error {
	return r.db.WithContext(ctx).Model(&model.ProductVariant{}).
		Where("variation_id = ?", variationID).
		Updates(map[string]interface{}{
			"stock":      quantity,
			"updated_at": time.Now(),
		}).Error
}

func (r *productRepoImpl) FindByCatalogID(ctx context.Context, catalogID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("catalog_id = ?", catalogID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("slug = ? AND active = ?", slug, true).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) ListActive(ctx context.Context, category string) ([]*model.Product, error) {
	var products []*model.Product
	q := r.db.WithContext(ctx).
		Preload("Variants").
		Where("active = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("name").Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("active = ?", true).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error

	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *productRepoImpl) SetActive(ctx context.Context, id uint, active bool) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"active":     active,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
