package repository

import (
	"context"
	"storefront-api/internal/model"

	"gorm.io/gorm"
)

type FeedRepository interface {
	ListPublished(ctx context.Context) ([]*model.FeedEntry, error)
	ListAll(ctx context.Context) ([]*model.FeedEntry, error)
	Create(ctx context.Context, entry *model.FeedEntry) error
	Update(ctx context.Context, entry *model.FeedEntry) error
	Delete(ctx context.Context, id uint) error
}

type feedRepoImpl struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepoImpl{
		db: db,
	}
}

func (r *feedRepoImpl) ListPublished(ctx context.Context) ([]*model.FeedEntry, error) {
	var entries []*model.FeedEntry
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("position, created_at DESC").
		Find(&entries).Error

	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *feedRepoImpl) ListAll(ctx context.Context) ([]*model.FeedEntry, error) {
	var entries []*model.FeedEntry
	err := r.db.WithContext(ctx).
		Order("position, created_at DESC").
		Find(&entries).Error

	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *feedRepoImpl) Create(ctx context.Context, entry *model.FeedEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *feedRepoImpl) Update(ctx context.Context, entry *model.FeedEntry) error {
	result := r.db.WithContext(ctx).Model(&model.FeedEntry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"title":     entry.Title,
			"body":      entry.Body,
			"media_url": entry.MediaURL,
			"link_url":  entry.LinkURL,
			"position":  entry.Position,
			"published": entry.Published,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *feedRepoImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.FeedEntry{}, id).Error
}
