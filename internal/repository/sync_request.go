package repository

import (
	"context"
	"storefront-api/internal/model"
	"time"

	"gorm.io/gorm"
)

type SyncRequestRepository interface {
	Create(ctx context.Context, req *model.SyncRequest) error
	// FindPending returns the request only while its status is still pending;
	// consumed or unknown ids come back as gorm.ErrRecordNotFound.
	FindPending(ctx context.Context, id string) (*model.SyncRequest, error)
	MarkProcessing(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id string, result string) error
	MarkFailed(ctx context.Context, id string, detail string) error
}

type syncRequestRepoImpl struct {
	db *gorm.DB
}

func NewSyncRequestRepository(db *gorm.DB) SyncRequestRepository {
	return &syncRequestRepoImpl{
		db: db,
	}
}

func (r *syncRequestRepoImpl) Create(ctx context.Context, req *model.SyncRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *syncRequestRepoImpl) FindPending(ctx context.Context, id string) (*model.SyncRequest, error) {
	var req model.SyncRequest
	err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, model.SyncStatusPending).
		First(&req).Error

	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *syncRequestRepoImpl) MarkProcessing(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, model.SyncStatusProcessing, "")
}

func (r *syncRequestRepoImpl) MarkCompleted(ctx context.Context, id string, result string) error {
	return r.setStatus(ctx, id, model.SyncStatusCompleted, result)
}

func (r *syncRequestRepoImpl) MarkFailed(ctx context.Context, id string, detail string) error {
	return r.setStatus(ctx, id, model.SyncStatusFailed, detail)
}

func (r *syncRequestRepoImpl) setStatus(ctx context.Context, id, status, result string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if result != "" {
		updates["result"] = result
	}
	return r.db.WithContext(ctx).Model(&model.SyncRequest{}).
		Where("id = ?", id).
		Updates(updates).Error
}
