package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"storefront-api/internal/apperr"
	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AdminService interface {
	Login(ctx context.Context, email, password string) (string, error)
	VerifyToken(tokenString string) (string, error) // returns user id
	IsAdmin(ctx context.Context, userID string) (bool, error)

	CreateSyncRequest(ctx context.Context, userID string) (*model.SyncRequest, error)

	ListFeed(ctx context.Context) ([]*dto.FeedEntryResponse, error)
	CreateFeedEntry(ctx context.Context, req *dto.FeedEntryRequest) (*dto.FeedEntryResponse, error)
	UpdateFeedEntry(ctx context.Context, id uint, req *dto.FeedEntryRequest) error
	DeleteFeedEntry(ctx context.Context, id uint) error

	SetProductActive(ctx context.Context, productID uint, active bool) error
	UploadMedia(ctx context.Context, file io.Reader, filename string) (*dto.MediaUploadResponse, error)
}

type adminServiceImpl struct {
	authCfg     *config.Auth
	syncTTL     time.Duration
	syncRepo    repository.SyncRequestRepository
	profileRepo repository.ProfileRepository
	feedRepo    repository.FeedRepository
	productRepo repository.ProductRepository
	mediaClient client.MediaClient
}

func NewAdminService(
	authCfg *config.Auth,
	syncCfg *config.Sync,
	syncRepo repository.SyncRequestRepository,
	profileRepo repository.ProfileRepository,
	feedRepo repository.FeedRepository,
	productRepo repository.ProductRepository,
	mediaClient client.MediaClient,
) AdminService {
	return &adminServiceImpl{
		authCfg:     authCfg,
		syncTTL:     time.Duration(syncCfg.RequestTTLMinutes) * time.Minute,
		syncRepo:    syncRepo,
		profileRepo: profileRepo,
		feedRepo:    feedRepo,
		productRepo: productRepo,
		mediaClient: mediaClient,
	}
}

// Login checks the configured back-office credentials, makes sure an admin
// profile row exists for them, and returns a signed session token.
func (s *adminServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperr.New(apperr.CodeValidation, "email and password are required")
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.authCfg.AdminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.authCfg.AdminPassword)) == 1
	if !emailOK || !passOK {
		return "", apperr.New(apperr.CodeUnauthorized, "invalid credentials")
	}

	// Stable id derived from email so restarts keep the same profile row.
	userID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(email)).String()
	if err := s.profileRepo.Upsert(ctx, &model.Profile{
		UserID:  userID,
		Email:   email,
		IsAdmin: true,
	}); err != nil {
		return "", apperr.Wrap(apperr.CodePersistence, "upsert admin profile", err)
	}

	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(time.Duration(s.authCfg.TokenTTLHours) * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.authCfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

func (s *adminServiceImpl) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.authCfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", apperr.New(apperr.CodeUnauthorized, "invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperr.New(apperr.CodeUnauthorized, "invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", apperr.New(apperr.CodeUnauthorized, "token missing subject")
	}

	return sub, nil
}

func (s *adminServiceImpl) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return s.profileRepo.IsAdmin(ctx, userID)
}

// CreateSyncRequest issues the single-use nonce the sync endpoint consumes.
// Passing only this id to the sync boundary keeps the session token off that
// channel; a leaked nonce is single-use and time-boxed.
func (s *adminServiceImpl) CreateSyncRequest(ctx context.Context, userID string) (*model.SyncRequest, error) {
	req := &model.SyncRequest{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    model.SyncStatusPending,
		ExpiresAt: time.Now().Add(s.syncTTL),
	}
	if err := s.syncRepo.Create(ctx, req); err != nil {
		return nil, apperr.Wrap(apperr.CodePersistence, "create sync request", err)
	}
	return req, nil
}

func (s *adminServiceImpl) ListFeed(ctx context.Context) ([]*dto.FeedEntryResponse, error) {
	entries, err := s.feedRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feed entries: %w", err)
	}

	out := make([]*dto.FeedEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = toFeedResponse(e)
	}
	return out, nil
}

func (s *adminServiceImpl) CreateFeedEntry(ctx context.Context, req *dto.FeedEntryRequest) (*dto.FeedEntryResponse, error) {
	if req.Title == "" {
		return nil, apperr.New(apperr.CodeValidation, "title is required")
	}

	entry := &model.FeedEntry{
		Title:     req.Title,
		Body:      req.Body,
		MediaURL:  req.MediaURL,
		LinkURL:   req.LinkURL,
		Position:  req.Position,
		Published: req.Published,
	}
	if err := s.feedRepo.Create(ctx, entry); err != nil {
		return nil, apperr.Wrap(apperr.CodePersistence, "create feed entry", err)
	}

	return toFeedResponse(entry), nil
}

func (s *adminServiceImpl) UpdateFeedEntry(ctx context.Context, id uint, req *dto.FeedEntryRequest) error {
	if req.Title == "" {
		return apperr.New(apperr.CodeValidation, "title is required")
	}

	return s.feedRepo.Update(ctx, &model.FeedEntry{
		ID:        id,
		Title:     req.Title,
		Body:      req.Body,
		MediaURL:  req.MediaURL,
		LinkURL:   req.LinkURL,
		Position:  req.Position,
		Published: req.Published,
	})
}

func (s *adminServiceImpl) DeleteFeedEntry(ctx context.Context, id uint) error {
	return s.feedRepo.Delete(ctx, id)
}

func (s *adminServiceImpl) SetProductActive(ctx context.Context, productID uint, active bool) error {
	return s.productRepo.SetActive(ctx, productID, active)
}

func (s *adminServiceImpl) UploadMedia(ctx context.Context, file io.Reader, filename string) (*dto.MediaUploadResponse, error) {
	upload, err := s.mediaClient.Upload(ctx, file, filename)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeUpstream, "media upload failed", err)
	}

	return &dto.MediaUploadResponse{
		URL:      upload.URL,
		PublicID: upload.PublicID,
	}, nil
}
