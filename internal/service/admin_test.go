package service

import (
	"context"
	"io"
	"storefront-api/internal/apperr"
	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"testing"
	"time"

	"gorm.io/gorm"
)

type fakeFeedRepo struct {
	entries map[uint]*model.FeedEntry
	nextID  uint
}

func newFakeFeedRepo() *fakeFeedRepo {
	return &fakeFeedRepo{entries: make(map[uint]*model.FeedEntry)}
}

func (f *fakeFeedRepo) ListPublished(_ context.Context) ([]*model.FeedEntry, error) {
	var out []*model.FeedEntry
	for _, e := range f.entries {
		if e.Published {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeFeedRepo) ListAll(_ context.Context) ([]*model.FeedEntry, error) {
	var out []*model.FeedEntry
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeFeedRepo) Create(_ context.Context, entry *model.FeedEntry) error {
	f.nextID++
	entry.ID = f.nextID
	cp := *entry
	f.entries[entry.ID] = &cp
	return nil
}

func (f *fakeFeedRepo) Update(_ context.Context, entry *model.FeedEntry) error {
	if _, ok := f.entries[entry.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *entry
	f.entries[entry.ID] = &cp
	return nil
}

func (f *fakeFeedRepo) Delete(_ context.Context, id uint) error {
	delete(f.entries, id)
	return nil
}

type fakeMedia struct{}

func (f *fakeMedia) Upload(_ context.Context, _ io.Reader, _ string) (*client.MediaUpload, error) {
	return &client.MediaUpload{URL: "https://cdn/x.jpg", PublicID: "x"}, nil
}

func newAdminService(syncRepo *fakeSyncRepo, profileRepo *fakeProfileRepo) AdminService {
	return NewAdminService(
		&config.Auth{
			JWTSecret:     "test-secret",
			TokenTTLHours: 1,
			AdminEmail:    "admin@shop.test",
			AdminPassword: "hunter2hunter2",
		},
		&config.Sync{RequestTTLMinutes: 5},
		syncRepo,
		profileRepo,
		newFakeFeedRepo(),
		newFakeProductRepo(),
		&fakeMedia{},
	)
}

func TestAdminLoginAndVerify(t *testing.T) {
	profileRepo := &fakeProfileRepo{admins: map[string]bool{}}
	svc := newAdminService(newFakeSyncRepo(), profileRepo)

	token, err := svc.Login(context.Background(), "admin@shop.test", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	userID, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID == "" {
		t.Fatal("empty user id from token")
	}

	// login upserts the admin profile
	isAdmin, err := svc.IsAdmin(context.Background(), userID)
	if err != nil || !isAdmin {
		t.Fatalf("admin profile not created: %v %v", isAdmin, err)
	}
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	svc := newAdminService(newFakeSyncRepo(), &fakeProfileRepo{admins: map[string]bool{}})

	_, err := svc.Login(context.Background(), "admin@shop.test", "wrong")
	if appErr, ok := apperr.As(err); !ok || appErr.Code != apperr.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newAdminService(newFakeSyncRepo(), &fakeProfileRepo{admins: map[string]bool{}})

	if _, err := svc.VerifyToken("not-a-jwt"); err == nil {
		t.Fatal("garbage token must be rejected")
	}
}

func TestCreateSyncRequestSetsTTL(t *testing.T) {
	syncRepo := newFakeSyncRepo()
	svc := newAdminService(syncRepo, &fakeProfileRepo{admins: map[string]bool{"user-1": true}})

	before := time.Now()
	req, err := svc.CreateSyncRequest(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("create sync request: %v", err)
	}

	if req.Status != model.SyncStatusPending {
		t.Errorf("status = %q, want pending", req.Status)
	}
	ttl := req.ExpiresAt.Sub(before)
	if ttl < 4*time.Minute || ttl > 6*time.Minute {
		t.Errorf("ttl = %s, want about 5m", ttl)
	}
	if _, ok := syncRepo.requests[req.ID]; !ok {
		t.Error("request not persisted")
	}
}

func TestFeedEntryCRUD(t *testing.T) {
	svc := newAdminService(newFakeSyncRepo(), &fakeProfileRepo{admins: map[string]bool{}})
	ctx := context.Background()

	created, err := svc.CreateFeedEntry(ctx, feedReq("Lookbook Vol. 3"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.UpdateFeedEntry(ctx, created.ID, feedReq("Lookbook Vol. 4")); err != nil {
		t.Fatalf("update: %v", err)
	}

	entries, err := svc.ListFeed(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Title != "Lookbook Vol. 4" {
		t.Fatalf("entries = %+v", entries)
	}

	if err := svc.DeleteFeedEntry(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestCreateFeedEntryRequiresTitle(t *testing.T) {
	svc := newAdminService(newFakeSyncRepo(), &fakeProfileRepo{admins: map[string]bool{}})

	_, err := svc.CreateFeedEntry(context.Background(), feedReq(""))
	if appErr, ok := apperr.As(err); !ok || appErr.Code != apperr.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func feedReq(title string) *dto.FeedEntryRequest {
	return &dto.FeedEntryRequest{Title: title, Published: true}
}
