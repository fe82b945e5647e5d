package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"storefront-api/internal/apperr"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"strings"
	"testing"
	"time"
)

// ---- service fakes ----

type fakeSyncSvc struct {
	result *dto.SyncResult
	err    error
	gotID  string
}

func (f *fakeSyncSvc) Run(_ context.Context, requestID string) (*dto.SyncResult, error) {
	f.gotID = requestID
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeCheckoutSvc struct {
	resp *dto.CheckoutResponse
	err  error
}

func (f *fakeCheckoutSvc) Capture(_ context.Context, _ *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeStoreSvc struct{}

func (f *fakeStoreSvc) ListProducts(_ context.Context, _ string) ([]*dto.ProductResponse, error) {
	return []*dto.ProductResponse{}, nil
}
func (f *fakeStoreSvc) GetProduct(_ context.Context, _ string) (*dto.ProductResponse, error) {
	return nil, apperr.New(apperr.CodeNotFound, "product not found")
}
func (f *fakeStoreSvc) ListCategories(_ context.Context) ([]string, error) { return nil, nil }
func (f *fakeStoreSvc) ListOrders(_ context.Context, _ string) ([]*dto.OrderResponse, error) {
	return []*dto.OrderResponse{}, nil
}
func (f *fakeStoreSvc) Feed(_ context.Context) ([]*dto.FeedEntryResponse, error) {
	return []*dto.FeedEntryResponse{}, nil
}

type fakeAdminSvc struct {
	token string
	admin bool
}

func (f *fakeAdminSvc) Login(_ context.Context, _, _ string) (string, error) {
	return f.token, nil
}

func (f *fakeAdminSvc) VerifyToken(tokenString string) (string, error) {
	if tokenString != f.token {
		return "", apperr.New(apperr.CodeUnauthorized, "invalid or expired token")
	}
	return "user-1", nil
}

func (f *fakeAdminSvc) IsAdmin(_ context.Context, _ string) (bool, error) { return f.admin, nil }

func (f *fakeAdminSvc) CreateSyncRequest(_ context.Context, userID string) (*model.SyncRequest, error) {
	return &model.SyncRequest{ID: "req-1", UserID: userID, Status: model.SyncStatusPending}, nil
}

func (f *fakeAdminSvc) ListFeed(_ context.Context) ([]*dto.FeedEntryResponse, error) {
	return []*dto.FeedEntryResponse{}, nil
}
func (f *fakeAdminSvc) CreateFeedEntry(_ context.Context, _ *dto.FeedEntryRequest) (*dto.FeedEntryResponse, error) {
	return &dto.FeedEntryResponse{ID: 1}, nil
}
func (f *fakeAdminSvc) UpdateFeedEntry(_ context.Context, _ uint, _ *dto.FeedEntryRequest) error {
	return nil
}
func (f *fakeAdminSvc) DeleteFeedEntry(_ context.Context, _ uint) error { return nil }
func (f *fakeAdminSvc) SetProductActive(_ context.Context, _ uint, _ bool) error {
	return nil
}
func (f *fakeAdminSvc) UploadMedia(_ context.Context, _ io.Reader, _ string) (*dto.MediaUploadResponse, error) {
	return &dto.MediaUploadResponse{URL: "https://cdn/x.jpg"}, nil
}

func testServer(syncSvc *fakeSyncSvc, checkoutSvc *fakeCheckoutSvc, adminSvc *fakeAdminSvc) *Server {
	if syncSvc == nil {
		syncSvc = &fakeSyncSvc{result: &dto.SyncResult{Success: true}}
	}
	if checkoutSvc == nil {
		checkoutSvc = &fakeCheckoutSvc{resp: &dto.CheckoutResponse{PaymentID: "pay-1", OrderID: 1}}
	}
	if adminSvc == nil {
		adminSvc = &fakeAdminSvc{token: "good-token", admin: true}
	}
	return NewServer(syncSvc, checkoutSvc, &fakeStoreSvc{}, adminSvc)
}

func doJSON(t *testing.T, s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.echo.ServeHTTP(rr, req)
	return rr
}

// ---- tests ----

func TestHealth(t *testing.T) {
	rr := doJSON(t, testServer(nil, nil, nil), http.MethodGet, "/api/health", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestSyncMissingRequestID(t *testing.T) {
	syncSvc := &fakeSyncSvc{result: &dto.SyncResult{Success: true}}
	rr := doJSON(t, testServer(syncSvc, nil, nil), http.MethodPost, "/api/sync", `{}`, "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if syncSvc.gotID != "" {
		t.Fatal("service must not be invoked without request_id")
	}
}

func TestSyncErrorEnvelopes(t *testing.T) {
	cases := []struct {
		name       string
		err        *apperr.Error
		wantStatus int
	}{
		{"expired nonce", apperr.New(apperr.CodeUnauthorized, "sync request expired"), http.StatusUnauthorized},
		{"non-admin", apperr.New(apperr.CodeForbidden, "admin access required"), http.StatusForbidden},
		{"catalog down", apperr.New(apperr.CodeUpstream, "list catalog"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := testServer(&fakeSyncSvc{err: tc.err}, nil, nil)
			rr := doJSON(t, s, http.MethodPost, "/api/sync", `{"request_id":"req-1"}`, "")
			if rr.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rr.Code)
			}

			var resp dto.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Code != tc.err.Code {
				t.Errorf("code = %q, want %q", resp.Code, tc.err.Code)
			}
			if resp.Success {
				t.Error("error envelope must carry success=false")
			}
		})
	}
}

func TestSyncSuccessBody(t *testing.T) {
	syncSvc := &fakeSyncSvc{result: &dto.SyncResult{Success: true, Synced: 3, TotalItems: 4, Errors: []string{"variation v9: timeout"}}}
	rr := doJSON(t, testServer(syncSvc, nil, nil), http.MethodPost, "/api/sync", `{"request_id":"req-1"}`, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if syncSvc.gotID != "req-1" {
		t.Fatalf("request id not passed through: %q", syncSvc.gotID)
	}

	var resp dto.SyncResult
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Synced != 3 || resp.TotalItems != 4 || len(resp.Errors) != 1 {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestCheckoutDeclineMapsTo400(t *testing.T) {
	checkoutSvc := &fakeCheckoutSvc{err: apperr.New(apperr.CodePaymentDeclined, "card declined")}
	rr := doJSON(t, testServer(nil, checkoutSvc, nil), http.MethodPost, "/api/checkout",
		`{"source_id":"tok","amount":100,"items":[{"product_id":"p"}]}`, "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCheckoutOrphanMapsTo500(t *testing.T) {
	checkoutSvc := &fakeCheckoutSvc{err: apperr.New(apperr.CodePaymentOrphaned, "charge succeeded but order record failed")}
	rr := doJSON(t, testServer(nil, checkoutSvc, nil), http.MethodPost, "/api/checkout",
		`{"source_id":"tok","amount":100,"items":[{"product_id":"p"}]}`, "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != apperr.CodePaymentOrphaned {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := testServer(nil, nil, nil)

	rr := doJSON(t, s, http.MethodPost, "/api/admin/sync-requests", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}

	rr = doJSON(t, s, http.MethodPost, "/api/admin/sync-requests", "", "bad-token")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rr.Code)
	}

	rr = doJSON(t, s, http.MethodPost, "/api/admin/sync-requests", "", "good-token")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dto.CreateSyncRequestResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RequestID != "req-1" {
		t.Errorf("request id = %q", resp.RequestID)
	}
}

func TestAdminRoutesRejectNonAdmin(t *testing.T) {
	s := testServer(nil, nil, &fakeAdminSvc{token: "good-token", admin: false})

	rr := doJSON(t, s, http.MethodPost, "/api/admin/sync-requests", "", "good-token")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rr.Code)
	}
}

func TestShutdownHonorsContext(t *testing.T) {
	s := testServer(nil, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	// an already-expired deadline must still shut down an idle server cleanly
	expired, cancelExpired := context.WithCancel(context.Background())
	cancelExpired()
	if err := testServer(nil, nil, nil).Shutdown(expired); err != nil && err != context.Canceled {
		t.Fatalf("shutdown with cancelled context: %v", err)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := testServer(nil, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/checkout", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	s.echo.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent && rr.Code != http.StatusOK {
		t.Fatalf("preflight status = %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("missing CORS allow-origin header")
	}
}
