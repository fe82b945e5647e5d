package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"storefront-api/internal/config"
	"storefront-api/internal/model"
	"time"
)

type CatalogClient interface {
	// ListPage fetches one page of catalog objects. An empty cursor fetches
	// the first page; an empty returned cursor means the listing is done.
	ListPage(ctx context.Context, cursor string) (*model.CatalogPage, error)

	// BatchInventoryCounts fetches current counts for the given variation ids.
	BatchInventoryCounts(ctx context.Context, variationIDs []string) ([]model.InventoryCount, error)
}

type catalogClientImpl struct {
	httpClient  *http.Client
	baseApiURL  string
	accessToken string
}

func NewCatalogClient(catalogCfg *config.Catalog) CatalogClient {
	return &catalogClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:  catalogCfg.BaseApiURL,
		accessToken: catalogCfg.AccessToken,
	}
}

func (c *catalogClientImpl) ListPage(ctx context.Context, cursor string) (*model.CatalogPage, error) {
	q := url.Values{}
	q.Set("types", "ITEM,IMAGE,CATEGORY")
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	reqURL := fmt.Sprintf("%s/v2/catalog/list?%s", c.baseApiURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catalog error %d: %s", resp.StatusCode, upstreamDetail(resp.Body))
	}

	var page model.CatalogPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	return &page, nil
}

func (c *catalogClientImpl) BatchInventoryCounts(ctx context.Context, variationIDs []string) ([]model.InventoryCount, error) {
	payload := map[string]interface{}{
		"catalog_object_ids": variationIDs,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v2/inventory/counts/batch-retrieve",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inventory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("inventory error %d: %s", resp.StatusCode, upstreamDetail(resp.Body))
	}

	var result struct {
		Counts []model.InventoryCount `json:"counts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode inventory response: %w", err)
	}

	return result.Counts, nil
}

// upstreamDetail pulls the "detail" field out of the API's error envelope,
// falling back to the raw body.
func upstreamDetail(r io.Reader) string {
	raw, _ := io.ReadAll(r)

	var envelope struct {
		Errors []struct {
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Errors) > 0 && envelope.Errors[0].Detail != "" {
		return envelope.Errors[0].Detail
	}
	return string(raw)
}
