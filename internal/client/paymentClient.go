package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"storefront-api/internal/config"
	"time"
)

// PaymentClient charges a tokenized card. The idempotency key is generated
// fresh by the caller per invocation.
type PaymentClient interface {
	Charge(ctx context.Context, sourceToken string, amount int64, idempotencyKey string) (string, error)
}

type squareClientImpl struct {
	httpClient  *http.Client
	baseApiURL  string
	accessToken string
	currency    string
}

func NewSquarePaymentClient(paymentCfg *config.Payment) PaymentClient {
	return &squareClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:  paymentCfg.BaseApiURL,
		accessToken: paymentCfg.AccessToken,
		currency:    paymentCfg.Currency,
	}
}

func (c *squareClientImpl) Charge(ctx context.Context, sourceToken string, amount int64, idempotencyKey string) (string, error) {
	payload := map[string]interface{}{
		"source_id":       sourceToken,
		"idempotency_key": idempotencyKey,
		"amount_money": map[string]interface{}{
			"amount":   amount,
			"currency": c.currency,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v2/payments",
		bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("payment declined: %s", upstreamDetail(resp.Body))
	}

	var result struct {
		Payment struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"payment"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode payment response: %w", err)
	}

	return result.Payment.ID, nil
}
