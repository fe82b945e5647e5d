package client

import (
	"context"
	"fmt"
	"storefront-api/internal/config"

	"github.com/braintree-go/braintree-go"
)

// Alternative card gateway. Braintree has no idempotency-key concept on
// transactions, so the key passed by the caller is ignored here.

type braintreeClientImpl struct {
	gateway *braintree.Braintree
}

func NewBraintreePaymentClient(cfg *config.Braintree) PaymentClient {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeClientImpl{
		gateway: gateway,
	}
}

func (c *braintreeClientImpl) Charge(ctx context.Context, sourceToken string, amount int64, _ string) (string, error) {
	req := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(amount, 2),
		PaymentMethodNonce: sourceToken,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	}

	tx, err := c.gateway.Transaction().Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("transaction creation failed: %w", err)
	}

	if tx.Status == braintree.TransactionStatusProcessorDeclined {
		return "", fmt.Errorf("transaction declined by processor: %s", tx.ProcessorResponseText)
	}

	return tx.Id, nil
}
