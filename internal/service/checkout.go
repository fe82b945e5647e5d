package service

import (
	"context"
	"log"
	"storefront-api/internal/apperr"
	"storefront-api/internal/client"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
)

type CheckoutService interface {
	Capture(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type checkoutServiceImpl struct {
	paymentClient client.PaymentClient
	orderRepo     repository.OrderRepository
	currency      string
}

func NewCheckoutService(
	paymentClient client.PaymentClient,
	orderRepo repository.OrderRepository,
	currency string,
) CheckoutService {
	return &checkoutServiceImpl{
		paymentClient: paymentClient,
		orderRepo:     orderRepo,
		currency:      currency,
	}
}

// Capture charges the card token and records the order. The idempotency key
// is freshly generated per invocation, so a client resubmitting the same
// checkout gets a second charge; callers must not retry blindly.
func (s *checkoutServiceImpl) Capture(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if req.SourceID == "" {
		return nil, apperr.New(apperr.CodeValidation, "source_id is required")
	}
	if req.Amount <= 0 {
		return nil, apperr.New(apperr.CodeValidation, "amount must be positive")
	}
	if len(req.Items) == 0 {
		return nil, apperr.New(apperr.CodeValidation, "items must not be empty")
	}

	idempotencyKey := uuid.NewString()
	paymentID, err := s.paymentClient.Charge(ctx, req.SourceID, req.Amount, idempotencyKey)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodePaymentDeclined, "payment processor rejected the charge", err)
	}

	order := &model.Order{
		UserID:    req.UserID,
		PaymentID: paymentID,
		Status:    "paid",
		Email:     req.Email,
		Total:     req.Amount,
		Currency:  s.currency,
		ShipName:  req.ShippingAddress.Name,
		ShipLine1: req.ShippingAddress.Line1,
		ShipLine2: req.ShippingAddress.Line2,
		ShipCity:  req.ShippingAddress.City,
		ShipState: req.ShippingAddress.State,
		ShipZip:   req.ShippingAddress.Zip,
		ShipPhone: req.ShippingAddress.Phone,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		// The charge went through; there is no local order row to show for
		// it. Operators find these by payment id in the logs.
		log.Printf("ORPHANED PAYMENT %s: order insert failed: %v", paymentID, err)
		return nil, apperr.Wrap(apperr.CodePaymentOrphaned, "charge succeeded but order record failed", err)
	}

	items := make([]*model.OrderItem, len(req.Items))
	for i, line := range req.Items {
		items[i] = &model.OrderItem{
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			VariantID:   line.VariantID,
			ProductName: line.ProductName,
			Size:        line.Size,
			Color:       line.Color,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		}
	}
	if err := s.orderRepo.CreateOrderItems(ctx, items); err != nil {
		// Order and charge stand; line items are best effort.
		log.Printf("order %d: item insert failed: %v", order.ID, err)
	}

	return &dto.CheckoutResponse{
		PaymentID: paymentID,
		OrderID:   order.ID,
	}, nil
}
