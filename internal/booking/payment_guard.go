package booking

import (
	"context"
	"fmt"
)

// PaymentGuard rejects a payment reference that already backs a booking,
// whatever that booking's status.
type PaymentGuard struct {
	repo Repository
}

func NewPaymentGuard(repo Repository) *PaymentGuard {
	return &PaymentGuard{repo: repo}
}

func (g *PaymentGuard) Ensure(ctx context.Context, paymentID string) error {
	exists, err := g.repo.PaymentIDExists(ctx, paymentID)
	if err != nil {
		return internalError(fmt.Errorf("check payment id: %w", err))
	}
	if exists {
		return paymentReusedError(nil)
	}
	return nil
}
