package service

import (
	"context"
	"fmt"

	"example.com/glams-api/internal/model"
	"example.com/glams-api/internal/paystack"
)

// Gateway is the slice of the Paystack client the payment flow needs;
// tests substitute a fake.
type Gateway interface {
	Initialize(ctx context.Context, email string, amount float64, draft model.OrderDraft) (*paystack.InitResult, error)
	Verify(ctx context.Context, reference string) (*paystack.VerifiedTransaction, error)
}

type PaymentService interface {
	Initialize(ctx context.Context, email string, amount float64, draft model.OrderDraft) (*paystack.InitResult, error)
	// Verify checks the transaction with the gateway and persists the order.
	// created is false when the reference had already been processed.
	Verify(ctx context.Context, reference string) (order model.Order, created bool, err error)
}

type paymentService struct {
	gateway Gateway
	orders  OrderService
}

func NewPaymentService(gateway Gateway, orders OrderService) PaymentService {
	return &paymentService{gateway: gateway, orders: orders}
}

func (s *paymentService) Initialize(ctx context.Context, email string, amount float64, draft model.OrderDraft) (*paystack.InitResult, error) {
	if email == "" || amount <= 0 {
		return nil, fmt.Errorf("%w: email and a positive amount are required", ErrValidation)
	}
	return s.gateway.Initialize(ctx, email, amount, draft)
}

func (s *paymentService) Verify(ctx context.Context, reference string) (model.Order, bool, error) {
	if reference == "" {
		return model.Order{}, false, fmt.Errorf("%w: missing reference", ErrValidation)
	}
	tx, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return model.Order{}, false, err
	}
	return s.orders.CreateFromPayment(tx)
}
