package interfaces

import (
	"context"
	"order_management/internal/domain/entities"
)

//go:generate mockgen -source=payment_repository_interface.go -destination=mocks/payment_repository_interface_mock.go -package=mock_interfaces

// IPaymentRepository is the append-only payments ledger.
//
// Append writes the payment and the order's next status in a single transaction.
// The order write is conditioned on order.Version; when it does not match, nothing is
// written and ErrStaleOrder is returned.

type IPaymentRepository interface {
	Append(ctx context.Context, p entities.Payment, order entities.Order, next entities.OrderStatus) error
	ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error)
}
