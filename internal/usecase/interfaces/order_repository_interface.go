package interfaces

import (
	"context"
	"order_management/internal/domain/entities"
)

//go:generate mockgen -source=order_repository_interface.go -destination=mocks/order_repository_interface_mock.go -package=mock_interfaces

// IOrderRepository abstracts DynamoDB persistence for Order (lines included).
//
// The billing flow must be able to:
//   - create an order with its lines in one write
//   - read an order with a strongly consistent read
//   - change status only if nobody else wrote the order since it was read (version check)

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
	// UpdateStatus returns ErrStaleOrder when the stored version differs from expectedVersion.
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus, expectedVersion int64) (entities.Order, error)
}
