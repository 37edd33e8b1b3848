package interfaces

import (
	"context"
	"order_management/internal/domain/entities"
)

//go:generate mockgen -source=customer_repository_interface.go -destination=mocks/customer_repository_interface_mock.go -package=mock_interfaces

// ICustomerRepository abstracts DynamoDB persistence for Customer.
// GetByID returns a zero-value Customer when nothing matches.

type ICustomerRepository interface {
	Create(ctx context.Context, c entities.Customer) (entities.Customer, error)
	GetByID(ctx context.Context, id string) (entities.Customer, error)
	List(ctx context.Context) ([]entities.Customer, error)
}
