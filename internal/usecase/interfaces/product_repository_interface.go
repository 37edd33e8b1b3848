package interfaces

import (
	"context"
	"order_management/internal/domain/entities"
)

//go:generate mockgen -source=product_repository_interface.go -destination=mocks/product_repository_interface_mock.go -package=mock_interfaces

// ProductFilter narrows catalog listings. Empty fields do not filter.
//   - NameContains: case-insensitive substring of the product name
//   - Category: exact category
//   - Active: nil means both active and inactive products

type ProductFilter struct {
	NameContains string
	Category     string
	Active       *bool
}

// IProductRepository abstracts DynamoDB persistence for the catalog.
//
// GetByID and SetActive return a zero-value Product when the id does not resolve.

type IProductRepository interface {
	Create(ctx context.Context, p entities.Product) (entities.Product, error)
	GetByID(ctx context.Context, id string) (entities.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]entities.Product, error)
	SetActive(ctx context.Context, id string, active bool) (entities.Product, error)
}
