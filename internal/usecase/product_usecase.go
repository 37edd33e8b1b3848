package usecase

import (
	"context"
	"errors"
	"order_management/internal/domain/entities"
	"order_management/internal/usecase/interfaces"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidProductName  = errors.New("invalid product name")
	ErrInvalidProductPrice = errors.New("invalid product price")
)

// ProductQuery is the catalog search as received from the boundary.
type ProductQuery struct {
	Name     string
	Category string
	Active   *bool
}

// IProductUseCase is the read side of the catalog plus soft delete.

type IProductUseCase interface {
	List(ctx context.Context, q ProductQuery) ([]entities.Product, error)
	GetByID(ctx context.Context, id string) (entities.Product, error)
	Create(ctx context.Context, name, category string, priceCents int64) (entities.Product, error)
	SetActive(ctx context.Context, id string, active bool) (entities.Product, error)
}

type ProductUseCase struct {
	repo interfaces.IProductRepository
}

var _ IProductUseCase = (*ProductUseCase)(nil)

func NewProductUseCase(repo interfaces.IProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// List searches the catalog. A name or category search shows only active products unless
// Active says otherwise; with no criteria at all every product is returned.
func (u *ProductUseCase) List(ctx context.Context, q ProductQuery) ([]entities.Product, error) {
	filter := interfaces.ProductFilter{
		NameContains: strings.TrimSpace(q.Name),
		Category:     strings.TrimSpace(q.Category),
		Active:       q.Active,
	}
	if filter.Active == nil && (filter.NameContains != "" || filter.Category != "") {
		active := true
		filter.Active = &active
	}
	return u.repo.List(ctx, filter)
}

func (u *ProductUseCase) GetByID(ctx context.Context, id string) (entities.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Product{}, ErrInvalidProductID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Product{}, err
	}
	if p.ID == "" {
		return entities.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (u *ProductUseCase) Create(ctx context.Context, name, category string, priceCents int64) (entities.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Product{}, ErrInvalidProductName
	}
	if priceCents < 0 {
		return entities.Product{}, ErrInvalidProductPrice
	}

	p := entities.Product{
		ID:         uuid.NewString(),
		Name:       name,
		Category:   strings.TrimSpace(category),
		PriceCents: priceCents,
		Active:     true,
	}
	return u.repo.Create(ctx, p)
}

func (u *ProductUseCase) SetActive(ctx context.Context, id string, active bool) (entities.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Product{}, ErrInvalidProductID
	}

	p, err := u.repo.SetActive(ctx, id, active)
	if err != nil {
		return entities.Product{}, err
	}
	if p.ID == "" {
		return entities.Product{}, ErrProductNotFound
	}
	return p, nil
}
