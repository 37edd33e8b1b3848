package request

import (
	"errors"
	"order_management/internal/usecase"
	"strconv"
	"strings"
)

var ErrInvalidActiveFilter = errors.New("active must be true or false")

type CreateProductRequest struct {
	Name       string `json:"name" binding:"required"`
	Category   string `json:"category"`
	PriceCents *int64 `json:"price_cents" binding:"required,gte=0"`
}

// UpdateProductRequest toggles the soft-delete flag.
type UpdateProductRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ProductSearchQuery is bound from ?name=&category=&active=.
type ProductSearchQuery struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Active   string `form:"active"`
}

func (q ProductSearchQuery) ToProductQuery() (usecase.ProductQuery, error) {
	out := usecase.ProductQuery{
		Name:     strings.TrimSpace(q.Name),
		Category: strings.TrimSpace(q.Category),
	}
	if v := strings.TrimSpace(q.Active); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return usecase.ProductQuery{}, ErrInvalidActiveFilter
		}
		out.Active = &active
	}
	return out, nil
}
