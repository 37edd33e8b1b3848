package response

import "order_management/internal/domain/entities"

type ProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	PriceCents   int64  `json:"price_cents"`
	PriceDisplay string `json:"price_display"`
	Active       bool   `json:"active"`
}

func FromProduct(p entities.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		PriceCents:   p.PriceCents,
		PriceDisplay: CentsToDisplay(p.PriceCents),
		Active:       p.Active,
	}
}

func FromProducts(products []entities.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}
