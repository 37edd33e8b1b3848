package entities

// Product is a catalog item.
//
// Monetary representation:
//   - PriceCents is the current sale price in minor currency units.
//     Orders copy it into their lines at creation time and never read it again.
//
// Active=false hides the product from default catalog queries (soft delete);
// historical order lines keep referencing it.

type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
	Active     bool   `json:"active"`
}
