package response

import (
	"order_management/internal/domain/entities"
	"order_management/internal/usecase"
	"time"
)

type OrderLineResponse struct {
	ProductID        string `json:"product_id"`
	ProductName      string `json:"product_name"`
	Quantity         int64  `json:"quantity"`
	UnitPriceCents   int64  `json:"unit_price_cents"`
	UnitPriceDisplay string `json:"unit_price_display"`
	LineTotalCents   int64  `json:"line_total_cents"`
	LineTotalDisplay string `json:"line_total_display"`
}

// OrderResponse is the hydrated order: customer, frozen lines and the payment ledger.
type OrderResponse struct {
	ID               string              `json:"id"`
	Status           string              `json:"status"`
	CustomerID       string              `json:"customer_id"`
	CustomerName     string              `json:"customer_name"`
	CustomerEmail    string              `json:"customer_email"`
	TotalCents       int64               `json:"total_cents"`
	TotalDisplay     string              `json:"total_display"`
	TotalPaidCents   int64               `json:"total_paid_cents"`
	TotalPaidDisplay string              `json:"total_paid_display"`
	Items            []OrderLineResponse `json:"items"`
	Payments         []PaymentResponse   `json:"payments"`
	Version          int64               `json:"version"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

type OrderSummaryResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	Status       string    `json:"status"`
	TotalCents   int64     `json:"total_cents"`
	TotalDisplay string    `json:"total_display"`
	PaymentCount int       `json:"payment_count"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromOrderLine(l entities.OrderLine) OrderLineResponse {
	return OrderLineResponse{
		ProductID:        l.ProductID,
		ProductName:      l.ProductName,
		Quantity:         l.Quantity,
		UnitPriceCents:   l.UnitPriceCents,
		UnitPriceDisplay: CentsToDisplay(l.UnitPriceCents),
		LineTotalCents:   l.TotalCents(),
		LineTotalDisplay: CentsToDisplay(l.TotalCents()),
	}
}

func FromOrderDetails(d usecase.OrderDetails) OrderResponse {
	items := make([]OrderLineResponse, 0, len(d.Order.Lines))
	for _, l := range d.Order.Lines {
		items = append(items, FromOrderLine(l))
	}
	paid := d.PaidCents()

	return OrderResponse{
		ID:               d.Order.ID,
		Status:           string(d.Order.Status),
		CustomerID:       d.Order.CustomerID,
		CustomerName:     d.Customer.Name,
		CustomerEmail:    d.Customer.Email,
		TotalCents:       d.Order.TotalCents,
		TotalDisplay:     CentsToDisplay(d.Order.TotalCents),
		TotalPaidCents:   paid,
		TotalPaidDisplay: CentsToDisplay(paid),
		Items:            items,
		Payments:         FromPayments(d.Payments),
		Version:          d.Order.Version,
		CreatedAt:        d.Order.CreatedAt,
		UpdatedAt:        d.Order.UpdatedAt,
	}
}

func FromOrderSummary(o entities.Order) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		Status:       string(o.Status),
		TotalCents:   o.TotalCents,
		TotalDisplay: CentsToDisplay(o.TotalCents),
		PaymentCount: len(o.PaymentIDs),
		Version:      o.Version,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func FromOrderSummaries(orders []entities.Order) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrderSummary(o))
	}
	return out
}
