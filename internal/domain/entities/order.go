package entities

import (
	"math"
	"strings"
	"time"
)

// OrderStatus is the order lifecycle state.
//
// Transitions:
//   - NEW -> PAID: payment ledger, once cumulative payments cover the total
//   - NEW -> CANCELLED: explicit status update
//   - PAID and CANCELLED are terminal

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus resolves the textual name of a status, case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case OrderStatusNew:
		return OrderStatusNew, true
	case OrderStatusPaid:
		return OrderStatusPaid, true
	case OrderStatusCancelled:
		return OrderStatusCancelled, true
	}
	return "", false
}

// IsTerminal reports whether no further transition may leave the status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// OrderLine is owned by its Order and lives and dies with it.
// UnitPriceCents and ProductName are frozen copies taken when the order was built.
type OrderLine struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

func (l OrderLine) TotalCents() int64 {
	return l.Quantity * l.UnitPriceCents
}

// Order is the aggregate the reconciliation logic works on.
//
// Storage model (DynamoDB):
//   - PK: id
//   - lines embedded (written atomically with the order)
//   - payment_ids: non-owning references into the payments ledger
//   - version: optimistic concurrency token, bumped on every status write
//
// Invariant: TotalCents == Σ line.Quantity × line.UnitPriceCents, fixed at creation.

type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	TotalCents int64       `json:"total_cents"`
	Lines      []OrderLine `json:"lines"`
	PaymentIDs []string    `json:"payment_ids"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Version    int64       `json:"version"`
}

// LinesTotal sums quantity × unit price over the given lines.
// ok is false when a line or the running total does not fit in int64, or a line is negative.
func LinesTotal(lines []OrderLine) (total int64, ok bool) {
	for _, l := range lines {
		if l.Quantity < 0 || l.UnitPriceCents < 0 {
			return 0, false
		}
		if l.UnitPriceCents != 0 && l.Quantity > math.MaxInt64/l.UnitPriceCents {
			return 0, false
		}
		line := l.TotalCents()
		if total > math.MaxInt64-line {
			return 0, false
		}
		total += line
	}
	return total, true
}

// SettlementStatus decides the status an order should have given what has been paid.
// Only NEW moves, and only to PAID; PAID and CANCELLED are returned unchanged.
func SettlementStatus(current OrderStatus, totalCents, paidCents int64) OrderStatus {
	if current != OrderStatusNew {
		return current
	}
	if paidCents >= totalCents {
		return OrderStatusPaid
	}
	return current
}
