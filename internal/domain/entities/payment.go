package entities

import (
	"math"
	"strings"
	"time"
)

// PaymentMethod is the closed set of accepted payment instruments.

type PaymentMethod string

const (
	PaymentMethodPix    PaymentMethod = "PIX"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodBoleto PaymentMethod = "BOLETO"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentMethodPix:
		return PaymentMethodPix, true
	case PaymentMethodCard:
		return PaymentMethodCard, true
	case PaymentMethodBoleto:
		return PaymentMethodBoleto, true
	}
	return "", false
}

// Payment is an immutable ledger entry against an order.
//
// Storage model (DynamoDB):
//   - PK: order_id, SK: id
//   - never updated or deleted
//
// PaidAt is stamped server-side when the ledger accepts the payment.

type Payment struct {
	ID          string        `json:"id"`
	OrderID     string        `json:"order_id"`
	Method      PaymentMethod `json:"method"`
	AmountCents int64         `json:"amount_cents"`
	PaidAt      time.Time     `json:"paid_at"`
}

// SumPayments is the exact integer sum of the payment amounts, saturating at math.MaxInt64.
// A saturated sum still covers any order total.
func SumPayments(payments []Payment) int64 {
	var sum int64
	for _, p := range payments {
		if p.AmountCents > 0 && sum > math.MaxInt64-p.AmountCents {
			return math.MaxInt64
		}
		sum += p.AmountCents
	}
	return sum
}
