package response

import (
	"order_management/internal/domain/entities"
	"time"
)

type PaymentResponse struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"order_id"`
	Method        string    `json:"method"`
	AmountCents   int64     `json:"amount_cents"`
	AmountDisplay string    `json:"amount_display"`
	PaidAt        time.Time `json:"paid_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Method:        string(p.Method),
		AmountCents:   p.AmountCents,
		AmountDisplay: CentsToDisplay(p.AmountCents),
		PaidAt:        p.PaidAt,
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}
