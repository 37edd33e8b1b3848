package request

type CreatePaymentRequest struct {
	OrderID     string `json:"order_id" binding:"required"`
	Method      string `json:"method" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
}
