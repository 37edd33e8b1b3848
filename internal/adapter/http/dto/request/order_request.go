package request

import (
	"order_management/internal/usecase"
	"strings"
)

type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gte=1"`
}

// CreateOrderRequest carries only product references and quantities; prices are
// resolved from the catalog when the order is built.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id" binding:"required"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r CreateOrderRequest) ToItemInputs() []usecase.OrderItemInput {
	items := make([]usecase.OrderItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID: strings.TrimSpace(it.ProductID),
			Quantity:  it.Quantity,
		})
	}
	return items
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
