package routes

import (
	"order_management/internal/adapter/http/handlers"
	"order_management/internal/adapter/http/middleware"
	"order_management/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders   = "/orders"
	PathPayments = "/payments"
)

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler, paymentHandler *handlers.PaymentHandler, idempotency interfaces.IIdempotencyStore) {
	orders := rg.Group(PathOrders)
	{
		orders.GET("", orderHandler.ListOrders)
		orders.POST("", middleware.Idempotency(idempotency, "orders"), orderHandler.CreateOrder)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PATCH("/:id", orderHandler.UpdateOrderStatus)

		// ledger views of a single order
		orders.GET("/:id/payments", paymentHandler.ListOrderPayments)
		orders.POST("/:id/reconcile", paymentHandler.ReconcileOrder)
	}
}

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, idempotency interfaces.IIdempotencyStore) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("", middleware.Idempotency(idempotency, "payments"), paymentHandler.CreatePayment)
	}
}
