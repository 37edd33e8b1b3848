package handlers

import (
	"errors"
	"log"
	"net/http"
	request "order_management/internal/adapter/http/dto/request"
	response "order_management/internal/adapter/http/dto/response"
	"order_management/internal/usecase"
	"order_management/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler is the HTTP boundary of the payments ledger.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePayment appends a payment to the order's ledger and settles the order when covered.
//
//	@Summary		Submit payment
//	@Description	Overpayment is accepted. Payments against PAID or CANCELLED orders are rejected with 409.
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string						false	"Replay protection key"
//	@Param			payment			body		request.CreatePaymentRequest	true	"Payment"
//	@Success		201				{object}	response.PaymentResponse
//	@Failure		400				{object}	pkg.HTTPError
//	@Failure		404				{object}	pkg.HTTPError
//	@Failure		409				{object}	pkg.HTTPError
//	@Router			/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var payload request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := bindingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[payment][handler] create start order_id=%s method=%s amount_cents=%d", payload.OrderID, payload.Method, payload.AmountCents)
	created, err := h.usecase.Submit(c.Request.Context(), payload.OrderID, payload.Method, payload.AmountCents)
	if err != nil {
		log.Printf("[payment][handler] create failed order_id=%s err=%v", payload.OrderID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success order_id=%s payment_id=%s", created.OrderID, created.ID)

	c.JSON(http.StatusCreated, response.FromPayment(created))
}

// ListOrderPayments
//
//	@Summary	List an order's payments, oldest first
//	@Tags		payments
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{array}		response.PaymentResponse
//	@Failure	404	{object}	pkg.HTTPError
//	@Router		/orders/{id}/payments [get]
func (h *PaymentHandler) ListOrderPayments(c *gin.Context) {
	orderID := c.Param("id")

	payments, err := h.usecase.ListByOrderID(c.Request.Context(), orderID)
	if err != nil {
		log.Printf("[payment][handler] list failed order_id=%s err=%v", orderID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// ReconcileOrder re-runs settlement against the stored ledger.
//
//	@Summary	Reconcile order
//	@Tags		payments
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	response.OrderSummaryResponse
//	@Failure	404	{object}	pkg.HTTPError
//	@Failure	409	{object}	pkg.HTTPError
//	@Router		/orders/{id}/reconcile [post]
func (h *PaymentHandler) ReconcileOrder(c *gin.Context) {
	orderID := c.Param("id")

	order, err := h.usecase.Reconcile(c.Request.Context(), orderID)
	if err != nil {
		log.Printf("[payment][handler] reconcile failed order_id=%s err=%v", orderID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] reconcile success order_id=%s status=%s", order.ID, order.Status)

	c.JSON(http.StatusOK, response.FromOrderSummary(order))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentOrderID):
		return fieldError("VALIDATION_ERROR", "order_id", "is required")
	case errors.Is(err, usecase.ErrInvalidPaymentMethod):
		return fieldError("VALIDATION_ERROR", "method", "must be one of PIX, CARD, BOLETO")
	case errors.Is(err, usecase.ErrInvalidPaymentAmount):
		return fieldError("VALIDATION_ERROR", "amount_cents", "must be greater than 0")
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderAlreadyPaid):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_PAID", "Order is already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderCancelled):
		return pkg.NewDomainErrorSimple("ORDER_CANCELLED", "Order is cancelled", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainError("CONCURRENT_UPDATE", "Order was updated concurrently, try again", err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
