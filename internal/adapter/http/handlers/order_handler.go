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

// OrderHandler is the HTTP boundary of the order builder and the status collaborator.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateOrder builds an order from catalog references.
//
//	@Summary		Create order
//	@Description	Prices are read from the catalog and frozen into the order lines; the order starts as NEW.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string						false	"Replay protection key"
//	@Param			order			body		request.CreateOrderRequest	true	"Customer and items"
//	@Success		201				{object}	response.OrderResponse
//	@Failure		400				{object}	pkg.HTTPError
//	@Failure		404				{object}	pkg.HTTPError
//	@Failure		409				{object}	pkg.HTTPError
//	@Router			/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := bindingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[order][handler] create start customer_id=%s items=%d", payload.CustomerID, len(payload.Items))
	details, err := h.usecase.Create(c.Request.Context(), payload.CustomerID, payload.ToItemInputs())
	if err != nil {
		log.Printf("[order][handler] create failed customer_id=%s err=%v", payload.CustomerID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] create success order_id=%s total_cents=%d", details.Order.ID, details.Order.TotalCents)

	c.JSON(http.StatusCreated, response.FromOrderDetails(details))
}

// ListOrders
//
//	@Summary	List orders, newest first
//	@Tags		orders
//	@Produce	json
//	@Success	200	{array}		response.OrderSummaryResponse
//	@Failure	500	{object}	pkg.HTTPError
//	@Router		/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.usecase.List(c.Request.Context())
	if err != nil {
		log.Printf("[order][handler] list failed err=%v", err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrderSummaries(orders))
}

// GetOrder returns the order with its customer, lines and payments.
//
//	@Summary	Get order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	response.OrderResponse
//	@Failure	404	{object}	pkg.HTTPError
//	@Router		/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")

	details, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[order][handler] get failed order_id=%s err=%v", id, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrderDetails(details))
}

// UpdateOrderStatus changes the status outside the payment path. Only NEW -> CANCELLED is a real transition.
//
//	@Summary	Update order status
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Order ID"
//	@Param		status	body		request.UpdateOrderStatusRequest	true	"Target status"
//	@Success	200		{object}	response.OrderResponse
//	@Failure	400		{object}	pkg.HTTPError
//	@Failure	404		{object}	pkg.HTTPError
//	@Failure	409		{object}	pkg.HTTPError
//	@Router		/orders/{id} [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")
	var payload request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := bindingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[order][handler] update-status start order_id=%s status=%s", id, payload.Status)
	details, err := h.usecase.UpdateStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		log.Printf("[order][handler] update-status failed order_id=%s err=%v", id, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] update-status success order_id=%s status=%s version=%d", id, details.Order.Status, details.Order.Version)

	c.JSON(http.StatusOK, response.FromOrderDetails(details))
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID):
		return fieldError("INVALID_REQUEST", "id", "is required")
	case errors.Is(err, usecase.ErrInvalidCustomerID):
		return fieldError("VALIDATION_ERROR", "customer_id", "is required")
	case errors.Is(err, usecase.ErrEmptyOrder):
		return fieldError("VALIDATION_ERROR", "items", "must contain at least 1 item(s)")
	case errors.Is(err, usecase.ErrInvalidProductID):
		return fieldError("VALIDATION_ERROR", "items.product_id", "is required")
	case errors.Is(err, usecase.ErrInvalidQuantity):
		return fieldError("VALIDATION_ERROR", "items.quantity", "must be at least 1")
	case errors.Is(err, usecase.ErrOrderTotalOverflow):
		return fieldError("VALIDATION_ERROR", "items", "order total exceeds the supported amount")
	case errors.Is(err, usecase.ErrInvalidOrderStatus):
		return fieldError("VALIDATION_ERROR", "status", "must be one of NEW, PAID, CANCELLED")
	case errors.Is(err, usecase.ErrProductInactive):
		return pkg.NewDomainError("PRODUCT_INACTIVE", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCustomerNotFound):
		return pkg.NewDomainError("CUSTOMER_NOT_FOUND", err.Error(), err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainError("PRODUCT_NOT_FOUND", err.Error(), err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainError("INVALID_STATUS_TRANSITION", err.Error(), err, http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainError("CONCURRENT_UPDATE", "Order was updated concurrently, try again", err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
