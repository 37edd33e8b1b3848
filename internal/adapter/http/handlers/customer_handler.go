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

type CustomerHandler struct {
	usecase usecase.ICustomerUseCase
}

func NewCustomerHandler(uc usecase.ICustomerUseCase) *CustomerHandler {
	return &CustomerHandler{usecase: uc}
}

// CreateCustomer
//
//	@Summary	Register customer
//	@Tags		customers
//	@Accept		json
//	@Produce	json
//	@Param		customer	body		request.CreateCustomerRequest	true	"Customer"
//	@Success	201			{object}	response.CustomerResponse
//	@Failure	400			{object}	pkg.HTTPError
//	@Failure	409			{object}	pkg.HTTPError
//	@Router		/customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var payload request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := bindingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	customer, err := h.usecase.Create(c.Request.Context(), payload.Name, payload.Email)
	if err != nil {
		log.Printf("[customer][handler] create failed email=%s err=%v", payload.Email, err)
		appErr := mapCustomerError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[customer][handler] create success customer_id=%s", customer.ID)

	c.JSON(http.StatusCreated, response.FromCustomer(customer))
}

// GetCustomer
//
//	@Summary	Get customer
//	@Tags		customers
//	@Produce	json
//	@Param		id	path		string	true	"Customer ID"
//	@Success	200	{object}	response.CustomerResponse
//	@Failure	404	{object}	pkg.HTTPError
//	@Router		/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapCustomerError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCustomer(customer))
}

// ListCustomers
//
//	@Summary	List customers
//	@Tags		customers
//	@Produce	json
//	@Success	200	{array}	response.CustomerResponse
//	@Router		/customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.usecase.List(c.Request.Context())
	if err != nil {
		log.Printf("[customer][handler] list failed err=%v", err)
		appErr := mapCustomerError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCustomers(customers))
}

func mapCustomerError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCustomerID):
		return fieldError("INVALID_REQUEST", "id", "is required")
	case errors.Is(err, usecase.ErrInvalidCustomerName):
		return fieldError("VALIDATION_ERROR", "name", "is required")
	case errors.Is(err, usecase.ErrInvalidCustomerEmail):
		return fieldError("VALIDATION_ERROR", "email", "must be a valid email")
	case errors.Is(err, usecase.ErrCustomerNotFound):
		return pkg.NewDomainErrorSimple("CUSTOMER_NOT_FOUND", "Customer not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCustomerEmailTaken):
		return pkg.NewDomainErrorSimple("EMAIL_ALREADY_USED", "Email already registered", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
