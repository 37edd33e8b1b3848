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

type ProductHandler struct {
	usecase usecase.IProductUseCase
}

func NewProductHandler(uc usecase.IProductUseCase) *ProductHandler {
	return &ProductHandler{usecase: uc}
}

// ListProducts searches the catalog. A name or category search shows active products unless active is given.
//
//	@Summary	Search products
//	@Tags		products
//	@Produce	json
//	@Param		name		query		string	false	"Case-insensitive name fragment"
//	@Param		category	query		string	false	"Exact category"
//	@Param		active		query		bool	false	"Active flag"
//	@Success	200			{array}		response.ProductResponse
//	@Failure	400			{object}	pkg.HTTPError
//	@Router		/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var q request.ProductSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		appErr := bindingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	query, err := q.ToProductQuery()
	if err != nil {
		appErr := fieldError("VALIDATION_ERROR", "active", "must be true or false")
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	products, err := h.usecase.List(c.Request.Context(), query)
	if err != nil {
		log.Printf("[product][handler] list failed err=%v", err)
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProducts(products))
}

// GetProduct
//
//	@Summary	Get product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	response.ProductResponse
//	@Failure	404	{object}	pkg.HTTPError
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProduct(product))
}

// CreateProduct
//
//	@Summary	Create product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		product	body		request.CreateProductRequest	true	"Product"
//	@Success	201		{object}	response.ProductResponse
//	@Failure	400		{object}	pkg.HTTPError
//	@Router		/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var payload request.CreateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := bindingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	product, err := h.usecase.Create(c.Request.Context(), payload.Name, payload.Category, *payload.PriceCents)
	if err != nil {
		log.Printf("[product][handler] create failed name=%s err=%v", payload.Name, err)
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[product][handler] create success product_id=%s", product.ID)

	c.JSON(http.StatusCreated, response.FromProduct(product))
}

// UpdateProduct soft-deletes (active=false) or restores a product. Existing orders keep their frozen lines.
//
//	@Summary	Activate or deactivate product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Product ID"
//	@Param		product	body		request.UpdateProductRequest	true	"Active flag"
//	@Success	200		{object}	response.ProductResponse
//	@Failure	400		{object}	pkg.HTTPError
//	@Failure	404		{object}	pkg.HTTPError
//	@Router		/products/{id} [patch]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var payload request.UpdateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := bindingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	product, err := h.usecase.SetActive(c.Request.Context(), id, *payload.Active)
	if err != nil {
		log.Printf("[product][handler] set-active failed product_id=%s err=%v", id, err)
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[product][handler] set-active success product_id=%s active=%t", id, product.Active)

	c.JSON(http.StatusOK, response.FromProduct(product))
}

func mapProductError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProductID):
		return fieldError("INVALID_REQUEST", "id", "is required")
	case errors.Is(err, usecase.ErrInvalidProductName):
		return fieldError("VALIDATION_ERROR", "name", "is required")
	case errors.Is(err, usecase.ErrInvalidProductPrice):
		return fieldError("VALIDATION_ERROR", "price_cents", "must be at least 0")
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainErrorSimple("PRODUCT_NOT_FOUND", "Product not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
