package routes

import (
	"order_management/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathProducts  = "/products"
	PathCustomers = "/customers"
)

func addProductRoutes(rg *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	products := rg.Group(PathProducts)
	{
		products.GET("", productHandler.ListProducts)
		products.POST("", productHandler.CreateProduct)
		products.GET("/:id", productHandler.GetProduct)
		// soft delete / restore
		products.PATCH("/:id", productHandler.UpdateProduct)
	}
}

func addCustomerRoutes(rg *gin.RouterGroup, customerHandler *handlers.CustomerHandler) {
	customers := rg.Group(PathCustomers)
	{
		customers.GET("", customerHandler.ListCustomers)
		customers.POST("", customerHandler.CreateCustomer)
		customers.GET("/:id", customerHandler.GetCustomer)
	}
}
