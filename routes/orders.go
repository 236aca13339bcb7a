package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/nexon-digital/storefront-api/controllers/order"
	"github.com/nexon-digital/storefront-api/middleware"
)

// SetupOrderRoutes registers the JWT-protected "/orders/*" endpoints.
func SetupOrderRoutes(r *gin.Engine, deps *Deps) {
	orderGroup := r.Group("/orders")
	orderGroup.Use(middleware.RequireAuth)
	{
		orderGroup.POST("", orderControllers.CreateOrder(deps.Orders, deps.Auth))
		orderGroup.GET("", orderControllers.GetMyOrders(deps.Orders))
		orderGroup.GET("/filtered", orderControllers.GetMyOrdersFiltered(deps.Orders))
		orderGroup.GET("/stats", orderControllers.GetMyOrderStats(deps.Orders))
		orderGroup.GET("/:id", orderControllers.GetOrder(deps.Orders))
		orderGroup.POST("/:id/checkout", orderControllers.CreateCheckoutSession(deps.Orders))
	}
}
