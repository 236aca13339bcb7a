package routes

import (
	"github.com/gin-gonic/gin"

	brandControllers "github.com/nexon-digital/storefront-api/controllers/brand"
	categoryControllers "github.com/nexon-digital/storefront-api/controllers/category"
	orderControllers "github.com/nexon-digital/storefront-api/controllers/order"
	productControllers "github.com/nexon-digital/storefront-api/controllers/product"
	statsControllers "github.com/nexon-digital/storefront-api/controllers/stats"
	userControllers "github.com/nexon-digital/storefront-api/controllers/user"
	"github.com/nexon-digital/storefront-api/middleware"
	"github.com/nexon-digital/storefront-api/models"
)

// SetupAdminRoutes registers the "/admin/*" endpoints. Everything here
// requires a valid JWT carrying the admin role.
func SetupAdminRoutes(r *gin.Engine, deps *Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAuth, middleware.RequireRoles(models.RoleAdmin))
	{
		// Catalog management
		adminGroup.POST("/products", productControllers.CreateProduct(deps.Products))
		adminGroup.PUT("/products/:id", productControllers.UpdateProduct(deps.Products))
		adminGroup.DELETE("/products/:id", productControllers.DeleteProduct(deps.Products))
		adminGroup.POST("/products/upload-image", productControllers.UploadProductImage(deps.Products))
		adminGroup.DELETE("/products/images", productControllers.RemoveProductImage(deps.Products))
		adminGroup.GET("/products/export", productControllers.ExportProductsToExcel(deps.Products))

		adminGroup.POST("/categories", categoryControllers.CreateCategory(deps.Categories))
		adminGroup.PUT("/categories/:id", categoryControllers.UpdateCategory(deps.Categories))
		adminGroup.DELETE("/categories/:id", categoryControllers.DeleteCategory(deps.Categories))

		adminGroup.POST("/brands", brandControllers.CreateBrand(deps.Brands))
		adminGroup.PUT("/brands/:id", brandControllers.UpdateBrand(deps.Brands))
		adminGroup.DELETE("/brands/:id", brandControllers.DeleteBrand(deps.Brands))
		adminGroup.POST("/brands/upload-logo", brandControllers.UploadBrandLogo(deps.Brands))

		// Orders
		adminGroup.GET("/orders", orderControllers.GetAllOrdersForAdmin(deps.Orders))
		adminGroup.GET("/orders/:id", orderControllers.GetOrderForAdmin(deps.Orders))
		adminGroup.PUT("/orders/:id/status", orderControllers.UpdateOrderStatus(deps.Orders))
		adminGroup.GET("/orders/feed", orderControllers.OrderFeed)

		// Users
		adminGroup.GET("/users", userControllers.GetUsers(deps.Users))

		// Statistics
		adminGroup.GET("/stats", statsControllers.GetOverallStats(deps.Stats))
		adminGroup.GET("/stats/revenue", statsControllers.GetRevenueStats(deps.Stats))
		adminGroup.GET("/stats/orders", statsControllers.GetOrderStats(deps.Stats))
		adminGroup.GET("/stats/products", statsControllers.GetProductStats(deps.Stats))
		adminGroup.GET("/stats/customers", statsControllers.GetCustomerStats(deps.Stats))
		adminGroup.GET("/stats/revenue-trend", statsControllers.GetRevenueTrend(deps.Stats))
	}
}
