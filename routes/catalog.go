package routes

import (
	"github.com/gin-gonic/gin"

	brandControllers "github.com/nexon-digital/storefront-api/controllers/brand"
	categoryControllers "github.com/nexon-digital/storefront-api/controllers/category"
	productControllers "github.com/nexon-digital/storefront-api/controllers/product"
	reviewControllers "github.com/nexon-digital/storefront-api/controllers/review"
	"github.com/nexon-digital/storefront-api/middleware"
)

// SetupCatalogRoutes registers the public product, category, brand and
// review browsing endpoints.
func SetupCatalogRoutes(r *gin.Engine, deps *Deps) {
	productGroup := r.Group("/products")
	{
		productGroup.GET("", productControllers.GetProducts(deps.Products))
		productGroup.GET("/slug/:slug", productControllers.GetProductBySlug(deps.Products))
		productGroup.GET("/:id", productControllers.GetProduct(deps.Products))
	}

	categoryGroup := r.Group("/categories")
	{
		categoryGroup.GET("", categoryControllers.GetCategories(deps.Categories))
		categoryGroup.GET("/:id", categoryControllers.GetCategory(deps.Categories))
	}

	brandGroup := r.Group("/brands")
	{
		brandGroup.GET("", brandControllers.GetBrands(deps.Brands))
		brandGroup.GET("/:id", brandControllers.GetBrand(deps.Brands))
	}

	reviewGroup := r.Group("/reviews")
	{
		reviewGroup.GET("/product/:product_id", reviewControllers.GetProductReviews(deps.Reviews))

		reviewGroup.GET("/product/:product_id/me", middleware.RequireAuth, reviewControllers.GetMyReview(deps.Reviews))
		reviewGroup.POST("", middleware.RequireAuth, reviewControllers.CreateReview(deps.Reviews))
		reviewGroup.PUT("/:product_id", middleware.RequireAuth, reviewControllers.UpdateReview(deps.Reviews))
	}
}
