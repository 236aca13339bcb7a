package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nexon-digital/storefront-api/external/payments"
	"github.com/nexon-digital/storefront-api/services"
)

// Deps carries the constructed services the route groups wire handlers to.
type Deps struct {
	Auth       *services.AuthService
	Users      *services.UserService
	Products   *services.ProductService
	Categories *services.CategoryService
	Brands     *services.BrandService
	Cart       *services.CartService
	Orders     *services.OrderService
	Reviews    *services.ReviewService
	Wishlist   *services.WishlistService
	Stats      *services.StatsService
	Payments   *payments.Client
}

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, deps *Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, deps)

	// Public catalog browsing
	SetupCatalogRoutes(r, deps)

	// Cart (works for guests via X-Session-Id and for logged-in users)
	SetupCartRoutes(r, deps)

	// JWT-protected user routes
	SetupUserRoutes(r, deps)

	// Orders and checkout
	SetupOrderRoutes(r, deps)

	// Admin routes (JWT + admin role)
	SetupAdminRoutes(r, deps)

	// Payment provider webhooks (signature-verified, no JWT)
	SetupWebhookRoutes(r, deps)
}
