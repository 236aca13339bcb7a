package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/nexon-digital/storefront-api/controllers/cart"
	"github.com/nexon-digital/storefront-api/middleware"
)

// SetupCartRoutes registers the "/cart/*" endpoints. The cart is reachable
// by guests carrying an X-Session-Id header, so the group uses OptionalAuth
// rather than RequireAuth; the merge endpoint alone needs a logged-in user.
func SetupCartRoutes(r *gin.Engine, deps *Deps) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.OptionalAuth)
	{
		cartGroup.GET("", cartControllers.GetCart(deps.Cart))
		cartGroup.GET("/count", cartControllers.GetCartCount(deps.Cart))
		cartGroup.POST("", cartControllers.AddToCart(deps.Cart))
		cartGroup.PUT("/:product_id", cartControllers.UpdateCartItem(deps.Cart))
		cartGroup.DELETE("/:product_id", cartControllers.RemoveFromCart(deps.Cart))
		cartGroup.DELETE("", cartControllers.ClearCart(deps.Cart))

		cartGroup.POST("/merge", middleware.RequireAuth, cartControllers.MergeGuestCart(deps.Cart))
	}
}
