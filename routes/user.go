package routes

import (
	"github.com/gin-gonic/gin"

	userControllers "github.com/nexon-digital/storefront-api/controllers/user"
	wishlistControllers "github.com/nexon-digital/storefront-api/controllers/wishlist"
	"github.com/nexon-digital/storefront-api/middleware"
)

// SetupUserRoutes registers the JWT-protected "/users/*" and "/wishlist/*"
// endpoints.
func SetupUserRoutes(r *gin.Engine, deps *Deps) {
	userGroup := r.Group("/users")
	userGroup.Use(middleware.RequireAuth)
	{
		userGroup.GET("/profile", userControllers.GetProfile(deps.Users))
		userGroup.PUT("/profile", userControllers.UpdateProfile(deps.Users))
		userGroup.POST("/profile/avatar", userControllers.UploadAvatar(deps.Users))

		userGroup.GET("/addresses", userControllers.GetAddresses(deps.Users))
		userGroup.POST("/addresses", userControllers.CreateAddress(deps.Users))
		userGroup.PUT("/addresses/:id", userControllers.UpdateAddress(deps.Users))
		userGroup.DELETE("/addresses/:id", userControllers.DeleteAddress(deps.Users))
	}

	wishlistGroup := r.Group("/wishlist")
	wishlistGroup.Use(middleware.RequireAuth)
	{
		wishlistGroup.GET("", wishlistControllers.GetWishlist(deps.Wishlist))
		wishlistGroup.POST("/:product_id", wishlistControllers.AddToWishlist(deps.Wishlist))
		wishlistGroup.DELETE("/:product_id", wishlistControllers.RemoveFromWishlist(deps.Wishlist))
	}
}
