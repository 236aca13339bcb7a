package routes

import (
	"github.com/gin-gonic/gin"

	authControllers "github.com/nexon-digital/storefront-api/controllers/auth"
	"github.com/nexon-digital/storefront-api/middleware"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, deps *Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authControllers.Register(deps.Auth))
		authGroup.POST("/login", authControllers.Login(deps.Auth, deps.Cart))
		authGroup.GET("/verify-email", authControllers.VerifyEmail(deps.Auth))
		authGroup.POST("/forgot-password", authControllers.ForgotPassword(deps.Auth))
		authGroup.POST("/reset-password", authControllers.ResetPassword(deps.Auth))

		authGroup.GET("/me", middleware.RequireAuth, authControllers.Me(deps.Auth))
	}
}
