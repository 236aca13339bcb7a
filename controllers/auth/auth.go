package authControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexon-digital/storefront-api/middleware"
	"github.com/nexon-digital/storefront-api/services"
)

// POST /auth/register
func Register(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := auth.Register(c.Request.Context(), input); err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Registration successful. Please check your email to verify your account.",
		})
	}
}

// POST /auth/login
func Login(auth *services.AuthService, cart *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		token, user, err := auth.Login(input)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		// A guest session carried in the header gets folded into the user's
		// cart on login.
		if sessionID := c.GetHeader("X-Session-Id"); sessionID != "" {
			if err := cart.MergeGuestCartToUser(sessionID, user.ID); err != nil {
				c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"access_token": token, "user": user})
	}
}

// GET /auth/verify-email?token=...
func VerifyEmail(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
			return
		}
		if err := auth.VerifyEmail(c.Request.Context(), token); err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully. You can now log in."})
	}
}

type forgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/forgot-password
func ForgotPassword(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input forgotPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := auth.ForgotPassword(c.Request.Context(), input.Email); err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		// Same response whether or not the account exists.
		c.JSON(http.StatusOK, gin.H{
			"message": "If your email is registered, you will receive a password reset link.",
		})
	}
}

type resetPasswordInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// POST /auth/reset-password
func ResetPassword(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input resetPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := auth.ResetPassword(input.Token, input.NewPassword); err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully. You can now log in."})
	}
}

// GET /auth/me
func Me(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		user, err := auth.GetLoggedInUser(userID)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
