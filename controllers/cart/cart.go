package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexon-digital/storefront-api/middleware"
	"github.com/nexon-digital/storefront-api/services"
)

type CartItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// cartOwner resolves the request to a user id or a guest session id. Guests
// must send X-Session-Id.
func cartOwner(c *gin.Context) (userID, sessionID string, ok bool) {
	if id, authed := middleware.UserID(c); authed {
		return id, "", true
	}
	sessionID = c.GetHeader("X-Session-Id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required for guest users"})
		return "", "", false
	}
	return "", sessionID, true
}

// GET /cart
func GetCart(cart *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID, ok := cartOwner(c)
		if !ok {
			return
		}
		view, err := cart.GetCart(userID, sessionID)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// POST /cart
func AddToCart(cart *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID, ok := cartOwner(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := cart.AddItem(input.ProductID, input.Quantity, userID, sessionID)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

type updateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// PUT /cart/:product_id
func UpdateCartItem(cart *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID, ok := cartOwner(c)
		if !ok {
			return
		}

		var input updateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := cart.UpdateItem(c.Param("product_id"), input.Quantity, userID, sessionID)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/:product_id
func RemoveFromCart(cart *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID, ok := cartOwner(c)
		if !ok {
			return
		}

		if err := cart.RemoveItem(c.Param("product_id"), userID, sessionID); err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}

// DELETE /cart
func ClearCart(cart *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID, ok := cartOwner(c)
		if !ok {
			return
		}

		if err := cart.ClearCart(userID, sessionID); err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// POST /cart/merge
func MergeGuestCart(cart *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		sessionID := c.GetHeader("X-Session-Id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
			return
		}

		if err := cart.MergeGuestCartToUser(sessionID, userID); err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Guest cart merged successfully"})
	}
}

// GET /cart/count
func GetCartCount(cart *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		sessionID := ""
		if userID == "" {
			sessionID = c.GetHeader("X-Session-Id")
		}

		count, err := cart.GetCartItemCount(userID, sessionID)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}
