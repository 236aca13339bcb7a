package orderControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexon-digital/storefront-api/middleware"
	"github.com/nexon-digital/storefront-api/models"
	"github.com/nexon-digital/storefront-api/services"
)

type updateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// POST /orders
func CreateOrder(orders *services.OrderService, auth *services.AuthService) gin.HandlerFunc {
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

		var input services.CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := orders.CreateOrder(user, input)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		broadcastOrderEvent("order.created", order)
		c.JSON(http.StatusCreated, order)
	}
}

// POST /orders/:id/checkout?successUrl=...&cancelUrl=...
func CreateCheckoutSession(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		successURL := c.Query("successUrl")
		if successURL == "" {
			successURL = envOr("STRIPE_SUCCESS_URL", "")
		}
		cancelURL := c.Query("cancelUrl")
		if cancelURL == "" {
			cancelURL = envOr("STRIPE_CANCEL_URL", "")
		}

		session, err := orders.CreateCheckoutSession(c.Request.Context(), c.Param("id"), userID, successURL, cancelURL)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// GET /orders
func GetMyOrders(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		views, err := orders.FindByUser(userID)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

// GET /orders/filtered?status=&page=&limit=
func GetMyOrdersFiltered(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		views, meta, err := orders.FindByUserWithFilters(
			userID, models.OrderStatus(c.Query("status")), page, limit)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": views, "meta": meta})
	}
}

// GET /orders/stats
func GetMyOrderStats(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		stats, err := orders.GetUserOrderStats(userID)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// GET /orders/:id
func GetOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		order, err := orders.FindOne(c.Param("id"), userID)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders
func GetAllOrdersForAdmin(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := orders.FindAllForAdmin()
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

// GET /admin/orders/:id
func GetOrderForAdmin(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.FindOneForAdmin(c.Param("id"))
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:id/status
func UpdateOrderStatus(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input updateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := orders.UpdateStatus(c.Param("id"), input.Status)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		broadcastOrderEvent("order.status_updated", order)
		c.JSON(http.StatusOK, order)
	}
}
