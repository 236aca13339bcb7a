package reviewControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexon-digital/storefront-api/middleware"
	"github.com/nexon-digital/storefront-api/services"
)

// POST /reviews
func CreateReview(reviews *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var input services.CreateReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		review, err := reviews.Create(userID, input)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}

// PUT /reviews/:product_id
func UpdateReview(reviews *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var input services.UpdateReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		review, err := reviews.Update(userID, c.Param("product_id"), input)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, review)
	}
}

// GET /reviews/product/:product_id
func GetProductReviews(reviews *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := reviews.GetProductReviews(c.Param("product_id"))
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GET /reviews/product/:product_id/me
func GetMyReview(reviews *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		review, err := reviews.GetMyReview(userID, c.Param("product_id"))
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		if review == nil {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusOK, review)
	}
}
