package statsControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexon-digital/storefront-api/services"
)

// GET /admin/stats
func GetOverallStats(stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := stats.GetOverallStats()
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /admin/stats/revenue
func GetRevenueStats(stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := stats.GetRevenueStats()
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /admin/stats/orders
func GetOrderStats(stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := stats.GetOrderStats()
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /admin/stats/products
func GetProductStats(stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := stats.GetProductStats()
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /admin/stats/customers
func GetCustomerStats(stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := stats.GetCustomerStats()
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /admin/stats/revenue-trend?days=30
func GetRevenueTrend(stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
		if err != nil || days < 1 || days > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 365"})
			return
		}

		out, err := stats.GetRevenueTrend(days)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
