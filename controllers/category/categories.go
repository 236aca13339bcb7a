package categoryControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexon-digital/storefront-api/services"
)

// GET /categories
func GetCategories(categories *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := categories.FindAll()
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GET /categories/:id
func GetCategory(categories *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, err := categories.FindOne(c.Param("id"))
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// POST /admin/categories
func CreateCategory(categories *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		category, err := categories.Create(input)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// PUT /admin/categories/:id
func UpdateCategory(categories *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		category, err := categories.Update(c.Param("id"), input)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// DELETE /admin/categories/:id
func DeleteCategory(categories *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := categories.Delete(c.Param("id")); err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}
