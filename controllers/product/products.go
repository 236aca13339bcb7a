package productControllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexon-digital/storefront-api/services"
)

// GET /products
func GetProducts(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := services.FindProductsOptions{
			Search:     c.Query("search"),
			CategoryID: c.Query("category_id"),
			BrandID:    c.Query("brand_id"),
			SortBy:     c.Query("sort_by"),
			SortOrder:  c.Query("sort_order"),
		}
		opts.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		opts.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
		if v := c.Query("min_price"); v != "" {
			if price, err := strconv.ParseFloat(v, 64); err == nil {
				opts.MinPrice = &price
			}
		}
		if v := c.Query("max_price"); v != "" {
			if price, err := strconv.ParseFloat(v, 64); err == nil {
				opts.MaxPrice = &price
			}
		}
		opts.InStock = c.Query("in_stock") == "true"

		items, meta, err := products.FindAll(opts)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": items, "meta": meta})
	}
}

// GET /products/:id
func GetProduct(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := products.FindOne(c.Param("id"))
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /products/slug/:slug
func GetProductBySlug(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := products.FindBySlug(c.Param("slug"))
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// POST /admin/products
func CreateProduct(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, err := products.Create(input)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /admin/products/:id
func UpdateProduct(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, err := products.Update(c.Param("id"), input)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /admin/products/:id
func DeleteProduct(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := products.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// POST /admin/products/upload-image (multipart)
func UploadProductImage(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
			return
		}

		url, err := products.UploadImage(c.Request.Context(), data,
			fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}

type removeImageInput struct {
	URL string `json:"url" binding:"required"`
}

// DELETE /admin/products/images
func RemoveProductImage(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input removeImageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := products.RemoveImage(c.Request.Context(), input.URL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove image"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Image removed"})
	}
}
