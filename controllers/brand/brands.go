package brandControllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexon-digital/storefront-api/services"
)

// GET /brands
func GetBrands(brands *services.BrandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := brands.FindAll()
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GET /brands/:id
func GetBrand(brands *services.BrandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		brand, err := brands.FindOne(c.Param("id"))
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, brand)
	}
}

// POST /admin/brands
func CreateBrand(brands *services.BrandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.BrandInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		brand, err := brands.Create(input)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, brand)
	}
}

// PUT /admin/brands/:id
func UpdateBrand(brands *services.BrandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.BrandInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		brand, err := brands.Update(c.Param("id"), input)
		if err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, brand)
	}
}

// DELETE /admin/brands/:id
func DeleteBrand(brands *services.BrandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := brands.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Brand deleted"})
	}
}

// POST /admin/brands/upload-logo (multipart)
func UploadBrandLogo(brands *services.BrandService) gin.HandlerFunc {
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

		url, err := brands.UploadLogo(c.Request.Context(), data,
			fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload logo"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}
