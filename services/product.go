package services

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/nexon-digital/storefront-api/models"
)

type ProductService struct {
	db      *gorm.DB
	storage ObjectStorage
}

func NewProductService(db *gorm.DB, storage ObjectStorage) *ProductService {
	return &ProductService{db: db, storage: storage}
}

type CreateProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Stock       int      `json:"stock" binding:"min=0"`
	Images      []string `json:"images"`
	CategoryID  string   `json:"category_id" binding:"required"`
	BrandID     string   `json:"brand_id" binding:"required"`
	IsActive    *bool    `json:"is_active"`
}

type UpdateProductInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Stock       *int      `json:"stock"`
	Images      *[]string `json:"images"`
	CategoryID  *string   `json:"category_id"`
	BrandID     *string   `json:"brand_id"`
	IsActive    *bool     `json:"is_active"`
}

type FindProductsOptions struct {
	Page       int
	Limit      int
	Search     string
	CategoryID string
	BrandID    string
	MinPrice   *float64
	MaxPrice   *float64
	InStock    bool
	SortBy     string
	SortOrder  string
}

func (s *ProductService) Create(in CreateProductInput) (*models.Product, error) {
	var count int64
	if err := s.db.Model(&models.Product{}).Where("name = ?", in.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict("product with this name already exists")
	}

	productSlug, err := uniqueSlug(s.db, &models.Product{}, in.Name, "")
	if err != nil {
		return nil, err
	}

	product := models.Product{
		Name:        in.Name,
		Slug:        productSlug,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Images:      in.Images,
		CategoryID:  in.CategoryID,
		BrandID:     in.BrandID,
		IsActive:    true,
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAll lists active products with search, category/brand/price/stock
// filters, whitelisted sorting and pagination.
func (s *ProductService) FindAll(opts FindProductsOptions) ([]models.Product, *PageMeta, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}

	query := s.db.Model(&models.Product{}).Where("is_active = ?", true)

	if opts.Search != "" {
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if opts.CategoryID != "" {
		query = query.Where("category_id = ?", opts.CategoryID)
	}
	if opts.BrandID != "" {
		query = query.Where("brand_id = ?", opts.BrandID)
	}
	if opts.MinPrice != nil {
		query = query.Where("price >= ?", *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		query = query.Where("price <= ?", *opts.MaxPrice)
	}
	if opts.InStock {
		query = query.Where("stock > 0")
	}

	sortField := "created_at"
	switch opts.SortBy {
	case "name", "price", "created_at", "rating":
		sortField = opts.SortBy
	}
	order := "DESC"
	if strings.EqualFold(opts.SortOrder, "ASC") {
		order = "ASC"
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("Brand").
		Order(sortField + " " + order).
		Offset((opts.Page - 1) * opts.Limit).Limit(opts.Limit).
		Find(&products).Error; err != nil {
		return nil, nil, err
	}

	meta := &PageMeta{
		Total:    total,
		Page:     opts.Page,
		LastPage: int(math.Ceil(float64(total) / float64(opts.Limit))),
		PerPage:  opts.Limit,
	}
	return products, meta, nil
}

func (s *ProductService) FindOne(id string) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").Preload("Brand").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("product not found")
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) FindBySlug(productSlug string) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").Preload("Brand").
		First(&product, "slug = ?", productSlug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("product not found")
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) Update(id string, in UpdateProductInput) (*models.Product, error) {
	var product models.Product
	err := s.db.First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("product not found")
	}
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != product.Name {
		newSlug, err := uniqueSlug(s.db, &models.Product{}, *in.Name, id)
		if err != nil {
			return nil, err
		}
		product.Name = *in.Name
		product.Slug = newSlug
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, ErrInvalid("stock cannot be negative")
		}
		product.Stock = *in.Stock
	}
	if in.Images != nil {
		product.Images = *in.Images
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.BrandID != nil {
		product.BrandID = *in.BrandID
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	if err := s.db.Save(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes the product and best-effort deletes its stored images.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	var product models.Product
	err := s.db.First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound("product not found")
	}
	if err != nil {
		return err
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return err
	}

	if s.storage != nil {
		for _, image := range product.Images {
			if err := s.storage.DeleteFile(ctx, image); err != nil {
				log.Printf("failed to delete product image %s: %v", image, err)
			}
		}
	}
	return nil
}

func (s *ProductService) UploadImage(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	return s.storage.UploadFile(ctx, data, filename, contentType, "products")
}

func (s *ProductService) RemoveImage(ctx context.Context, fileURL string) error {
	return s.storage.DeleteFile(ctx, fileURL)
}

// FindAllForExport returns the full catalog for the admin xlsx export.
func (s *ProductService) FindAllForExport() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Preload("Category").Preload("Brand").
		Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
