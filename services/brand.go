package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/nexon-digital/storefront-api/models"
)

type BrandService struct {
	db      *gorm.DB
	storage ObjectStorage
}

func NewBrandService(db *gorm.DB, storage ObjectStorage) *BrandService {
	return &BrandService{db: db, storage: storage}
}

type BrandInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	IsActive    *bool  `json:"is_active"`
}

func (s *BrandService) Create(in BrandInput) (*models.Brand, error) {
	brandSlug, err := uniqueSlug(s.db, &models.Brand{}, in.Name, "")
	if err != nil {
		return nil, err
	}

	brand := models.Brand{
		Name:        in.Name,
		Slug:        brandSlug,
		Description: in.Description,
		Logo:        in.Logo,
		IsActive:    true,
	}
	if in.IsActive != nil {
		brand.IsActive = *in.IsActive
	}
	if err := s.db.Create(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (s *BrandService) FindAll() ([]models.Brand, error) {
	var brands []models.Brand
	if err := s.db.Where("is_active = ?", true).Order("name ASC").
		Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (s *BrandService) FindOne(id string) (*models.Brand, error) {
	var brand models.Brand
	err := s.db.First(&brand, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("brand not found")
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (s *BrandService) Update(id string, in BrandInput) (*models.Brand, error) {
	brand, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" && in.Name != brand.Name {
		newSlug, err := uniqueSlug(s.db, &models.Brand{}, in.Name, id)
		if err != nil {
			return nil, err
		}
		brand.Name = in.Name
		brand.Slug = newSlug
	}
	if in.Description != "" {
		brand.Description = in.Description
	}
	if in.Logo != "" {
		brand.Logo = in.Logo
	}
	if in.IsActive != nil {
		brand.IsActive = *in.IsActive
	}

	if err := s.db.Save(brand).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

// Delete removes the brand and best-effort deletes its stored logo.
func (s *BrandService) Delete(ctx context.Context, id string) error {
	brand, err := s.FindOne(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(brand).Error; err != nil {
		return err
	}
	if s.storage != nil && brand.Logo != "" {
		if err := s.storage.DeleteFile(ctx, brand.Logo); err != nil {
			log.Printf("failed to delete brand logo %s: %v", brand.Logo, err)
		}
	}
	return nil
}

func (s *BrandService) UploadLogo(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	return s.storage.UploadFile(ctx, data, filename, contentType, "brands")
}
