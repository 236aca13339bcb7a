package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nexon-digital/storefront-api/models"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CategoryInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

func (s *CategoryService) Create(in CategoryInput) (*models.Category, error) {
	categorySlug, err := uniqueSlug(s.db, &models.Category{}, in.Name, "")
	if err != nil {
		return nil, err
	}

	category := models.Category{
		Name:        in.Name,
		Slug:        categorySlug,
		Description: in.Description,
		IsActive:    true,
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) FindAll() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("is_active = ?", true).Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) FindOne(id string) (*models.Category, error) {
	var category models.Category
	err := s.db.First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("category not found")
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(id string, in CategoryInput) (*models.Category, error) {
	category, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" && in.Name != category.Name {
		newSlug, err := uniqueSlug(s.db, &models.Category{}, in.Name, id)
		if err != nil {
			return nil, err
		}
		category.Name = in.Name
		category.Slug = newSlug
	}
	if in.Description != "" {
		category.Description = in.Description
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(id string) error {
	res := s.db.Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound("category not found")
	}
	return nil
}
