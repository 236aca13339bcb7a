package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nexon-digital/storefront-api/models"
)

type WishlistService struct {
	db *gorm.DB
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// GetUserWishlist resolves the user's wishlist entries to live products.
// Entries whose product no longer exists are dropped.
func (s *WishlistService) GetUserWishlist(userID string) ([]models.Product, error) {
	var items []models.WishlistItem
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		var product models.Product
		err := s.db.Preload("Category").Preload("Brand").
			First(&product, "id = ?", item.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// AddToWishlist is idempotent: an existing entry is left alone.
func (s *WishlistService) AddToWishlist(userID, productID string) error {
	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("id = ?", productID).
		Count(&productCount).Error; err != nil {
		return err
	}
	if productCount == 0 {
		return ErrNotFound("product not found")
	}

	var existing int64
	if err := s.db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	item := models.WishlistItem{UserID: userID, ProductID: productID}
	return s.db.Create(&item).Error
}

func (s *WishlistService) RemoveFromWishlist(userID, productID string) error {
	return s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).Error
}
