package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nexon-digital/storefront-api/models"
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

type CreateReviewInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type UpdateReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Create stores one review per (user, product) and refreshes the product's
// denormalized rating aggregates.
func (s *ReviewService) Create(userID string, in CreateReviewInput) (*models.Review, error) {
	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("id = ?", in.ProductID).
		Count(&productCount).Error; err != nil {
		return nil, err
	}
	if productCount == 0 {
		return nil, ErrNotFound("product not found")
	}

	var existing int64
	if err := s.db.Model(&models.Review{}).
		Where("user_id = ? AND product_id = ?", userID, in.ProductID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrConflict("you have already reviewed this product")
	}

	review := models.Review{
		UserID:    userID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}
	if err := s.refreshProductRating(in.ProductID); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) Update(userID, productID string, in UpdateReviewInput) (*models.Review, error) {
	var review models.Review
	err := s.db.First(&review, "user_id = ? AND product_id = ?", userID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("review not found")
	}
	if err != nil {
		return nil, err
	}

	review.Rating = in.Rating
	review.Comment = in.Comment
	if err := s.db.Save(&review).Error; err != nil {
		return nil, err
	}
	if err := s.refreshProductRating(productID); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) GetProductReviews(productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("product_id = ?", productID).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) GetMyReview(userID, productID string) (*models.Review, error) {
	var review models.Review
	err := s.db.First(&review, "user_id = ? AND product_id = ?", userID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) refreshProductRating(productID string) error {
	var agg struct {
		Count  int64
		Rating float64
	}
	err := s.db.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS rating").
		Where("product_id = ?", productID).
		Scan(&agg).Error
	if err != nil {
		return err
	}
	return s.db.Model(&models.Product{}).Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":       agg.Rating,
			"review_count": agg.Count,
		}).Error
}
