package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Price       float64   `gorm:"not null" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Images      []string  `gorm:"serializer:json" json:"images,omitempty"`
	CategoryID  string    `gorm:"index;size:36;not null" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	BrandID     string    `gorm:"index;size:36;not null" json:"brand_id"`
	Brand       *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	Rating      float64   `gorm:"default:0" json:"rating"`
	ReviewCount int       `gorm:"default:0" json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// MainImage returns the first product image or the catalog placeholder.
func MainImage(p *Product) string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return "/placeholder-product.png"
}

func InStock(p *Product) bool {
	return p.Stock > 0
}
