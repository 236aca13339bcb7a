package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nexon-digital/storefront-api/models"
)

var testDBCounter int64

// newTestDB opens a fresh in-memory sqlite database and migrates the schema.
// cache=shared plus a single connection keeps the database alive across the
// pooled handles gorm opens.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.WishlistItem{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
		Role:     models.RoleCustomer,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCatalog(t *testing.T, db *gorm.DB) (*models.Category, *models.Brand) {
	t.Helper()
	category := &models.Category{Name: "Audio", Slug: "audio", IsActive: true}
	require.NoError(t, db.Create(category).Error)
	brand := &models.Brand{Name: "Acme", Slug: "acme", IsActive: true}
	require.NoError(t, db.Create(brand).Error)
	return category, brand
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	category, brand := seedCatalog(t, db)
	return seedProductIn(t, db, category, brand, name, price, stock)
}

func seedProductIn(t *testing.T, db *gorm.DB, category *models.Category, brand *models.Brand, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		Slug:       name + "-slug",
		Price:      price,
		Stock:      stock,
		CategoryID: category.ID,
		BrandID:    brand.ID,
		IsActive:   true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
