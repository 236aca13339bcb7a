package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexon-digital/storefront-api/models"
)

func TestCategorySlugsStayUnique(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryService(db)

	first, err := categories.Create(CategoryInput{Name: "Home Audio"})
	require.NoError(t, err)
	assert.Equal(t, "home-audio", first.Slug)

	second, err := categories.Create(CategoryInput{Name: "Home Audio"})
	require.NoError(t, err)
	assert.Equal(t, "home-audio-2", second.Slug)

	third, err := categories.Create(CategoryInput{Name: "Home Audio"})
	require.NoError(t, err)
	assert.Equal(t, "home-audio-3", third.Slug)
}

func TestProductCreateRejectsDuplicateName(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db, nil)
	category, brand := seedCatalog(t, db)

	_, err := products.Create(CreateProductInput{
		Name: "Headphones", Price: 49.99, Stock: 5,
		CategoryID: category.ID, BrandID: brand.ID,
	})
	require.NoError(t, err)

	_, err = products.Create(CreateProductInput{
		Name: "Headphones", Price: 59.99, Stock: 5,
		CategoryID: category.ID, BrandID: brand.ID,
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConflict))
}

func TestProductUpdateReslugsOnRename(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db, nil)
	category, brand := seedCatalog(t, db)

	created, err := products.Create(CreateProductInput{
		Name: "Headphones", Price: 49.99, Stock: 5,
		CategoryID: category.ID, BrandID: brand.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "headphones", created.Slug)

	newName := "Studio Headphones"
	updated, err := products.Update(created.ID, UpdateProductInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "studio-headphones", updated.Slug)

	found, err := products.FindBySlug("studio-headphones")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestProductFindAllFilters(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db, nil)
	category, brand := seedCatalog(t, db)
	otherCategory := &models.Category{Name: "Video", Slug: "video", IsActive: true}
	require.NoError(t, db.Create(otherCategory).Error)

	seedProductIn(t, db, category, brand, "Wireless Headphones", 49.99, 5)
	seedProductIn(t, db, category, brand, "Wired Headphones", 19.99, 0)
	seedProductIn(t, db, otherCategory, brand, "Projector", 299.99, 2)

	items, meta, err := products.FindAll(FindProductsOptions{Search: "headphones"})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.EqualValues(t, 2, meta.Total)

	items, _, err = products.FindAll(FindProductsOptions{CategoryID: category.ID, InStock: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Wireless Headphones", items[0].Name)

	maxPrice := 100.0
	items, _, err = products.FindAll(FindProductsOptions{MaxPrice: &maxPrice, SortBy: "price", SortOrder: "ASC"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Wired Headphones", items[0].Name)
}

func TestReviewRefreshesProductRating(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewService(db)
	product := seedProduct(t, db, "Headphones", 49.99, 5)
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	_, err := reviews.Create(alice.ID, CreateReviewInput{ProductID: product.ID, Rating: 5, Comment: "great"})
	require.NoError(t, err)
	_, err = reviews.Create(bob.ID, CreateReviewInput{ProductID: product.ID, Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 2, reloaded.ReviewCount)
	assert.InDelta(t, 3.5, reloaded.Rating, 0.001)

	// One review per user and product.
	_, err = reviews.Create(alice.ID, CreateReviewInput{ProductID: product.ID, Rating: 1})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConflict))
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	wishlist := NewWishlistService(db)
	product := seedProduct(t, db, "Headphones", 49.99, 5)
	user := seedUser(t, db, "wish@example.com")

	require.NoError(t, wishlist.AddToWishlist(user.ID, product.ID))
	require.NoError(t, wishlist.AddToWishlist(user.ID, product.ID))

	items, err := wishlist.GetUserWishlist(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, wishlist.RemoveFromWishlist(user.ID, product.ID))
	items, err = wishlist.GetUserWishlist(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
