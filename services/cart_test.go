package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexon-digital/storefront-api/models"
)

func TestAddItemSumsQuantities(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	product := seedProduct(t, db, "Headphones", 49.99, 10)
	user := seedUser(t, db, "cart@example.com")

	_, err := cart.AddItem(product.ID, 2, user.ID, "")
	require.NoError(t, err)
	item, err := cart.AddItem(product.ID, 3, user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItemStockGuardKeepsExistingLine(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	product := seedProduct(t, db, "Headphones", 49.99, 3)
	user := seedUser(t, db, "cart@example.com")

	_, err := cart.AddItem(product.ID, 1, user.ID, "")
	require.NoError(t, err)

	// 1 + 3 exceeds the stock of 3; the existing line must stay at 1.
	_, err = cart.AddItem(product.ID, 3, user.ID, "")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConflict))

	view, err := cart.GetCart(user.ID, "")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	user := seedUser(t, db, "cart@example.com")

	_, err := cart.AddItem("missing-id", 1, user.ID, "")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestCartRequiresOwner(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)

	_, err := cart.GetCart("", "")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalid))
}

func TestGuestAndUserCartsAreIsolated(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	product := seedProduct(t, db, "Headphones", 49.99, 10)
	user := seedUser(t, db, "cart@example.com")

	_, err := cart.AddItem(product.ID, 2, user.ID, "")
	require.NoError(t, err)
	_, err = cart.AddItem(product.ID, 4, "", "guest-session")
	require.NoError(t, err)

	userView, err := cart.GetCart(user.ID, "")
	require.NoError(t, err)
	require.Len(t, userView.Items, 1)
	assert.Equal(t, 2, userView.Items[0].Quantity)

	guestView, err := cart.GetCart("", "guest-session")
	require.NoError(t, err)
	require.Len(t, guestView.Items, 1)
	assert.Equal(t, 4, guestView.Items[0].Quantity)
}

func TestMergeGuestCartSumsDuplicates(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	product := seedProduct(t, db, "Headphones", 49.99, 10)
	user := seedUser(t, db, "merge@example.com")

	_, err := cart.AddItem(product.ID, 1, user.ID, "")
	require.NoError(t, err)
	_, err = cart.AddItem(product.ID, 2, "", "s1")
	require.NoError(t, err)

	require.NoError(t, cart.MergeGuestCartToUser("s1", user.ID))

	view, err := cart.GetCart(user.ID, "")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)

	guestView, err := cart.GetCart("", "s1")
	require.NoError(t, err)
	assert.Empty(t, guestView.Items)
}

func TestMergeGuestCartReownsNewLines(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	category, brand := seedCatalog(t, db)
	first := seedProductIn(t, db, category, brand, "Headphones", 49.99, 10)
	second := seedProductIn(t, db, category, brand, "Speaker", 89.99, 10)
	user := seedUser(t, db, "merge@example.com")

	_, err := cart.AddItem(first.ID, 1, user.ID, "")
	require.NoError(t, err)
	_, err = cart.AddItem(second.ID, 2, "", "s1")
	require.NoError(t, err)

	require.NoError(t, cart.MergeGuestCartToUser("s1", user.ID))

	view, err := cart.GetCart(user.ID, "")
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)

	count, err := cart.GetCartItemCount("", "s1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMergeSkipsOverStockAndPurgesGuestRows(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	product := seedProduct(t, db, "Headphones", 49.99, 3)
	user := seedUser(t, db, "merge@example.com")

	_, err := cart.AddItem(product.ID, 2, user.ID, "")
	require.NoError(t, err)
	_, err = cart.AddItem(product.ID, 2, "", "s1")
	require.NoError(t, err)

	// 2 + 2 oversells the stock of 3: the user line keeps its quantity and
	// the guest row is dropped, not preserved.
	require.NoError(t, cart.MergeGuestCartToUser("s1", user.ID))

	view, err := cart.GetCart(user.ID, "")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)

	var guestRows int64
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("session_id = ?", "s1").Count(&guestRows).Error)
	assert.Zero(t, guestRows)
}

func TestMergeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	product := seedProduct(t, db, "Headphones", 49.99, 10)
	user := seedUser(t, db, "merge@example.com")

	_, err := cart.AddItem(product.ID, 2, "", "s1")
	require.NoError(t, err)

	require.NoError(t, cart.MergeGuestCartToUser("s1", user.ID))
	require.NoError(t, cart.MergeGuestCartToUser("s1", user.ID))

	view, err := cart.GetCart(user.ID, "")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
}

func TestUpdateAndRemoveItem(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	product := seedProduct(t, db, "Headphones", 49.99, 10)
	user := seedUser(t, db, "cart@example.com")

	_, err := cart.AddItem(product.ID, 1, user.ID, "")
	require.NoError(t, err)

	item, err := cart.UpdateItem(product.ID, 4, user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	_, err = cart.UpdateItem(product.ID, 11, user.ID, "")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConflict))

	require.NoError(t, cart.RemoveItem(product.ID, user.ID, ""))
	err = cart.RemoveItem(product.ID, user.ID, "")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestGetCartComputesTotals(t *testing.T) {
	db := newTestDB(t)
	cart := NewCartService(db)
	category, brand := seedCatalog(t, db)
	first := seedProductIn(t, db, category, brand, "Headphones", 10.00, 10)
	second := seedProductIn(t, db, category, brand, "Speaker", 5.50, 10)
	user := seedUser(t, db, "cart@example.com")

	_, err := cart.AddItem(first.ID, 2, user.ID, "")
	require.NoError(t, err)
	_, err = cart.AddItem(second.ID, 1, user.ID, "")
	require.NoError(t, err)

	view, err := cart.GetCart(user.ID, "")
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.InDelta(t, 25.50, view.Total, 0.001)
	assert.Equal(t, 2, view.ItemCount)

	count, err := cart.GetCartItemCount(user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
