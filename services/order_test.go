package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexon-digital/storefront-api/external/payments"
	"github.com/nexon-digital/storefront-api/models"
)

type fakeGateway struct {
	calls    int
	lastRef  string
	lastLine []payments.CheckoutLine
	err      error
}

func (f *fakeGateway) CreateCheckoutSession(ctx context.Context, referenceID, successURL, cancelURL string, lines []payments.CheckoutLine) (*payments.CheckoutSession, error) {
	f.calls++
	f.lastRef = referenceID
	f.lastLine = lines
	if f.err != nil {
		return nil, f.err
	}
	return &payments.CheckoutSession{ID: "cs_test_123", URL: "https://pay.example/cs_test_123"}, nil
}

func TestCreateOrderDecrementsStockAndSnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, &fakeGateway{})
	product := seedProduct(t, db, "Headphones", 10.00, 3)
	user := seedUser(t, db, "orders@example.com")

	view, err := orders.CreateOrder(user, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, view.Status)
	assert.InDelta(t, 20.00, view.Total, 0.001)
	require.Len(t, view.Items, 1)
	assert.InDelta(t, 10.00, view.Items[0].Price, 0.001)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 1, reloaded.Stock)
}

func TestCreateOrderOversellRollsBack(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, &fakeGateway{})
	product := seedProduct(t, db, "Headphones", 10.00, 3)
	user := seedUser(t, db, "orders@example.com")

	_, err := orders.CreateOrder(user, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 4}},
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConflict))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 3, reloaded.Stock)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderPartialFailureRollsBackAllLines(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, &fakeGateway{})
	category, brand := seedCatalog(t, db)
	plentiful := seedProductIn(t, db, category, brand, "Headphones", 10.00, 10)
	scarce := seedProductIn(t, db, category, brand, "Speaker", 20.00, 1)
	user := seedUser(t, db, "orders@example.com")

	_, err := orders.CreateOrder(user, CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: plentiful.ID, Quantity: 2},
			{ProductID: scarce.ID, Quantity: 5},
		},
	})
	require.Error(t, err)

	// The first line's decrement must not survive the failed second line.
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", plentiful.ID).Error)
	assert.Equal(t, 10, reloaded.Stock)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, &fakeGateway{})
	user := seedUser(t, db, "orders@example.com")

	_, err := orders.CreateOrder(user, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: "missing-id", Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestOrderSnapshotPriceSurvivesCatalogChange(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, &fakeGateway{})
	product := seedProduct(t, db, "Headphones", 10.00, 5)
	user := seedUser(t, db, "orders@example.com")

	view, err := orders.CreateOrder(user, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", 99.99).Error)

	reloaded, err := orders.FindOne(view.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.InDelta(t, 10.00, reloaded.Items[0].Price, 0.001)
	assert.InDelta(t, 10.00, reloaded.Total, 0.001)
}

func TestCreateCheckoutSessionRequiresPendingOrder(t *testing.T) {
	db := newTestDB(t)
	gateway := &fakeGateway{}
	orders := NewOrderService(db, gateway)
	product := seedProduct(t, db, "Headphones", 10.00, 5)
	user := seedUser(t, db, "orders@example.com")

	view, err := orders.CreateOrder(user, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	session, err := orders.CreateCheckoutSession(context.Background(), view.ID, user.ID,
		"https://shop.example/success", "https://shop.example/cancel")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", session.ID)
	assert.Equal(t, view.ID, gateway.lastRef)

	var order models.Order
	require.NoError(t, db.First(&order, "id = ?", view.ID).Error)
	assert.Equal(t, "cs_test_123", order.StripeSessionID)

	require.NoError(t, orders.MarkAsPaid(view.ID))

	_, err = orders.CreateCheckoutSession(context.Background(), view.ID, user.ID,
		"https://shop.example/success", "https://shop.example/cancel")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConflict))
	assert.Equal(t, 1, gateway.calls)
}

func TestCreateCheckoutSessionGatewayFailure(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, &fakeGateway{err: errors.New("provider down")})
	product := seedProduct(t, db, "Headphones", 10.00, 5)
	user := seedUser(t, db, "orders@example.com")

	view, err := orders.CreateOrder(user, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = orders.CreateCheckoutSession(context.Background(), view.ID, user.ID, "s", "c")
	require.Error(t, err)

	var order models.Order
	require.NoError(t, db.First(&order, "id = ?", view.ID).Error)
	assert.Empty(t, order.StripeSessionID)
}

func TestMarkAsPaidIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, &fakeGateway{})
	product := seedProduct(t, db, "Headphones", 10.00, 5)
	user := seedUser(t, db, "orders@example.com")

	view, err := orders.CreateOrder(user, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, orders.MarkAsPaid(view.ID))

	var first models.Order
	require.NoError(t, db.First(&first, "id = ?", view.ID).Error)
	require.NotNil(t, first.PaidAt)
	paidAt := *first.PaidAt

	require.NoError(t, orders.MarkAsPaid(view.ID))

	var second models.Order
	require.NoError(t, db.First(&second, "id = ?", view.ID).Error)
	assert.Equal(t, models.OrderStatusProcessing, second.Status)
	require.NotNil(t, second.PaidAt)
	assert.True(t, second.PaidAt.Equal(paidAt))
}

func TestMarkAsPaidIgnoresUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, &fakeGateway{})

	require.NoError(t, orders.MarkAsPaid("no-such-order"))
}

func TestFindOneScopedToUser(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, &fakeGateway{})
	product := seedProduct(t, db, "Headphones", 10.00, 5)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	view, err := orders.CreateOrder(owner, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = orders.FindOne(view.ID, other.ID)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestUpdateStatusValidatesValue(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, &fakeGateway{})
	product := seedProduct(t, db, "Headphones", 10.00, 5)
	user := seedUser(t, db, "orders@example.com")

	view, err := orders.CreateOrder(user, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = orders.UpdateStatus(view.ID, "teleported")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalid))

	updated, err := orders.UpdateStatus(view.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
}

func TestFindByUserWithFilters(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, &fakeGateway{})
	product := seedProduct(t, db, "Headphones", 10.00, 50)
	user := seedUser(t, db, "orders@example.com")

	for i := 0; i < 3; i++ {
		_, err := orders.CreateOrder(user, CreateOrderInput{
			Items: []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	views, meta, err := orders.FindByUserWithFilters(user.ID, "", 1, 2)
	require.NoError(t, err)
	assert.Len(t, views, 2)
	assert.EqualValues(t, 3, meta.Total)
	assert.Equal(t, 2, meta.LastPage)

	views, _, err = orders.FindByUserWithFilters(user.ID, models.OrderStatusShipped, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, views)

	_, _, err = orders.FindByUserWithFilters(user.ID, "bogus", 1, 10)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalid))
}
