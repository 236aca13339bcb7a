package services

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/nexon-digital/storefront-api/external/payments"
	"github.com/nexon-digital/storefront-api/models"
)

// PaymentGateway creates hosted checkout sessions correlated to an order id.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, referenceID, successURL, cancelURL string, lines []payments.CheckoutLine) (*payments.CheckoutSession, error)
}

type OrderService struct {
	db      *gorm.DB
	gateway PaymentGateway
}

func NewOrderService(db *gorm.DB, gateway PaymentGateway) *OrderService {
	return &OrderService{db: db, gateway: gateway}
}

type OrderItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	Items             []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingFirstName string           `json:"shipping_first_name"`
	ShippingLastName  string           `json:"shipping_last_name"`
	ShippingEmail     string           `json:"shipping_email"`
	ShippingPhone     string           `json:"shipping_phone"`
	ShippingAddress   string           `json:"shipping_address"`
	ShippingCity      string           `json:"shipping_city"`
	ShippingState     string           `json:"shipping_state"`
	ShippingZipCode   string           `json:"shipping_zip_code"`
	ShippingCountry   string           `json:"shipping_country"`
}

type OrderItemView struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image,omitempty"`
}

type OrderView struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	Total           float64            `json:"total"`
	Status          models.OrderStatus `json:"status"`
	StripeSessionID string             `json:"stripe_session_id,omitempty"`
	PaidAt          *time.Time         `json:"paid_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	User            *models.User       `json:"user,omitempty"`
	Address         string             `json:"address"`
	City            string             `json:"city"`
	State           string             `json:"state"`
	ZipCode         string             `json:"zip_code"`
	Country         string             `json:"country"`
	Items           []OrderItemView    `json:"items"`
}

type PageMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"last_page"`
	PerPage  int   `json:"per_page"`
}

// CreateOrder validates every requested product, decrements stock and
// snapshots unit prices inside a single transaction. Each decrement is a
// conditional update guarded by the current stock, so concurrent checkouts
// cannot drive stock negative; any failed line rolls back the whole order.
func (s *OrderService) CreateOrder(user *models.User, in CreateOrderInput) (*OrderView, error) {
	if len(in.Items) == 0 {
		return nil, ErrInvalid("order must contain at least one item")
	}

	var orderID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ids := make([]string, 0, len(in.Items))
		for _, item := range in.Items {
			ids = append(ids, item.ProductID)
		}

		var products []models.Product
		if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
			return err
		}
		if len(products) != len(ids) {
			return ErrNotFound("one or more products not found")
		}
		byID := make(map[string]*models.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		var total float64
		orderItems := make([]models.OrderItem, 0, len(in.Items))
		for _, item := range in.Items {
			product := byID[item.ProductID]
			if item.Quantity < 1 {
				return ErrInvalid("quantity must be at least 1")
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrConflict("insufficient stock for product: " + product.Name)
			}

			price := math.Round(product.Price*100) / 100
			total += price * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     price,
			})
		}

		order := models.Order{
			UserID:            user.ID,
			Items:             orderItems,
			Total:             total,
			Status:            models.OrderStatusPending,
			ShippingFirstName: in.ShippingFirstName,
			ShippingLastName:  in.ShippingLastName,
			ShippingEmail:     in.ShippingEmail,
			ShippingPhone:     in.ShippingPhone,
			ShippingAddress:   in.ShippingAddress,
			ShippingCity:      in.ShippingCity,
			ShippingState:     in.ShippingState,
			ShippingZipCode:   in.ShippingZipCode,
			ShippingCountry:   in.ShippingCountry,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(orderID, user.ID)
}

// CreateCheckoutSession builds a hosted payment session for a pending order
// and persists the session id on it.
func (s *OrderService) CreateCheckoutSession(ctx context.Context, orderID, userID, successURL, cancelURL string) (*payments.CheckoutSession, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("Items.Product").
		Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("order not found")
	}
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrConflict("order is not pending")
	}

	lines := make([]payments.CheckoutLine, 0, len(order.Items))
	for _, item := range order.Items {
		line := payments.CheckoutLine{
			Name:       "Item",
			UnitAmount: int64(math.Round(item.Price * 100)),
			Quantity:   item.Quantity,
		}
		if item.Product != nil {
			line.Name = item.Product.Name
			if len(item.Product.Images) > 0 {
				line.Image = item.Product.Images[0]
			}
		}
		lines = append(lines, line)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, order.ID, successURL, cancelURL, lines)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("stripe_session_id", session.ID).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// MarkAsPaid transitions an order to processing and stamps paidAt. Unknown
// order ids are ignored so webhook replays stay safe, and PaidAt is only set
// on the first application.
func (s *OrderService) MarkAsPaid(orderID string) error {
	var order models.Order
	err := s.db.First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	order.Status = models.OrderStatusProcessing
	if order.PaidAt == nil {
		now := time.Now()
		order.PaidAt = &now
	}
	return s.db.Save(&order).Error
}

func (s *OrderService) FindOne(id, userID string) (*OrderView, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("Items.Product").
		Where("id = ? AND user_id = ?", id, userID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("order not found")
	}
	if err != nil {
		return nil, err
	}
	return mapOrder(&order), nil
}

func (s *OrderService) FindOneForAdmin(id string) (*OrderView, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("Items.Product").Preload("User").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("order not found")
	}
	if err != nil {
		return nil, err
	}
	return mapOrder(&order), nil
}

func (s *OrderService) FindByUser(userID string) ([]*OrderView, error) {
	var orders []models.Order
	if err := s.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return mapOrders(orders), nil
}

func (s *OrderService) FindAllForAdmin() ([]*OrderView, error) {
	var orders []models.Order
	if err := s.db.Preload("Items").Preload("Items.Product").Preload("User").
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return mapOrders(orders), nil
}

// FindByUserWithFilters pages through a user's orders, optionally narrowed
// to one status.
func (s *OrderService) FindByUserWithFilters(userID string, status models.OrderStatus, page, limit int) ([]*OrderView, *PageMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID)
	if status != "" {
		if _, ok := models.ValidOrderStatus(string(status)); !ok {
			return nil, nil, ErrInvalid("invalid order status")
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("Items.Product").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, nil, err
	}

	meta := &PageMeta{
		Total:    total,
		Page:     page,
		LastPage: int(math.Ceil(float64(total) / float64(limit))),
		PerPage:  limit,
	}
	return mapOrders(orders), meta, nil
}

type UserOrderStats struct {
	TotalOrders     int        `json:"total_orders"`
	TotalSpent      float64    `json:"total_spent"`
	PendingOrders   int        `json:"pending_orders"`
	CompletedOrders int        `json:"completed_orders"`
	RecentOrder     *OrderView `json:"recent_order,omitempty"`
}

func (s *OrderService) GetUserOrderStats(userID string) (*UserOrderStats, error) {
	var orders []models.Order
	if err := s.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}

	stats := &UserOrderStats{TotalOrders: len(orders)}
	for _, order := range orders {
		stats.TotalSpent += order.Total
		switch order.Status {
		case models.OrderStatusPending:
			stats.PendingOrders++
		case models.OrderStatusShipped:
			stats.CompletedOrders++
		}
	}
	if len(orders) > 0 {
		stats.RecentOrder = mapOrder(&orders[0])
	}
	return stats, nil
}

// UpdateStatus writes an admin status transition after validating the value
// against the known set. Transition legality beyond the checkout PENDING
// guard is left to the caller.
func (s *OrderService) UpdateStatus(orderID, status string) (*OrderView, error) {
	newStatus, ok := models.ValidOrderStatus(status)
	if !ok {
		return nil, ErrInvalid("invalid order status")
	}

	res := s.db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("status", newStatus)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound("order not found")
	}
	return s.FindOneForAdmin(orderID)
}

// mapOrder projects the persisted order into the response shape. Item name
// and image resolve from the live product at read time; the snapshot price is
// always the one frozen at purchase.
func mapOrder(order *models.Order) *OrderView {
	view := &OrderView{
		ID:              order.ID,
		UserID:          order.UserID,
		Total:           order.Total,
		Status:          order.Status,
		StripeSessionID: order.StripeSessionID,
		PaidAt:          order.PaidAt,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		User:            order.User,
		Address:         order.ShippingAddress,
		City:            order.ShippingCity,
		State:           order.ShippingState,
		ZipCode:         order.ShippingZipCode,
		Country:         order.ShippingCountry,
		Items:           make([]OrderItemView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		iv := OrderItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			iv.ProductName = item.Product.Name
			if len(item.Product.Images) > 0 {
				iv.Image = item.Product.Images[0]
			}
		}
		view.Items = append(view.Items, iv)
	}
	return view
}

func mapOrders(orders []models.Order) []*OrderView {
	views := make([]*OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, mapOrder(&orders[i]))
	}
	return views
}
