package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nexon-digital/storefront-api/models"
)

// CartService manages line items owned by a registered user or an anonymous
// session (exactly one of the two).
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

type CartLine struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Product   *models.Product `json:"product"`
	LineTotal float64         `json:"line_total"`
}

type CartView struct {
	Items     []CartLine `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
}

// ownerScope narrows a query to one cart owner. Guest rows are those with a
// matching session id and no user id.
func ownerScope(db *gorm.DB, userID, sessionID string) *gorm.DB {
	if userID != "" {
		return db.Where("user_id = ?", userID)
	}
	return db.Where("session_id = ? AND user_id IS NULL", sessionID)
}

func requireOwner(userID, sessionID string) error {
	if userID == "" && sessionID == "" {
		return ErrInvalid("either userId or sessionId must be provided")
	}
	return nil
}

// GetCart returns the owner's line items joined with live product data and a
// computed total. Lines whose product no longer resolves are dropped.
func (s *CartService) GetCart(userID, sessionID string) (*CartView, error) {
	if err := requireOwner(userID, sessionID); err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := ownerScope(s.db.Model(&models.CartItem{}), userID, sessionID).
		Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	view := &CartView{Items: []CartLine{}}
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

		line := CartLine{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   &product,
			LineTotal: product.Price * float64(item.Quantity),
		}
		view.Items = append(view.Items, line)
		view.Total += line.LineTotal
	}
	view.ItemCount = len(view.Items)
	return view, nil
}

// AddItem adds quantity of a product to the owner's cart. If the owner
// already holds the product, quantities are summed and stock is re-checked
// against the combined total.
func (s *CartService) AddItem(productID string, quantity int, userID, sessionID string) (*models.CartItem, error) {
	if err := requireOwner(userID, sessionID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, ErrInvalid("quantity must be at least 1")
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("product not found")
		}
		return nil, err
	}
	if product.Stock < quantity {
		return nil, ErrConflict("insufficient stock")
	}

	var existing models.CartItem
	err := ownerScope(s.db, userID, sessionID).
		Where("product_id = ?", productID).First(&existing).Error
	if err == nil {
		newQty := existing.Quantity + quantity
		if product.Stock < newQty {
			return nil, ErrConflict("insufficient stock")
		}
		existing.Quantity = newQty
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := models.CartItem{
		ProductID: productID,
		Quantity:  quantity,
	}
	if userID != "" {
		item.UserID = &userID
	} else {
		item.SessionID = &sessionID
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem sets the absolute quantity of an existing line and re-validates
// stock against it.
func (s *CartService) UpdateItem(productID string, quantity int, userID, sessionID string) (*models.CartItem, error) {
	if err := requireOwner(userID, sessionID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, ErrInvalid("quantity must be at least 1")
	}

	var item models.CartItem
	err := ownerScope(s.db, userID, sessionID).
		Where("product_id = ?", productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("cart item not found")
	}
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("product not found")
		}
		return nil, err
	}
	if product.Stock < quantity {
		return nil, ErrConflict("insufficient stock")
	}

	item.Quantity = quantity
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartService) RemoveItem(productID string, userID, sessionID string) error {
	if err := requireOwner(userID, sessionID); err != nil {
		return err
	}
	res := ownerScope(s.db, userID, sessionID).
		Where("product_id = ?", productID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound("cart item not found")
	}
	return nil
}

func (s *CartService) ClearCart(userID, sessionID string) error {
	if err := requireOwner(userID, sessionID); err != nil {
		return err
	}
	return ownerScope(s.db, userID, sessionID).Delete(&models.CartItem{}).Error
}

// MergeGuestCartToUser moves a session's rows onto the user's cart after
// login. Duplicate products have their quantities summed; rows the combined
// quantity would oversell are skipped rather than erroring. Every remaining
// guest row under the session is deleted afterwards regardless of merge
// outcome, so a skipped item is dropped, never preserved.
func (s *CartService) MergeGuestCartToUser(sessionID, userID string) error {
	if sessionID == "" || userID == "" {
		return ErrInvalid("sessionId and userId are required")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var guestItems []models.CartItem
		if err := tx.Where("session_id = ? AND user_id IS NULL", sessionID).
			Find(&guestItems).Error; err != nil {
			return err
		}

		for i := range guestItems {
			guestItem := guestItems[i]

			var userItem models.CartItem
			err := tx.Where("user_id = ? AND product_id = ?", userID, guestItem.ProductID).
				First(&userItem).Error
			switch {
			case err == nil:
				var product models.Product
				perr := tx.First(&product, "id = ?", guestItem.ProductID).Error
				if errors.Is(perr, gorm.ErrRecordNotFound) {
					continue
				}
				if perr != nil {
					return perr
				}
				newQty := userItem.Quantity + guestItem.Quantity
				if product.Stock < newQty {
					// Skipped silently; the cleanup below drops the guest row.
					continue
				}
				userItem.Quantity = newQty
				if err := tx.Save(&userItem).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				// Re-own the guest row.
				if err := tx.Model(&models.CartItem{}).Where("id = ?", guestItem.ID).
					Updates(map[string]interface{}{"user_id": userID, "session_id": nil}).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		return tx.Where("session_id = ? AND user_id IS NULL", sessionID).
			Delete(&models.CartItem{}).Error
	})
}

// GetCartItemCount sums quantities across the owner's lines. Returns 0 when
// no owner is supplied.
func (s *CartService) GetCartItemCount(userID, sessionID string) (int, error) {
	if userID == "" && sessionID == "" {
		return 0, nil
	}
	var items []models.CartItem
	if err := ownerScope(s.db.Model(&models.CartItem{}), userID, sessionID).
		Find(&items).Error; err != nil {
		return 0, err
	}
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count, nil
}
