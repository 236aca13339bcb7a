package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/nexon-digital/storefront-api/models"
)

type UserService struct {
	db      *gorm.DB
	storage ObjectStorage
}

func NewUserService(db *gorm.DB, storage ObjectStorage) *UserService {
	return &UserService{db: db, storage: storage}
}

type UpdateProfileInput struct {
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Bio         string     `json:"bio"`
}

type AddressInput struct {
	Type      string `json:"type"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Company   string `json:"company"`
	Address   string `json:"address" binding:"required"`
	Address2  string `json:"address2"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	ZipCode   string `json:"zip_code" binding:"required"`
	Country   string `json:"country" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

// UserSummary is the admin listing row: avatar resolved to a displayable URL
// and the default address flattened to contact lines.
type UserSummary struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           models.UserRole `json:"role"`
	Phone          string          `json:"phone,omitempty"`
	Avatar         string          `json:"avatar"`
	IsActive       bool            `json:"is_active"`
	DefaultContact string          `json:"default_contact,omitempty"`
	DefaultAddress string          `json:"default_address,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (s *UserService) FindAll() ([]UserSummary, error) {
	var users []models.User
	if err := s.db.Preload("Addresses").Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, 0, len(users))
	for i := range users {
		user := &users[i]
		summary := UserSummary{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			Phone:     user.Phone,
			Avatar:    models.AvatarURL(user),
			IsActive:  user.IsActive,
			CreatedAt: user.CreatedAt,
		}
		for j := range user.Addresses {
			if user.Addresses[j].IsDefault {
				summary.DefaultContact = models.FullName(&user.Addresses[j])
				summary.DefaultAddress = models.FullAddress(&user.Addresses[j])
				break
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *UserService) GetProfile(userID string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Addresses").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(userID string, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.DateOfBirth != nil {
		user.DateOfBirth = in.DateOfBirth
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar stores the new avatar and best-effort deletes the previous
// one.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, data []byte, filename, contentType string) (string, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return "", err
	}

	if user.Avatar != "" {
		if err := s.storage.DeleteFile(ctx, user.Avatar); err != nil {
			log.Printf("failed to delete old avatar for user %s: %v", userID, err)
		}
	}

	avatarURL, err := s.storage.UploadFile(ctx, data, filename, contentType, "avatars/"+userID)
	if err != nil {
		return "", err
	}

	user.Avatar = avatarURL
	if err := s.db.Save(user).Error; err != nil {
		return "", err
	}
	return avatarURL, nil
}

func (s *UserService) GetAddresses(userID string) ([]models.Address, error) {
	var addresses []models.Address
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress adds an address; marking it default clears the previous
// default.
func (s *UserService) CreateAddress(userID string, in AddressInput) (*models.Address, error) {
	addrType := models.AddressShipping
	if models.AddressType(in.Type) == models.AddressBilling {
		addrType = models.AddressBilling
	}

	address := models.Address{
		UserID:    userID,
		Type:      addrType,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Company:   in.Company,
		Address:   in.Address,
		Address2:  in.Address2,
		City:      in.City,
		State:     in.State,
		ZipCode:   in.ZipCode,
		Country:   in.Country,
		IsDefault: in.IsDefault,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND is_default = ?", userID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (s *UserService) UpdateAddress(userID, addressID string, in AddressInput) (*models.Address, error) {
	var address models.Address
	err := s.db.First(&address, "id = ? AND user_id = ?", addressID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("address not found")
	}
	if err != nil {
		return nil, err
	}

	if models.AddressType(in.Type) == models.AddressBilling || models.AddressType(in.Type) == models.AddressShipping {
		address.Type = models.AddressType(in.Type)
	}
	address.FirstName = in.FirstName
	address.LastName = in.LastName
	address.Company = in.Company
	address.Address = in.Address
	address.Address2 = in.Address2
	address.City = in.City
	address.State = in.State
	address.ZipCode = in.ZipCode
	address.Country = in.Country

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if in.IsDefault && !address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND is_default = ?", userID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		address.IsDefault = in.IsDefault
		return tx.Save(&address).Error
	})
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (s *UserService) DeleteAddress(userID, addressID string) error {
	res := s.db.Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&models.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound("address not found")
	}
	return nil
}
