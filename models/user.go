package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
	RoleVendor   UserRole = "vendor"
)

type User struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Role        UserRole   `gorm:"type:varchar(20);default:'customer'" json:"role"`
	Phone       string     `json:"phone,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Bio         string     `gorm:"type:text" json:"bio,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	Addresses   []Address  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// AvatarURL falls back to the bundled placeholder when no avatar was uploaded.
func AvatarURL(u *User) string {
	if u.Avatar != "" {
		return u.Avatar
	}
	return "/default-avatar.png"
}
