package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressType string

const (
	AddressShipping AddressType = "shipping"
	AddressBilling  AddressType = "billing"
)

type Address struct {
	ID        string      `gorm:"primaryKey;size:36" json:"id"`
	UserID    string      `gorm:"index;size:36;not null" json:"user_id"`
	Type      AddressType `gorm:"type:varchar(10);default:'shipping'" json:"type"`
	FirstName string      `gorm:"not null" json:"first_name"`
	LastName  string      `gorm:"not null" json:"last_name"`
	Company   string      `json:"company,omitempty"`
	Address   string      `gorm:"not null" json:"address"`
	Address2  string      `json:"address2,omitempty"`
	City      string      `gorm:"not null" json:"city"`
	State     string      `gorm:"not null" json:"state"`
	ZipCode   string      `gorm:"not null" json:"zip_code"`
	Country   string      `gorm:"not null" json:"country"`
	IsDefault bool        `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func FullName(a *Address) string {
	return a.FirstName + " " + a.LastName
}

func FullAddress(a *Address) string {
	full := a.Address
	if a.Address2 != "" {
		full += ", " + a.Address2
	}
	return full + ", " + a.City + ", " + a.State + " " + a.ZipCode + ", " + a.Country
}
