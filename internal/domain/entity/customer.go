package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a donor or devotee receipts are issued to
type Customer struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StoreID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"storeId"`
	AccountNumber string         `gorm:"size:100;index" json:"accountNumber"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Mobile        string         `gorm:"size:20" json:"mobile,omitempty"`
	Email         *string        `gorm:"size:255" json:"email,omitempty"`
	Address       string         `gorm:"type:text" json:"address,omitempty"`
	Active        bool           `gorm:"default:true" json:"active"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Store    Store     `gorm:"foreignKey:StoreID" json:"-"`
	Receipts []Receipt `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
