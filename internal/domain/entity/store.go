package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is a temple, trust or branch. Every receipt, customer and
// particular belongs to exactly one store.
type Store struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name               string         `gorm:"size:255;not null" json:"name"`
	Address            string         `gorm:"type:text" json:"address,omitempty"`
	City               string         `gorm:"size:100" json:"city,omitempty"`
	State              string         `gorm:"size:100" json:"state,omitempty"`
	Contact            string         `gorm:"size:50" json:"contact,omitempty"`
	ReceiptPrefix      string         `gorm:"size:20;default:'RCT'" json:"receiptPrefix,omitempty"`
	PaymentOptions     string         `gorm:"size:255" json:"paymentOptions,omitempty"`
	SubscriptionStatus string         `gorm:"size:50;default:'active'" json:"subscriptionStatus,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Members []StoreMembership `gorm:"foreignKey:StoreID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new store
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Store model
func (Store) TableName() string {
	return "stores"
}

// StoreMembership grants a user access to a store
type StoreMembership struct {
	StoreID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"storeId"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	IsDefault bool      `gorm:"default:false" json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`

	Store Store `gorm:"foreignKey:StoreID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

// TableName returns the table name for the StoreMembership model
func (StoreMembership) TableName() string {
	return "store_memberships"
}
