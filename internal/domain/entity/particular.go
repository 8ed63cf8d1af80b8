package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Particular is a purpose a donation line can be booked against,
// e.g. "Annadanam" or "Building fund".
type Particular struct {
	ID        uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	StoreID   uuid.UUID           `gorm:"type:uuid;not null;index" json:"storeId"`
	Name      string              `gorm:"size:255;not null" json:"name"`
	Type      enum.ParticularType `gorm:"size:20;not null;default:'RECEIPT'" json:"type"`
	Active    bool                `gorm:"default:true" json:"active"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
	DeletedAt gorm.DeletedAt      `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new particular
func (p *Particular) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Particular model
func (Particular) TableName() string {
	return "particulars"
}
