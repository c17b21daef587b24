package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscountRule is an automatic discount tier: carts whose subtotal reaches
// MinAmount qualify for DiscountPercent off.
type DiscountRule struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	MinAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;index" json:"min_amount"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount_percent"`
	IsActive        bool            `gorm:"not null" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (d *DiscountRule) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (DiscountRule) TableName() string {
	return "discount_rules"
}
