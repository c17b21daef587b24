package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethod is a way of paying at the till. ChargePercent is a surcharge
// applied on top of the discounted amount. Exactly one active method is the
// designated cash method; sales through it feed the register's cash totals.
type PaymentMethod struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	ChargePercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"charge_percent"`
	IsCash        bool            `gorm:"not null" json:"is_cash"`
	IsActive      bool            `gorm:"not null" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (m *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}
