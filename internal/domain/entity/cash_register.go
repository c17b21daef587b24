package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BusinessDateLayout is the format of CashRegisterSession.BusinessDate.
const BusinessDateLayout = "2006-01-02"

// CashRegisterSession is one business day of till activity. While open,
// ExpectedCash always equals StartingCash + CashSales. Closing records the
// counted cash and the signed Difference (actual - expected); a closed
// session is never modified again.
type CashRegisterSession struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessDate string           `gorm:"size:10;uniqueIndex;not null" json:"business_date"`
	StartingCash decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"starting_cash"`
	CashSales    decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"cash_sales"`
	ExpectedCash decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"expected_cash"`
	ActualCash   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"actual_cash"`
	Difference   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"difference"`
	IsOpen       bool             `gorm:"not null;index" json:"is_open"`
	OpenedAt     time.Time        `gorm:"not null" json:"opened_at"`
	ClosedAt     *time.Time       `json:"closed_at"`
	OpenedBy     *uuid.UUID       `gorm:"type:uuid" json:"opened_by,omitempty"`
	ClosedBy     *uuid.UUID       `gorm:"type:uuid" json:"closed_by,omitempty"`
	Notes        *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (s *CashRegisterSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (CashRegisterSession) TableName() string {
	return "cash_register_sessions"
}

// PaymentMethodTotal is the takings of one payment method within a period.
type PaymentMethodTotal struct {
	PaymentMethodID   uuid.UUID       `json:"payment_method_id"`
	PaymentMethodName string          `json:"payment_method_name"`
	IsCash            bool            `json:"is_cash"`
	Count             int64           `json:"count"`
	Total             decimal.Decimal `json:"total"`
}

// SessionSummary is the end-of-day view of a register session.
type SessionSummary struct {
	Session          *CashRegisterSession `json:"session"`
	TransactionCount int64                `json:"transaction_count"`
	GrossSales       decimal.Decimal      `json:"gross_sales"`
	TotalDiscounts   decimal.Decimal      `json:"total_discounts"`
	TotalCharges     decimal.Decimal      `json:"total_charges"`
	ByPaymentMethod  []PaymentMethodTotal `json:"by_payment_method"`
}
