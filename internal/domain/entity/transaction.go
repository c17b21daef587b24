package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a completed sale. Rows are written once and never updated.
// FinalTotal = Subtotal - DiscountAmount + PaymentCharge.
type Transaction struct {
	ID                    uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ReceiptNo             string           `gorm:"size:50;uniqueIndex;not null" json:"receipt_no"`
	CashRegisterSessionID uuid.UUID        `gorm:"type:uuid;not null;index" json:"cash_register_session_id"`
	Subtotal              decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountRuleID        *uuid.UUID       `gorm:"type:uuid" json:"discount_rule_id,omitempty"`
	DiscountPercent       decimal.Decimal  `gorm:"type:decimal(5,2);not null" json:"discount_percent"`
	DiscountAmount        decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"discount_amount"`
	PaymentMethodID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"payment_method_id"`
	PaymentChargePercent  decimal.Decimal  `gorm:"type:decimal(5,2);not null" json:"payment_charge_percent"`
	PaymentCharge         decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"payment_charge"`
	FinalTotal            decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"final_total"`
	AmountReceived        *decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount_received"`
	ChangeAmount          *decimal.Decimal `gorm:"type:decimal(12,2)" json:"change_amount"`
	CashierID             *uuid.UUID       `gorm:"type:uuid;index" json:"cashier_id,omitempty"`
	TransactionDate       time.Time        `gorm:"not null;index" json:"transaction_date"`
	CreatedAt             time.Time        `json:"created_at"`

	Items         []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
	PaymentMethod *PaymentMethod    `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
	Cashier       *User             `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionItem is one cart line. UnitPrice is the product's discounted
// price frozen at the time of sale.
type TransactionItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	LineNo        int             `gorm:"not null" json:"line_no"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (i *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (TransactionItem) TableName() string {
	return "transaction_items"
}
