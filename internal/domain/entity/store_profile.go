package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StoreProfile is the single row describing the shop, printed on receipts.
// Settings holds free-form receipt options such as "show_cashier".
type StoreProfile struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string            `gorm:"size:255;not null" json:"name"`
	Address       string            `gorm:"type:text" json:"address,omitempty"`
	Phone         string            `gorm:"size:50" json:"phone,omitempty"`
	Email         string            `gorm:"size:255" json:"email,omitempty"`
	TaxID         string            `gorm:"size:100" json:"tax_id,omitempty"`
	ReceiptFooter string            `gorm:"type:text" json:"receipt_footer,omitempty"`
	Settings      datatypes.JSONMap `json:"settings,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (s *StoreProfile) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (StoreProfile) TableName() string {
	return "store_profiles"
}

// BoolSetting reads a boolean receipt option, returning def when unset.
func (s *StoreProfile) BoolSetting(key string, def bool) bool {
	if s == nil || s.Settings == nil {
		return def
	}
	v, ok := s.Settings[key].(bool)
	if !ok {
		return def
	}
	return v
}
