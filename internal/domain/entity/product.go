package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

func init() {
	// Money crosses the API as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a sellable item in the catalog
type Product struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID         *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name               string          `gorm:"size:255;not null" json:"name"`
	SKU                string          `gorm:"column:sku;size:100;uniqueIndex;not null" json:"sku"`
	Price              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	DiscountPercent    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"`
	PriceAfterDiscount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price_after_discount"`
	IsActive           bool            `gorm:"not null;index" json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the stored price-after-discount in step with price and
// discount on every write.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.PriceAfterDiscount = ApplyPercentOff(p.Price, p.DiscountPercent)
	return nil
}

func (Product) TableName() string {
	return "products"
}

// ApplyPercentOff returns price reduced by pct percent, rounded to cents.
func ApplyPercentOff(price, pct decimal.Decimal) decimal.Decimal {
	factor := hundred.Sub(pct).Div(hundred)
	return price.Mul(factor).Round(2)
}

// Category groups products on the menu
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Category) TableName() string {
	return "categories"
}
