package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SalesFilter narrows aggregate queries. Zero fields are ignored; From and
// To are inclusive.
type SalesFilter struct {
	From      *time.Time
	To        *time.Time
	SessionID *uuid.UUID
}

// SalesTotals are the headline sums over a set of transactions.
type SalesTotals struct {
	TransactionCount int64           `json:"transaction_count"`
	GrossSales       decimal.Decimal `json:"gross_sales"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TotalDiscounts   decimal.Decimal `json:"total_discounts"`
	TotalCharges     decimal.Decimal `json:"total_charges"`
}

// TopProductResult represents a best-selling product
type TopProductResult struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	SKU          string          `json:"sku"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// AnalyticsRepository answers aggregate questions about sales.
type AnalyticsRepository interface {
	Totals(ctx context.Context, filter SalesFilter) (*SalesTotals, error)
	TotalsByPaymentMethod(ctx context.Context, filter SalesFilter) ([]entity.PaymentMethodTotal, error)
	TopProducts(ctx context.Context, filter SalesFilter, limit int) ([]TopProductResult, error)
}
