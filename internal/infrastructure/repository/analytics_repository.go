package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/storepos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new sales analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// salesScope applies a SalesFilter to a query whose transactions table is
// aliased as t.
func salesScope(filter domainRepo.SalesFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.From != nil {
			db = db.Where("t.transaction_date >= ?", filter.From.UTC())
		}
		if filter.To != nil {
			db = db.Where("t.transaction_date <= ?", filter.To.UTC())
		}
		if filter.SessionID != nil {
			db = db.Where("t.cash_register_session_id = ?", *filter.SessionID)
		}
		return db
	}
}

func (r *analyticsRepository) Totals(ctx context.Context, filter domainRepo.SalesFilter) (*domainRepo.SalesTotals, error) {
	var row struct {
		TransactionCount int64
		GrossSales       decimal.Decimal
		Subtotal         decimal.Decimal
		TotalDiscounts   decimal.Decimal
		TotalCharges     decimal.Decimal
	}

	err := conn(ctx, r.db).
		Table("transactions AS t").
		Select(`COUNT(t.id) AS transaction_count,
			COALESCE(SUM(t.final_total), 0) AS gross_sales,
			COALESCE(SUM(t.subtotal), 0) AS subtotal,
			COALESCE(SUM(t.discount_amount), 0) AS total_discounts,
			COALESCE(SUM(t.payment_charge), 0) AS total_charges`).
		Scopes(salesScope(filter)).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &domainRepo.SalesTotals{
		TransactionCount: row.TransactionCount,
		GrossSales:       row.GrossSales.Round(2),
		Subtotal:         row.Subtotal.Round(2),
		TotalDiscounts:   row.TotalDiscounts.Round(2),
		TotalCharges:     row.TotalCharges.Round(2),
	}, nil
}

func (r *analyticsRepository) TotalsByPaymentMethod(ctx context.Context, filter domainRepo.SalesFilter) ([]entity.PaymentMethodTotal, error) {
	var results []entity.PaymentMethodTotal

	err := conn(ctx, r.db).
		Table("transactions AS t").
		Select(`pm.id AS payment_method_id,
			pm.name AS payment_method_name,
			pm.is_cash AS is_cash,
			COUNT(t.id) AS count,
			COALESCE(SUM(t.final_total), 0) AS total`).
		Joins("JOIN payment_methods pm ON pm.id = t.payment_method_id").
		Scopes(salesScope(filter)).
		Group("pm.id, pm.name, pm.is_cash").
		Order("pm.name ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].Total = results[i].Total.Round(2)
	}
	return results, nil
}

func (r *analyticsRepository) TopProducts(ctx context.Context, filter domainRepo.SalesFilter, limit int) ([]domainRepo.TopProductResult, error) {
	var rows []struct {
		ProductID    uuid.UUID
		ProductName  string
		SKU          string `gorm:"column:sku"`
		QuantitySold int64
		Revenue      decimal.Decimal
	}

	err := conn(ctx, r.db).
		Table("transaction_items AS ti").
		Select(`p.id AS product_id,
			p.name AS product_name,
			p.sku AS sku,
			COALESCE(SUM(ti.quantity), 0) AS quantity_sold,
			COALESCE(SUM(ti.subtotal), 0) AS revenue`).
		Joins("JOIN transactions t ON t.id = ti.transaction_id").
		Joins("JOIN products p ON p.id = ti.product_id").
		Scopes(salesScope(filter)).
		Group("p.id, p.name, p.sku").
		Order("quantity_sold DESC, revenue DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domainRepo.TopProductResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, domainRepo.TopProductResult{
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			SKU:          row.SKU,
			QuantitySold: row.QuantitySold,
			Revenue:      row.Revenue.Round(2),
		})
	}
	return results, nil
}
