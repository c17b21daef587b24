package service

import (
	"context"

	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dashboardTopProducts = 5

// DashboardService provides today's figures for the till screen
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	register      *CashRegisterService
	clock         *StoreClock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	register *CashRegisterService,
	clock *StoreClock,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		register:      register,
		clock:         clock,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	BusinessDate     string                        `json:"business_date"`
	TransactionCount int64                         `json:"transaction_count"`
	GrossSales       decimal.Decimal               `json:"gross_sales"`
	TotalDiscounts   decimal.Decimal               `json:"total_discounts"`
	TotalCharges     decimal.Decimal               `json:"total_charges"`
	CashSales        decimal.Decimal               `json:"cash_sales"`
	AverageSale      decimal.Decimal               `json:"average_sale"`
	RegisterOpen     bool                          `json:"register_open"`
	Register         *entity.CashRegisterSession   `json:"register,omitempty"`
	ByPaymentMethod  []entity.PaymentMethodTotal   `json:"by_payment_method"`
	TopProducts      []repository.TopProductResult `json:"top_products"`
}

// GetDashboardStats returns the figures for the current business day
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	from, to := s.clock.DayBounds(s.clock.Now())
	filter := repository.SalesFilter{From: &from, To: &to}

	totals, err := s.analyticsRepo.Totals(ctx, filter)
	if err != nil {
		return nil, err
	}

	byMethod, err := s.analyticsRepo.TotalsByPaymentMethod(ctx, filter)
	if err != nil {
		return nil, err
	}

	top, err := s.analyticsRepo.TopProducts(ctx, filter, dashboardTopProducts)
	if err != nil {
		return nil, err
	}

	session, err := s.register.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		BusinessDate:     s.clock.BusinessDate(from),
		TransactionCount: totals.TransactionCount,
		GrossSales:       totals.GrossSales,
		TotalDiscounts:   totals.TotalDiscounts,
		TotalCharges:     totals.TotalCharges,
		CashSales:        cashTotal(byMethod),
		AverageSale:      average(totals.GrossSales, totals.TransactionCount),
		RegisterOpen:     session != nil,
		Register:         session,
		ByPaymentMethod:  nonNil(byMethod),
		TopProducts:      nonNil(top),
	}
	return stats, nil
}

func cashTotal(byMethod []entity.PaymentMethodTotal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range byMethod {
		if m.IsCash {
			total = total.Add(m.Total)
		}
	}
	return total
}

func average(sum decimal.Decimal, count int64) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(count)).Round(2)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
