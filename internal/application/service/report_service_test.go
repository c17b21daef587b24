package service

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)

	empty, err := f.dashboard.GetDashboardStats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", empty.BusinessDate)
	assert.False(t, empty.RegisterOpen)
	assert.Zero(t, empty.TransactionCount)
	requireMoney(t, "0", empty.AverageSale, "average")
	assert.NotNil(t, empty.TopProducts)
	assert.NotNil(t, empty.ByPaymentMethod)

	f.open("20")
	tea := f.product("Tea", "3")
	cake := f.product("Cake", "6")
	_, err = f.sell(f.cash, nil, line(tea, 3))
	require.NoError(t, err)
	_, err = f.sell(f.card, nil, line(cake, 1))
	require.NoError(t, err)

	stats, err := f.dashboard.GetDashboardStats(f.ctx)
	require.NoError(t, err)

	// card: 6 + 0.15 charge
	assert.True(t, stats.RegisterOpen)
	require.NotNil(t, stats.Register)
	assert.Equal(t, int64(2), stats.TransactionCount)
	requireMoney(t, "15.15", stats.GrossSales, "gross")
	requireMoney(t, "9", stats.CashSales, "cash")
	requireMoney(t, "0.15", stats.TotalCharges, "charges")
	requireMoney(t, "7.58", stats.AverageSale, "average")
	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, "Tea", stats.TopProducts[0].ProductName)
	assert.Equal(t, int64(3), stats.TopProducts[0].QuantitySold)

	// tomorrow starts from zero
	f.clock.Advance(24 * time.Hour)
	next, err := f.dashboard.GetDashboardStats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", next.BusinessDate)
	assert.Zero(t, next.TransactionCount)
	assert.False(t, next.RegisterOpen)
}

func TestSalesReport(t *testing.T) {
	f := newFixture(t)
	p := f.product("Sandwich", "8")

	day := func(cash string, qty int) {
		t.Helper()
		s := f.open(cash)
		_, err := f.sell(f.cash, nil, line(p, qty))
		require.NoError(t, err)
		_, err = f.register.CloseSession(f.ctx, &CloseSessionInput{SessionID: s.ID, ActualCash: d(cash)})
		require.NoError(t, err)
	}

	day("10", 1) // 14th
	f.clock.Advance(48 * time.Hour)
	day("10", 2) // 16th

	report, err := f.reports.GetSalesReport(f.ctx, "2026-03-14", "2026-03-16")
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.Totals.TransactionCount)
	requireMoney(t, "24", report.Totals.GrossSales, "gross")
	require.Len(t, report.ByDay, 3)
	assert.Equal(t, "2026-03-14", report.ByDay[0].Date)
	requireMoney(t, "8", report.ByDay[0].GrossSales, "day one")
	assert.Equal(t, "2026-03-15", report.ByDay[1].Date)
	assert.Zero(t, report.ByDay[1].TransactionCount)
	requireMoney(t, "16", report.ByDay[2].GrossSales, "day three")
	require.Len(t, report.ByPaymentMethod, 1)
	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, int64(3), report.TopProducts[0].QuantitySold)

	single, err := f.reports.GetSalesReport(f.ctx, "2026-03-16", "2026-03-16")
	require.NoError(t, err)
	assert.Equal(t, int64(1), single.Totals.TransactionCount)

	_, err = f.reports.GetSalesReport(f.ctx, "2026-03-16", "2026-03-14")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "end_date", appErr.Errors[0].Field)

	_, err = f.reports.GetSalesReport(f.ctx, "", "")
	require.Error(t, err)
	assert.Len(t, apperror.GetAppError(err).Errors, 2)
}

func TestRegisterReportPDF(t *testing.T) {
	f := newFixture(t)
	notes := "float topped up at noon"
	session, err := f.register.OpenSession(f.ctx, &OpenSessionInput{StartingCash: d("40"), Notes: &notes})
	require.NoError(t, err)
	p := f.product("Soup", "5.5")
	_, err = f.sell(f.cash, nil, line(p, 2))
	require.NoError(t, err)

	pdf, err := f.reports.RegisterReportPDF(f.ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = f.register.CloseSession(f.ctx, &CloseSessionInput{SessionID: session.ID, ActualCash: d("50")})
	require.NoError(t, err)
	pdf, err = f.reports.RegisterReportPDF(f.ctx, session.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	_, err = f.reports.RegisterReportPDF(f.ctx, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrSessionNotFound), "got %v", err)
}
