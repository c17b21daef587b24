package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const reportTopProducts = 10

// ReportService builds sales and end-of-day register reports
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
	txnRepo       repository.TransactionRepository
	storeRepo     repository.StoreProfileRepository
	register      *CashRegisterService
	clock         *StoreClock
}

// NewReportService creates a new report service
func NewReportService(
	analyticsRepo repository.AnalyticsRepository,
	txnRepo repository.TransactionRepository,
	storeRepo repository.StoreProfileRepository,
	register *CashRegisterService,
	clock *StoreClock,
) *ReportService {
	return &ReportService{
		analyticsRepo: analyticsRepo,
		txnRepo:       txnRepo,
		storeRepo:     storeRepo,
		register:      register,
		clock:         clock,
	}
}

// DailySales is one business day of a sales report
type DailySales struct {
	Date             string          `json:"date"`
	TransactionCount int64           `json:"transaction_count"`
	GrossSales       decimal.Decimal `json:"gross_sales"`
	TotalDiscounts   decimal.Decimal `json:"total_discounts"`
	TotalCharges     decimal.Decimal `json:"total_charges"`
}

// SalesReport summarises sales between two business dates
type SalesReport struct {
	StartDate       string                        `json:"start_date"`
	EndDate         string                        `json:"end_date"`
	Totals          *repository.SalesTotals       `json:"totals"`
	ByPaymentMethod []entity.PaymentMethodTotal   `json:"by_payment_method"`
	ByDay           []DailySales                  `json:"by_day"`
	TopProducts     []repository.TopProductResult `json:"top_products"`
}

// GetSalesReport reports on startDate..endDate, both inclusive. Every day
// of the range appears in ByDay, including days without sales.
func (s *ReportService) GetSalesReport(ctx context.Context, startDate, endDate string) (*SalesReport, error) {
	from, to, err := parseDateRange(s.clock, startDate, endDate)
	if err != nil {
		return nil, err
	}
	filter := repository.SalesFilter{From: &from, To: &to}

	totals, err := s.analyticsRepo.Totals(ctx, filter)
	if err != nil {
		return nil, err
	}
	byMethod, err := s.analyticsRepo.TotalsByPaymentMethod(ctx, filter)
	if err != nil {
		return nil, err
	}
	top, err := s.analyticsRepo.TopProducts(ctx, filter, reportTopProducts)
	if err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &SalesReport{
		StartDate:       startDate,
		EndDate:         endDate,
		Totals:          totals,
		ByPaymentMethod: nonNil(byMethod),
		ByDay:           s.bucketByDay(from, to, txns),
		TopProducts:     nonNil(top),
	}, nil
}

// bucketByDay groups transactions by the store-local date they happened on.
func (s *ReportService) bucketByDay(from, to time.Time, txns []entity.Transaction) []DailySales {
	var days []DailySales
	index := make(map[string]int)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		date := s.clock.BusinessDate(day)
		index[date] = len(days)
		days = append(days, DailySales{
			Date:           date,
			GrossSales:     decimal.Zero,
			TotalDiscounts: decimal.Zero,
			TotalCharges:   decimal.Zero,
		})
	}

	for _, t := range txns {
		i, ok := index[s.clock.BusinessDate(t.TransactionDate)]
		if !ok {
			continue
		}
		days[i].TransactionCount++
		days[i].GrossSales = days[i].GrossSales.Add(t.FinalTotal)
		days[i].TotalDiscounts = days[i].TotalDiscounts.Add(t.DiscountAmount)
		days[i].TotalCharges = days[i].TotalCharges.Add(t.PaymentCharge)
	}
	return days
}

// RegisterReportPDF renders the end-of-day report of a register session.
func (s *ReportService) RegisterReportPDF(ctx context.Context, sessionID uuid.UUID) ([]byte, error) {
	summary, err := s.register.GetSummary(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	profile, err := s.storeRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	storeName := "Store"
	if profile != nil && profile.Name != "" {
		storeName = profile.Name
	}
	return BuildRegisterPDF(storeName, summary, s.clock)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// BuildRegisterPDF lays out a session summary on one A4 page.
func BuildRegisterPDF(storeName string, sum *entity.SessionSummary, clock *StoreClock) ([]byte, error) {
	session := sum.Session

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Register Report "+session.BusinessDate, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, storeName)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Register Report: %s", session.BusinessDate))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Opened: %s", session.OpenedAt.In(clock.Location()).Format("2006-01-02 15:04")))
	pdf.Ln(6)
	if session.ClosedAt != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Closed: %s", session.ClosedAt.In(clock.Location()).Format("2006-01-02 15:04")))
	} else {
		pdf.Cell(0, 8, "Status: OPEN")
	}
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Cash Drawer")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	row := func(label, value string) {
		pdf.Cell(70, 7, label)
		pdf.CellFormat(50, 7, value, "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	row("Starting cash", money(session.StartingCash))
	row("Cash sales", money(session.CashSales))
	row("Expected cash", money(session.ExpectedCash))
	if session.ActualCash != nil {
		row("Counted cash", money(*session.ActualCash))
	}
	if session.Difference != nil {
		row("Difference", money(*session.Difference))
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Sales")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	row("Transactions", fmt.Sprintf("%d", sum.TransactionCount))
	row("Gross sales", money(sum.GrossSales))
	row("Discounts", money(sum.TotalDiscounts))
	row("Payment charges", money(sum.TotalCharges))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(70, 7, "Payment method")
	pdf.CellFormat(30, 7, "Count", "", 0, "R", false, 0, "")
	pdf.CellFormat(50, 7, "Total", "", 0, "R", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	for _, m := range sum.ByPaymentMethod {
		pdf.Cell(70, 7, m.PaymentMethodName)
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", m.Count), "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, money(m.Total), "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	if session.Notes != nil && *session.Notes != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 7, "Notes: "+*session.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
