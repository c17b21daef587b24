package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/internal/domain/repository"
	"github.com/sangkips/storepos-api/pkg/apperror"
	"github.com/sangkips/storepos-api/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	txnRepo     repository.TransactionRepository
	storeRepo   repository.StoreProfileRepository
	clock       *StoreClock
	printerType string
	charWidth   int
	logger      *zap.Logger
}

// PrinterOptions describes the attached printer.
type PrinterOptions struct {
	Type      string
	CharWidth int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	txnRepo repository.TransactionRepository,
	storeRepo repository.StoreProfileRepository,
	clock *StoreClock,
	opts PrinterOptions,
	logger *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		txnRepo:     txnRepo,
		storeRepo:   storeRepo,
		clock:       clock,
		printerType: opts.Type,
		charWidth:   opts.CharWidth,
		logger:      logger.Named("printer"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	CharWidth  int    `json:"char_width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		CharWidth:  s.charWidth,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	header := entity.ReceiptHeader{StoreName: "PRINTER TEST"}
	if profile, err := s.storeRepo.Get(ctx); err == nil && profile != nil {
		header = receiptHeader(profile)
	}

	received := decimal.NewFromInt(20)
	change := decimal.Zero
	receipt := &entity.Receipt{
		Header:        header,
		ReceiptNo:     "TEST-001",
		Date:          s.clock.Now().Format("2006-01-02 15:04"),
		Cashier:       "System",
		PaymentMethod: "Cash",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(10)},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: decimal.NewFromInt(5), Total: decimal.NewFromInt(10)},
		},
		Subtotal: decimal.NewFromInt(20),
		Total:    decimal.NewFromInt(20),
		Received: &received,
		Change:   &change,
		Footer:   "Printer test page",
	}

	data := FormatReceipt(receipt, s.charWidth)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintReceipt reprints the receipt of a past sale.
func (s *PrinterService) PrintReceipt(ctx context.Context, receiptNo string) (*entity.Receipt, error) {
	txn, err := s.txnRepo.GetByReceiptNo(ctx, receiptNo)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	receipt, err := s.BuildReceipt(ctx, txn)
	if err != nil {
		return nil, err
	}

	data := FormatReceipt(receipt, s.charWidth)
	if err := s.printer.Print(data); err != nil {
		s.logger.Warn("receipt print failed", zap.String("receipt_no", receiptNo), zap.Error(err))
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// BuildReceipt composes the printable view of a transaction loaded with
// its items.
func (s *PrinterService) BuildReceipt(ctx context.Context, txn *entity.Transaction) (*entity.Receipt, error) {
	profile, err := s.storeRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header:          receiptHeader(profile),
		ReceiptNo:       txn.ReceiptNo,
		Date:            txn.TransactionDate.In(s.clock.Location()).Format("2006-01-02 15:04"),
		Subtotal:        txn.Subtotal,
		DiscountPercent: txn.DiscountPercent,
		Discount:        txn.DiscountAmount,
		ChargePercent:   txn.PaymentChargePercent,
		Charge:          txn.PaymentCharge,
		Total:           txn.FinalTotal,
		Received:        txn.AmountReceived,
		Change:          txn.ChangeAmount,
	}
	if profile != nil {
		receipt.Footer = profile.ReceiptFooter
	}
	if txn.PaymentMethod != nil {
		receipt.PaymentMethod = txn.PaymentMethod.Name
	}
	if txn.Cashier != nil && profile.BoolSetting("show_cashier", true) {
		receipt.Cashier = txn.Cashier.Name
	}

	for _, item := range txn.Items {
		name := "Product"
		if item.Product != nil && item.Product.Name != "" {
			name = item.Product.Name
		}
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Subtotal,
		})
	}

	return receipt, nil
}

// SaleCompleted prints the receipt of a new sale. Printing runs in the
// background so a slow printer never holds up the till; failures are logged.
func (s *PrinterService) SaleCompleted(ctx context.Context, txn *entity.Transaction) {
	receipt, err := s.BuildReceipt(context.WithoutCancel(ctx), txn)
	if err != nil {
		s.logger.Warn("auto-print skipped", zap.String("receipt_no", txn.ReceiptNo), zap.Error(err))
		return
	}
	data := FormatReceipt(receipt, s.charWidth)

	go func() {
		start := time.Now()
		if err := s.printer.Print(data); err != nil {
			s.logger.Warn("auto-print failed", zap.String("receipt_no", txn.ReceiptNo), zap.Error(err))
			return
		}
		s.logger.Debug("receipt printed", zap.String("receipt_no", txn.ReceiptNo), zap.Duration("took", time.Since(start)))
	}()
}

func receiptHeader(profile *entity.StoreProfile) entity.ReceiptHeader {
	if profile == nil {
		return entity.ReceiptHeader{StoreName: "Store"}
	}
	return entity.ReceiptHeader{
		StoreName: profile.Name,
		Address:   profile.Address,
		Phone:     profile.Phone,
		TaxID:     profile.TaxID,
	}
}

// FormatReceipt converts a Receipt into ESC/POS bytes for paper charWidth
// characters wide.
func FormatReceipt(r *entity.Receipt, charWidth int) []byte {
	doc := printer.NewDocument(charWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(printer.Truncate(r.Header.StoreName, doc.Width()/2)).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Wrapped(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Receipt info
	doc.KeyValue("Receipt:", r.ReceiptNo).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, money(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", money(item.UnitPrice))
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", money(r.Subtotal))
	if r.Discount.IsPositive() {
		doc.KeyValue(fmt.Sprintf("Discount (%s%%):", r.DiscountPercent.String()), "-"+money(r.Discount))
	}
	if r.Charge.IsPositive() {
		doc.KeyValue(fmt.Sprintf("Charge (%s%%):", r.ChargePercent.String()), money(r.Charge))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", money(r.Total)).
		SetBold(false)

	if r.Received != nil {
		doc.KeyValue("Received:", money(*r.Received))
	}
	if r.Change != nil {
		doc.KeyValue("Change:", money(*r.Change))
	}

	doc.Separator('-')

	// Footer
	footer := r.Footer
	if footer == "" {
		footer = "Thank you for your business!"
	}
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Wrapped(footer).
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
