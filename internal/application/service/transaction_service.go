package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/application/pricing"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/internal/domain/repository"
	"github.com/sangkips/storepos-api/pkg/apperror"
	"github.com/sangkips/storepos-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleListener is notified after a sale has been committed. Implementations
// must not fail the sale; they only log their own errors.
type SaleListener interface {
	SaleCompleted(ctx context.Context, txn *entity.Transaction)
}

// TransactionService creates and reads sales.
type TransactionService struct {
	transactor    repository.Transactor
	txnRepo       repository.TransactionRepository
	registerRepo  repository.CashRegisterRepository
	productRepo   repository.ProductRepository
	paymentRepo   repository.PaymentMethodRepository
	discountRepo  repository.DiscountRuleRepository
	receipts      *utils.ReceiptNumberGenerator
	clock         *StoreClock
	logger        *zap.Logger
	saleListeners []SaleListener
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactor repository.Transactor,
	txnRepo repository.TransactionRepository,
	registerRepo repository.CashRegisterRepository,
	productRepo repository.ProductRepository,
	paymentRepo repository.PaymentMethodRepository,
	discountRepo repository.DiscountRuleRepository,
	receipts *utils.ReceiptNumberGenerator,
	clock *StoreClock,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		transactor:   transactor,
		txnRepo:      txnRepo,
		registerRepo: registerRepo,
		productRepo:  productRepo,
		paymentRepo:  paymentRepo,
		discountRepo: discountRepo,
		receipts:     receipts,
		clock:        clock,
		logger:       logger.Named("transactions"),
	}
}

// OnSale registers a listener run after every committed sale.
func (s *TransactionService) OnSale(l SaleListener) {
	s.saleListeners = append(s.saleListeners, l)
}

// TransactionItemInput is one cart line.
type TransactionItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateTransactionInput represents a sale request
type CreateTransactionInput struct {
	CashierID       *uuid.UUID
	Items           []TransactionItemInput
	PaymentMethodID uuid.UUID
	AmountReceived  *decimal.Decimal
}

// CreateTransaction validates the cart, prices it and records the sale
// together with its items and, for cash, the register's running totals.
// Either all of it is stored or none of it is.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	items, err := normalizeItems(input.Items)
	if err != nil {
		return nil, err
	}
	if input.AmountReceived != nil && input.AmountReceived.IsNegative() {
		return nil, apperror.NewFieldError("amount_received", "must not be negative")
	}

	var created *entity.Transaction
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		now := s.clock.Now()

		session, err := s.registerRepo.GetByBusinessDate(ctx, s.clock.BusinessDate(now))
		if err != nil {
			return err
		}
		if session == nil || !session.IsOpen {
			return apperror.ErrNoActiveSession
		}

		lines, err := s.loadLines(ctx, items)
		if err != nil {
			return err
		}

		method, err := s.paymentRepo.GetByID(ctx, input.PaymentMethodID)
		if err != nil {
			return err
		}
		if method == nil || !method.IsActive {
			return apperror.ErrPaymentMethodNotFoundOrInactive
		}

		subtotal := decimal.Zero
		for _, l := range lines {
			subtotal = subtotal.Add(l.Total())
		}
		rules, err := s.discountRepo.ListApplicable(ctx, subtotal)
		if err != nil {
			return err
		}
		tiers := make([]pricing.Tier, 0, len(rules))
		for _, r := range rules {
			tiers = append(tiers, pricing.Tier{ID: r.ID, MinAmount: r.MinAmount, Percent: r.DiscountPercent})
		}

		quote := pricing.Calculate(lines, tiers, method.ChargePercent, input.AmountReceived)

		txn := &entity.Transaction{
			ReceiptNo:             s.receipts.Next(now),
			CashRegisterSessionID: session.ID,
			Subtotal:              quote.Subtotal,
			DiscountPercent:       quote.DiscountPercent,
			DiscountAmount:        quote.DiscountAmount,
			PaymentMethodID:       method.ID,
			PaymentChargePercent:  quote.ChargePercent,
			PaymentCharge:         quote.PaymentCharge,
			FinalTotal:            quote.FinalTotal,
			AmountReceived:        quote.AmountReceived,
			ChangeAmount:          quote.Change,
			CashierID:             input.CashierID,
			TransactionDate:       now.UTC(),
		}
		if quote.Tier != nil {
			id := quote.Tier.ID
			txn.DiscountRuleID = &id
		}
		for i, l := range quote.Lines {
			txn.Items = append(txn.Items, entity.TransactionItem{
				ProductID: l.ProductID,
				LineNo:    i + 1,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				Subtotal:  l.Total(),
			})
		}

		if err := s.txnRepo.Create(ctx, txn); err != nil {
			return err
		}

		if method.IsCash {
			applied, err := s.registerRepo.AddCashSale(ctx, session.ID, quote.FinalTotal)
			if err != nil {
				return err
			}
			if !applied {
				// closed between the lookup and the increment
				return apperror.ErrNoActiveSession
			}
		}

		created, err = s.txnRepo.GetWithItems(ctx, txn.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.String("receipt_no", created.ReceiptNo),
		zap.String("final_total", created.FinalTotal.StringFixed(2)),
		zap.String("payment_method_id", created.PaymentMethodID.String()),
		zap.Int("items", len(created.Items)),
	)

	for _, l := range s.saleListeners {
		l.SaleCompleted(ctx, created)
	}

	return created, nil
}

// normalizeItems checks the cart shape and merges repeated products into the
// position of their first occurrence.
func normalizeItems(items []TransactionItemInput) ([]TransactionItemInput, error) {
	if len(items) == 0 {
		return nil, apperror.NewFieldError("items", "at least one item is required")
	}

	var fieldErrors []apperror.FieldError
	merged := make([]TransactionItemInput, 0, len(items))
	index := make(map[uuid.UUID]int, len(items))
	for i, item := range items {
		if item.ProductID == uuid.Nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: itemField(i, "product_id"), Message: "is required"})
			continue
		}
		if item.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: itemField(i, "quantity"), Message: "must be greater than zero"})
			continue
		}
		if pos, ok := index[item.ProductID]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	return merged, nil
}

func itemField(i int, name string) string {
	return fmt.Sprintf("items[%d].%s", i, name)
}

// loadLines fetches every product in one query and prices each line at the
// product's discounted price. Any missing or inactive product fails the sale.
func (s *TransactionService) loadLines(ctx context.Context, items []TransactionItemInput) ([]pricing.Line, error) {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		p, ok := productMap[item.ProductID]
		if !ok || !p.IsActive {
			return nil, apperror.ErrProductNotFoundOrInactive
		}
		lines = append(lines, pricing.Line{
			ProductID: p.ID,
			UnitPrice: p.PriceAfterDiscount,
			Quantity:  item.Quantity,
		})
	}
	return lines, nil
}

// GetTransaction returns a sale with its items, or nil when it does not exist.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return s.txnRepo.GetWithItems(ctx, id)
}

// GetByReceiptNo returns a sale by its receipt number, or nil.
func (s *TransactionService) GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Transaction, error) {
	return s.txnRepo.GetByReceiptNo(ctx, receiptNo)
}

// ListToday lists the sales of the current business day, newest first.
func (s *TransactionService) ListToday(ctx context.Context) ([]entity.Transaction, error) {
	from, to := s.clock.DayBounds(s.clock.Now())
	return s.txnRepo.ListByDateRange(ctx, from, to)
}

// ListByDateRange lists sales between two business dates, both inclusive.
func (s *TransactionService) ListByDateRange(ctx context.Context, startDate, endDate string) ([]entity.Transaction, error) {
	from, to, err := parseDateRange(s.clock, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.txnRepo.ListByDateRange(ctx, from, to)
}

// parseDateRange validates a pair of YYYY-MM-DD dates and returns their
// bounds in the store timezone.
func parseDateRange(clock *StoreClock, startDate, endDate string) (time.Time, time.Time, error) {
	var fieldErrors []apperror.FieldError
	if startDate == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "start_date", Message: "is required"})
	} else if _, err := clock.ParseDate(startDate); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if endDate == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "end_date", Message: "is required"})
	} else if _, err := clock.ParseDate(endDate); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if len(fieldErrors) > 0 {
		return time.Time{}, time.Time{}, apperror.NewValidationError(fieldErrors)
	}

	from, to, err := clock.RangeBounds(startDate, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperror.NewFieldError("end_date", "must not be before start_date")
	}
	return from, to, nil
}
