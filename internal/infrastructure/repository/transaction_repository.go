package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/storepos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new sales transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts the header and its items. The payment method and cashier
// are referenced by id only and never upserted.
func (r *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	return conn(ctx, r.db).
		Omit("PaymentMethod", "Cashier").
		Create(txn).Error
}

func (r *transactionRepository) withDetails(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		Preload("Items.Product").
		Preload("PaymentMethod").
		Preload("Cashier")
}

func (r *transactionRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.withDetails(ctx).First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *transactionRepository) GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.withDetails(ctx).First(&txn, "receipt_no = ?", receiptNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *transactionRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Transaction, error) {
	var txns []entity.Transaction
	err := conn(ctx, r.db).
		Preload("PaymentMethod").
		Where("transaction_date >= ? AND transaction_date <= ?", from.UTC(), to.UTC()).
		Order("transaction_date DESC").
		Find(&txns).Error
	return txns, err
}
