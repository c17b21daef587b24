package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
)

// TransactionRepository stores completed sales. There is no update or delete.
type TransactionRepository interface {
	// Create inserts the transaction together with its Items.
	Create(ctx context.Context, txn *entity.Transaction) error
	// GetWithItems loads a transaction with its items, products, payment method
	// and cashier. Returns nil when absent.
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Transaction, error)
	// ListByDateRange returns sales with from <= transaction_date <= to,
	// most recent first.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Transaction, error)
}
