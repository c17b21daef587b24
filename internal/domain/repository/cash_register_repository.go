package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// Transactor runs fn inside a database transaction. Repository calls made
// with the ctx handed to fn join that transaction. Nested calls reuse the
// outer transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CashRegisterRepository defines the persistence operations for register sessions
type CashRegisterRepository interface {
	// Create inserts a new session. A second session for the same business
	// date fails with apperror.ErrAlreadyOpenToday.
	Create(ctx context.Context, session *entity.CashRegisterSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashRegisterSession, error)
	GetByBusinessDate(ctx context.Context, date string) (*entity.CashRegisterSession, error)
	// GetOpen returns the oldest session still open, if any.
	GetOpen(ctx context.Context) (*entity.CashRegisterSession, error)
	// AddCashSale adds amount to the running cash totals of an open session.
	// It reports false when the session is missing or already closed.
	AddCashSale(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)
	// Close records the counted cash and the difference against the expected
	// total. It reports false when the session is missing or already closed.
	Close(ctx context.Context, id uuid.UUID, params CloseSessionParams) (bool, error)
	List(ctx context.Context, params *SessionFilterParams) ([]entity.CashRegisterSession, int64, error)
}

type CloseSessionParams struct {
	ActualCash decimal.Decimal
	ClosedAt   time.Time
	ClosedBy   *uuid.UUID
	Notes      *string
}

type SessionFilterParams struct {
	Pagination *pagination.PaginationParams
	FromDate   string // inclusive, YYYY-MM-DD
	ToDate     string // inclusive, YYYY-MM-DD
}
