package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/storepos-api/internal/domain/repository"
	"github.com/sangkips/storepos-api/pkg/apperror"
	"github.com/sangkips/storepos-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type cashRegisterRepository struct {
	db *gorm.DB
}

// NewCashRegisterRepository creates a new cash register session repository
func NewCashRegisterRepository(db *gorm.DB) domainRepo.CashRegisterRepository {
	return &cashRegisterRepository{db: db}
}

func (r *cashRegisterRepository) Create(ctx context.Context, session *entity.CashRegisterSession) error {
	err := conn(ctx, r.db).Create(session).Error
	if isUniqueViolation(err) {
		return apperror.ErrAlreadyOpenToday
	}
	return err
}

func (r *cashRegisterRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashRegisterSession, error) {
	var session entity.CashRegisterSession
	err := conn(ctx, r.db).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *cashRegisterRepository) GetByBusinessDate(ctx context.Context, date string) (*entity.CashRegisterSession, error) {
	var session entity.CashRegisterSession
	err := conn(ctx, r.db).First(&session, "business_date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *cashRegisterRepository) GetOpen(ctx context.Context) (*entity.CashRegisterSession, error) {
	var session entity.CashRegisterSession
	err := conn(ctx, r.db).
		Where("is_open = ?", true).
		Order("business_date ASC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

// AddCashSale bumps the running totals in a single guarded UPDATE so that
// concurrent sales never lose an increment. SET expressions read the
// pre-update row on both postgres and sqlite.
func (r *cashRegisterRepository) AddCashSale(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.CashRegisterSession{}).
		Where("id = ? AND is_open = ?", id, true).
		Updates(map[string]interface{}{
			"cash_sales":    gorm.Expr("ROUND(cash_sales + ?, 2)", amount),
			"expected_cash": gorm.Expr("ROUND(starting_cash + cash_sales + ?, 2)", amount),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Close computes the difference inside the UPDATE so it is measured against
// the expected cash as of the moment of closing.
func (r *cashRegisterRepository) Close(ctx context.Context, id uuid.UUID, params domainRepo.CloseSessionParams) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.CashRegisterSession{}).
		Where("id = ? AND is_open = ?", id, true).
		Updates(map[string]interface{}{
			"is_open":     false,
			"actual_cash": params.ActualCash,
			"difference":  gorm.Expr("ROUND(? - expected_cash, 2)", params.ActualCash),
			"closed_at":   params.ClosedAt,
			"closed_by":   params.ClosedBy,
			"notes":       params.Notes,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *cashRegisterRepository) List(ctx context.Context, params *domainRepo.SessionFilterParams) ([]entity.CashRegisterSession, int64, error) {
	var sessions []entity.CashRegisterSession
	var total int64

	query := conn(ctx, r.db).Model(&entity.CashRegisterSession{})
	if params.FromDate != "" {
		query = query.Where("business_date >= ?", params.FromDate)
	}
	if params.ToDate != "" {
		query = query.Where("business_date <= ?", params.ToDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("business_date DESC").
		Find(&sessions).Error

	return sessions, total, err
}
