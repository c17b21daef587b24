package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/internal/domain/repository"
	"github.com/sangkips/storepos-api/pkg/apperror"
	"github.com/sangkips/storepos-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CashRegisterService runs the daily register lifecycle: NONE -> OPEN -> CLOSED.
type CashRegisterService struct {
	transactor    repository.Transactor
	registerRepo  repository.CashRegisterRepository
	analyticsRepo repository.AnalyticsRepository
	clock         *StoreClock
	logger        *zap.Logger
}

// NewCashRegisterService creates a new cash register service
func NewCashRegisterService(
	transactor repository.Transactor,
	registerRepo repository.CashRegisterRepository,
	analyticsRepo repository.AnalyticsRepository,
	clock *StoreClock,
	logger *zap.Logger,
) *CashRegisterService {
	return &CashRegisterService{
		transactor:    transactor,
		registerRepo:  registerRepo,
		analyticsRepo: analyticsRepo,
		clock:         clock,
		logger:        logger.Named("cash_register"),
	}
}

// OpenSessionInput represents the open register input
type OpenSessionInput struct {
	UserID       *uuid.UUID
	StartingCash decimal.Decimal
	Notes        *string
}

// OpenSession opens today's register with the given float.
func (s *CashRegisterService) OpenSession(ctx context.Context, input *OpenSessionInput) (*entity.CashRegisterSession, error) {
	if input.StartingCash.IsNegative() {
		return nil, apperror.NewFieldError("starting_cash", "must not be negative")
	}

	var session *entity.CashRegisterSession
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		now := s.clock.Now()
		today := s.clock.BusinessDate(now)

		existing, err := s.registerRepo.GetByBusinessDate(ctx, today)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.ErrAlreadyOpenToday
		}

		stale, err := s.registerRepo.GetOpen(ctx)
		if err != nil {
			return err
		}
		if stale != nil {
			return apperror.ErrPreviousSessionOpen
		}

		startingCash := input.StartingCash.Round(2)
		session = &entity.CashRegisterSession{
			BusinessDate: today,
			StartingCash: startingCash,
			CashSales:    decimal.Zero,
			ExpectedCash: startingCash,
			IsOpen:       true,
			OpenedAt:     now.UTC(),
			OpenedBy:     input.UserID,
			Notes:        input.Notes,
		}
		// the unique business_date catches a concurrent open of the same day
		return s.registerRepo.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("register opened",
		zap.String("session_id", session.ID.String()),
		zap.String("business_date", session.BusinessDate),
		zap.String("starting_cash", session.StartingCash.StringFixed(2)),
	)
	return session, nil
}

// CloseSessionInput represents the close register input
type CloseSessionInput struct {
	UserID     *uuid.UUID
	SessionID  uuid.UUID
	ActualCash decimal.Decimal
	Notes      *string
}

// CloseSession records the counted cash and closes the session. The
// difference is computed against the expected cash at the moment of the
// update, so a cash sale racing the close is either counted or rejected.
func (s *CashRegisterService) CloseSession(ctx context.Context, input *CloseSessionInput) (*entity.CashRegisterSession, error) {
	if input.ActualCash.IsNegative() {
		return nil, apperror.NewFieldError("actual_cash", "must not be negative")
	}

	var session *entity.CashRegisterSession
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.registerRepo.GetByID(ctx, input.SessionID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.ErrSessionNotFound
		}
		if !current.IsOpen {
			return apperror.ErrAlreadyClosed
		}

		closed, err := s.registerRepo.Close(ctx, current.ID, repository.CloseSessionParams{
			ActualCash: input.ActualCash.Round(2),
			ClosedAt:   s.clock.Now().UTC(),
			ClosedBy:   input.UserID,
			Notes:      input.Notes,
		})
		if err != nil {
			return err
		}
		if !closed {
			return apperror.ErrAlreadyClosed
		}

		session, err = s.registerRepo.GetByID(ctx, current.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("session_id", session.ID.String()),
		zap.String("expected_cash", session.ExpectedCash.StringFixed(2)),
	}
	if session.Difference != nil {
		fields = append(fields, zap.String("difference", session.Difference.StringFixed(2)))
	}
	s.logger.Info("register closed", fields...)
	return session, nil
}

// CurrentSession returns today's register if it is open, otherwise nil.
func (s *CashRegisterService) CurrentSession(ctx context.Context) (*entity.CashRegisterSession, error) {
	session, err := s.registerRepo.GetByBusinessDate(ctx, s.clock.Today())
	if err != nil {
		return nil, err
	}
	if session == nil || !session.IsOpen {
		return nil, nil
	}
	return session, nil
}

// GetSession retrieves a session by ID
func (s *CashRegisterService) GetSession(ctx context.Context, id uuid.UUID) (*entity.CashRegisterSession, error) {
	session, err := s.registerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}
	return session, nil
}

// GetSummary returns the session with its sales broken down by payment method.
func (s *CashRegisterService) GetSummary(ctx context.Context, id uuid.UUID) (*entity.SessionSummary, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	filter := repository.SalesFilter{SessionID: &session.ID}
	totals, err := s.analyticsRepo.Totals(ctx, filter)
	if err != nil {
		return nil, err
	}
	byMethod, err := s.analyticsRepo.TotalsByPaymentMethod(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &entity.SessionSummary{
		Session:          session,
		TransactionCount: totals.TransactionCount,
		GrossSales:       totals.GrossSales,
		TotalDiscounts:   totals.TotalDiscounts,
		TotalCharges:     totals.TotalCharges,
		ByPaymentMethod:  byMethod,
	}, nil
}

// ListSessionsInput represents the register history filter
type ListSessionsInput struct {
	Pagination *pagination.PaginationParams
	StartDate  string
	EndDate    string
}

// ListSessions lists register sessions, newest business date first.
func (s *CashRegisterService) ListSessions(ctx context.Context, input *ListSessionsInput) (*pagination.PaginatedResult[entity.CashRegisterSession], error) {
	if input.StartDate != "" {
		if _, err := s.clock.ParseDate(input.StartDate); err != nil {
			return nil, apperror.NewFieldError("start_date", "must be YYYY-MM-DD")
		}
	}
	if input.EndDate != "" {
		if _, err := s.clock.ParseDate(input.EndDate); err != nil {
			return nil, apperror.NewFieldError("end_date", "must be YYYY-MM-DD")
		}
	}

	if input.Pagination == nil {
		input.Pagination = pagination.DefaultPagination()
	}
	input.Pagination.Validate()

	sessions, total, err := s.registerRepo.List(ctx, &repository.SessionFilterParams{
		Pagination: input.Pagination,
		FromDate:   input.StartDate,
		ToDate:     input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sessions, pag), nil
}
