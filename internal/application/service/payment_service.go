package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/internal/domain/repository"
	"github.com/sangkips/storepos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var maxPercent = decimal.NewFromInt(100)

// PaymentMethodService handles payment method operations
type PaymentMethodService struct {
	transactor  repository.Transactor
	paymentRepo repository.PaymentMethodRepository
}

// NewPaymentMethodService creates a new payment method service
func NewPaymentMethodService(transactor repository.Transactor, paymentRepo repository.PaymentMethodRepository) *PaymentMethodService {
	return &PaymentMethodService{transactor: transactor, paymentRepo: paymentRepo}
}

// CreatePaymentMethodInput represents the create payment method input
type CreatePaymentMethodInput struct {
	Name          string
	ChargePercent decimal.Decimal
	IsCash        bool
}

// CreatePaymentMethod creates a new payment method
func (s *PaymentMethodService) CreatePaymentMethod(ctx context.Context, input *CreatePaymentMethodInput) (*entity.PaymentMethod, error) {
	if err := validateChargePercent(input.ChargePercent); err != nil {
		return nil, err
	}

	method := &entity.PaymentMethod{
		Name:          strings.TrimSpace(input.Name),
		ChargePercent: input.ChargePercent,
		IsCash:        input.IsCash,
		IsActive:      true,
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureUniqueName(ctx, method.Name, uuid.Nil); err != nil {
			return err
		}
		if method.IsCash {
			if err := s.ensureSingleCash(ctx, uuid.Nil); err != nil {
				return err
			}
		}
		return s.paymentRepo.Create(ctx, method)
	})
	if err != nil {
		return nil, err
	}
	return method, nil
}

// GetPaymentMethod retrieves a payment method by ID
func (s *PaymentMethodService) GetPaymentMethod(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	method, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, apperror.NewNotFoundError("Payment method")
	}
	return method, nil
}

// ListPaymentMethods lists payment methods by name
func (s *PaymentMethodService) ListPaymentMethods(ctx context.Context, activeOnly bool) ([]entity.PaymentMethod, error) {
	return s.paymentRepo.List(ctx, activeOnly)
}

// UpdatePaymentMethodInput represents the update payment method input
type UpdatePaymentMethodInput struct {
	ID            uuid.UUID
	Name          *string
	ChargePercent *decimal.Decimal
	IsCash        *bool
	IsActive      *bool
}

// UpdatePaymentMethod updates a payment method
func (s *PaymentMethodService) UpdatePaymentMethod(ctx context.Context, input *UpdatePaymentMethodInput) (*entity.PaymentMethod, error) {
	var method *entity.PaymentMethod
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		method, err = s.paymentRepo.GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if method == nil {
			return apperror.NewNotFoundError("Payment method")
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if !strings.EqualFold(name, method.Name) {
				if err := s.ensureUniqueName(ctx, name, method.ID); err != nil {
					return err
				}
			}
			method.Name = name
		}
		if input.ChargePercent != nil {
			if err := validateChargePercent(*input.ChargePercent); err != nil {
				return err
			}
			method.ChargePercent = *input.ChargePercent
		}
		if input.IsCash != nil {
			method.IsCash = *input.IsCash
		}
		if input.IsActive != nil {
			method.IsActive = *input.IsActive
		}

		if method.IsCash && method.IsActive {
			if err := s.ensureSingleCash(ctx, method.ID); err != nil {
				return err
			}
		}

		return s.paymentRepo.Update(ctx, method)
	})
	if err != nil {
		return nil, err
	}
	return method, nil
}

// DeletePaymentMethod deactivates a payment method. Past sales keep
// referring to it.
func (s *PaymentMethodService) DeletePaymentMethod(ctx context.Context, id uuid.UUID) error {
	method, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if method == nil {
		return apperror.NewNotFoundError("Payment method")
	}

	method.IsActive = false
	return s.paymentRepo.Update(ctx, method)
}

func (s *PaymentMethodService) ensureUniqueName(ctx context.Context, name string, self uuid.UUID) error {
	if name == "" {
		return apperror.NewFieldError("name", "is required")
	}
	existing, err := s.paymentRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("Payment method with this name already exists")
	}
	return nil
}

func (s *PaymentMethodService) ensureSingleCash(ctx context.Context, self uuid.UUID) error {
	cash, err := s.paymentRepo.GetActiveCash(ctx)
	if err != nil {
		return err
	}
	if cash != nil && cash.ID != self {
		return apperror.NewConflictError("Another active payment method is already the cash method")
	}
	return nil
}

func validateChargePercent(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(maxPercent) {
		return apperror.NewFieldError("charge_percent", "must be between 0 and 100")
	}
	return nil
}

// DiscountRuleService manages the automatic discount tiers
type DiscountRuleService struct {
	discountRepo repository.DiscountRuleRepository
}

// NewDiscountRuleService creates a new discount rule service
func NewDiscountRuleService(discountRepo repository.DiscountRuleRepository) *DiscountRuleService {
	return &DiscountRuleService{discountRepo: discountRepo}
}

// CreateDiscountRuleInput represents the create discount rule input
type CreateDiscountRuleInput struct {
	Name            string
	MinAmount       decimal.Decimal
	DiscountPercent decimal.Decimal
}

// CreateDiscountRule creates a new active discount tier
func (s *DiscountRuleService) CreateDiscountRule(ctx context.Context, input *CreateDiscountRuleInput) (*entity.DiscountRule, error) {
	if err := validateDiscountRule(input.MinAmount, input.DiscountPercent); err != nil {
		return nil, err
	}

	rule := &entity.DiscountRule{
		Name:            strings.TrimSpace(input.Name),
		MinAmount:       input.MinAmount.Round(2),
		DiscountPercent: input.DiscountPercent,
		IsActive:        true,
	}
	if err := s.discountRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// GetDiscountRule retrieves a discount rule by ID
func (s *DiscountRuleService) GetDiscountRule(ctx context.Context, id uuid.UUID) (*entity.DiscountRule, error) {
	rule, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, apperror.NewNotFoundError("Discount rule")
	}
	return rule, nil
}

// ListDiscountRules lists rules by ascending minimum amount
func (s *DiscountRuleService) ListDiscountRules(ctx context.Context, activeOnly bool) ([]entity.DiscountRule, error) {
	return s.discountRepo.List(ctx, activeOnly)
}

// UpdateDiscountRuleInput represents the update discount rule input
type UpdateDiscountRuleInput struct {
	ID              uuid.UUID
	Name            *string
	MinAmount       *decimal.Decimal
	DiscountPercent *decimal.Decimal
	IsActive        *bool
}

// UpdateDiscountRule updates a discount rule
func (s *DiscountRuleService) UpdateDiscountRule(ctx context.Context, input *UpdateDiscountRuleInput) (*entity.DiscountRule, error) {
	rule, err := s.discountRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, apperror.NewNotFoundError("Discount rule")
	}

	if input.Name != nil {
		rule.Name = strings.TrimSpace(*input.Name)
	}
	if input.MinAmount != nil {
		rule.MinAmount = input.MinAmount.Round(2)
	}
	if input.DiscountPercent != nil {
		rule.DiscountPercent = *input.DiscountPercent
	}
	if input.IsActive != nil {
		rule.IsActive = *input.IsActive
	}

	if err := validateDiscountRule(rule.MinAmount, rule.DiscountPercent); err != nil {
		return nil, err
	}

	if err := s.discountRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// DeleteDiscountRule deactivates a discount rule
func (s *DiscountRuleService) DeleteDiscountRule(ctx context.Context, id uuid.UUID) error {
	rule, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rule == nil {
		return apperror.NewNotFoundError("Discount rule")
	}

	rule.IsActive = false
	return s.discountRepo.Update(ctx, rule)
}

func validateDiscountRule(minAmount, pct decimal.Decimal) error {
	var fieldErrors []apperror.FieldError
	if minAmount.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "min_amount", Message: "must not be negative"})
	}
	if !pct.IsPositive() || pct.GreaterThan(maxPercent) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount_percent", Message: "must be greater than 0 and at most 100"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
