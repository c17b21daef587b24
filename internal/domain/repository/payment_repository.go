package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type PaymentMethodRepository interface {
	Create(ctx context.Context, method *entity.PaymentMethod) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error)
	GetByName(ctx context.Context, name string) (*entity.PaymentMethod, error)
	// GetActiveCash returns the active designated cash method, if any.
	GetActiveCash(ctx context.Context) (*entity.PaymentMethod, error)
	Update(ctx context.Context, method *entity.PaymentMethod) error
	List(ctx context.Context, activeOnly bool) ([]entity.PaymentMethod, error)
}

type DiscountRuleRepository interface {
	Create(ctx context.Context, rule *entity.DiscountRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DiscountRule, error)
	Update(ctx context.Context, rule *entity.DiscountRule) error
	List(ctx context.Context, activeOnly bool) ([]entity.DiscountRule, error)
	// ListApplicable returns the active rules whose minimum the subtotal meets,
	// in storage order.
	ListApplicable(ctx context.Context, subtotal decimal.Decimal) ([]entity.DiscountRule, error)
}

type StoreProfileRepository interface {
	// Get returns the store profile, or nil when none has been saved.
	Get(ctx context.Context) (*entity.StoreProfile, error)
	Save(ctx context.Context, profile *entity.StoreProfile) error
}
