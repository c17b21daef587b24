package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/storepos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type paymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) domainRepo.PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(ctx context.Context, method *entity.PaymentMethod) error {
	return conn(ctx, r.db).Create(method).Error
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	var method entity.PaymentMethod
	err := conn(ctx, r.db).First(&method, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &method, err
}

func (r *paymentMethodRepository) GetByName(ctx context.Context, name string) (*entity.PaymentMethod, error) {
	var method entity.PaymentMethod
	err := conn(ctx, r.db).First(&method, "LOWER(name) = LOWER(?)", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &method, err
}

func (r *paymentMethodRepository) GetActiveCash(ctx context.Context) (*entity.PaymentMethod, error) {
	var method entity.PaymentMethod
	err := conn(ctx, r.db).
		Where("is_cash = ? AND is_active = ?", true, true).
		First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &method, err
}

func (r *paymentMethodRepository) Update(ctx context.Context, method *entity.PaymentMethod) error {
	return conn(ctx, r.db).Save(method).Error
}

func (r *paymentMethodRepository) List(ctx context.Context, activeOnly bool) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod
	err := conn(ctx, r.db).
		Scopes(ActiveScope(activeOnly)).
		Order("name ASC").
		Find(&methods).Error
	return methods, err
}

type discountRuleRepository struct {
	db *gorm.DB
}

func NewDiscountRuleRepository(db *gorm.DB) domainRepo.DiscountRuleRepository {
	return &discountRuleRepository{db: db}
}

func (r *discountRuleRepository) Create(ctx context.Context, rule *entity.DiscountRule) error {
	return conn(ctx, r.db).Create(rule).Error
}

func (r *discountRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DiscountRule, error) {
	var rule entity.DiscountRule
	err := conn(ctx, r.db).First(&rule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rule, err
}

func (r *discountRuleRepository) Update(ctx context.Context, rule *entity.DiscountRule) error {
	return conn(ctx, r.db).Save(rule).Error
}

func (r *discountRuleRepository) List(ctx context.Context, activeOnly bool) ([]entity.DiscountRule, error) {
	var rules []entity.DiscountRule
	err := conn(ctx, r.db).
		Scopes(ActiveScope(activeOnly)).
		Order("min_amount ASC").
		Find(&rules).Error
	return rules, err
}

func (r *discountRuleRepository) ListApplicable(ctx context.Context, subtotal decimal.Decimal) ([]entity.DiscountRule, error) {
	var rules []entity.DiscountRule
	err := conn(ctx, r.db).
		Where("is_active = ? AND min_amount <= ?", true, subtotal).
		Order("created_at ASC").
		Find(&rules).Error
	return rules, err
}

type storeProfileRepository struct {
	db *gorm.DB
}

func NewStoreProfileRepository(db *gorm.DB) domainRepo.StoreProfileRepository {
	return &storeProfileRepository{db: db}
}

func (r *storeProfileRepository) Get(ctx context.Context) (*entity.StoreProfile, error) {
	var profile entity.StoreProfile
	err := conn(ctx, r.db).Order("created_at ASC").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *storeProfileRepository) Save(ctx context.Context, profile *entity.StoreProfile) error {
	return conn(ctx, r.db).Save(profile).Error
}
