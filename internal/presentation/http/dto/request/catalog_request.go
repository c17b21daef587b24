package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	IsActive *bool   `json:"is_active"`
}

// CategoryFilterRequest represents category list parameters
type CategoryFilterRequest struct {
	Search          string `form:"search"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
}

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID      *uuid.UUID       `json:"category_id"`
	Name            string           `json:"name" binding:"required,min=1,max=255"`
	SKU             string           `json:"sku" binding:"omitempty,max=100"`
	Price           *decimal.Decimal `json:"price" binding:"required"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID      *uuid.UUID       `json:"category_id"`
	Name            *string          `json:"name" binding:"omitempty,min=1,max=255"`
	SKU             *string          `json:"sku" binding:"omitempty,min=1,max=100"`
	Price           *decimal.Decimal `json:"price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	IsActive        *bool            `json:"is_active"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Active     *bool  `form:"active"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=name price sku created_at"`
	SortOrder  string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CreatePaymentMethodRequest represents a payment method creation request
type CreatePaymentMethodRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	ChargePercent decimal.Decimal `json:"charge_percent"`
	IsCash        bool            `json:"is_cash"`
}

// UpdatePaymentMethodRequest represents a payment method update request
type UpdatePaymentMethodRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=100"`
	ChargePercent *decimal.Decimal `json:"charge_percent"`
	IsCash        *bool            `json:"is_cash"`
	IsActive      *bool            `json:"is_active"`
}

// CreateDiscountRuleRequest represents a discount tier creation request
type CreateDiscountRuleRequest struct {
	Name            string           `json:"name" binding:"required,max=100"`
	MinAmount       *decimal.Decimal `json:"min_amount" binding:"required"`
	DiscountPercent *decimal.Decimal `json:"discount_percent" binding:"required"`
}

// UpdateDiscountRuleRequest represents a discount tier update request
type UpdateDiscountRuleRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=100"`
	MinAmount       *decimal.Decimal `json:"min_amount"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	IsActive        *bool            `json:"is_active"`
}

// UpdateStoreRequest represents a store profile update request
type UpdateStoreRequest struct {
	Name          string                 `json:"name" binding:"required,max=255"`
	Address       string                 `json:"address"`
	Phone         string                 `json:"phone" binding:"omitempty,max=50"`
	Email         string                 `json:"email" binding:"omitempty,email"`
	TaxID         string                 `json:"tax_id" binding:"omitempty,max=100"`
	ReceiptFooter string                 `json:"receipt_footer"`
	Settings      map[string]interface{} `json:"settings"`
}
