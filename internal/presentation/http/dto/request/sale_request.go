package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionItemRequest is one cart line
type TransactionItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateTransactionRequest represents a sale
type CreateTransactionRequest struct {
	Items           []TransactionItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethodID uuid.UUID                `json:"payment_method_id" binding:"required"`
	AmountReceived  *decimal.Decimal         `json:"amount_received"`
}

// DateRangeRequest is a start_date/end_date query pair in YYYY-MM-DD
type DateRangeRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// OpenRegisterRequest opens today's cash register
type OpenRegisterRequest struct {
	StartingCash *decimal.Decimal `json:"starting_cash" binding:"required"`
	Notes        *string          `json:"notes"`
}

// CloseRegisterRequest closes a cash register session
type CloseRegisterRequest struct {
	ActualCash *decimal.Decimal `json:"actual_cash" binding:"required"`
	Notes      *string          `json:"notes"`
}

// SessionFilterRequest represents register history parameters
type SessionFilterRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
