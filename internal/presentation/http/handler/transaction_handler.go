package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storepos-api/internal/application/service"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/storepos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/storepos-api/pkg/apperror"
)

// TransactionHandler handles sales
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Create handles ringing up a sale
// @Summary Create transaction
// @Description Price the cart, record the sale and update the open register
// @Tags transactions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for a retried request"
// @Param request body request.CreateTransactionRequest true "Cart and payment"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req request.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.TransactionItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.TransactionItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), &service.CreateTransactionInput{
		CashierID:       GetUserID(c),
		Items:           items,
		PaymentMethodID: req.PaymentMethodID,
		AmountReceived:  req.AmountReceived,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction created successfully", txn)
}

// Today lists the current business day's sales
func (h *TransactionHandler) Today(c *gin.Context) {
	txns, err := h.transactionService.ListToday(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transactions retrieved successfully", orEmpty(txns))
}

// List lists sales between start_date and end_date
func (h *TransactionHandler) List(c *gin.Context) {
	var q request.DateRangeRequest
	if !bindQuery(c, &q) {
		return
	}

	txns, err := h.transactionService.ListByDateRange(c.Request.Context(), q.StartDate, q.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transactions retrieved successfully", orEmpty(txns))
}

// Get returns a sale with its items
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if txn == nil {
		response.Error(c, apperror.NewNotFoundError("Transaction"))
		return
	}

	response.OK(c, "Transaction retrieved successfully", txn)
}

// GetByReceipt looks a sale up by its receipt number
func (h *TransactionHandler) GetByReceipt(c *gin.Context) {
	txn, err := h.transactionService.GetByReceiptNo(c.Request.Context(), c.Param("receipt_no"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if txn == nil {
		response.Error(c, apperror.NewNotFoundError("Transaction"))
		return
	}

	response.OK(c, "Transaction retrieved successfully", txn)
}

func orEmpty(txns []entity.Transaction) []entity.Transaction {
	if txns == nil {
		return []entity.Transaction{}
	}
	return txns
}
