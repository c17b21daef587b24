package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storepos-api/internal/application/service"
	"github.com/sangkips/storepos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/storepos-api/internal/presentation/http/dto/response"
)

// PaymentMethodHandler handles payment method HTTP requests
type PaymentMethodHandler struct {
	paymentService *service.PaymentMethodService
}

// NewPaymentMethodHandler creates a new payment method handler
func NewPaymentMethodHandler(paymentService *service.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{paymentService: paymentService}
}

// List returns payment methods. Cashiers only see active ones.
func (h *PaymentMethodHandler) List(c *gin.Context) {
	activeOnly := c.Query("include_inactive") != "true" || !isAdmin(c)

	methods, err := h.paymentService.ListPaymentMethods(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment methods retrieved successfully", methods)
}

// Create handles creating a payment method
func (h *PaymentMethodHandler) Create(c *gin.Context) {
	var req request.CreatePaymentMethodRequest
	if !bindJSON(c, &req) {
		return
	}

	method, err := h.paymentService.CreatePaymentMethod(c.Request.Context(), &service.CreatePaymentMethodInput{
		Name:          req.Name,
		ChargePercent: req.ChargePercent,
		IsCash:        req.IsCash,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment method created successfully", method)
}

// Get handles getting a payment method by ID
func (h *PaymentMethodHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	method, err := h.paymentService.GetPaymentMethod(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment method retrieved successfully", method)
}

// Update handles updating a payment method
func (h *PaymentMethodHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdatePaymentMethodRequest
	if !bindJSON(c, &req) {
		return
	}

	method, err := h.paymentService.UpdatePaymentMethod(c.Request.Context(), &service.UpdatePaymentMethodInput{
		ID:            id,
		Name:          req.Name,
		ChargePercent: req.ChargePercent,
		IsCash:        req.IsCash,
		IsActive:      req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment method updated successfully", method)
}

// Delete handles deactivating a payment method
func (h *PaymentMethodHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.paymentService.DeletePaymentMethod(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// DiscountRuleHandler handles discount tier HTTP requests
type DiscountRuleHandler struct {
	discountService *service.DiscountRuleService
}

// NewDiscountRuleHandler creates a new discount rule handler
func NewDiscountRuleHandler(discountService *service.DiscountRuleService) *DiscountRuleHandler {
	return &DiscountRuleHandler{discountService: discountService}
}

// List returns discount tiers ordered by threshold
func (h *DiscountRuleHandler) List(c *gin.Context) {
	activeOnly := c.Query("include_inactive") != "true" || !isAdmin(c)

	rules, err := h.discountService.ListDiscountRules(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount rules retrieved successfully", rules)
}

// Create handles creating a discount tier
func (h *DiscountRuleHandler) Create(c *gin.Context) {
	var req request.CreateDiscountRuleRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.discountService.CreateDiscountRule(c.Request.Context(), &service.CreateDiscountRuleInput{
		Name:            req.Name,
		MinAmount:       *req.MinAmount,
		DiscountPercent: *req.DiscountPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Discount rule created successfully", rule)
}

// Get handles getting a discount tier by ID
func (h *DiscountRuleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rule, err := h.discountService.GetDiscountRule(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount rule retrieved successfully", rule)
}

// Update handles updating a discount tier
func (h *DiscountRuleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateDiscountRuleRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.discountService.UpdateDiscountRule(c.Request.Context(), &service.UpdateDiscountRuleInput{
		ID:              id,
		Name:            req.Name,
		MinAmount:       req.MinAmount,
		DiscountPercent: req.DiscountPercent,
		IsActive:        req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount rule updated successfully", rule)
}

// Delete handles removing a discount tier
func (h *DiscountRuleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.discountService.DeleteDiscountRule(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
