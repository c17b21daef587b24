package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storepos-api/internal/application/service"
	"github.com/sangkips/storepos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/storepos-api/internal/presentation/http/dto/response"
)

// StoreHandler handles the store profile printed on receipts
type StoreHandler struct {
	storeService *service.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// Get returns the store profile
func (h *StoreHandler) Get(c *gin.Context) {
	profile, err := h.storeService.GetProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store profile retrieved successfully", profile)
}

// Update replaces the store profile
func (h *StoreHandler) Update(c *gin.Context) {
	var req request.UpdateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.storeService.UpdateProfile(c.Request.Context(), &service.UpdateProfileInput{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		TaxID:         req.TaxID,
		ReceiptFooter: req.ReceiptFooter,
		Settings:      req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store profile updated successfully", profile)
}
