package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storepos-api/internal/application/service"
	"github.com/sangkips/storepos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/storepos-api/internal/presentation/http/dto/response"
)

// CashRegisterHandler handles the daily register lifecycle
type CashRegisterHandler struct {
	registerService *service.CashRegisterService
	reportService   *service.ReportService
}

// NewCashRegisterHandler creates a new cash register handler
func NewCashRegisterHandler(registerService *service.CashRegisterService, reportService *service.ReportService) *CashRegisterHandler {
	return &CashRegisterHandler{
		registerService: registerService,
		reportService:   reportService,
	}
}

// Open handles opening today's register
// @Summary Open register
// @Tags cash-register
// @Accept json
// @Produce json
// @Param request body request.OpenRegisterRequest true "Starting float"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /cash-register/open [post]
func (h *CashRegisterHandler) Open(c *gin.Context) {
	var req request.OpenRegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.registerService.OpenSession(c.Request.Context(), &service.OpenSessionInput{
		UserID:       GetUserID(c),
		StartingCash: *req.StartingCash,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash register opened successfully", session)
}

// Current returns today's open register, or null when there is none
func (h *CashRegisterHandler) Current(c *gin.Context) {
	session, err := h.registerService.CurrentSession(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if session == nil {
		response.OK(c, "No open cash register", nil)
		return
	}
	response.OK(c, "Cash register retrieved successfully", session)
}

// List handles the register history
func (h *CashRegisterHandler) List(c *gin.Context) {
	var filter request.SessionFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.registerService.ListSessions(c.Request.Context(), &service.ListSessionsInput{
		Pagination: pageParams(filter.Page, filter.PerPage),
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Cash register sessions retrieved successfully", result)
}

// Get returns a session with its per payment method breakdown
func (h *CashRegisterHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.registerService.GetSummary(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash register session retrieved successfully", summary)
}

// Close handles closing a register with the counted cash
// @Summary Close register
// @Tags cash-register
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request.CloseRegisterRequest true "Counted cash"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /cash-register/{id}/close [post]
func (h *CashRegisterHandler) Close(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.CloseRegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.registerService.CloseSession(c.Request.Context(), &service.CloseSessionInput{
		UserID:     GetUserID(c),
		SessionID:  id,
		ActualCash: *req.ActualCash,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash register closed successfully", session)
}

// Report renders the session's end-of-day report as a PDF
func (h *CashRegisterHandler) Report(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, err := h.reportService.RegisterReportPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.PDF(c, "register-"+id.String()+".pdf", data)
}
