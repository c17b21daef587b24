package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storepos-api/internal/application/service"
	"github.com/sangkips/storepos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/storepos-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard and report HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
	reportService    *service.ReportService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, reportService *service.ReportService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		reportService:    reportService,
	}
}

// GetStats handles getting today's figures
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// SalesReport handles the sales report for a date range
func (h *DashboardHandler) SalesReport(c *gin.Context) {
	var q request.DateRangeRequest
	if !bindQuery(c, &q) {
		return
	}

	report, err := h.reportService.GetSalesReport(c.Request.Context(), q.StartDate, q.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales report retrieved successfully", report)
}
