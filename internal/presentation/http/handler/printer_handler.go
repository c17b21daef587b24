package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storepos-api/internal/application/service"
	"github.com/sangkips/storepos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/storepos-api/pkg/apperror"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint(c.Request.Context())
	if err != nil {
		// The receipt is still useful when the printer is disabled.
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"receipt": receipt,
	})
}

// PrintReceipt reprints the receipt of a past sale.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	receipt, err := h.printerService.PrintReceipt(c.Request.Context(), c.Param("receipt_no"))
	if err != nil {
		if receipt == nil || apperror.IsAppError(err) {
			response.Error(c, err)
			return
		}
		response.OK(c, "Receipt built but not printed", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Receipt sent to printer", gin.H{
		"receipt": receipt,
	})
}
