package delivery

import (
	"net/http"

	"hqadmin-backend/internal/alert/usecase"

	"github.com/gin-gonic/gin"
)

// ScanHandler exposes the manual scan triggers for operators
type ScanHandler struct {
	scanUsecase usecase.ScanUsecase
}

// NewScanHandler creates a new instance of ScanHandler
func NewScanHandler(scanUsecase usecase.ScanUsecase) *ScanHandler {
	return &ScanHandler{scanUsecase: scanUsecase}
}

// RunAll handles POST /api/hq-scan/run
func (h *ScanHandler) RunAll(c *gin.Context) {
	res, err := h.scanUsecase.ScanAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// RunStockLow handles POST /api/hq-scan/stock-low
func (h *ScanHandler) RunStockLow(c *gin.Context) {
	sent, err := h.scanUsecase.ScanAndNotifyStockLow()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}

// SendReminder handles POST /api/hq-scan/reminder
func (h *ScanHandler) SendReminder(c *gin.Context) {
	h.scanUsecase.SendMorningReminder()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RunExpireSoon handles POST /api/hq-scan/expire-soon
func (h *ScanHandler) RunExpireSoon(c *gin.Context) {
	sent, err := h.scanUsecase.ScanAndNotifyExpireSoon()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}
