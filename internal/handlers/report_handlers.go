package handlers

import (
	"errors"
	"net/http"

	"inventory_backend/internal/models"
	"inventory_backend/internal/services"
	"inventory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetTransactions returns the take log filtered by ?window=
// (instant, daily, weekly, monthly, yearly; default instant).
func (h *ReportHandler) GetTransactions(c *gin.Context) {
	window := models.ReportWindow(c.DefaultQuery("window", string(models.WindowInstant)))

	transactions, err := h.reportService.ListTransactions(window)
	if err != nil {
		if errors.Is(err, services.ErrInvalidWindow) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Unknown report window: "+string(window), ""))
		} else {
			utils.LogError(err, "GetTransactions: Error from reportService.ListTransactions")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to generate report.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// GetLastTake annotates an item with its most recent take, if any.
func (h *ReportHandler) GetLastTake(c *gin.Context) {
	itemID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid item ID.", err.Error()))
		return
	}

	last, err := h.reportService.LastForItem(itemID)
	if err != nil {
		utils.LogError(err, "GetLastTake: Error from reportService.LastForItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to look up last take.", "Internal error"))
		return
	}
	if last == nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item has no recorded takes.", ""))
		return
	}
	c.JSON(http.StatusOK, last)
}
