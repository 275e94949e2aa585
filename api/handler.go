package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_pos/internal/sales"
)

// salesHandler holds the sales service and implements HTTP handlers for sales operations.
type salesHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(salesService *sales.Service, logger *zap.Logger) *salesHandler {
	return &salesHandler{
		salesService: salesService,
		logger:       logger,
	}
}

// handleCreateSale handles the POST /sales endpoint.
func (h *salesHandler) handleCreateSale(ctx *gin.Context) {
	var draft sales.Draft
	if err := ctx.ShouldBindJSON(&draft); err != nil {
		badRequest(ctx, h.logger, err)
		return
	}

	sale, err := h.salesService.SubmitSale(draft)
	if err != nil {
		writeError(ctx, h.logger, "failed to create sale", err)
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// handleValidateSale prices a draft without committing it.
func (h *salesHandler) handleValidateSale(ctx *gin.Context) {
	var draft sales.Draft
	if err := ctx.ShouldBindJSON(&draft); err != nil {
		badRequest(ctx, h.logger, err)
		return
	}

	validated, err := h.salesService.Validate(draft)
	if err != nil {
		writeError(ctx, h.logger, "sale validation failed", err)
		return
	}

	ctx.JSON(http.StatusOK, validated)
}

func (h *salesHandler) handleGetSale(ctx *gin.Context) {
	sale, err := h.salesService.GetSale(ctx.Param("id"))
	if err != nil {
		writeError(ctx, h.logger, "failed to get sale", err)
		return
	}
	ctx.JSON(http.StatusOK, sale)
}

func (h *salesHandler) handleSearchSales(ctx *gin.Context) {
	customerID := ctx.Query("customer_id")
	status := ctx.Query("status")

	results, metadata, err := h.salesService.SearchSales(customerID, status)
	if err != nil {
		writeError(ctx, h.logger, "error searching sales", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"results": results, "metadata": metadata})
}

func (h *salesHandler) handleDashboard(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.salesService.Dashboard())
}
