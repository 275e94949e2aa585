package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_pos/internal/catalog"
)

type catalogHandler struct {
	catalog *catalog.Service
	logger  *zap.Logger
}

func NewCatalogHandler(svc *catalog.Service, logger *zap.Logger) *catalogHandler {
	return &catalogHandler{catalog: svc, logger: logger}
}

func (h *catalogHandler) listProducts(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.catalog.ListProducts())
}

func (h *catalogHandler) getProduct(ctx *gin.Context) {
	p, err := h.catalog.GetProduct(ctx.Param("id"))
	if err != nil {
		writeError(ctx, h.logger, "failed to get product", err)
		return
	}
	ctx.JSON(http.StatusOK, p)
}

func (h *catalogHandler) createProduct(ctx *gin.Context) {
	var in catalog.ProductInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, h.logger, err)
		return
	}
	p, err := h.catalog.CreateProduct(in)
	if err != nil {
		writeError(ctx, h.logger, "failed to create product", err)
		return
	}
	ctx.JSON(http.StatusCreated, p)
}

func (h *catalogHandler) updateProduct(ctx *gin.Context) {
	var in catalog.ProductInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, h.logger, err)
		return
	}
	p, err := h.catalog.UpdateProduct(ctx.Param("id"), in)
	if err != nil {
		writeError(ctx, h.logger, "failed to update product", err)
		return
	}
	ctx.JSON(http.StatusOK, p)
}

func (h *catalogHandler) adjustStock(ctx *gin.Context) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, h.logger, err)
		return
	}
	p, err := h.catalog.AdjustStock(ctx.Param("id"), req.Delta)
	if err != nil {
		writeError(ctx, h.logger, "failed to adjust stock", err)
		return
	}
	ctx.JSON(http.StatusOK, p)
}

func (h *catalogHandler) deleteProduct(ctx *gin.Context) {
	if err := h.catalog.DeleteProduct(ctx.Param("id")); err != nil {
		writeError(ctx, h.logger, "failed to delete product", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (h *catalogHandler) listCustomers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.catalog.ListCustomers())
}

func (h *catalogHandler) getCustomer(ctx *gin.Context) {
	c, err := h.catalog.GetCustomer(ctx.Param("id"))
	if err != nil {
		writeError(ctx, h.logger, "failed to get customer", err)
		return
	}
	ctx.JSON(http.StatusOK, c)
}

func (h *catalogHandler) createCustomer(ctx *gin.Context) {
	var in catalog.CustomerInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, h.logger, err)
		return
	}
	c, err := h.catalog.CreateCustomer(in)
	if err != nil {
		writeError(ctx, h.logger, "failed to create customer", err)
		return
	}
	ctx.JSON(http.StatusCreated, c)
}

func (h *catalogHandler) updateCustomer(ctx *gin.Context) {
	var in catalog.CustomerInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, h.logger, err)
		return
	}
	c, err := h.catalog.UpdateCustomer(ctx.Param("id"), in)
	if err != nil {
		writeError(ctx, h.logger, "failed to update customer", err)
		return
	}
	ctx.JSON(http.StatusOK, c)
}

func (h *catalogHandler) deleteCustomer(ctx *gin.Context) {
	if err := h.catalog.DeleteCustomer(ctx.Param("id")); err != nil {
		writeError(ctx, h.logger, "failed to delete customer", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (h *catalogHandler) listPromotions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.catalog.ListPromotions())
}

func (h *catalogHandler) getPromotion(ctx *gin.Context) {
	p, err := h.catalog.GetPromotion(ctx.Param("id"))
	if err != nil {
		writeError(ctx, h.logger, "failed to get promotion", err)
		return
	}
	ctx.JSON(http.StatusOK, p)
}

func (h *catalogHandler) createPromotion(ctx *gin.Context) {
	var in catalog.PromotionInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, h.logger, err)
		return
	}
	p, err := h.catalog.CreatePromotion(in)
	if err != nil {
		writeError(ctx, h.logger, "failed to create promotion", err)
		return
	}
	ctx.JSON(http.StatusCreated, p)
}

func (h *catalogHandler) updatePromotion(ctx *gin.Context) {
	var in catalog.PromotionInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, h.logger, err)
		return
	}
	p, err := h.catalog.UpdatePromotion(ctx.Param("id"), in)
	if err != nil {
		writeError(ctx, h.logger, "failed to update promotion", err)
		return
	}
	ctx.JSON(http.StatusOK, p)
}

func (h *catalogHandler) deletePromotion(ctx *gin.Context) {
	if err := h.catalog.DeletePromotion(ctx.Param("id")); err != nil {
		writeError(ctx, h.logger, "failed to delete promotion", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// applicablePromotions handles GET /promotions/applicable?product_id=&quantity=&at=.
// quantity defaults to 1 and at (RFC 3339) to now.
func (h *catalogHandler) applicablePromotions(ctx *gin.Context) {
	quantity := 1
	if q := ctx.Query("quantity"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be an integer", "code": "invalid_input"})
			return
		}
		quantity = n
	}

	at := time.Now()
	if raw := ctx.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "at must be an RFC 3339 timestamp", "code": "invalid_input"})
			return
		}
		at = parsed
	}

	promos, err := h.catalog.ApplicablePromotions(ctx.Query("product_id"), quantity, at)
	if err != nil {
		writeError(ctx, h.logger, "failed to list applicable promotions", err)
		return
	}
	ctx.JSON(http.StatusOK, promos)
}
