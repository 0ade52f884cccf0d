package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	portssvc "github.com/SscSPs/vending_machine_app/internal/core/ports/services"
	"github.com/SscSPs/vending_machine_app/internal/dto"
	"github.com/SscSPs/vending_machine_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// purchaseHandler handles the purchase form and quick buy.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvc
	productService  portssvc.ProductReaderSvc
}

func newPurchaseHandler(ps portssvc.PurchaseSvc, prs portssvc.ProductReaderSvc) *purchaseHandler {
	return &purchaseHandler{
		purchaseService: ps,
		productService:  prs,
	}
}

// registerPurchaseRoutes registers the purchase routes. Routes that sell are rate limited.
func registerPurchaseRoutes(r *gin.Engine, ps portssvc.PurchaseSvc, prs portssvc.ProductReaderSvc, limit gin.HandlerFunc) {
	h := newPurchaseHandler(ps, prs)

	r.GET("/purchase", h.getPurchaseForm)
	r.POST("/purchase", limit, h.purchase)
	r.POST("/buy/:productID", limit, h.quickBuy)
	r.GET("/buy/:productID", limit, h.quickBuy)
}

// getPurchaseForm godoc
// @Summary Purchase form
// @Description Returns the products and the accepted denominations needed to draw the purchase form.
// @Tags machine
// @Produce json
// @Success 200 {object} dto.PurchaseFormResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /purchase [get]
func (h *purchaseHandler) getPurchaseForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	form, err := h.formModel(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build purchase form", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, form)
}

// purchase godoc
// @Summary Buy a product
// @Description Buys quantity units of a product paid with the counted cash. Unparsable
// @Description denomination counts are treated as 0 and reported as warnings.
// @Tags machine
// @Accept x-www-form-urlencoded
// @Produce json
// @Param product_id formData int true "Product ID"
// @Param quantity formData int false "Quantity (default 1)"
// @Param denom_100 formData int false "Count of 100 notes"
// @Param denom_50 formData int false "Count of 50 notes"
// @Param denom_20 formData int false "Count of 20 notes"
// @Param denom_10 formData int false "Count of 10 notes"
// @Param denom_5 formData int false "Count of 5 coins"
// @Param denom_1 formData int false "Count of 1 coins"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.PurchaseErrorResponse "Invalid product id or quantity"
// @Failure 404 {object} dto.PurchaseErrorResponse "Product not found"
// @Failure 409 {object} dto.PurchaseErrorResponse "Not enough stock"
// @Failure 422 {object} dto.PurchaseErrorResponse "Insufficient funds"
// @Failure 500 {object} dto.ErrorResponse
// @Router /purchase [post]
func (h *purchaseHandler) purchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	receipt, err := h.purchaseService.PurchaseFromForm(c.Request.Context(), c.GetPostForm)
	if err != nil {
		h.writePurchaseError(c, err)
		return
	}

	logger.Info("Purchase completed", slog.Int64("product_id", receipt.Product.ProductID), slog.Int("quantity", receipt.Quantity))
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(receipt))
}

// quickBuy godoc
// @Summary Quick buy
// @Description Buys one unit of a product paid with a single fixed note.
// @Tags machine
// @Produce json
// @Param productID path int true "Product ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.PurchaseErrorResponse
// @Failure 404 {object} dto.PurchaseErrorResponse
// @Failure 409 {object} dto.PurchaseResponse "Out of stock"
// @Failure 422 {object} dto.PurchaseErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /buy/{productID} [post]
func (h *purchaseHandler) quickBuy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		h.writePurchaseError(c, domain.NewInvalidInputError("Invalid product id."))
		return
	}

	receipt, err := h.purchaseService.QuickBuy(c.Request.Context(), productID)
	if err != nil {
		h.writePurchaseError(c, err)
		return
	}

	if !receipt.Completed {
		c.JSON(http.StatusConflict, dto.ToPurchaseResponse(receipt))
		return
	}
	logger.Info("Quick buy completed", slog.Int64("product_id", productID))
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(receipt))
}

// writePurchaseError maps a purchase failure onto a status code. Stock and funds
// failures echo the form so it can be shown again with the customer's entries.
func (h *purchaseHandler) writePurchaseError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var perr *domain.PurchaseError
	if !errors.As(err, &perr) {
		logger.Error("Purchase failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to complete purchase"})
		return
	}

	res := dto.ToPurchaseErrorResponse(perr)
	status := http.StatusBadRequest
	switch perr.Kind {
	case domain.PurchaseNotFound:
		status = http.StatusNotFound
	case domain.PurchaseInsufficientStock:
		status = http.StatusConflict
	case domain.PurchaseInsufficientFunds:
		status = http.StatusUnprocessableEntity
	}

	if perr.Kind == domain.PurchaseInsufficientStock || perr.Kind == domain.PurchaseInsufficientFunds {
		if form, ferr := h.formModel(c.Request.Context()); ferr == nil {
			res.Form = form
		} else {
			logger.Warn("Failed to reload purchase form", slog.String("error", ferr.Error()))
		}
	}

	logger.Info("Purchase rejected", slog.String("kind", string(perr.Kind)), slog.String("reason", perr.Message))
	c.JSON(status, res)
}

func (h *purchaseHandler) formModel(ctx context.Context) (*dto.PurchaseFormResponse, error) {
	products, err := h.productService.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PurchaseFormResponse{
		Products:      dto.ToListProductResponse(products),
		Denominations: h.purchaseService.Denominations().Values(),
	}, nil
}
