package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/vending_machine_app/internal/core/ports/services"
	"github.com/SscSPs/vending_machine_app/internal/dto"
	"github.com/SscSPs/vending_machine_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type homeHandler struct {
	productService portssvc.ProductReaderSvc
}

// registerHomeRoutes registers the product listing shown on the machine's front page
func registerHomeRoutes(r *gin.Engine, productService portssvc.ProductReaderSvc) {
	h := &homeHandler{productService: productService}
	r.GET("/", h.getHome)
}

// getHome godoc
// @Summary List products
// @Description Lists every product on the machine with its price and stock.
// @Tags machine
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router / [get]
func (h *homeHandler) getHome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list products", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListProductResponse(products))
}
