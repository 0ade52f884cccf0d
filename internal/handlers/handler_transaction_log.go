package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/vending_machine_app/internal/apperrors"
	portssvc "github.com/SscSPs/vending_machine_app/internal/core/ports/services"
	"github.com/SscSPs/vending_machine_app/internal/dto"
	"github.com/SscSPs/vending_machine_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transactionLogHandler struct {
	logService portssvc.TransactionLogSvcFacade
}

// registerTransactionLogRoutes registers the read-only sales log routes.
func registerTransactionLogRoutes(rg *gin.RouterGroup, logService portssvc.TransactionLogSvcFacade) {
	h := &transactionLogHandler{logService: logService}

	logs := rg.Group("/transactions")
	{
		logs.GET("", h.listTransactionLogs)
		logs.GET("/:logID", h.getTransactionLog)
	}
}

// listTransactionLogs godoc
// @Summary List sales
// @Description Lists completed purchases, newest first
// @Tags admin
// @Produce json
// @Param limit query int false "Page size (1-100)" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionLogsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/admin/transactions [get]
func (h *transactionLogHandler) listTransactionLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	res, err := h.logService.ListTransactionLogs(c.Request.Context(), params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: appErr.Message})
			return
		}
		logger.Error("Failed to list transaction logs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list transactions"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// getTransactionLog godoc
// @Summary Get a sale
// @Tags admin
// @Produce json
// @Param logID path int true "Log ID"
// @Success 200 {object} dto.TransactionLogResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/admin/transactions/{logID} [get]
func (h *transactionLogHandler) getTransactionLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logID, err := strconv.ParseInt(c.Param("logID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid log ID"})
		return
	}

	entry, err := h.logService.GetTransactionLog(c.Request.Context(), logID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction log", slog.Int64("log_id", logID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve transaction"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionLogResponse(entry))
}
