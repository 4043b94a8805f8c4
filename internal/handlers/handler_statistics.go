package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leftsolutions/transactions_processor/internal/apperrors"
	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	portssvc "github.com/leftsolutions/transactions_processor/internal/core/ports/services"
	"github.com/leftsolutions/transactions_processor/internal/dto"
	"github.com/leftsolutions/transactions_processor/internal/middleware"
)

// statisticsHandler handles HTTP requests for monthly statistics
type statisticsHandler struct {
	statisticsService portssvc.StatisticsSvcFacade
}

// newStatisticsHandler creates a new statisticsHandler
func newStatisticsHandler(ss portssvc.StatisticsSvcFacade) *statisticsHandler {
	return &statisticsHandler{statisticsService: ss}
}

// registerStatisticsRoutes registers routes related to monthly statistics
func registerStatisticsRoutes(rg *gin.RouterGroup, statisticsService portssvc.StatisticsSvcFacade) {
	h := newStatisticsHandler(statisticsService)

	rg.GET("/statistics", h.getMonthly)
}

// getMonthly godoc
// @Summary Get monthly transaction statistics
// @Description Aggregates the month's imported transactions grouped by category, IBAN, or as a single summary row. Fails with 409 until the month's import has completed.
// @Tags statistics
// @Produce json
// @Param month query string true "Target month (YYYY-MM)"
// @Param groupBy query string false "Grouping mode" Enums(CATEGORY, IBAN, SUMMARY) default(SUMMARY)
// @Success 200 {object} dto.MonthlyStatisticsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Statistics not ready"
// @Security BearerAuth
// @Router /statistics [get]
func (h *statisticsHandler) getMonthly(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.StatisticsQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Invalid statistics query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: month is required, groupBy must be CATEGORY, IBAN or SUMMARY"})
		return
	}

	period, err := domain.ParsePeriod(req.Month)
	if err != nil {
		logger.Warn("Invalid month in statistics query", slog.String("month", req.Month))
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_MONTH_FORMAT", "message": "Expected format: yyyy-MM"})
		return
	}

	workspaceID, ok := middleware.GetWorkspaceIDFromContext(c)
	if !ok {
		logger.Error("Workspace ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	groupBy := domain.StatisticsGroupBy(req.GroupBy)
	if groupBy == "" {
		groupBy = domain.GroupBySummary
	}
	query := domain.StatisticsQuery{Period: period, GroupBy: groupBy}

	rows, err := h.statisticsService.GetMonthlyStatistics(c.Request.Context(), workspaceID, query)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotReady) {
			logger.Warn("Statistics requested before import completion", slog.String("month", period.String()))
			c.JSON(http.StatusConflict, gin.H{"error": appErrorMessage(err, "Statistics not ready")})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": appErrorMessage(err, "Invalid statistics query")})
		} else {
			logger.Error("Failed to generate statistics", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate statistics"})
		}
		return
	}

	logger.Info("Monthly statistics served",
		slog.String("month", period.String()),
		slog.String("group_by", string(groupBy)),
		slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.ToMonthlyStatisticsResponse(workspaceID, query, rows))
}
