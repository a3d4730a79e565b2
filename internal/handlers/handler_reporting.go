package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fincontrolapp/fincontrol_backend/internal/apperrors"
	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	portssvc "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/services"
	"github.com/fincontrolapp/fincontrol_backend/internal/dto"
	"github.com/fincontrolapp/fincontrol_backend/internal/middleware"
	"github.com/fincontrolapp/fincontrol_backend/pkg/config"
)

// reportingHandler handles HTTP requests for dashboard reports.
type reportingHandler struct {
	reportingService      portssvc.ReportingSvcFacade
	projectionService     portssvc.ProjectionSvcFacade
	defaultProjectionDays int
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade, ps portssvc.ProjectionSvcFacade, defaultProjectionDays int) *reportingHandler {
	return &reportingHandler{
		reportingService:      rs,
		projectionService:     ps,
		defaultProjectionDays: defaultProjectionDays,
	}
}

// registerReportingRoutes registers the report routes.
func registerReportingRoutes(rg *gin.RouterGroup, cfg *config.Config, reportingService portssvc.ReportingSvcFacade, projectionService portssvc.ProjectionSvcFacade) {
	h := newReportingHandler(reportingService, projectionService, cfg.DefaultProjectionDays)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/expense-by-category", h.getExpenseByCategory)
		reports.GET("/cash-flow", h.getCashFlow)
		reports.GET("/projection", h.getProjection)
		reports.GET("/upcoming", h.getUpcoming)
	}
}

// getSummary godoc
// @Summary Dashboard summary
// @Description Realized balance, period income/expense, and pending count for the next 7 days
// @Tags reports
// @Produce  json
// @Param   period query string false "Reporting period" Enums(week, month, quarter, year) default(month)
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse "Invalid period"
// @Failure 500 {object} ErrorResponse "Failed to compute summary"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period := domain.SummaryPeriod(c.DefaultQuery("period", "month"))

	summary, err := h.reportingService.Summary(c.Request.Context(), period)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to compute summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary, period))
}

// getExpenseByCategory godoc
// @Summary Expenses grouped by category
// @Description Period expense totals per root category, subcategories rolled up to their parent
// @Tags reports
// @Produce  json
// @Param   period query string false "Reporting period" Enums(week, month, quarter, year) default(month)
// @Success 200 {array} dto.CategoryExpenseResponse
// @Failure 400 {object} ErrorResponse "Invalid period"
// @Failure 500 {object} ErrorResponse "Failed to compute report"
// @Security BearerAuth
// @Router /reports/expense-by-category [get]
func (h *reportingHandler) getExpenseByCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period := domain.SummaryPeriod(c.DefaultQuery("period", "month"))

	rows, err := h.reportingService.ExpenseByCategory(c.Request.Context(), period)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to compute expense by category", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryExpenseResponses(rows))
}

// getCashFlow godoc
// @Summary Monthly cash-flow series
// @Description Income and expense per month over the last N months
// @Tags reports
// @Produce  json
// @Param   months query int false "Number of months including the current one" default(6)
// @Success 200 {array} dto.CashFlowPointResponse
// @Failure 400 {object} ErrorResponse "Invalid window"
// @Failure 500 {object} ErrorResponse "Failed to compute cash flow"
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))

	points, err := h.reportingService.CashFlow(c.Request.Context(), months)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to compute cash flow", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute cash flow"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCashFlowPointResponses(points))
}

// getProjection godoc
// @Summary Cash-flow projection
// @Description Day-by-day balance forecast from the current realized balance plus scheduled pending transactions
// @Tags reports
// @Produce  json
// @Param   days query int false "Projection horizon in days" default(30)
// @Success 200 {object} dto.ProjectionResponse
// @Failure 400 {object} ErrorResponse "Invalid horizon"
// @Failure 500 {object} ErrorResponse "Failed to compute projection"
// @Security BearerAuth
// @Router /reports/projection [get]
func (h *reportingHandler) getProjection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(h.defaultProjectionDays)))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid days parameter"})
		return
	}

	points, err := h.projectionService.BuildProjection(c.Request.Context(), days)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to compute projection", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute projection"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectionResponse(points, days))
}

// getUpcoming godoc
// @Summary Upcoming pending transactions
// @Description Pending transactions due within the next N days, ordered by due date
// @Tags reports
// @Produce  json
// @Param   days query int false "Lookahead window in days" default(7)
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} ErrorResponse "Failed to list upcoming transactions"
// @Security BearerAuth
// @Router /reports/upcoming [get]
func (h *reportingHandler) getUpcoming(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	txns, err := h.reportingService.Upcoming(c.Request.Context(), days)
	if err != nil {
		logger.Error("Failed to list upcoming transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list upcoming transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}
