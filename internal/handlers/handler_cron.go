package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/services"
	"github.com/fincontrolapp/fincontrol_backend/internal/dto"
	"github.com/fincontrolapp/fincontrol_backend/internal/middleware"
	"github.com/fincontrolapp/fincontrol_backend/pkg/config"
)

// cronHandler handles the scheduler-triggered endpoints.
type cronHandler struct {
	recurrenceService   portssvc.RecurrenceSvcFacade
	notificationService portssvc.NotificationSvcFacade
	notifyWindowDays    int
}

// newCronHandler creates a new cronHandler.
func newCronHandler(rs portssvc.RecurrenceSvcFacade, ns portssvc.NotificationSvcFacade, notifyWindowDays int) *cronHandler {
	return &cronHandler{
		recurrenceService:   rs,
		notificationService: ns,
		notifyWindowDays:    notifyWindowDays,
	}
}

// RegisterCronRoutes registers the cron endpoints on the already-authenticated group.
func RegisterCronRoutes(rg *gin.RouterGroup, cfg *config.Config, recurrenceService portssvc.RecurrenceSvcFacade, notificationService portssvc.NotificationSvcFacade) {
	h := newCronHandler(recurrenceService, notificationService, cfg.NotifyWindowDays)

	rg.POST("/recurring-transactions", h.runRecurringTransactions)
	rg.POST("/notifications/email", h.prepareEmailNotice)
}

// runRecurringTransactions godoc
// @Summary Generate recurring transactions
// @Description Rolls paid recurring transactions forward, creating the next pending occurrence of each
// @Tags cron
// @Produce  json
// @Success 200 {object} dto.RecurringRunResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.RecurringRunResponse "Run failed"
// @Security CronAuth
// @Router /cron/recurring-transactions [post]
func (h *cronHandler) runRecurringTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	count, err := h.recurrenceService.GenerateDue(c.Request.Context())
	if err != nil {
		logger.Error("Recurring transaction run failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.RecurringRunResponse{
			Success: false,
			Message: "Failed to generate recurring transactions",
		})
		return
	}

	logger.Info("Recurring transaction run finished", slog.Int("generated_count", count))
	c.JSON(http.StatusOK, dto.RecurringRunResponse{
		Success:        true,
		Message:        fmt.Sprintf("Generated %d recurring transactions", count),
		GeneratedCount: count,
	})
}

// prepareEmailNotice godoc
// @Summary Prepare an upcoming-due-date email notice
// @Description Renders the HTML notice for pending transactions due inside the notification window. Delivery is left to an external mailer.
// @Tags cron
// @Produce  json
// @Success 200 {object} dto.EmailNoticeResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.EmailNoticeResponse "Preparation failed"
// @Security CronAuth
// @Router /cron/notifications/email [post]
func (h *cronHandler) prepareEmailNotice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	notice, err := h.notificationService.BuildDueNotice(c.Request.Context(), h.notifyWindowDays)
	if err != nil {
		logger.Error("Failed to prepare email notice", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.EmailNoticeResponse{
			Success: false,
			Message: "Failed to prepare notification",
		})
		return
	}

	c.JSON(http.StatusOK, dto.EmailNoticeResponse{
		Success:       true,
		Message:       fmt.Sprintf("Notification prepared for %d upcoming transactions", len(notice.Transactions)),
		UpcomingCount: len(notice.Transactions),
		EmailContent:  notice.HTML,
	})
}
