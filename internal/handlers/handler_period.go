package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/dto"
	"github.com/finledger/fincore/internal/middleware"
)

// periodHandler handles HTTP requests related to fiscal periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodService portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: periodService}
}

// registerPeriodRoutes registers fiscal period routes nested under a company.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.GET("", h.listPeriods)
		periods.POST("/year", h.createYearPeriods)
		periods.POST("/:period_id/close", h.closePeriod)
		periods.POST("/:period_id/open", h.openPeriod)
	}
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), companyID, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list periods")
		return
	}

	c.JSON(http.StatusOK, dto.ListPeriodsResponse{Periods: dto.ToFiscalPeriodResponses(periods)})
}

// createYearPeriods creates 12 monthly periods for a calendar year. Admin only.
func (h *periodHandler) createYearPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateYearPeriodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createYearPeriods", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periods, err := h.periodService.CreateYearPeriods(c.Request.Context(), companyID, req.Year, creatorUserID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to create periods")
		return
	}

	logger.Info("Fiscal year periods created", slog.String("company_id", companyID), slog.Int("year", req.Year))
	c.JSON(http.StatusCreated, dto.ListPeriodsResponse{Periods: dto.ToFiscalPeriodResponses(periods)})
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	h.setStatus(c, true)
}

func (h *periodHandler) openPeriod(c *gin.Context) {
	h.setStatus(c, false)
}

func (h *periodHandler) setStatus(c *gin.Context, closing bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	periodID := c.Param("period_id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var err error
	if closing {
		err = h.periodService.ClosePeriod(c.Request.Context(), companyID, periodID, actorID)
	} else {
		err = h.periodService.OpenPeriod(c.Request.Context(), companyID, periodID, actorID)
	}
	if err != nil {
		handleServiceError(c, logger, err, "Failed to update period status")
		return
	}

	logger.Info("Period status updated", slog.String("period_id", periodID), slog.Bool("closed", closing))
	c.Status(http.StatusNoContent)
}
