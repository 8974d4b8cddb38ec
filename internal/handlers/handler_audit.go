package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/dto"
	"github.com/finledger/fincore/internal/middleware"
	"github.com/finledger/fincore/internal/platform/config"
)

// auditHandler handles HTTP requests for the audit hash chain.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(auditService portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: auditService}
}

// registerAuditRoutes registers audit routes nested under a company. Chain
// verification recomputes every hash, so it sits behind a rate limit.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade, cfg *config.Config) {
	h := newAuditHandler(auditService)

	rate, err := limiter.NewRateFromFormatted(cfg.VerifyRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	verifyLimiter := limiter.New(memory.NewStore(), rate)

	audit := rg.Group("/audit")
	{
		audit.GET("", h.listEntries)
		audit.GET("/verify", middleware.RateLimit(verifyLimiter), h.verifyChain)
	}
}

func (h *auditHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListAuditEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.auditService.ListEntries(c.Request.Context(), companyID, userID, params)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list audit entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// verifyChain walks the company's full chain and reports integrity.
func (h *auditHandler) verifyChain(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	verification, err := h.auditService.VerifyChain(c.Request.Context(), companyID, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to verify audit chain")
		return
	}

	if !verification.IsValid {
		logger.Error("Audit chain verification failed",
			slog.String("company_id", companyID),
			slog.Int("invalid_count", len(verification.InvalidSequences)))
	}
	c.JSON(http.StatusOK, dto.ToChainVerificationResponse(verification))
}
