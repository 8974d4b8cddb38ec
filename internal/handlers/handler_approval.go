package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/dto"
	"github.com/finledger/fincore/internal/middleware"
)

// approvalHandler handles HTTP requests for approval rules and requests.
// Decisions go through the posting orchestrator so an approval that completes
// the routing continues straight into ledger posting.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
	postingService  portssvc.PostingOrchestratorSvc
}

func newApprovalHandler(approvalService portssvc.ApprovalSvcFacade, postingService portssvc.PostingOrchestratorSvc) *approvalHandler {
	return &approvalHandler{
		approvalService: approvalService,
		postingService:  postingService,
	}
}

// registerApprovalRoutes registers approval routes nested under a company.
func registerApprovalRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade, postingService portssvc.PostingOrchestratorSvc) {
	h := newApprovalHandler(approvalService, postingService)

	rules := rg.Group("/approval-rules")
	{
		rules.POST("", h.createRule)
		rules.GET("", h.listRules)
	}

	approvals := rg.Group("/approvals")
	{
		approvals.GET("", h.listPending)
		approvals.GET("/:request_id", h.getRequest)
		approvals.POST("/:request_id/approve", h.approve)
		approvals.POST("/:request_id/reject", h.reject)
	}
}

// toPostingResultResponse flattens the orchestrator result for the wire.
func toPostingResultResponse(result *portssvc.PostingResult) dto.PostingResultResponse {
	return dto.PostingResultResponse{
		Status:            string(result.Status),
		JournalEntryID:    result.JournalEntryID,
		ApprovalRequestID: result.ApprovalRequestID,
	}
}

// createRule creates an approval rule with its ordered steps. Admin only.
func (h *approvalHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateApprovalRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rule, err := h.approvalService.CreateRule(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to create approval rule")
		return
	}

	logger.Info("Approval rule created", slog.String("rule_id", rule.RuleID), slog.String("company_id", companyID))
	c.JSON(http.StatusCreated, dto.ToApprovalRuleResponse(rule))
}

func (h *approvalHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rules, err := h.approvalService.ListRules(c.Request.Context(), companyID, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list approval rules")
		return
	}

	resp := dto.ListApprovalRulesResponse{Rules: make([]dto.ApprovalRuleResponse, len(rules))}
	for i := range rules {
		resp.Rules[i] = dto.ToApprovalRuleResponse(&rules[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *approvalHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	requests, err := h.approvalService.ListPending(c.Request.Context(), companyID, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list pending approvals")
		return
	}

	c.JSON(http.StatusOK, dto.ListApprovalRequestsResponse{Requests: dto.ToApprovalRequestResponses(requests)})
}

func (h *approvalHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	requestID := c.Param("request_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.approvalService.GetRequest(c.Request.Context(), companyID, requestID, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to retrieve approval request")
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalRequestResponse(request))
}

// approve records an approval for the request's current step. When the final
// step approves, the response carries the journal entry created by posting.
func (h *approvalHandler) approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	requestID := c.Param("request_id")

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for approve", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.postingService.ApproveDocument(c.Request.Context(), companyID, requestID, actorID, req.Comment)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to approve request")
		return
	}

	logger.Info("Approval recorded",
		slog.String("request_id", requestID),
		slog.String("result_status", string(result.Status)))
	c.JSON(http.StatusOK, toPostingResultResponse(result))
}

// reject terminally rejects the request and its document.
func (h *approvalHandler) reject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	requestID := c.Param("request_id")

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.postingService.RejectDocument(c.Request.Context(), companyID, requestID, actorID, req.Comment); err != nil {
		handleServiceError(c, logger, err, "Failed to reject request")
		return
	}

	logger.Info("Approval request rejected", slog.String("request_id", requestID))
	c.Status(http.StatusNoContent)
}
