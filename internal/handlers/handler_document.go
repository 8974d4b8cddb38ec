package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finledger/fincore/internal/core/domain"
	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/dto"
	"github.com/finledger/fincore/internal/middleware"
)

// documentHandler handles HTTP requests for postable source documents. Submit
// and cancel go through the posting orchestrator.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
	postingService  portssvc.PostingOrchestratorSvc
}

func newDocumentHandler(documentService portssvc.DocumentSvcFacade, postingService portssvc.PostingOrchestratorSvc) *documentHandler {
	return &documentHandler{
		documentService: documentService,
		postingService:  postingService,
	}
}

// registerDocumentRoutes registers document routes nested under a company.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, postingService portssvc.PostingOrchestratorSvc) {
	h := newDocumentHandler(documentService, postingService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:document_id", h.getDocument)
		documents.POST("/:document_id/submit", h.submitDocument)
		documents.POST("/:document_id/cancel", h.cancelDocument)
	}

	// Posting account defaults for line-less documents. Admin only.
	rg.POST("/account-mappings", h.setAccountMapping)
}

func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to create document")
		return
	}

	logger.Info("Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("document_type", string(doc.DocumentType)))
	c.JSON(http.StatusCreated, dto.ToSourceDocumentResponse(doc))
}

func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	documentID := c.Param("document_id")

	docType := domain.DocumentType(c.Query("type"))
	if docType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: type"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), companyID, docType, documentID, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to retrieve document")
		return
	}

	c.JSON(http.StatusOK, dto.ToSourceDocumentResponse(doc))
}

func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listDocuments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	docs, nextToken, err := h.documentService.ListDocuments(c.Request.Context(), companyID, userID, params.Limit, params.NextToken)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list documents")
		return
	}

	c.JSON(http.StatusOK, dto.ListDocumentsResponse{
		Documents: dto.ToSourceDocumentResponses(docs),
		NextToken: nextToken,
	})
}

// submitDocument runs the posting pipeline: period check, approval gating,
// then atomic ledger post. The response says which path the document took.
func (h *documentHandler) submitDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	documentID := c.Param("document_id")

	var req dto.SubmitDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for submitDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.postingService.RequestPosting(c.Request.Context(), companyID, req.DocumentType, documentID, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to submit document for posting")
		return
	}

	logger.Info("Document submitted for posting",
		slog.String("document_id", documentID),
		slog.String("result_status", string(result.Status)))
	c.JSON(http.StatusOK, toPostingResultResponse(result))
}

// cancelDocument reverses the document's journal entry and marks it CANCELLED.
func (h *documentHandler) cancelDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	documentID := c.Param("document_id")

	var req dto.CancelDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for cancelDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.postingService.CancelPosting(c.Request.Context(), companyID, req.DocumentType, documentID, req.Reason, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to cancel document")
		return
	}

	logger.Info("Document posting cancelled",
		slog.String("document_id", documentID),
		slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(reversal))
}

func (h *documentHandler) setAccountMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.SetAccountMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setAccountMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.documentService.SetAccountMapping(c.Request.Context(), companyID, req, actorID); err != nil {
		handleServiceError(c, logger, err, "Failed to set account mapping")
		return
	}

	logger.Info("Account mapping set",
		slog.String("company_id", companyID),
		slog.String("document_type", string(req.DocumentType)))
	c.Status(http.StatusNoContent)
}
