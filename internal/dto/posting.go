package dto

// PostingResultResponse is returned by the posting orchestrator. Exactly one of
// JournalEntryID / ApprovalRequestID is set depending on the resulting status.
type PostingResultResponse struct {
	Status            string  `json:"status"` // POSTED or PENDING_APPROVAL
	JournalEntryID    *string `json:"journalEntryID,omitempty"`
	ApprovalRequestID *string `json:"approvalRequestID,omitempty"`
}
