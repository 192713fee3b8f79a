package handler

import (
	"github.com/gin-gonic/gin"

	appaccounting "github.com/tatweer/accounting/internal/application/accounting"
)

// JournalEntryHandler handles depreciation journal entry endpoints
type JournalEntryHandler struct {
	BaseHandler
	approvalService *appaccounting.DepreciationApprovalService
}

// NewJournalEntryHandler creates a new JournalEntryHandler
func NewJournalEntryHandler(approvalService *appaccounting.DepreciationApprovalService) *JournalEntryHandler {
	return &JournalEntryHandler{
		approvalService: approvalService,
	}
}

// PendingDepreciationResponse reports how many depreciation entries are
// still waiting in draft.
type PendingDepreciationResponse struct {
	PendingCount int64 `json:"pending_count"`
}

// GetPendingDepreciation returns the number of draft depreciation entries
func (h *JournalEntryHandler) GetPendingDepreciation(c *gin.Context) {
	count, err := h.approvalService.GetDraftCount(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, PendingDepreciationResponse{PendingCount: count})
}

// ApproveDepreciation runs an approval pass immediately. The scheduler
// runs the same pass hourly; this endpoint exists for operators who do
// not want to wait for the next tick.
func (h *JournalEntryHandler) ApproveDepreciation(c *gin.Context) {
	stats, err := h.approvalService.ApproveDraftEntries(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// RegisterRoutes registers the journal entry routes
func (h *JournalEntryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	entries := rg.Group("/journal-entries")
	{
		entries.GET("/depreciation/pending", h.GetPendingDepreciation)
		entries.POST("/depreciation/approve", h.ApproveDepreciation)
	}
}
