package accounting

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tatweer/accounting/internal/domain/accounting"
	"github.com/tatweer/accounting/internal/infrastructure/telemetry"
)

// DepreciationApprovalService advances draft depreciation journal
// entries through the approval workflow until submission.
type DepreciationApprovalService struct {
	entryRepo accounting.JournalEntryRepository
	logger    *zap.Logger
}

// NewDepreciationApprovalService creates a new DepreciationApprovalService
func NewDepreciationApprovalService(
	entryRepo accounting.JournalEntryRepository,
	logger *zap.Logger,
) *DepreciationApprovalService {
	return &DepreciationApprovalService{
		entryRepo: entryRepo,
		logger:    logger,
	}
}

// ApprovalStats contains statistics about a draft approval run
type ApprovalStats struct {
	TotalDrafts int       `json:"total_drafts"`
	Submitted   int       `json:"submitted"`
	Failed      int       `json:"failed"`
	ProcessedAt time.Time `json:"processed_at"`
}

// ApproveDraftEntries finds all draft depreciation entries and moves
// each one through Approved to Submitted. A failure on one entry is
// logged and counted; the remaining entries are still processed.
func (s *DepreciationApprovalService) ApproveDraftEntries(ctx context.Context) (*ApprovalStats, error) {
	ctx, span := telemetry.StartSpan(ctx, "depreciation_approval.approve_drafts")
	defer span.End()

	stats := &ApprovalStats{
		ProcessedAt: time.Now(),
	}

	drafts, err := s.entryRepo.FindDraftByVoucherType(ctx, accounting.VoucherTypeDepreciationEntry)
	if err != nil {
		s.logger.Error("Failed to find draft depreciation entries", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, err
	}

	stats.TotalDrafts = len(drafts)
	if stats.TotalDrafts == 0 {
		s.logger.Debug("No draft depreciation entries found")
		return stats, nil
	}

	s.logger.Info("Found draft depreciation entries",
		zap.Int("count", stats.TotalDrafts),
	)

	for i := range drafts {
		entry := &drafts[i]
		if err := s.approveAndSubmit(ctx, entry); err != nil {
			s.logger.Error("Failed to approve depreciation entry",
				zap.String("entry_id", entry.ID.String()),
				zap.String("entry_number", entry.EntryNumber),
				zap.String("state", entry.WorkflowState.String()),
				zap.Error(err),
			)
			stats.Failed++
			continue
		}
		stats.Submitted++
	}

	s.logger.Info("Completed depreciation entry approval",
		zap.Int("total", stats.TotalDrafts),
		zap.Int("submitted", stats.Submitted),
		zap.Int("failed", stats.Failed),
	)
	telemetry.SetAttributes(span,
		"total_drafts", stats.TotalDrafts,
		"submitted", stats.Submitted,
		"failed", stats.Failed,
	)

	return stats, nil
}

// approveAndSubmit moves a single entry through the full workflow,
// persisting after each transition so a crash between stages leaves
// the entry in a consistent intermediate state.
func (s *DepreciationApprovalService) approveAndSubmit(ctx context.Context, entry *accounting.JournalEntry) error {
	if err := entry.Approve(); err != nil {
		return err
	}
	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return err
	}

	if err := entry.Submit(); err != nil {
		return err
	}
	if err := s.entryRepo.Submit(ctx, entry); err != nil {
		return err
	}

	s.logger.Debug("Submitted depreciation entry",
		zap.String("entry_id", entry.ID.String()),
		zap.String("entry_number", entry.EntryNumber),
	)

	return nil
}

// GetDraftCount returns the number of depreciation entries still in draft
func (s *DepreciationApprovalService) GetDraftCount(ctx context.Context) (int64, error) {
	count, err := s.entryRepo.CountDraftByVoucherType(ctx, accounting.VoucherTypeDepreciationEntry)
	if err != nil {
		return 0, err
	}
	return count, nil
}
