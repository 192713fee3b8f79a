package accounting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tatweer/accounting/internal/domain/shared"
)

// VoucherType classifies a journal entry by its business origin
type VoucherType string

const (
	VoucherTypeJournalEntry      VoucherType = "JOURNAL_ENTRY"
	VoucherTypeDepreciationEntry VoucherType = "DEPRECIATION_ENTRY"
	VoucherTypeOpeningEntry      VoucherType = "OPENING_ENTRY"
	VoucherTypePeriodClosing     VoucherType = "PERIOD_CLOSING"
)

// IsValid checks if the voucher type is a valid VoucherType
func (v VoucherType) IsValid() bool {
	switch v {
	case VoucherTypeJournalEntry, VoucherTypeDepreciationEntry, VoucherTypeOpeningEntry, VoucherTypePeriodClosing:
		return true
	}
	return false
}

// String returns the string representation
func (v VoucherType) String() string {
	return string(v)
}

// WorkflowState is a named stage governing journal entry mutability
type WorkflowState string

const (
	WorkflowStateDraft     WorkflowState = "DRAFT"
	WorkflowStateApproved  WorkflowState = "APPROVED"
	WorkflowStateSubmitted WorkflowState = "SUBMITTED"
)

// workflowTransitions is the ordered transition table for the journal
// entry workflow. Submitted is terminal; there are no reverse edges.
var workflowTransitions = map[WorkflowState]WorkflowState{
	WorkflowStateDraft:    WorkflowStateApproved,
	WorkflowStateApproved: WorkflowStateSubmitted,
}

// IsValid checks if the state is a valid WorkflowState
func (s WorkflowState) IsValid() bool {
	switch s {
	case WorkflowStateDraft, WorkflowStateApproved, WorkflowStateSubmitted:
		return true
	}
	return false
}

// String returns the string representation
func (s WorkflowState) String() string {
	return string(s)
}

// IsTerminal returns true once the entry can no longer change state
func (s WorkflowState) IsTerminal() bool {
	_, ok := workflowTransitions[s]
	return !ok
}

// Next returns the state following s in the workflow, or false when s
// is terminal.
func (s WorkflowState) Next() (WorkflowState, bool) {
	next, ok := workflowTransitions[s]
	return next, ok
}

// CanTransitionTo reports whether target is the immediate successor of s
func (s WorkflowState) CanTransitionTo(target WorkflowState) bool {
	next, ok := workflowTransitions[s]
	return ok && next == target
}

// JournalEntry is an accounting document that moves through the
// Draft -> Approved -> Submitted workflow. Depreciation entries are
// created elsewhere by the platform's asset scheduling; this system
// only advances them. Once submitted the document is immutable.
type JournalEntry struct {
	shared.BaseEntity
	EntryNumber   string        `json:"entry_number"`
	CompanyID     uuid.UUID     `json:"company_id"`
	VoucherType   VoucherType   `json:"voucher_type"`
	WorkflowState WorkflowState `json:"workflow_state"`
	PostingDate   time.Time     `json:"posting_date"`
	Remark        string        `json:"remark"`
	UserRemark    string        `json:"user_remark"`
	SubmittedAt   *time.Time    `json:"submitted_at"`
}

// NewJournalEntry creates a new draft journal entry
func NewJournalEntry(companyID uuid.UUID, entryNumber string, voucherType VoucherType, postingDate time.Time) (*JournalEntry, error) {
	if entryNumber == "" {
		return nil, shared.NewDomainError("INVALID_ENTRY_NUMBER", "Entry number cannot be empty")
	}
	if !voucherType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VOUCHER_TYPE", "Voucher type is not valid")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}

	return &JournalEntry{
		BaseEntity:    shared.NewBaseEntity(),
		EntryNumber:   entryNumber,
		CompanyID:     companyID,
		VoucherType:   voucherType,
		WorkflowState: WorkflowStateDraft,
		PostingDate:   postingDate,
	}, nil
}

// advance moves the entry to the target state following the transition
// table. Any jump that is not the immediate successor is rejected.
func (e *JournalEntry) advance(target WorkflowState) error {
	if !e.WorkflowState.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition journal entry from %s to %s", e.WorkflowState, target))
	}
	e.WorkflowState = target
	e.UpdatedAt = time.Now()
	return nil
}

// Approve advances a draft entry to Approved. The remark is copied into
// the user remark so that intermediate saves never clear it.
func (e *JournalEntry) Approve() error {
	if err := e.advance(WorkflowStateApproved); err != nil {
		return err
	}
	e.UserRemark = e.Remark
	return nil
}

// Submit advances an approved entry to Submitted, the terminal state
func (e *JournalEntry) Submit() error {
	if err := e.advance(WorkflowStateSubmitted); err != nil {
		return err
	}
	now := time.Now()
	e.SubmittedAt = &now
	return nil
}

// IsDraft returns true if the entry is still in draft
func (e *JournalEntry) IsDraft() bool {
	return e.WorkflowState == WorkflowStateDraft
}

// IsSubmitted returns true once the entry has been finalized
func (e *JournalEntry) IsSubmitted() bool {
	return e.WorkflowState == WorkflowStateSubmitted
}
