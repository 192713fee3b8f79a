package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tatweer/accounting/internal/domain/accounting"
)

// CompanyModel is the persistence model for Company
type CompanyModel struct {
	BaseModel
	Name            string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Abbreviation    string `gorm:"type:varchar(20);not null"`
	DefaultCurrency string `gorm:"type:varchar(3);not null"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company
func (m *CompanyModel) ToDomain() *accounting.Company {
	return &accounting.Company{
		BaseEntity:      m.BaseModel.ToDomain(),
		Name:            m.Name,
		Abbreviation:    m.Abbreviation,
		DefaultCurrency: m.DefaultCurrency,
	}
}

// AccountModel is the persistence model for Account
type AccountModel struct {
	BaseModel
	Name          string              `gorm:"type:varchar(200);not null"`
	AccountNumber string              `gorm:"type:varchar(50);index"`
	CompanyID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	ParentID      *uuid.UUID          `gorm:"type:uuid;index"`
	IsGroup       bool                `gorm:"not null;default:false"`
	RootType      accounting.RootType `gorm:"type:varchar(20);not null;index"`
	Currency      string              `gorm:"type:varchar(3)"`
	Disabled      bool                `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *accounting.Account {
	return &accounting.Account{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		AccountNumber: m.AccountNumber,
		CompanyID:     m.CompanyID,
		ParentID:      m.ParentID,
		IsGroup:       m.IsGroup,
		RootType:      m.RootType,
		Currency:      m.Currency,
		Disabled:      m.Disabled,
	}
}

// JournalEntryModel is the persistence model for the JournalEntry aggregate
type JournalEntryModel struct {
	BaseModel
	EntryNumber   string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	CompanyID     uuid.UUID                `gorm:"type:uuid;not null;index"`
	VoucherType   accounting.VoucherType   `gorm:"type:varchar(30);not null;index:idx_journal_entries_type_state"`
	WorkflowState accounting.WorkflowState `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_journal_entries_type_state"`
	PostingDate   time.Time                `gorm:"not null;index"`
	Remark        string                   `gorm:"type:text"`
	UserRemark    string                   `gorm:"type:text"`
	SubmittedAt   *time.Time
}

// TableName returns the table name for GORM
func (JournalEntryModel) TableName() string {
	return "journal_entries"
}

// ToDomain converts the persistence model to a domain JournalEntry
func (m *JournalEntryModel) ToDomain() *accounting.JournalEntry {
	return &accounting.JournalEntry{
		BaseEntity:    m.BaseModel.ToDomain(),
		EntryNumber:   m.EntryNumber,
		CompanyID:     m.CompanyID,
		VoucherType:   m.VoucherType,
		WorkflowState: m.WorkflowState,
		PostingDate:   m.PostingDate,
		Remark:        m.Remark,
		UserRemark:    m.UserRemark,
		SubmittedAt:   m.SubmittedAt,
	}
}

// FromDomain populates the persistence model from a domain JournalEntry
func (m *JournalEntryModel) FromDomain(e *accounting.JournalEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.EntryNumber = e.EntryNumber
	m.CompanyID = e.CompanyID
	m.VoucherType = e.VoucherType
	m.WorkflowState = e.WorkflowState
	m.PostingDate = e.PostingDate
	m.Remark = e.Remark
	m.UserRemark = e.UserRemark
	m.SubmittedAt = e.SubmittedAt
}

// JournalEntryModelFromDomain creates a new persistence model from a domain JournalEntry
func JournalEntryModelFromDomain(e *accounting.JournalEntry) *JournalEntryModel {
	m := &JournalEntryModel{}
	m.FromDomain(e)
	return m
}

// GLEntryModel is the persistence model for posted general ledger lines
type GLEntryModel struct {
	BaseModel
	AccountID   uuid.UUID              `gorm:"type:uuid;not null;index:idx_gl_entries_account_date"`
	CompanyID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	PostingDate time.Time              `gorm:"not null;index:idx_gl_entries_account_date"`
	Debit       decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Credit      decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Currency    string                 `gorm:"type:varchar(3)"`
	VoucherType accounting.VoucherType `gorm:"type:varchar(30);index"`
	VoucherNo   string                 `gorm:"type:varchar(50);index"`
	IsOpening   bool                   `gorm:"not null;default:false;index"`
	IsCancelled bool                   `gorm:"not null;default:false;index"`
	CostCenter  string                 `gorm:"type:varchar(200);index"`
	Project     string                 `gorm:"type:varchar(200);index"`
	Dimensions  accounting.Dimensions  `gorm:"type:jsonb;default:'{}'"`
}

// TableName returns the table name for GORM
func (GLEntryModel) TableName() string {
	return "gl_entries"
}

// ToDomain converts the persistence model to a domain GLEntry
func (m *GLEntryModel) ToDomain() *accounting.GLEntry {
	return &accounting.GLEntry{
		BaseEntity:  m.BaseModel.ToDomain(),
		AccountID:   m.AccountID,
		CompanyID:   m.CompanyID,
		PostingDate: m.PostingDate,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Currency:    m.Currency,
		VoucherType: m.VoucherType,
		VoucherNo:   m.VoucherNo,
		IsOpening:   m.IsOpening,
		IsCancelled: m.IsCancelled,
		CostCenter:  m.CostCenter,
		Project:     m.Project,
		Dimensions:  m.Dimensions,
	}
}

// FiscalYearModel is the persistence model for FiscalYear
type FiscalYearModel struct {
	BaseModel
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_fiscal_years_company_name,priority:2"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_fiscal_years_company_name,priority:1"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (FiscalYearModel) TableName() string {
	return "fiscal_years"
}

// ToDomain converts the persistence model to a domain FiscalYear
func (m *FiscalYearModel) ToDomain() *accounting.FiscalYear {
	return &accounting.FiscalYear{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		CompanyID:  m.CompanyID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
	}
}

// ExchangeRateModel is the persistence model for dated currency rates
type ExchangeRateModel struct {
	BaseModel
	FromCurrency  string          `gorm:"type:varchar(3);not null;index:idx_exchange_rates_pair_date,priority:1"`
	ToCurrency    string          `gorm:"type:varchar(3);not null;index:idx_exchange_rates_pair_date,priority:2"`
	Rate          decimal.Decimal `gorm:"type:decimal(18,9);not null"`
	EffectiveDate time.Time       `gorm:"not null;index:idx_exchange_rates_pair_date,priority:3"`
}

// TableName returns the table name for GORM
func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

// ToDomain converts the persistence model to a domain ExchangeRate
func (m *ExchangeRateModel) ToDomain() *accounting.ExchangeRate {
	return &accounting.ExchangeRate{
		BaseEntity:    m.BaseModel.ToDomain(),
		FromCurrency:  m.FromCurrency,
		ToCurrency:    m.ToCurrency,
		Rate:          m.Rate,
		EffectiveDate: m.EffectiveDate,
	}
}
