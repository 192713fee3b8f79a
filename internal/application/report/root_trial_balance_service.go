package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"

	"github.com/tatweer/accounting/internal/domain/accounting"
	"github.com/tatweer/accounting/internal/domain/shared"
	"github.com/tatweer/accounting/internal/infrastructure/telemetry"
)

// Filters are the report parameters. Company and the date range are
// mandatory; everything else narrows or reshapes the output.
type Filters struct {
	CompanyID            uuid.UUID         `json:"company_id"`
	FromDate             time.Time         `json:"from_date"`
	ToDate               time.Time         `json:"to_date"`
	FiscalYear           string            `json:"fiscal_year,omitempty"`
	CostCenter           string            `json:"cost_center,omitempty"`
	Project              string            `json:"project,omitempty"`
	Dimensions           map[string]string `json:"dimensions,omitempty"`
	PresentationCurrency string            `json:"presentation_currency,omitempty"`
	ShowZeroValues       bool              `json:"show_zero_values"`
	NetValues            bool              `json:"net_values"`
	TreeDepth            int               `json:"tree_depth"`
}

// NewFilters creates filters for the given company and period with the
// display options at their defaults: zero rows shown, gross values.
func NewFilters(companyID uuid.UUID, fromDate, toDate time.Time) Filters {
	return Filters{
		CompanyID:      companyID,
		FromDate:       fromDate,
		ToDate:         toDate,
		ShowZeroValues: true,
		TreeDepth:      defaultTreeDepth,
	}
}

// Validate checks the filters without touching any data source. Errors
// name the offending filter so API callers can surface them directly.
func (f Filters) Validate() error {
	if f.CompanyID == uuid.Nil {
		return shared.NewDomainError("MISSING_FILTER", "Filter 'company' is required")
	}
	if f.FromDate.IsZero() {
		return shared.NewDomainError("MISSING_FILTER", "Filter 'from_date' is required")
	}
	if f.ToDate.IsZero() {
		return shared.NewDomainError("MISSING_FILTER", "Filter 'to_date' is required")
	}
	if f.FromDate.After(f.ToDate) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Filter 'from_date' cannot be after 'to_date'")
	}
	if f.PresentationCurrency != "" {
		if _, err := currency.ParseISO(f.PresentationCurrency); err != nil {
			return shared.NewDomainError("INVALID_CURRENCY", "Filter 'presentation_currency' is not a valid ISO 4217 code")
		}
	}
	return nil
}

func (f Filters) glFilter() accounting.GLEntryFilter {
	return accounting.GLEntryFilter{
		CostCenter: f.CostCenter,
		Project:    f.Project,
		Dimensions: f.Dimensions,
	}
}

const defaultTreeDepth = 3

// Column describes one report column for the rendering layer
type Column struct {
	Fieldname string `json:"fieldname"`
	Label     string `json:"label"`
	Fieldtype string `json:"fieldtype"`
	Options   string `json:"options,omitempty"`
	Width     int    `json:"width"`
}

// Row is one report line. Root account rows carry the account
// reference; the trailing total row does not.
type Row struct {
	AccountID     *uuid.UUID          `json:"account_id,omitempty"`
	Account       string              `json:"account"`
	RootType      accounting.RootType `json:"root_type,omitempty"`
	OpeningDebit  decimal.Decimal     `json:"opening_debit"`
	OpeningCredit decimal.Decimal     `json:"opening_credit"`
	Debit         decimal.Decimal     `json:"debit"`
	Credit        decimal.Decimal     `json:"credit"`
	ClosingDebit  decimal.Decimal     `json:"closing_debit"`
	ClosingCredit decimal.Decimal     `json:"closing_credit"`
	Currency      string              `json:"currency"`
	IsTotal       bool                `json:"is_total,omitempty"`
}

// IsZero reports whether every value column of the row is zero
func (r Row) IsZero() bool {
	return r.OpeningDebit.IsZero() && r.OpeningCredit.IsZero() &&
		r.Debit.IsZero() && r.Credit.IsZero() &&
		r.ClosingDebit.IsZero() && r.ClosingCredit.IsZero()
}

// Report is the rendered trial balance restricted to root accounts
type Report struct {
	Columns   []Column `json:"columns"`
	Rows      []Row    `json:"rows"`
	Currency  string   `json:"currency"`
	TreeDepth int      `json:"tree_depth"`
}

// RootTrialBalanceService builds a trial balance where each row is a
// root of the chart of accounts, aggregating the whole subtree below it.
type RootTrialBalanceService struct {
	accountRepo    accounting.AccountRepository
	glRepo         accounting.GLEntryRepository
	companyRepo    accounting.CompanyRepository
	fiscalYearRepo accounting.FiscalYearRepository
	rateRepo       accounting.ExchangeRateRepository
	logger         *zap.Logger
}

// NewRootTrialBalanceService creates a new RootTrialBalanceService
func NewRootTrialBalanceService(
	accountRepo accounting.AccountRepository,
	glRepo accounting.GLEntryRepository,
	companyRepo accounting.CompanyRepository,
	fiscalYearRepo accounting.FiscalYearRepository,
	rateRepo accounting.ExchangeRateRepository,
	logger *zap.Logger,
) *RootTrialBalanceService {
	return &RootTrialBalanceService{
		accountRepo:    accountRepo,
		glRepo:         glRepo,
		companyRepo:    companyRepo,
		fiscalYearRepo: fiscalYearRepo,
		rateRepo:       rateRepo,
		logger:         logger,
	}
}

// rootBalance accumulates the six value columns for one root account
type rootBalance struct {
	openingDebit  decimal.Decimal
	openingCredit decimal.Decimal
	debit         decimal.Decimal
	credit        decimal.Decimal
}

// Execute validates the filters and builds the report. Validation
// failures are returned before any repository is touched.
func (s *RootTrialBalanceService) Execute(ctx context.Context, filters Filters) (*Report, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "report.root_trial_balance",
		"company_id", filters.CompanyID,
	)
	defer span.End()

	company, err := s.companyRepo.FindByID(ctx, filters.CompanyID)
	if err != nil {
		return nil, err
	}

	fy, err := s.resolveFiscalYear(ctx, filters)
	if err != nil {
		return nil, err
	}
	if !fy.Contains(filters.FromDate) || !fy.Contains(filters.ToDate) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE",
			"Filters 'from_date' and 'to_date' must fall within fiscal year "+fy.Name)
	}

	accounts, err := s.accountRepo.FindByCompany(ctx, filters.CompanyID)
	if err != nil {
		return nil, err
	}
	tree := accounting.NewAccountTree(accounts)
	roots := tree.Roots()

	allIDs := make([]uuid.UUID, 0, tree.Size())
	for _, acc := range accounts {
		allIDs = append(allIDs, acc.ID)
	}

	balances := make(map[uuid.UUID]*rootBalance, len(roots))
	for _, root := range roots {
		balances[root.ID] = &rootBalance{}
	}

	glFilter := filters.glFilter()

	openings, err := s.glRepo.SumOpeningBalance(ctx, allIDs, filters.FromDate, glFilter)
	if err != nil {
		s.logger.Error("Failed to aggregate opening balances", zap.Error(err))
		return nil, err
	}
	for _, agg := range openings {
		root := tree.RootOf(agg.AccountID)
		if root == nil {
			continue
		}
		bal := balances[root.ID]
		bal.openingDebit = bal.openingDebit.Add(agg.Debit)
		bal.openingCredit = bal.openingCredit.Add(agg.Credit)
	}

	entries, err := s.glRepo.FindInRange(ctx, allIDs, filters.FromDate, filters.ToDate, glFilter)
	if err != nil {
		s.logger.Error("Failed to load ledger entries", zap.Error(err))
		return nil, err
	}
	for i := range entries {
		entry := &entries[i]
		root := tree.RootOf(entry.AccountID)
		if root == nil {
			continue
		}
		bal := balances[root.ID]
		bal.debit = bal.debit.Add(entry.Debit)
		bal.credit = bal.credit.Add(entry.Credit)
	}

	reportCurrency := company.DefaultCurrency
	if filters.PresentationCurrency != "" && filters.PresentationCurrency != company.DefaultCurrency {
		reportCurrency = filters.PresentationCurrency
		if err := s.convertBalances(ctx, balances, company.DefaultCurrency, filters); err != nil {
			return nil, err
		}
	}

	rows := make([]Row, 0, len(roots)+1)
	total := Row{Account: "Total", Currency: reportCurrency, IsTotal: true}
	for _, root := range roots {
		row := buildRow(root, balances[root.ID], reportCurrency, filters.NetValues)

		total.OpeningDebit = total.OpeningDebit.Add(row.OpeningDebit)
		total.OpeningCredit = total.OpeningCredit.Add(row.OpeningCredit)
		total.Debit = total.Debit.Add(row.Debit)
		total.Credit = total.Credit.Add(row.Credit)
		total.ClosingDebit = total.ClosingDebit.Add(row.ClosingDebit)
		total.ClosingCredit = total.ClosingCredit.Add(row.ClosingCredit)

		if !filters.ShowZeroValues && row.IsZero() {
			continue
		}
		rows = append(rows, row)
	}
	rows = append(rows, total)

	treeDepth := filters.TreeDepth
	if treeDepth <= 0 {
		treeDepth = defaultTreeDepth
	}

	s.logger.Debug("Built root trial balance",
		zap.String("company", company.Name),
		zap.Int("roots", len(roots)),
		zap.Int("rows", len(rows)),
		zap.String("currency", reportCurrency),
	)
	telemetry.SetAttributes(span,
		"roots", len(roots),
		"rows", len(rows),
		"currency", reportCurrency,
	)

	return &Report{
		Columns:   buildColumns(reportCurrency),
		Rows:      rows,
		Currency:  reportCurrency,
		TreeDepth: treeDepth,
	}, nil
}

// resolveFiscalYear returns the fiscal year the report period must fall
// into: the named one when the filter is set, otherwise the year
// covering the period start.
func (s *RootTrialBalanceService) resolveFiscalYear(ctx context.Context, filters Filters) (*accounting.FiscalYear, error) {
	if filters.FiscalYear != "" {
		return s.fiscalYearRepo.FindByName(ctx, filters.CompanyID, filters.FiscalYear)
	}
	return s.fiscalYearRepo.FindCovering(ctx, filters.CompanyID, filters.FromDate)
}

// convertBalances converts every accumulated value into the
// presentation currency. Period movement and closing use the rate on
// the period end; opening uses the rate on the day before the period.
func (s *RootTrialBalanceService) convertBalances(ctx context.Context, balances map[uuid.UUID]*rootBalance, fromCurrency string, filters Filters) error {
	closingRate, err := s.rateRepo.FindRate(ctx, fromCurrency, filters.PresentationCurrency, filters.ToDate)
	if err != nil {
		s.logger.Error("Failed to resolve closing exchange rate",
			zap.String("from", fromCurrency),
			zap.String("to", filters.PresentationCurrency),
			zap.Error(err),
		)
		return err
	}
	openingRate, err := s.rateRepo.FindRate(ctx, fromCurrency, filters.PresentationCurrency, filters.FromDate.AddDate(0, 0, -1))
	if err != nil {
		s.logger.Error("Failed to resolve opening exchange rate",
			zap.String("from", fromCurrency),
			zap.String("to", filters.PresentationCurrency),
			zap.Error(err),
		)
		return err
	}

	for _, bal := range balances {
		bal.openingDebit = openingRate.Convert(bal.openingDebit)
		bal.openingCredit = openingRate.Convert(bal.openingCredit)
		bal.debit = closingRate.Convert(bal.debit)
		bal.credit = closingRate.Convert(bal.credit)
	}
	return nil
}

// buildRow materializes one root row. Closing columns are opening plus
// period movement per side; net-values mode collapses opening and
// closing to a single side, flipping negative balances to the opposite
// column.
func buildRow(root *accounting.Account, bal *rootBalance, currencyCode string, netValues bool) Row {
	row := Row{
		AccountID:     &root.ID,
		Account:       root.DisplayName(),
		RootType:      root.RootType,
		OpeningDebit:  bal.openingDebit,
		OpeningCredit: bal.openingCredit,
		Debit:         bal.debit,
		Credit:        bal.credit,
		Currency:      currencyCode,
	}
	row.ClosingDebit = row.OpeningDebit.Add(row.Debit)
	row.ClosingCredit = row.OpeningCredit.Add(row.Credit)

	if netValues {
		row.OpeningDebit, row.OpeningCredit = netPair(row.OpeningDebit, row.OpeningCredit)
		row.ClosingDebit, row.ClosingCredit = netPair(row.ClosingDebit, row.ClosingCredit)
	}

	return row
}

// netPair nets a debit/credit pair into a single side
func netPair(debit, credit decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	net := debit.Sub(credit)
	if net.IsNegative() {
		return decimal.Zero, net.Neg()
	}
	return net, decimal.Zero
}

func buildColumns(currencyCode string) []Column {
	return []Column{
		{Fieldname: "account", Label: "Account", Fieldtype: "Link", Options: "Account", Width: 300},
		{Fieldname: "opening_debit", Label: "Opening (Dr)", Fieldtype: "Currency", Options: currencyCode, Width: 120},
		{Fieldname: "opening_credit", Label: "Opening (Cr)", Fieldtype: "Currency", Options: currencyCode, Width: 120},
		{Fieldname: "debit", Label: "Debit", Fieldtype: "Currency", Options: currencyCode, Width: 120},
		{Fieldname: "credit", Label: "Credit", Fieldtype: "Currency", Options: currencyCode, Width: 120},
		{Fieldname: "closing_debit", Label: "Closing (Dr)", Fieldtype: "Currency", Options: currencyCode, Width: 120},
		{Fieldname: "closing_credit", Label: "Closing (Cr)", Fieldtype: "Currency", Options: currencyCode, Width: 120},
	}
}
