package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/tatweer/accounting/internal/application/report"
)

const dateLayout = "2006-01-02"

// RootTrialBalanceHandler handles the root trial balance report endpoint
type RootTrialBalanceHandler struct {
	BaseHandler
	reportService *reportapp.RootTrialBalanceService
}

// NewRootTrialBalanceHandler creates a new RootTrialBalanceHandler
func NewRootTrialBalanceHandler(reportService *reportapp.RootTrialBalanceService) *RootTrialBalanceHandler {
	return &RootTrialBalanceHandler{
		reportService: reportService,
	}
}

// RootTrialBalanceRequest is the report request body. Dates use the
// YYYY-MM-DD layout.
type RootTrialBalanceRequest struct {
	CompanyID            string            `json:"company_id" binding:"required,uuid"`
	FromDate             string            `json:"from_date" binding:"required"`
	ToDate               string            `json:"to_date" binding:"required"`
	FiscalYear           string            `json:"fiscal_year"`
	CostCenter           string            `json:"cost_center"`
	Project              string            `json:"project"`
	Dimensions           map[string]string `json:"dimensions"`
	PresentationCurrency string            `json:"presentation_currency"`
	ShowZeroValues       *bool             `json:"show_zero_values"`
	NetValues            bool              `json:"net_values"`
	TreeDepth            int               `json:"tree_depth"`
}

// toFilters converts the request into report filters
func (r *RootTrialBalanceRequest) toFilters() (reportapp.Filters, error) {
	companyID, err := uuid.Parse(r.CompanyID)
	if err != nil {
		return reportapp.Filters{}, err
	}
	fromDate, err := time.Parse(dateLayout, r.FromDate)
	if err != nil {
		return reportapp.Filters{}, err
	}
	toDate, err := time.Parse(dateLayout, r.ToDate)
	if err != nil {
		return reportapp.Filters{}, err
	}

	filters := reportapp.NewFilters(companyID, fromDate, toDate)
	filters.FiscalYear = r.FiscalYear
	filters.CostCenter = r.CostCenter
	filters.Project = r.Project
	filters.Dimensions = r.Dimensions
	filters.PresentationCurrency = r.PresentationCurrency
	filters.NetValues = r.NetValues
	if r.ShowZeroValues != nil {
		filters.ShowZeroValues = *r.ShowZeroValues
	}
	if r.TreeDepth > 0 {
		filters.TreeDepth = r.TreeDepth
	}
	return filters, nil
}

// Generate runs the root trial balance report
func (h *RootTrialBalanceHandler) Generate(c *gin.Context) {
	var req RootTrialBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	filters, err := req.toFilters()
	if err != nil {
		h.BadRequest(c, "Invalid filter value: "+err.Error())
		return
	}

	result, err := h.reportService.Execute(c.Request.Context(), filters)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers the report routes
func (h *RootTrialBalanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.POST("/root-trial-balance", h.Generate)
	}
}
