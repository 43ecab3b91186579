package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/query"
	"fintrack/internal/services"
)

// ReportHandler serves summaries, charts and exports.
type ReportHandler struct {
	summaryService services.SummaryServicer
	reportService  services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(summaryService services.SummaryServicer, reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{summaryService: summaryService, reportService: reportService}
}

// GetSummary returns totals and breakdowns
// @Summary     Financial summary
// @Description Total expense, total income, balance, and breakdowns by category, source and month
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       end_date   query string false "Inclusive end date (YYYY-MM-DD)"
// @Success     200 {object} services.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dateRange, err := query.ParseDateRange(c.Request.URL.Query())
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.GetSummary(userID, dateRange)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetExpenseTrends returns the monthly expense series and a line chart
// @Summary     Expense trends
// @Description Monthly expense totals with a base64 PNG line chart
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.TrendReport "Trend report"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No expense data"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expense-trends [get]
func (h *ReportHandler) GetExpenseTrends(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.ExpenseTrends(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetAnalysis compares income and expenses
// @Summary     Income vs expense analysis
// @Description Monthly income vs expense bar chart, category pie chart and the underlying maps
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       end_date   query string false "Inclusive end date (YYYY-MM-DD)"
// @Success     200 {object} services.AnalysisReport "Analysis"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No financial data"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analysis [get]
func (h *ReportHandler) GetAnalysis(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dateRange, err := query.ParseDateRange(c.Request.URL.Query())
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.Analysis(userID, dateRange)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Export downloads active transactions as a spreadsheet or PDF
// @Summary     Export transactions
// @Description Download all active transactions as XLSX or PDF
// @Tags        reports
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       format     path  string true  "xlsx or pdf"
// @Param       start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       end_date   query string false "Inclusive end date (YYYY-MM-DD)"
// @Success     200 {file} file "Report file"
// @Failure     400 {object} ErrorResponse "Invalid format or date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export/{format} [get]
func (h *ReportHandler) Export(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dateRange, err := query.ParseDateRange(c.Request.URL.Query())
	if err != nil {
		respondWithError(c, err)
		return
	}

	file, err := h.reportService.Export(userID, c.Param("format"), dateRange)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
