package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "cashbook/internal/errors"
	"cashbook/internal/models"
	"cashbook/internal/report"
	"cashbook/internal/services"
)

const (
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType   = "application/pdf"
)

// ReportHandler handles report generation requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GenerateReportRequest represents the report filter payload. An omitted
// preset is inferred from the supplied dates, and defaults to today when no
// dates are given either.
type GenerateReportRequest struct {
	Format         string                 `json:"format" binding:"required,report_format"`
	CampusID       *uint                  `json:"campus_id"`
	CashBookID     *uint                  `json:"cash_book_id"`
	Type           models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	CategoryIDs    []uint                 `json:"category_ids"`
	PaymentModeIDs []uint                 `json:"payment_mode_ids"`
	UserIDs        []uint                 `json:"user_ids"`
	Preset         string                 `json:"preset" binding:"omitempty,date_preset"`
	Date           *string                `json:"date" binding:"omitempty,date_string"`
	From           *string                `json:"from" binding:"omitempty,date_string"`
	To             *string                `json:"to" binding:"omitempty,date_string"`
}

// GenerateReport handles building and downloading a ledger report.
// @Summary     Generate a report
// @Description Build a running-balance report over the visible ledger and download it as XLSX or PDF
// @Tags        reports
// @Accept      json
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       request body GenerateReportRequest true "Report filter"
// @Success     200 {file} file "Report artifact"
// @Failure     400 {object} ErrorResponse "Invalid input or date range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Campus or cash book not visible to caller"
// @Router      /reports [post]
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	scope, err := getScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.ReportFilter{
		CampusID:       req.CampusID,
		CashBookID:     req.CashBookID,
		Type:           req.Type,
		CategoryIDs:    req.CategoryIDs,
		PaymentModeIDs: req.PaymentModeIDs,
		UserIDs:        req.UserIDs,
		Preset:         req.Preset,
	}
	for _, q := range []struct {
		src  *string
		dest **time.Time
	}{
		{req.Date, &filter.Date},
		{req.From, &filter.From},
		{req.To, &filter.To},
	} {
		if q.src != nil {
			d, err := time.Parse(dateLayout, *q.src)
			if err != nil {
				respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date"))
				return
			}
			*q.dest = &d
		}
	}

	// Supplied dates imply their preset; without this a bare date or range
	// would be silently reported as today.
	if filter.Preset == "" {
		switch {
		case filter.Date != nil:
			filter.Preset = "date"
		case filter.From != nil || filter.To != nil:
			filter.Preset = "range"
		}
	}

	data, err := h.reportService.Generate(scope, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	switch req.Format {
	case "excel":
		artifact, err := report.Excel(data)
		if err != nil {
			respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="report.xlsx"`)
		c.Data(http.StatusOK, excelContentType, artifact)
	case "pdf":
		artifact, err := report.PDF(data)
		if err != nil {
			respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
			return
		}
		c.Header("Content-Disposition", `inline; filename="report.pdf"`)
		c.Data(http.StatusOK, pdfContentType, artifact)
	default:
		respondWithError(c, apperrors.ErrInvalidReportFormat)
	}
}
