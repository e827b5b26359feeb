package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cashbook/internal/access"
	apperrors "cashbook/internal/errors"
	"cashbook/internal/report"
	"cashbook/internal/services"
)

// --- mock report service ---

type mockReportService struct {
	generateFn func(scope *access.Scope, filter services.ReportFilter) (*report.Data, error)
}

func (m *mockReportService) Generate(scope *access.Scope, filter services.ReportFilter) (*report.Data, error) {
	if m.generateFn != nil {
		return m.generateFn(scope, filter)
	}
	return &report.Data{}, nil
}

var _ services.ReportServicer = (*mockReportService)(nil)

func setupReportRouter(handler *ReportHandler, scope *access.Scope) *gin.Engine {
	r := gin.New()
	r.POST("/reports", injectScope(scope), handler.GenerateReport)
	return r
}

func TestReportHandler_GenerateReport(t *testing.T) {
	sampleData := &report.Data{
		CampusName:   "Main Campus",
		CashBookName: "Main Counter",
		RangeLabel:   "29 Aug 2026",
		TotalIn:      10000,
		TotalOut:     3000,
		NetBalance:   7000,
		Rows: []report.Row{
			{Date: "29 Aug 2026", Time: "09:00:00", CashIn: 10000, Balance: 10000},
			{Date: "29 Aug 2026", Time: "10:00:00", CashOut: 3000, Balance: 7000},
		},
	}

	t.Run("downloads xlsx attachment", func(t *testing.T) {
		repSvc := &mockReportService{
			generateFn: func(_ *access.Scope, _ services.ReportFilter) (*report.Data, error) {
				return sampleData, nil
			},
		}
		handler := NewReportHandler(repSvc)
		r := setupReportRouter(handler, adminScope())

		rec := doRequest(r, "POST", "/reports", `{"format":"excel"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != excelContentType {
			t.Errorf("unexpected content type: %s", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, "report.xlsx") {
			t.Errorf("unexpected content disposition: %s", cd)
		}
		if rec.Body.Len() == 0 {
			t.Error("expected non-empty workbook body")
		}
	})

	t.Run("serves pdf inline", func(t *testing.T) {
		repSvc := &mockReportService{
			generateFn: func(_ *access.Scope, _ services.ReportFilter) (*report.Data, error) {
				return sampleData, nil
			},
		}
		handler := NewReportHandler(repSvc)
		r := setupReportRouter(handler, adminScope())

		rec := doRequest(r, "POST", "/reports", `{"format":"pdf"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != pdfContentType {
			t.Errorf("unexpected content type: %s", ct)
		}
		if !strings.HasPrefix(rec.Body.String(), "%PDF") {
			t.Error("expected PDF magic bytes")
		}
	})

	t.Run("returns 400 on unknown format", func(t *testing.T) {
		handler := NewReportHandler(&mockReportService{})
		r := setupReportRouter(handler, adminScope())

		rec := doRequest(r, "POST", "/reports", `{"format":"csv"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid date range", func(t *testing.T) {
		repSvc := &mockReportService{
			generateFn: func(_ *access.Scope, _ services.ReportFilter) (*report.Data, error) {
				return nil, apperrors.ErrInvalidDateRange
			},
		}
		handler := NewReportHandler(repSvc)
		r := setupReportRouter(handler, adminScope())

		rec := doRequest(r, "POST", "/reports",
			`{"format":"excel","preset":"range","from":"2026-08-20","to":"2026-08-10"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE_RANGE")
	})

	t.Run("returns 403 when campus not visible", func(t *testing.T) {
		repSvc := &mockReportService{
			generateFn: func(_ *access.Scope, _ services.ReportFilter) (*report.Data, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		handler := NewReportHandler(repSvc)
		r := setupReportRouter(handler, staffScope(1))

		rec := doRequest(r, "POST", "/reports", `{"format":"pdf","campus_id":9}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("passes filter ids through to the service", func(t *testing.T) {
		var captured services.ReportFilter
		repSvc := &mockReportService{
			generateFn: func(_ *access.Scope, filter services.ReportFilter) (*report.Data, error) {
				captured = filter
				return sampleData, nil
			},
		}
		handler := NewReportHandler(repSvc)
		r := setupReportRouter(handler, adminScope())

		doRequest(r, "POST", "/reports",
			`{"format":"excel","campus_id":2,"cash_book_id":5,"type":"IN","category_ids":[1,2],"preset":"this_month"}`)

		if captured.CampusID == nil || *captured.CampusID != 2 {
			t.Error("expected campus filter 2")
		}
		if captured.CashBookID == nil || *captured.CashBookID != 5 {
			t.Error("expected cash book filter 5")
		}
		if len(captured.CategoryIDs) != 2 {
			t.Errorf("expected 2 category ids, got %d", len(captured.CategoryIDs))
		}
		if captured.Preset != "this_month" {
			t.Errorf("expected this_month preset, got %q", captured.Preset)
		}
	})

	t.Run("infers the preset from supplied dates", func(t *testing.T) {
		var captured services.ReportFilter
		repSvc := &mockReportService{
			generateFn: func(_ *access.Scope, filter services.ReportFilter) (*report.Data, error) {
				captured = filter
				return sampleData, nil
			},
		}
		handler := NewReportHandler(repSvc)
		r := setupReportRouter(handler, adminScope())

		doRequest(r, "POST", "/reports", `{"format":"pdf","date":"2026-08-15"}`)
		if captured.Preset != "date" {
			t.Errorf("expected the date preset, got %q", captured.Preset)
		}
		if captured.Date == nil || captured.Date.Day() != 15 {
			t.Error("expected the supplied date to be carried")
		}

		doRequest(r, "POST", "/reports", `{"format":"pdf","from":"2026-08-01","to":"2026-08-15"}`)
		if captured.Preset != "range" {
			t.Errorf("expected the range preset, got %q", captured.Preset)
		}
	})
}
