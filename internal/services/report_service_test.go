package services

import (
	"testing"
	"time"

	"cashbook/internal/models"
	"cashbook/internal/testutil"
)

func TestResolveDateRange(t *testing.T) {
	now := time.Date(2026, time.August, 29, 14, 30, 0, 0, time.UTC)

	t.Run("defaults to today", func(t *testing.T) {
		from, to, label, err := resolveDateRange(ReportFilter{}, now)
		testutil.AssertNoError(t, err)
		if !from.Equal(to) {
			t.Error("expected a single-day range")
		}
		if from.Day() != 29 || from.Hour() != 0 {
			t.Errorf("expected midnight of today, got %v", from)
		}
		if label != "29 Aug 2026" {
			t.Errorf("unexpected label %q", label)
		}
	})

	t.Run("yesterday", func(t *testing.T) {
		from, _, label, err := resolveDateRange(ReportFilter{Preset: "yesterday"}, now)
		testutil.AssertNoError(t, err)
		if from.Day() != 28 {
			t.Errorf("expected the 28th, got %v", from)
		}
		if label != "28 Aug 2026" {
			t.Errorf("unexpected label %q", label)
		}
	})

	t.Run("this month runs from the first to today", func(t *testing.T) {
		from, to, label, err := resolveDateRange(ReportFilter{Preset: "this_month"}, now)
		testutil.AssertNoError(t, err)
		if from.Day() != 1 || to.Day() != 29 {
			t.Errorf("unexpected range %v to %v", from, to)
		}
		if label != "01 Aug 2026 to 29 Aug 2026" {
			t.Errorf("unexpected label %q", label)
		}
	})

	t.Run("explicit date", func(t *testing.T) {
		day := time.Date(2026, time.July, 4, 10, 0, 0, 0, time.UTC)
		from, to, label, err := resolveDateRange(ReportFilter{Preset: "date", Date: &day}, now)
		testutil.AssertNoError(t, err)
		if !from.Equal(to) || from.Day() != 4 {
			t.Errorf("unexpected range %v to %v", from, to)
		}
		if label != "04 Jul 2026" {
			t.Errorf("unexpected label %q", label)
		}
	})

	t.Run("date preset requires a date", func(t *testing.T) {
		_, _, _, err := resolveDateRange(ReportFilter{Preset: "date"}, now)
		testutil.AssertAppError(t, err, "INVALID_DATE_RANGE")
	})

	t.Run("range with from after to is rejected", func(t *testing.T) {
		from := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
		_, _, _, err := resolveDateRange(ReportFilter{Preset: "range", From: &from, To: &to}, now)
		testutil.AssertAppError(t, err, "INVALID_DATE_RANGE")
	})

	t.Run("unknown preset is rejected", func(t *testing.T) {
		_, _, _, err := resolveDateRange(ReportFilter{Preset: "last_week"}, now)
		testutil.AssertAppError(t, err, "INVALID_DATE_RANGE")
	})
}

func TestReportService_Generate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	txnSvc := NewTransactionService(db)
	svc := NewReportService(db)

	campus := testutil.CreateTestCampus(t, db)
	book := testutil.CreateTestCashBook(t, db, campus.ID)
	admin := testutil.CreateTestAdmin(t, db)
	adminScope := testutil.ScopeFor(t, db, admin.ID)
	staffRole := testutil.CreateTestRole(t, db, "Staff")

	entries := []struct {
		txType models.TransactionType
		amount int64
		clock  string
	}{
		{models.TransactionTypeIn, 10000, "09:00:00"},
		{models.TransactionTypeOut, 3000, "11:00:00"},
		{models.TransactionTypeIn, 5000, "15:00:00"},
	}
	for _, e := range entries {
		_, err := txnSvc.CreateTransaction(adminScope, TransactionInput{
			Type:       e.txType,
			Amount:     e.amount,
			CashBookID: book.ID,
			Time:       e.clock,
		})
		testutil.AssertNoError(t, err)
	}

	t.Run("computes the running balance in time order", func(t *testing.T) {
		data, err := svc.Generate(adminScope, ReportFilter{})
		testutil.AssertNoError(t, err)

		if len(data.Rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(data.Rows))
		}
		wantBalances := []int64{10000, 7000, 12000}
		for i, want := range wantBalances {
			if data.Rows[i].Balance != want {
				t.Errorf("row %d: expected balance %d, got %d", i, want, data.Rows[i].Balance)
			}
		}
		if data.TotalIn != 15000 || data.TotalOut != 3000 || data.NetBalance != 12000 {
			t.Errorf("unexpected totals: in=%d out=%d net=%d", data.TotalIn, data.TotalOut, data.NetBalance)
		}
	})

	t.Run("labels unfiltered reports with All", func(t *testing.T) {
		data, err := svc.Generate(adminScope, ReportFilter{})
		testutil.AssertNoError(t, err)
		if data.CampusName != "All Campuses" || data.CashBookName != "All Cash Books" {
			t.Errorf("unexpected labels: %q %q", data.CampusName, data.CashBookName)
		}
	})

	t.Run("resolves filter names", func(t *testing.T) {
		data, err := svc.Generate(adminScope, ReportFilter{CampusID: &campus.ID, CashBookID: &book.ID})
		testutil.AssertNoError(t, err)
		if data.CampusName != campus.Name || data.CashBookName != book.Name {
			t.Errorf("unexpected labels: %q %q", data.CampusName, data.CashBookName)
		}
	})

	t.Run("filters by direction", func(t *testing.T) {
		data, err := svc.Generate(adminScope, ReportFilter{Type: models.TransactionTypeOut})
		testutil.AssertNoError(t, err)
		if len(data.Rows) != 1 {
			t.Fatalf("expected 1 OUT row, got %d", len(data.Rows))
		}
		if data.TotalIn != 0 || data.TotalOut != 3000 {
			t.Errorf("unexpected totals: in=%d out=%d", data.TotalIn, data.TotalOut)
		}
	})

	t.Run("an unknown cash book id blanks the label", func(t *testing.T) {
		missing := uint(99999)
		data, err := svc.Generate(adminScope, ReportFilter{CashBookID: &missing})
		testutil.AssertNoError(t, err)
		if data.CashBookName != "" {
			t.Errorf("expected a blank cash book label, got %q", data.CashBookName)
		}
		if len(data.Rows) != 0 {
			t.Errorf("expected no rows for an unknown cash book, got %d", len(data.Rows))
		}
	})

	t.Run("staff cannot report on a cash book in a hidden campus", func(t *testing.T) {
		otherCampus := testutil.CreateTestCampus(t, db)
		staff := testutil.CreateTestUser(t, db, staffRole, otherCampus)
		staffScope := testutil.ScopeFor(t, db, staff.ID)

		_, err := svc.Generate(staffScope, ReportFilter{CashBookID: &book.ID})
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("staff cannot report on a hidden campus", func(t *testing.T) {
		otherCampus := testutil.CreateTestCampus(t, db)
		staff := testutil.CreateTestUser(t, db, staffRole, otherCampus)
		staffScope := testutil.ScopeFor(t, db, staff.ID)

		_, err := svc.Generate(staffScope, ReportFilter{CampusID: &campus.ID})
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("staff report excludes hidden campuses", func(t *testing.T) {
		otherCampus := testutil.CreateTestCampus(t, db)
		staff := testutil.CreateTestUser(t, db, staffRole, otherCampus)
		staffScope := testutil.ScopeFor(t, db, staff.ID)

		data, err := svc.Generate(staffScope, ReportFilter{})
		testutil.AssertNoError(t, err)
		if len(data.Rows) != 0 {
			t.Errorf("expected no visible rows, got %d", len(data.Rows))
		}
	})

	t.Run("empty window yields zero totals", func(t *testing.T) {
		data, err := svc.Generate(adminScope, ReportFilter{Preset: "yesterday"})
		testutil.AssertNoError(t, err)
		if len(data.Rows) != 0 || data.NetBalance != 0 {
			t.Errorf("expected an empty report, got %d rows net %d", len(data.Rows), data.NetBalance)
		}
	})
}
