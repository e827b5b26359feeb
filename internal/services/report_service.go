package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"cashbook/internal/access"
	apperrors "cashbook/internal/errors"
	"cashbook/internal/models"
	"cashbook/internal/report"
)

const reportDateLayout = "02 Jan 2006"

// reportService assembles running-balance report data from the ledger.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// resolveDateRange turns a preset selector into a concrete [from, to] day
// range and a human-readable label.
func resolveDateRange(filter ReportFilter, now time.Time) (time.Time, time.Time, string, error) {
	today := startOfDay(now)

	preset := filter.Preset
	if preset == "" {
		preset = "today"
	}

	switch preset {
	case "today":
		return today, today, today.Format(reportDateLayout), nil
	case "yesterday":
		day := today.AddDate(0, 0, -1)
		return day, day, day.Format(reportDateLayout), nil
	case "this_month":
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		label := first.Format(reportDateLayout) + " to " + today.Format(reportDateLayout)
		return first, today, label, nil
	case "date":
		if filter.Date == nil {
			return time.Time{}, time.Time{}, "", apperrors.WithMessage(apperrors.ErrInvalidDateRange, "date is required for the date preset")
		}
		day := startOfDay(*filter.Date)
		return day, day, day.Format(reportDateLayout), nil
	case "range":
		if filter.From == nil || filter.To == nil {
			return time.Time{}, time.Time{}, "", apperrors.WithMessage(apperrors.ErrInvalidDateRange, "from and to are required for the range preset")
		}
		from := startOfDay(*filter.From)
		to := startOfDay(*filter.To)
		if from.After(to) {
			return time.Time{}, time.Time{}, "", apperrors.ErrInvalidDateRange
		}
		label := from.Format(reportDateLayout) + " to " + to.Format(reportDateLayout)
		return from, to, label, nil
	default:
		return time.Time{}, time.Time{}, "", apperrors.WithMessage(apperrors.ErrInvalidDateRange, "unknown date preset")
	}
}

// Generate builds the report data for the filter. The transaction set is
// restricted to the caller's visible campuses, so a staff report never leaks
// entries the list endpoints would hide.
func (s *reportService) Generate(scope *access.Scope, filter ReportFilter) (*report.Data, error) {
	if filter.CampusID != nil && !scope.CanAccessCampus(*filter.CampusID) {
		return nil, apperrors.ErrForbidden
	}

	from, to, label, err := resolveDateRange(filter, time.Now())
	if err != nil {
		return nil, err
	}

	campusName := "All Campuses"
	if filter.CampusID != nil {
		var campus models.Campus
		if err := s.db.First(&campus, *filter.CampusID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			campusName = ""
		} else {
			campusName = campus.Name
		}
	}

	// An unknown cash book id blanks the label but still produces the report;
	// the transaction filter below simply matches nothing.
	cashBookName := "All Cash Books"
	if filter.CashBookID != nil {
		var book models.CashBook
		switch err := s.db.First(&book, *filter.CashBookID).Error; {
		case errors.Is(err, gorm.ErrRecordNotFound):
			cashBookName = ""
		case err != nil:
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		case !scope.CanAccessCampus(book.CampusID):
			return nil, apperrors.ErrForbidden
		default:
			cashBookName = book.Name
		}
	}

	query := s.db.Model(&models.Transaction{}).
		Scopes(scope.Transactions()).
		Where("transactions.date >= ? AND transactions.date <= ?", from, to)

	if filter.CampusID != nil {
		query = query.Where(
			"transactions.cash_book_id IN (?)",
			s.db.Session(&gorm.Session{NewDB: true}).
				Model(&models.CashBook{}).
				Select("id").
				Where("campus_id = ?", *filter.CampusID),
		)
	}
	if filter.CashBookID != nil {
		query = query.Where("transactions.cash_book_id = ?", *filter.CashBookID)
	}
	if filter.Type != "" {
		query = query.Where("transactions.type = ?", filter.Type)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("transactions.category_id IN ?", filter.CategoryIDs)
	}
	if len(filter.PaymentModeIDs) > 0 {
		query = query.Where("transactions.payment_mode_id IN ?", filter.PaymentModeIDs)
	}
	if len(filter.UserIDs) > 0 {
		query = query.Where("transactions.user_id IN ?", filter.UserIDs)
	}

	var txns []models.Transaction
	if err := query.
		Preload("Category").
		Preload("PaymentMode").
		Preload("User").
		Order("transactions.date asc, transactions.time asc, transactions.id asc").
		Find(&txns).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	data := &report.Data{
		CampusName:   campusName,
		CashBookName: cashBookName,
		RangeLabel:   label,
		Rows:         make([]report.Row, 0, len(txns)),
	}

	// Running balance starts at zero for the selected window.
	var balance int64
	for _, txn := range txns {
		row := report.Row{
			Date:        txn.Date.Format(reportDateLayout),
			Time:        txn.Time,
			Remarks:     txn.Remarks,
			CreatedBy:   txn.User.Name,
			PartyName:   txn.PartyName,
			PartyMobile: txn.PartyMobile,
		}
		if txn.Category != nil {
			row.Category = txn.Category.Name
		}
		if txn.PaymentMode != nil {
			row.PaymentMode = txn.PaymentMode.Name
		}

		if txn.Type == models.TransactionTypeIn {
			row.CashIn = txn.Amount
			balance += txn.Amount
			data.TotalIn += txn.Amount
		} else {
			row.CashOut = txn.Amount
			balance -= txn.Amount
			data.TotalOut += txn.Amount
		}
		row.Balance = balance
		data.Rows = append(data.Rows, row)
	}
	data.NetBalance = data.TotalIn - data.TotalOut

	return data, nil
}
