package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"cashbook/internal/access"
	apperrors "cashbook/internal/errors"
	"cashbook/internal/models"
	"cashbook/internal/pagination"
	"cashbook/internal/services"
)

// --- mock cash book service ---

type mockCashBookService struct {
	createCashBookFn  func(scope *access.Scope, name string, campusID uint, isActive *bool) (*models.CashBook, error)
	listCashBooksFn   func(scope *access.Scope, page pagination.PageRequest) (*pagination.PageResponse[models.CashBook], error)
	getCashBookByIDFn func(scope *access.Scope, id uint) (*models.CashBook, error)
	updateCashBookFn  func(scope *access.Scope, id uint, name *string, campusID *uint, isActive *bool) (*models.CashBook, error)
	deleteCashBookFn  func(scope *access.Scope, id uint) error
}

func (m *mockCashBookService) CreateCashBook(scope *access.Scope, name string, campusID uint, isActive *bool) (*models.CashBook, error) {
	if m.createCashBookFn != nil {
		return m.createCashBookFn(scope, name, campusID, isActive)
	}
	return &models.CashBook{}, nil
}

func (m *mockCashBookService) ListCashBooks(scope *access.Scope, page pagination.PageRequest) (*pagination.PageResponse[models.CashBook], error) {
	if m.listCashBooksFn != nil {
		return m.listCashBooksFn(scope, page)
	}
	resp := pagination.NewPageResponse([]models.CashBook{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockCashBookService) GetCashBookByID(scope *access.Scope, id uint) (*models.CashBook, error) {
	if m.getCashBookByIDFn != nil {
		return m.getCashBookByIDFn(scope, id)
	}
	return &models.CashBook{}, nil
}

func (m *mockCashBookService) UpdateCashBook(scope *access.Scope, id uint, name *string, campusID *uint, isActive *bool) (*models.CashBook, error) {
	if m.updateCashBookFn != nil {
		return m.updateCashBookFn(scope, id, name, campusID, isActive)
	}
	return &models.CashBook{}, nil
}

func (m *mockCashBookService) DeleteCashBook(scope *access.Scope, id uint) error {
	if m.deleteCashBookFn != nil {
		return m.deleteCashBookFn(scope, id)
	}
	return nil
}

var _ services.CashBookServicer = (*mockCashBookService)(nil)

func setupCashBookRouter(handler *CashBookHandler, scope *access.Scope) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectScope(scope))
	auth.POST("/cash-books", handler.CreateCashBook)
	auth.GET("/cash-books", handler.GetCashBooks)
	auth.GET("/cash-books/:id", handler.GetCashBook)
	auth.PUT("/cash-books/:id", handler.UpdateCashBook)
	auth.DELETE("/cash-books/:id", handler.DeleteCashBook)
	return r
}

func TestCashBookHandler_CreateCashBook(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		cbSvc := &mockCashBookService{
			createCashBookFn: func(_ *access.Scope, name string, campusID uint, _ *bool) (*models.CashBook, error) {
				return &models.CashBook{Base: models.Base{ID: 1}, Name: name, CampusID: campusID}, nil
			},
		}
		handler := NewCashBookHandler(cbSvc)
		r := setupCashBookRouter(handler, adminScope())

		rec := doRequest(r, "POST", "/cash-books", `{"name":"Main Counter","campus_id":1}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		book := result["cash_book"].(map[string]interface{})
		if book["name"] != "Main Counter" {
			t.Errorf("expected Main Counter, got %v", book["name"])
		}
	})

	t.Run("returns 403 when campus not writable", func(t *testing.T) {
		cbSvc := &mockCashBookService{
			createCashBookFn: func(_ *access.Scope, _ string, _ uint, _ *bool) (*models.CashBook, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		handler := NewCashBookHandler(cbSvc)
		r := setupCashBookRouter(handler, staffScope(1))

		rec := doRequest(r, "POST", "/cash-books", `{"name":"Other Campus Book","campus_id":9}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FORBIDDEN")
	})

	t.Run("returns 400 on missing campus", func(t *testing.T) {
		handler := NewCashBookHandler(&mockCashBookService{})
		r := setupCashBookRouter(handler, adminScope())

		rec := doRequest(r, "POST", "/cash-books", `{"name":"No Campus"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCashBookHandler_DeleteCashBook(t *testing.T) {
	t.Run("returns 409 when cash book is in use", func(t *testing.T) {
		cbSvc := &mockCashBookService{
			deleteCashBookFn: func(_ *access.Scope, _ uint) error {
				return apperrors.ErrCashBookInUse
			},
		}
		handler := NewCashBookHandler(cbSvc)
		r := setupCashBookRouter(handler, adminScope())

		rec := doRequest(r, "DELETE", "/cash-books/1", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CASH_BOOK_IN_USE")
	})

	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewCashBookHandler(&mockCashBookService{})
		r := setupCashBookRouter(handler, adminScope())

		rec := doRequest(r, "DELETE", "/cash-books/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		cbSvc := &mockCashBookService{
			deleteCashBookFn: func(_ *access.Scope, _ uint) error {
				return apperrors.ErrCashBookNotFound
			},
		}
		handler := NewCashBookHandler(cbSvc)
		r := setupCashBookRouter(handler, adminScope())

		rec := doRequest(r, "DELETE", "/cash-books/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestCashBookHandler_UpdateCashBook(t *testing.T) {
	t.Run("passes partial updates to the service", func(t *testing.T) {
		var capturedName *string
		var capturedCampus *uint
		cbSvc := &mockCashBookService{
			updateCashBookFn: func(_ *access.Scope, _ uint, name *string, campusID *uint, _ *bool) (*models.CashBook, error) {
				capturedName = name
				capturedCampus = campusID
				return &models.CashBook{}, nil
			},
		}
		handler := NewCashBookHandler(cbSvc)
		r := setupCashBookRouter(handler, adminScope())

		rec := doRequest(r, "PUT", "/cash-books/1", `{"name":"Renamed"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if capturedName == nil || *capturedName != "Renamed" {
			t.Error("expected name update to be passed")
		}
		if capturedCampus != nil {
			t.Error("expected campus to remain unset")
		}
	})
}
