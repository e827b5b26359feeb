package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashbook/internal/errors"
	"cashbook/internal/pagination"
	"cashbook/internal/services"
)

// CashBookHandler handles cash book requests.
type CashBookHandler struct {
	cashBookService services.CashBookServicer
}

// NewCashBookHandler creates a new CashBookHandler.
func NewCashBookHandler(cashBookService services.CashBookServicer) *CashBookHandler {
	return &CashBookHandler{cashBookService: cashBookService}
}

// CreateCashBookRequest represents the request payload for creating a cash book.
type CreateCashBookRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	CampusID uint   `json:"campus_id" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// UpdateCashBookRequest represents the request payload for updating a cash book.
// Omitted fields are left unchanged.
type UpdateCashBookRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	CampusID *uint   `json:"campus_id"`
	IsActive *bool   `json:"is_active"`
}

// CreateCashBook handles the creation of a new cash book.
// @Summary     Create a cash book
// @Description Create a new cash book under a campus the caller can write to
// @Tags        cash-books
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCashBookRequest true "Cash book details"
// @Success     201 {object} models.CashBook "Cash book created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Campus not writable for caller"
// @Failure     404 {object} ErrorResponse "Campus not found"
// @Failure     409 {object} ErrorResponse "Cash book name already exists"
// @Router      /cash-books [post]
func (h *CashBookHandler) CreateCashBook(c *gin.Context) {
	scope, err := getScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCashBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	book, err := h.cashBookService.CreateCashBook(scope, req.Name, req.CampusID, req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cash_book": book})
}

// GetCashBooks handles listing visible cash books.
// @Summary     Get cash books
// @Description Get a paginated list of cash books visible to the caller
// @Tags        cash-books
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.CashBook] "Paginated cash books"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /cash-books [get]
func (h *CashBookHandler) GetCashBooks(c *gin.Context) {
	scope, err := getScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	books, err := h.cashBookService.ListCashBooks(scope, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, books)
}

// GetCashBook handles retrieving a single cash book.
// @Summary     Get cash book by ID
// @Description Get a cash book within the caller's visible set
// @Tags        cash-books
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Cash book ID"
// @Success     200 {object} models.CashBook "Cash book details"
// @Failure     400 {object} ErrorResponse "Invalid cash book ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cash book not found"
// @Router      /cash-books/{id} [get]
func (h *CashBookHandler) GetCashBook(c *gin.Context) {
	scope, err := getScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	book, err := h.cashBookService.GetCashBookByID(scope, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cash_book": book})
}

// UpdateCashBook handles updating a cash book.
// @Summary     Update cash book
// @Description Update an existing cash book's name, campus, or active flag
// @Tags        cash-books
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                   true "Cash book ID"
// @Param       request body UpdateCashBookRequest true "Updated cash book details"
// @Success     200 {object} models.CashBook "Updated cash book"
// @Failure     400 {object} ErrorResponse "Invalid input or cash book ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Target campus not writable for caller"
// @Failure     404 {object} ErrorResponse "Cash book not found"
// @Failure     409 {object} ErrorResponse "Cash book name already exists"
// @Router      /cash-books/{id} [put]
func (h *CashBookHandler) UpdateCashBook(c *gin.Context) {
	scope, err := getScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCashBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	book, err := h.cashBookService.UpdateCashBook(scope, id, req.Name, req.CampusID, req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cash_book": book})
}

// DeleteCashBook handles deleting a cash book.
// @Summary     Delete cash book
// @Description Delete a cash book that has no transactions or opening balances
// @Tags        cash-books
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Cash book ID"
// @Success     200 {object} MessageResponse "Cash book deleted"
// @Failure     400 {object} ErrorResponse "Invalid cash book ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cash book not found"
// @Failure     409 {object} ErrorResponse "Cash book still referenced by ledger records"
// @Router      /cash-books/{id} [delete]
func (h *CashBookHandler) DeleteCashBook(c *gin.Context) {
	scope, err := getScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.cashBookService.DeleteCashBook(scope, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cash book deleted successfully"})
}
