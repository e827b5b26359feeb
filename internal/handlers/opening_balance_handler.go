package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashbook/internal/errors"
	"cashbook/internal/pagination"
	"cashbook/internal/services"
)

// OpeningBalanceHandler handles opening balance requests.
type OpeningBalanceHandler struct {
	openingBalanceService services.OpeningBalanceServicer
}

// NewOpeningBalanceHandler creates a new OpeningBalanceHandler.
func NewOpeningBalanceHandler(openingBalanceService services.OpeningBalanceServicer) *OpeningBalanceHandler {
	return &OpeningBalanceHandler{openingBalanceService: openingBalanceService}
}

// CreateOpeningBalanceRequest represents the request payload for recording an
// opening balance. The date and creator are stamped server-side.
type CreateOpeningBalanceRequest struct {
	CashBookID uint  `json:"cash_book_id" binding:"required"`
	Amount     int64 `json:"amount" binding:"required"`
}

// UpdateOpeningBalanceRequest represents the request payload for correcting an
// opening balance amount.
type UpdateOpeningBalanceRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// CreateOpeningBalance handles recording an opening balance.
// @Summary     Create an opening balance
// @Description Record a baseline amount for a cash book, stamped with today's date
// @Tags        opening-balances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateOpeningBalanceRequest true "Opening balance details"
// @Success     201 {object} models.OpeningBalance "Opening balance created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Cash book not writable for caller"
// @Failure     404 {object} ErrorResponse "Cash book not found"
// @Router      /opening-balances [post]
func (h *OpeningBalanceHandler) CreateOpeningBalance(c *gin.Context) {
	scope, err := getScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	balance, err := h.openingBalanceService.CreateOpeningBalance(scope, req.CashBookID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"opening_balance": balance})
}

// GetOpeningBalances handles listing visible opening balances.
// @Summary     Get opening balances
// @Description Get a paginated list of opening balances visible to the caller
// @Tags        opening-balances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.OpeningBalance] "Paginated opening balances"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /opening-balances [get]
func (h *OpeningBalanceHandler) GetOpeningBalances(c *gin.Context) {
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

	balances, err := h.openingBalanceService.ListOpeningBalances(scope, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, balances)
}

// GetOpeningBalance handles retrieving a single opening balance.
// @Summary     Get opening balance by ID
// @Description Get an opening balance within the caller's visible set
// @Tags        opening-balances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Opening balance ID"
// @Success     200 {object} models.OpeningBalance "Opening balance details"
// @Failure     400 {object} ErrorResponse "Invalid opening balance ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Opening balance not found"
// @Router      /opening-balances/{id} [get]
func (h *OpeningBalanceHandler) GetOpeningBalance(c *gin.Context) {
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

	balance, err := h.openingBalanceService.GetOpeningBalanceByID(scope, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"opening_balance": balance})
}

// UpdateOpeningBalance handles correcting an opening balance amount.
// @Summary     Update opening balance
// @Description Correct the amount of an opening balance; date and creator are immutable
// @Tags        opening-balances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                         true "Opening balance ID"
// @Param       request body UpdateOpeningBalanceRequest true "Corrected amount"
// @Success     200 {object} models.OpeningBalance "Updated opening balance"
// @Failure     400 {object} ErrorResponse "Invalid input or opening balance ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Opening balance not found"
// @Router      /opening-balances/{id} [put]
func (h *OpeningBalanceHandler) UpdateOpeningBalance(c *gin.Context) {
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

	var req UpdateOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	balance, err := h.openingBalanceService.UpdateOpeningBalance(scope, id, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"opening_balance": balance})
}

// DeleteOpeningBalance handles deleting an opening balance.
// @Summary     Delete opening balance
// @Description Delete an opening balance within the caller's visible set
// @Tags        opening-balances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Opening balance ID"
// @Success     200 {object} MessageResponse "Opening balance deleted"
// @Failure     400 {object} ErrorResponse "Invalid opening balance ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Opening balance not found"
// @Router      /opening-balances/{id} [delete]
func (h *OpeningBalanceHandler) DeleteOpeningBalance(c *gin.Context) {
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

	if err := h.openingBalanceService.DeleteOpeningBalance(scope, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Opening balance deleted successfully"})
}
