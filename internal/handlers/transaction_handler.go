package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "cashbook/internal/errors"
	"cashbook/internal/models"
	"cashbook/internal/pagination"
	"cashbook/internal/services"
)

const dateLayout = "2006-01-02"

// TransactionHandler handles ledger entry requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. A party can be referenced by ID or described inline by name
// and mobile; the inline form reuses or creates the party record.
type CreateTransactionRequest struct {
	Type          models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount        int64                  `json:"amount" binding:"required,gt=0"`
	CashBookID    uint                   `json:"cash_book_id" binding:"required"`
	CategoryID    *uint                  `json:"category_id"`
	PaymentModeID *uint                  `json:"payment_mode_id"`
	PartyID       *uint                  `json:"party_id"`
	PartyName     string                 `json:"party_name" binding:"omitempty,max=100"`
	PartyMobile   string                 `json:"party_mobile" binding:"omitempty,mobile"`
	Date          string                 `json:"date" binding:"omitempty,date_string"`
	Time          string                 `json:"time" binding:"omitempty,len=8"`
	Remarks       string                 `json:"remarks" binding:"omitempty,max=500"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. Omitted fields are left unchanged.
type UpdateTransactionRequest struct {
	Type          *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Amount        *int64                  `json:"amount" binding:"omitempty,gt=0"`
	CashBookID    *uint                   `json:"cash_book_id"`
	CategoryID    *uint                   `json:"category_id"`
	PaymentModeID *uint                   `json:"payment_mode_id"`
	PartyID       *uint                   `json:"party_id"`
	Date          *string                 `json:"date" binding:"omitempty,date_string"`
	Time          *string                 `json:"time" binding:"omitempty,len=8"`
	Remarks       *string                 `json:"remarks" binding:"omitempty,max=500"`
}

// CreateTransaction handles recording a ledger entry.
// @Summary     Create a transaction
// @Description Record a cash-in or cash-out entry against a cash book
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Cash book not writable or entry backdated"
// @Failure     404 {object} ErrorResponse "Cash book or party not found"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	scope, err := getScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.TransactionInput{
		Type:          req.Type,
		Amount:        req.Amount,
		CashBookID:    req.CashBookID,
		CategoryID:    req.CategoryID,
		PaymentModeID: req.PaymentModeID,
		PartyID:       req.PartyID,
		PartyName:     req.PartyName,
		PartyMobile:   req.PartyMobile,
		Time:          req.Time,
		Remarks:       req.Remarks,
	}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date"))
			return
		}
		input.Date = date
	}

	txn, err := h.transactionService.CreateTransaction(scope, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": txn})
}

// parseTransactionFilter assembles the list filter from query parameters.
func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("type"); v != "" {
		t := models.TransactionType(v)
		if t != models.TransactionTypeIn && t != models.TransactionTypeOut {
			return filter, apperrors.ErrInvalidTransactionType
		}
		filter.Type = &t
	}

	var err error
	if filter.CategoryID, err = parseQueryUint(c, "category_id"); err != nil {
		return filter, err
	}
	if filter.PaymentModeID, err = parseQueryUint(c, "payment_mode_id"); err != nil {
		return filter, err
	}
	if filter.CashBookID, err = parseQueryUint(c, "cash_book_id"); err != nil {
		return filter, err
	}
	if filter.CampusID, err = parseQueryUint(c, "campus_id"); err != nil {
		return filter, err
	}
	if filter.UserID, err = parseQueryUint(c, "user_id"); err != nil {
		return filter, err
	}

	for _, q := range []struct {
		name string
		dest **time.Time
	}{
		{"date", &filter.Date},
		{"from_date", &filter.FromDate},
		{"to_date", &filter.ToDate},
	} {
		if v := c.Query(q.name); v != "" {
			d, err := time.Parse(dateLayout, v)
			if err != nil {
				return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+q.name)
			}
			*q.dest = &d
		}
	}

	filter.Search = c.Query("search")
	filter.OrderAsc = c.Query("order") == "asc"
	return filter, nil
}

// GetTransactions handles listing visible transactions.
// @Summary     Get transactions
// @Description Get a paginated, filtered list of visible ledger entries, newest first
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       type            query string false "Filter by direction (IN/OUT)"
// @Param       category_id     query int    false "Filter by category"
// @Param       payment_mode_id query int    false "Filter by payment mode"
// @Param       cash_book_id    query int    false "Filter by cash book"
// @Param       campus_id       query int    false "Filter by campus"
// @Param       user_id         query int    false "Filter by creating user"
// @Param       date            query string false "Filter by exact date (YYYY-MM-DD)"
// @Param       from_date       query string false "Filter from date (YYYY-MM-DD)"
// @Param       to_date         query string false "Filter to date (YYYY-MM-DD)"
// @Param       search          query string false "Search remarks and party name"
// @Param       order           query string false "Sort order (asc for oldest first)"
// @Param       page            query int    false "Page number (default 1)"
// @Param       page_size       query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
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

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txns, err := h.transactionService.ListTransactions(scope, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, txns)
}

// GetTransaction handles retrieving a single transaction.
// @Summary     Get transaction by ID
// @Description Get a ledger entry within the caller's visible set
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
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

	txn, err := h.transactionService.GetTransactionByID(scope, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

// UpdateTransaction handles updating a transaction.
// @Summary     Update transaction
// @Description Update an existing ledger entry
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Updated transaction details"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input or transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Cash book not writable or entry backdated"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
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

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.TransactionUpdate{
		Type:          req.Type,
		Amount:        req.Amount,
		CashBookID:    req.CashBookID,
		CategoryID:    req.CategoryID,
		PaymentModeID: req.PaymentModeID,
		PartyID:       req.PartyID,
		Time:          req.Time,
		Remarks:       req.Remarks,
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date"))
			return
		}
		input.Date = &date
	}

	txn, err := h.transactionService.UpdateTransaction(scope, id, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

// DeleteTransaction handles deleting a transaction.
// @Summary     Delete transaction
// @Description Delete a ledger entry within the caller's visible set
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
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

	if err := h.transactionService.DeleteTransaction(scope, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// GetDistinctParties handles listing distinct party name/mobile pairs.
// @Summary     Get distinct parties
// @Description Get the distinct party name and mobile pairs from visible transactions
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.PartyOption "Distinct parties"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/parties [get]
func (h *TransactionHandler) GetDistinctParties(c *gin.Context) {
	scope, err := getScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	options, err := h.transactionService.DistinctParties(scope)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"parties": options})
}
