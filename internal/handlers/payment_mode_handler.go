package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashbook/internal/errors"
	"cashbook/internal/pagination"
	"cashbook/internal/services"
)

// PaymentModeHandler handles payment mode requests.
type PaymentModeHandler struct {
	paymentModeService services.PaymentModeServicer
}

// NewPaymentModeHandler creates a new PaymentModeHandler.
func NewPaymentModeHandler(paymentModeService services.PaymentModeServicer) *PaymentModeHandler {
	return &PaymentModeHandler{paymentModeService: paymentModeService}
}

// PaymentModeRequest represents the request payload for creating or updating a payment mode.
type PaymentModeRequest struct {
	Name     string `json:"name" binding:"omitempty,min=1,max=100"`
	IsActive *bool  `json:"is_active"`
}

// CreatePaymentMode handles the creation of a new payment mode.
// @Summary     Create a payment mode
// @Description Create a new payment mode with a unique name
// @Tags        payment-modes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PaymentModeRequest true "Payment mode details"
// @Success     201 {object} models.PaymentMode "Payment mode created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Payment mode name already exists"
// @Router      /payment-modes [post]
func (h *PaymentModeHandler) CreatePaymentMode(c *gin.Context) {
	var req PaymentModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	mode, err := h.paymentModeService.CreatePaymentMode(req.Name, req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment_mode": mode})
}

// GetPaymentModes handles listing payment modes.
// @Summary     Get payment modes
// @Description Get a paginated list of payment modes
// @Tags        payment-modes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.PaymentMode] "Paginated payment modes"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /payment-modes [get]
func (h *PaymentModeHandler) GetPaymentModes(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	modes, err := h.paymentModeService.ListPaymentModes(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, modes)
}

// GetPaymentMode handles retrieving a single payment mode.
// @Summary     Get payment mode by ID
// @Description Get a payment mode by ID
// @Tags        payment-modes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Payment mode ID"
// @Success     200 {object} models.PaymentMode "Payment mode details"
// @Failure     400 {object} ErrorResponse "Invalid payment mode ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment mode not found"
// @Router      /payment-modes/{id} [get]
func (h *PaymentModeHandler) GetPaymentMode(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	mode, err := h.paymentModeService.GetPaymentModeByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_mode": mode})
}

// UpdatePaymentMode handles updating a payment mode.
// @Summary     Update payment mode
// @Description Rename or toggle an existing payment mode
// @Tags        payment-modes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Payment mode ID"
// @Param       request body PaymentModeRequest true "Updated payment mode details"
// @Success     200 {object} models.PaymentMode "Updated payment mode"
// @Failure     400 {object} ErrorResponse "Invalid input or payment mode ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment mode not found"
// @Failure     409 {object} ErrorResponse "Payment mode name already exists"
// @Router      /payment-modes/{id} [put]
func (h *PaymentModeHandler) UpdatePaymentMode(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PaymentModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	mode, err := h.paymentModeService.UpdatePaymentMode(id, req.Name, req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_mode": mode})
}

// DeletePaymentMode handles deleting a payment mode.
// @Summary     Delete payment mode
// @Description Delete a payment mode; existing transactions keep a null payment mode
// @Tags        payment-modes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Payment mode ID"
// @Success     200 {object} MessageResponse "Payment mode deleted"
// @Failure     400 {object} ErrorResponse "Invalid payment mode ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment mode not found"
// @Router      /payment-modes/{id} [delete]
func (h *PaymentModeHandler) DeletePaymentMode(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.paymentModeService.DeletePaymentMode(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment mode deleted successfully"})
}
