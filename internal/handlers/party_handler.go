package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashbook/internal/errors"
	"cashbook/internal/pagination"
	"cashbook/internal/services"
)

// PartyHandler handles payer/payee party requests.
type PartyHandler struct {
	partyService services.PartyServicer
}

// NewPartyHandler creates a new PartyHandler.
func NewPartyHandler(partyService services.PartyServicer) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

// CreatePartyRequest represents the request payload for creating a party.
type CreatePartyRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	MobileNumber string `json:"mobile_number" binding:"omitempty,mobile"`
}

// UpdatePartyRequest represents the request payload for updating a party.
// Omitted fields are left unchanged.
type UpdatePartyRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	MobileNumber *string `json:"mobile_number" binding:"omitempty,mobile"`
}

// CreateParty handles the creation of a new party.
// @Summary     Create a party
// @Description Create a new payer/payee party
// @Tags        parties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePartyRequest true "Party details"
// @Success     201 {object} models.Party "Party created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /parties [post]
func (h *PartyHandler) CreateParty(c *gin.Context) {
	var req CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	party, err := h.partyService.CreateParty(req.Name, req.MobileNumber)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"party": party})
}

// GetParties handles listing parties.
// @Summary     Get parties
// @Description Get a paginated list of parties, optionally filtered by name
// @Tags        parties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       search    query string false "Filter by name (case-insensitive substring)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Party] "Paginated parties"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /parties [get]
func (h *PartyHandler) GetParties(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	parties, err := h.partyService.ListParties(page, c.Query("search"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, parties)
}

// GetParty handles retrieving a single party.
// @Summary     Get party by ID
// @Description Get a party by ID
// @Tags        parties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Party ID"
// @Success     200 {object} models.Party "Party details"
// @Failure     400 {object} ErrorResponse "Invalid party ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Party not found"
// @Router      /parties/{id} [get]
func (h *PartyHandler) GetParty(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	party, err := h.partyService.GetPartyByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"party": party})
}

// UpdateParty handles updating a party.
// @Summary     Update party
// @Description Update an existing party's name or mobile number
// @Tags        parties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Party ID"
// @Param       request body UpdatePartyRequest true "Updated party details"
// @Success     200 {object} models.Party "Updated party"
// @Failure     400 {object} ErrorResponse "Invalid input or party ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Party not found"
// @Router      /parties/{id} [put]
func (h *PartyHandler) UpdateParty(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	party, err := h.partyService.UpdateParty(id, req.Name, req.MobileNumber)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"party": party})
}

// DeleteParty handles deleting a party.
// @Summary     Delete party
// @Description Delete a party; transactions keep their recorded party name
// @Tags        parties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Party ID"
// @Success     200 {object} MessageResponse "Party deleted"
// @Failure     400 {object} ErrorResponse "Invalid party ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Party not found"
// @Router      /parties/{id} [delete]
func (h *PartyHandler) DeleteParty(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.partyService.DeleteParty(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Party deleted successfully"})
}
