package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashbook/internal/errors"
	"cashbook/internal/pagination"
	"cashbook/internal/services"
)

// CampusHandler handles campus management requests.
type CampusHandler struct {
	campusService services.CampusServicer
}

// NewCampusHandler creates a new CampusHandler.
func NewCampusHandler(campusService services.CampusServicer) *CampusHandler {
	return &CampusHandler{campusService: campusService}
}

// CampusRequest represents the request payload for creating or updating a campus.
type CampusRequest struct {
	Name          string `json:"name" binding:"omitempty,min=1,max=100"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number" binding:"omitempty,mobile"`
	Email         string `json:"email" binding:"omitempty,email"`
	IsActive      *bool  `json:"is_active"`
}

// CreateCampus handles the creation of a new campus.
// @Summary     Create a campus
// @Description Create a new campus with a unique name
// @Tags        campuses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CampusRequest true "Campus details"
// @Success     201 {object} models.Campus "Campus created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Campus name already exists"
// @Router      /campuses [post]
func (h *CampusHandler) CreateCampus(c *gin.Context) {
	var req CampusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	campus, err := h.campusService.CreateCampus(services.CampusInput{
		Name:          req.Name,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"campus": campus})
}

// GetCampuses handles listing visible campuses.
// @Summary     Get campuses
// @Description Get a paginated list of campuses visible to the caller
// @Tags        campuses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Campus] "Paginated campuses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /campuses [get]
func (h *CampusHandler) GetCampuses(c *gin.Context) {
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

	campuses, err := h.campusService.ListCampuses(scope, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, campuses)
}

// GetCampus handles retrieving a single campus.
// @Summary     Get campus by ID
// @Description Get a campus within the caller's visible set
// @Tags        campuses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Campus ID"
// @Success     200 {object} models.Campus "Campus details"
// @Failure     400 {object} ErrorResponse "Invalid campus ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Campus not found"
// @Router      /campuses/{id} [get]
func (h *CampusHandler) GetCampus(c *gin.Context) {
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

	campus, err := h.campusService.GetCampusByID(scope, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"campus": campus})
}

// UpdateCampus handles updating a campus.
// @Summary     Update campus
// @Description Update an existing campus
// @Tags        campuses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int           true "Campus ID"
// @Param       request body CampusRequest true "Updated campus details"
// @Success     200 {object} models.Campus "Updated campus"
// @Failure     400 {object} ErrorResponse "Invalid input or campus ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Campus not found"
// @Failure     409 {object} ErrorResponse "Campus name already exists"
// @Router      /campuses/{id} [put]
func (h *CampusHandler) UpdateCampus(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CampusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	campus, err := h.campusService.UpdateCampus(id, services.CampusInput{
		Name:          req.Name,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"campus": campus})
}

// DeleteCampus handles deleting a campus.
// @Summary     Delete campus
// @Description Delete a campus and its user assignments
// @Tags        campuses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Campus ID"
// @Success     200 {object} MessageResponse "Campus deleted"
// @Failure     400 {object} ErrorResponse "Invalid campus ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Campus not found"
// @Router      /campuses/{id} [delete]
func (h *CampusHandler) DeleteCampus(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.campusService.DeleteCampus(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campus deleted successfully"})
}
