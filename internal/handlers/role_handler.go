package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashbook/internal/errors"
	"cashbook/internal/pagination"
	"cashbook/internal/services"
)

// RoleHandler handles role management requests.
type RoleHandler struct {
	roleService services.RoleServicer
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roleService services.RoleServicer) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// RoleRequest represents the request payload for creating or renaming a role.
type RoleRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// CreateRole handles the creation of a new role.
// @Summary     Create a role
// @Description Create a new role with a unique name
// @Tags        roles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RoleRequest true "Role details"
// @Success     201 {object} models.Role "Role created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Role name already exists"
// @Router      /roles [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	role, err := h.roleService.CreateRole(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"role": role})
}

// GetRoles handles listing roles.
// @Summary     Get roles
// @Description Get a paginated list of roles
// @Tags        roles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Role] "Paginated roles"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /roles [get]
func (h *RoleHandler) GetRoles(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	roles, err := h.roleService.ListRoles(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, roles)
}

// GetRole handles retrieving a single role.
// @Summary     Get role by ID
// @Description Get a role by ID
// @Tags        roles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Role ID"
// @Success     200 {object} models.Role "Role details"
// @Failure     400 {object} ErrorResponse "Invalid role ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Role not found"
// @Router      /roles/{id} [get]
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	role, err := h.roleService.GetRoleByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": role})
}

// UpdateRole handles renaming a role.
// @Summary     Update role
// @Description Rename an existing role
// @Tags        roles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int         true "Role ID"
// @Param       request body RoleRequest true "Updated role details"
// @Success     200 {object} models.Role "Updated role"
// @Failure     400 {object} ErrorResponse "Invalid input or role ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Role not found"
// @Failure     409 {object} ErrorResponse "Role name already exists"
// @Router      /roles/{id} [put]
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	role, err := h.roleService.UpdateRole(id, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": role})
}

// DeleteRole handles deleting a role.
// @Summary     Delete role
// @Description Delete a role by ID
// @Tags        roles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Role ID"
// @Success     200 {object} MessageResponse "Role deleted"
// @Failure     400 {object} ErrorResponse "Invalid role ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Role not found"
// @Router      /roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.roleService.DeleteRole(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role deleted successfully"})
}
