package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"orgadmin-backend/shared/database/models"
	"orgadmin-backend/shared/utils/query"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserWithOrganization is a user row joined with its parent organization name
type UserWithOrganization struct {
	models.User      `gorm:"embedded"`
	OrganizationName string `json:"organization_name"`
}

// CreateUserRequest represents request body for creating user
type CreateUserRequest struct {
	OrganizationID uint    `json:"organization_id"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Email          *string `json:"email"`
	Status         string  `json:"status"`
}

// validRoles is the closed set of user roles
var validRoles = []string{
	models.UserRoleAdmin,
	models.UserRoleCoordinator,
}

// validUserStatuses is the closed set of user statuses. It shares the
// "Co-ordinator" literal with the role enumeration; the two are validated
// independently.
var validUserStatuses = []string{
	models.UserStatusActive,
	models.UserStatusCoordinator,
	models.UserStatusInactive,
}

// allowedUserFields maps updatable JSON fields to database columns
var allowedUserFields = map[string]string{
	"name":   "name",
	"role":   "role",
	"email":  "email",
	"status": "status",
}

// protectedUserFields are stripped from update requests silently;
// organization reassignment is forbidden.
var protectedUserFields = []string{"id", "created_at", "organization_id"}

// UserHandler serves the user resource endpoints
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler creates a user handler bound to a database
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

func (h *UserHandler) joinedUsers() *gorm.DB {
	return h.db.Table("users").
		Select("users.*, organizations.name AS organization_name").
		Joins("JOIN organizations ON organizations.id = users.organization_id")
}

// GetUsers retrieves all users with their organization names
// @Summary Get all users
// @Description Get all users joined with their parent organization name, newest first
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "User list"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /users [get]
func (h *UserHandler) GetUsers(ctx *gin.Context) {
	var users []UserWithOrganization
	if err := h.joinedUsers().Order("users.created_at DESC").Scan(&users).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch users",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(users),
		"data":    users,
	})
}

// GetUsersByOrganization retrieves all users belonging to one organization
// @Summary Get users by organization
// @Description Get all users for a specific organization, newest first
// @Tags users
// @Accept json
// @Produce json
// @Param orgId path int true "Organization ID"
// @Success 200 {object} map[string]interface{} "User list"
// @Failure 400 {object} map[string]interface{} "Invalid organization ID format"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /users/organization/{orgId} [get]
func (h *UserHandler) GetUsersByOrganization(ctx *gin.Context) {
	orgID, err := strconv.ParseUint(ctx.Param("orgId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid organization ID format",
		})
		return
	}

	var users []UserWithOrganization
	if err := h.joinedUsers().
		Where("users.organization_id = ?", orgID).
		Order("users.created_at DESC").
		Scan(&users).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch users",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(users),
		"data":    users,
	})
}

// GetUser retrieves a single user by ID
// @Summary Get user by ID
// @Description Get a single user joined with its organization name
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{} "User data"
// @Failure 400 {object} map[string]interface{} "Invalid user ID format"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "Invalid user ID format")
	if !ok {
		return
	}

	var user UserWithOrganization
	result := h.joinedUsers().Where("users.id = ?", id).Limit(1).Scan(&user)
	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch user",
		})
		return
	}
	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "User not found",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// CreateUser creates a new user inside an existing organization
// @Summary Create a new user
// @Description Create a user; the referenced organization must exist
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User information"
// @Success 201 {object} map[string]interface{} "Created user"
// @Failure 400 {object} map[string]interface{} "Missing required fields or invalid role"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /users [post]
func (h *UserHandler) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	if req.OrganizationID == 0 || req.Name == "" || req.Role == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Please provide organization_id, name, and role",
		})
		return
	}

	if !contains(validRoles, req.Role) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid role. Must be Admin or Co-ordinator",
		})
		return
	}

	if req.Status == "" {
		req.Status = models.UserStatusActive
	}

	user := models.User{
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Role:           req.Role,
		Email:          req.Email,
		Status:         req.Status,
	}

	// Single atomic insert; the foreign key constraint stands in for a
	// separate organization-existence check.
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Organization not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to create user",
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"data": gin.H{
			"id":              user.ID,
			"organization_id": user.OrganizationID,
			"name":            user.Name,
			"role":            user.Role,
		},
	})
}

// UpdateUser updates an existing user
// @Summary Update a user
// @Description Update allow-listed user fields; organization reassignment is forbidden
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body map[string]interface{} true "Fields to update"
// @Success 200 {object} map[string]interface{} "Success message"
// @Failure 400 {object} map[string]interface{} "No fields to update, unknown fields or invalid role"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "Invalid user ID format")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	var existing models.User
	if err := h.db.Select("id").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "User not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch user",
		})
		return
	}

	fields, unknown := query.FilterUpdateFields(updates, allowedUserFields, protectedUserFields)
	if len(unknown) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Unknown fields: " + strings.Join(unknown, ", "),
		})
		return
	}
	if len(fields) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No fields to update",
		})
		return
	}

	if role, present := fields["role"]; present {
		roleValue, isString := role.(string)
		if !isString || !contains(validRoles, roleValue) {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid role. Must be Admin or Co-ordinator",
			})
			return
		}
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to update user",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
	})
}

// DeleteUser deletes a user
// @Summary Delete a user
// @Description Delete a user by ID
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{} "Success message"
// @Failure 400 {object} map[string]interface{} "Invalid user ID format"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "Invalid user ID format")
	if !ok {
		return
	}

	result := h.db.Delete(&models.User{}, id)
	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to delete user",
		})
		return
	}
	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "User not found",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}

// UpdateUserStatus updates only the status column
// @Summary Update user status
// @Description Set user status to Active, Co-ordinator or Inactive
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]interface{} "Success message with status"
// @Failure 400 {object} map[string]interface{} "Invalid status"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /users/{id}/status [patch]
func (h *UserHandler) UpdateUserStatus(ctx *gin.Context) {
	id, ok := parseID(ctx, "Invalid user ID format")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	if !contains(validUserStatuses, req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid status. Must be Active, Co-ordinator, or Inactive",
		})
		return
	}

	// Same idempotent-update caveat as the organization status patch.
	var existing models.User
	if err := h.db.Select("id").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "User not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch user",
		})
		return
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", id).Update("status", req.Status).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to update user status",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User status updated successfully",
		"data":    gin.H{"status": req.Status},
	})
}
