package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"orgadmin-backend/shared/database/models"
	"orgadmin-backend/shared/utils/query"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateOrganizationRequest represents request body for creating organization
type CreateOrganizationRequest struct {
	Name             string  `json:"name"`
	Slug             string  `json:"slug"`
	Email            string  `json:"email"`
	Contact          *string `json:"contact"`
	Phone            *string `json:"phone"`
	AlternativePhone *string `json:"alternative_phone"`
	Timezone         string  `json:"timezone"`
	Region           *string `json:"region"`
	Language         string  `json:"language"`
	WebsiteURL       *string `json:"website_url"`
	MaxCoordinators  int     `json:"max_coordinators"`
	LogoURL          *string `json:"logo_url"`
}

// UpdateStatusRequest represents request body for status patch endpoints
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// validOrgStatuses is the closed set of organization statuses
var validOrgStatuses = []string{
	models.OrgStatusActive,
	models.OrgStatusBlocked,
	models.OrgStatusInactive,
}

// allowedOrganizationFields maps updatable JSON fields to database columns
var allowedOrganizationFields = map[string]string{
	"name":              "name",
	"slug":              "slug",
	"email":             "email",
	"contact":           "contact",
	"phone":             "phone",
	"alternative_phone": "alternative_phone",
	"timezone":          "timezone",
	"region":            "region",
	"language":          "language",
	"website_url":       "website_url",
	"max_coordinators":  "max_coordinators",
	"logo_url":          "logo_url",
	"status":            "status",
}

// protectedOrganizationFields are stripped from update requests silently
var protectedOrganizationFields = []string{"id", "created_at", "organization_id"}

// OrganizationHandler serves the organization resource endpoints
type OrganizationHandler struct {
	db *gorm.DB
}

// NewOrganizationHandler creates an organization handler bound to a database
func NewOrganizationHandler(db *gorm.DB) *OrganizationHandler {
	return &OrganizationHandler{db: db}
}

// GetOrganizations retrieves all organizations
// @Summary Get all organizations
// @Description Get all organizations ordered by creation date descending
// @Tags organizations
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Organization list"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /organizations [get]
func (h *OrganizationHandler) GetOrganizations(ctx *gin.Context) {
	var organizations []models.Organization
	if err := h.db.Order("created_at DESC").Find(&organizations).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch organizations",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(organizations),
		"data":    organizations,
	})
}

// GetOrganization retrieves a single organization by ID
// @Summary Get organization by ID
// @Description Get detailed information about a specific organization
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path int true "Organization ID"
// @Success 200 {object} map[string]interface{} "Organization data"
// @Failure 400 {object} map[string]interface{} "Invalid organization ID format"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /organizations/{id} [get]
func (h *OrganizationHandler) GetOrganization(ctx *gin.Context) {
	id, ok := parseID(ctx, "Invalid organization ID format")
	if !ok {
		return
	}

	var org models.Organization
	if err := h.db.First(&org, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Organization not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch organization",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    org,
	})
}

// CreateOrganization creates a new organization
// @Summary Create a new organization
// @Description Create a new organization with a derived immutable organization token
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body CreateOrganizationRequest true "Organization information"
// @Success 201 {object} map[string]interface{} "Created organization"
// @Failure 400 {object} map[string]interface{} "Missing required fields"
// @Failure 409 {object} map[string]interface{} "Duplicate slug or email"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /organizations [post]
func (h *OrganizationHandler) CreateOrganization(ctx *gin.Context) {
	var req CreateOrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	if req.Name == "" || req.Slug == "" || req.Email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Please provide name, slug, and email",
		})
		return
	}

	// Documented defaults for optional fields
	if req.Timezone == "" {
		req.Timezone = "Asia/Colombo"
	}
	if req.Language == "" {
		req.Language = "English"
	}
	if req.MaxCoordinators == 0 {
		req.MaxCoordinators = 5
	}

	// Derived human-readable token, immutable after creation
	organizationID := fmt.Sprintf("%s-%d", strings.ToUpper(req.Slug), time.Now().UnixMilli())

	org := models.Organization{
		OrganizationID:   organizationID,
		Name:             req.Name,
		Slug:             req.Slug,
		Email:            req.Email,
		Contact:          req.Contact,
		Phone:            req.Phone,
		AlternativePhone: req.AlternativePhone,
		Timezone:         req.Timezone,
		Region:           req.Region,
		Language:         req.Language,
		WebsiteURL:       req.WebsiteURL,
		MaxCoordinators:  req.MaxCoordinators,
		LogoURL:          req.LogoURL,
		Status:           models.OrgStatusActive,
	}

	if err := h.db.Create(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "Organization with this slug or email already exists",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to create organization",
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Organization created successfully",
		"data": gin.H{
			"id":              org.ID,
			"name":            org.Name,
			"slug":            org.Slug,
			"email":           org.Email,
			"organization_id": org.OrganizationID,
		},
	})
}

// UpdateOrganization updates an existing organization
// @Summary Update an organization
// @Description Update allow-listed organization fields; id, created_at and organization_id are immutable
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path int true "Organization ID"
// @Param organization body map[string]interface{} true "Fields to update"
// @Success 200 {object} map[string]interface{} "Success message"
// @Failure 400 {object} map[string]interface{} "No fields to update or unknown fields"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Failure 409 {object} map[string]interface{} "Duplicate slug or email"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /organizations/{id} [put]
func (h *OrganizationHandler) UpdateOrganization(ctx *gin.Context) {
	id, ok := parseID(ctx, "Invalid organization ID format")
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

	var existing models.Organization
	if err := h.db.Select("id").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Organization not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch organization",
		})
		return
	}

	fields, unknown := query.FilterUpdateFields(updates, allowedOrganizationFields, protectedOrganizationFields)
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

	if err := h.db.Model(&models.Organization{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "Organization with this slug or email already exists",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to update organization",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Organization updated successfully",
	})
}

// DeleteOrganization deletes an organization and cascades to its users
// @Summary Delete an organization
// @Description Delete an organization; the store cascades the delete to its users
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path int true "Organization ID"
// @Success 200 {object} map[string]interface{} "Success message"
// @Failure 400 {object} map[string]interface{} "Invalid organization ID format"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /organizations/{id} [delete]
func (h *OrganizationHandler) DeleteOrganization(ctx *gin.Context) {
	id, ok := parseID(ctx, "Invalid organization ID format")
	if !ok {
		return
	}

	result := h.db.Delete(&models.Organization{}, id)
	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to delete organization",
		})
		return
	}
	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Organization not found",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Organization deleted successfully",
	})
}

// UpdateOrganizationStatus updates only the status column
// @Summary Update organization status
// @Description Set organization status to Active, Blocked or Inactive
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path int true "Organization ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]interface{} "Success message with status"
// @Failure 400 {object} map[string]interface{} "Invalid status"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /organizations/{id}/status [patch]
func (h *OrganizationHandler) UpdateOrganizationStatus(ctx *gin.Context) {
	id, ok := parseID(ctx, "Invalid organization ID format")
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

	if !contains(validOrgStatuses, req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid status. Must be Active, Blocked, or Inactive",
		})
		return
	}

	// MySQL reports zero affected rows when the stored status already equals
	// the requested one, so existence is checked separately.
	var existing models.Organization
	if err := h.db.Select("id").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Organization not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch organization",
		})
		return
	}

	if err := h.db.Model(&models.Organization{}).Where("id = ?", id).Update("status", req.Status).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to update organization status",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Organization status updated successfully",
		"data":    gin.H{"status": req.Status},
	})
}

// parseID parses the numeric :id path parameter, writing a 400 on failure
func parseID(ctx *gin.Context, errMessage string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   errMessage,
		})
		return 0, false
	}
	return uint(id), true
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
