package handlers_test

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrganization(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/organizations", map[string]interface{}{
		"name":  "Acme Co",
		"slug":  "acme-co",
		"email": "a@acme.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Organization created successfully", body["message"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Acme Co", data["name"])
	assert.Equal(t, "acme-co", data["slug"])
	assert.Equal(t, "a@acme.com", data["email"])
	assert.Regexp(t, regexp.MustCompile(`^ACME-CO-\d+$`), data["organization_id"])
}

func TestCreateOrganizationDuplicate(t *testing.T) {
	router := setupTestRouter(t)

	payload := map[string]interface{}{
		"name":  "Acme Co",
		"slug":  "acme-co",
		"email": "a@acme.com",
	}

	w := doRequest(t, router, http.MethodPost, "/api/organizations", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/organizations", payload)
	require.Equal(t, http.StatusConflict, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Organization with this slug or email already exists", body["error"])

	// Same email under a different slug conflicts too
	w = doRequest(t, router, http.MethodPost, "/api/organizations", map[string]interface{}{
		"name":  "Other Co",
		"slug":  "other-co",
		"email": "a@acme.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateOrganizationMissingFields(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/organizations", map[string]interface{}{
		"name": "No Slug Org",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Please provide name, slug, and email", body["error"])
}

func TestCreateOrganizationDefaults(t *testing.T) {
	router := setupTestRouter(t)
	id := createTestOrganization(t, router, "defaults-org")

	w := doRequest(t, router, http.MethodGet, orgPath(id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Asia/Colombo", data["timezone"])
	assert.Equal(t, "English", data["language"])
	assert.Equal(t, float64(5), data["max_coordinators"])
	assert.Equal(t, "Active", data["status"])
}

func TestGetOrganizationsOrdering(t *testing.T) {
	router := setupTestRouter(t)

	createTestOrganization(t, router, "first-org")
	time.Sleep(10 * time.Millisecond)
	createTestOrganization(t, router, "second-org")

	w := doRequest(t, router, http.MethodGet, "/api/organizations", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])

	items := body["data"].([]interface{})
	require.Len(t, items, 2)
	// Newest first
	assert.Equal(t, "second-org", items[0].(map[string]interface{})["slug"])
	assert.Equal(t, "first-org", items[1].(map[string]interface{})["slug"])
}

func TestGetOrganizationNotFound(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/organizations/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Organization not found", decodeBody(t, w)["error"])
}

func TestGetOrganizationInvalidID(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/organizations/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrganization(t *testing.T) {
	router := setupTestRouter(t)
	id := createTestOrganization(t, router, "update-org")

	w := doRequest(t, router, http.MethodPut, orgPath(id), map[string]interface{}{
		"name":   "Renamed Org",
		"region": "Europe",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Organization updated successfully", decodeBody(t, w)["message"])

	w = doRequest(t, router, http.MethodGet, orgPath(id), nil)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Renamed Org", data["name"])
	assert.Equal(t, "Europe", data["region"])
}

func TestUpdateOrganizationEmptyBody(t *testing.T) {
	router := setupTestRouter(t)
	id := createTestOrganization(t, router, "empty-update-org")

	w := doRequest(t, router, http.MethodPut, orgPath(id), map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No fields to update", decodeBody(t, w)["error"])
}

func TestUpdateOrganizationProtectedFieldsStripped(t *testing.T) {
	router := setupTestRouter(t)
	id := createTestOrganization(t, router, "protected-org")

	w := doRequest(t, router, http.MethodGet, orgPath(id), nil)
	originalToken := decodeBody(t, w)["data"].(map[string]interface{})["organization_id"]

	// Only protected fields: stripping them leaves an empty update
	w = doRequest(t, router, http.MethodPut, orgPath(id), map[string]interface{}{
		"id":              999,
		"created_at":      "2020-01-01T00:00:00Z",
		"organization_id": "FORGED-1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No fields to update", decodeBody(t, w)["error"])

	// Protected fields alongside a real one are dropped silently
	w = doRequest(t, router, http.MethodPut, orgPath(id), map[string]interface{}{
		"organization_id": "FORGED-1",
		"name":            "Still Renamed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, orgPath(id), nil)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Still Renamed", data["name"])
	assert.Equal(t, originalToken, data["organization_id"])
}

func TestUpdateOrganizationUnknownFields(t *testing.T) {
	router := setupTestRouter(t)
	id := createTestOrganization(t, router, "unknown-field-org")

	w := doRequest(t, router, http.MethodPut, orgPath(id), map[string]interface{}{
		"name":       "Fine",
		"evil_field": "DROP TABLE organizations",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown fields: evil_field", decodeBody(t, w)["error"])
}

func TestUpdateOrganizationNotFound(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(t, router, http.MethodPut, "/api/organizations/9999", map[string]interface{}{
		"name": "Ghost",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrganizationDuplicateSlug(t *testing.T) {
	router := setupTestRouter(t)
	createTestOrganization(t, router, "taken-slug")
	id := createTestOrganization(t, router, "free-slug")

	w := doRequest(t, router, http.MethodPut, orgPath(id), map[string]interface{}{
		"slug": "taken-slug",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateOrganizationStatus(t *testing.T) {
	router := setupTestRouter(t)
	id := createTestOrganization(t, router, "status-org")

	w := doRequest(t, router, http.MethodPatch, orgPath(id)+"/status", map[string]interface{}{
		"status": "Blocked",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Organization status updated successfully", body["message"])
	assert.Equal(t, "Blocked", body["data"].(map[string]interface{})["status"])

	w = doRequest(t, router, http.MethodGet, orgPath(id), nil)
	assert.Equal(t, "Blocked", decodeBody(t, w)["data"].(map[string]interface{})["status"])
}

func TestUpdateOrganizationStatusInvalid(t *testing.T) {
	router := setupTestRouter(t)
	id := createTestOrganization(t, router, "bad-status-org")

	w := doRequest(t, router, http.MethodPatch, orgPath(id)+"/status", map[string]interface{}{
		"status": "Deleted",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status. Must be Active, Blocked, or Inactive", decodeBody(t, w)["error"])

	// Stored status unchanged
	w = doRequest(t, router, http.MethodGet, orgPath(id), nil)
	assert.Equal(t, "Active", decodeBody(t, w)["data"].(map[string]interface{})["status"])
}

func TestUpdateOrganizationStatusNotFound(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(t, router, http.MethodPatch, "/api/organizations/9999/status", map[string]interface{}{
		"status": "Inactive",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOrganization(t *testing.T) {
	router := setupTestRouter(t)
	id := createTestOrganization(t, router, "delete-org")

	w := doRequest(t, router, http.MethodDelete, orgPath(id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Organization deleted successfully", decodeBody(t, w)["message"])

	w = doRequest(t, router, http.MethodDelete, orgPath(id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, orgPath(id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOrganizationCascadesToUsers(t *testing.T) {
	router := setupTestRouter(t)
	orgID := createTestOrganization(t, router, "cascade-org")

	userA := createTestUser(t, router, orgID, "Alice", "Admin")
	userB := createTestUser(t, router, orgID, "Bob", "Co-ordinator")

	w := doRequest(t, router, http.MethodDelete, orgPath(orgID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, userPath(userA), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doRequest(t, router, http.MethodGet, userPath(userB), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/users/organization/%d", orgID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["count"])
}
