package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"orgadmin-backend/admin-service/routes"
	"orgadmin-backend/shared/config"
	"orgadmin-backend/shared/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestRouter builds the full router against an in-memory SQLite store
// with foreign keys enforced, so cascade and constraint semantics match the
// real database.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every statement on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))

	cfg := &config.Config{
		AppEnv:     "test",
		CORSOrigin: "http://localhost:3000",
	}

	return routes.SetupRouter(db, cfg)
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// createTestOrganization creates an organization and returns its numeric id
func createTestOrganization(t *testing.T, router *gin.Engine, slug string) uint {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/organizations", map[string]interface{}{
		"name":  "Org " + slug,
		"slug":  slug,
		"email": slug + "@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

// createTestUser creates a user in the given organization and returns its id
func createTestUser(t *testing.T, router *gin.Engine, orgID uint, name, role string) uint {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/users", map[string]interface{}{
		"organization_id": orgID,
		"name":            name,
		"role":            role,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

func orgPath(id uint) string {
	return fmt.Sprintf("/api/organizations/%d", id)
}

func userPath(id uint) string {
	return fmt.Sprintf("/api/users/%d", id)
}
