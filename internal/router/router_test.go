package router

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"inventory_backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type routerEnv struct {
	engine *gin.Engine
	db     *sql.DB
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.SeedDefaultUsers(db))

	engine := gin.New()
	Setup(engine, db)
	return &routerEnv{engine: engine, db: db}
}

func (env *routerEnv) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	return rec
}

func (env *routerEnv) login(t *testing.T, name, pin string) string {
	t.Helper()
	rec := env.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"name": name, "pin": pin})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestAdminLoginAndMe(t *testing.T) {
	env := newRouterEnv(t)

	token := env.login(t, "Admin1", "admin1pass")

	rec := env.doJSON(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.Equal(t, "Admin1", me.Name)
	require.Equal(t, "admin", me.Role)
}

func TestLoginRejections(t *testing.T) {
	env := newRouterEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"name": "Admin1", "pin": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Staff login without approval answers with the pending code, not
	// the invalid-credentials one.
	rec = env.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"name": "Staff1", "pin": "staff1pass"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "LOGIN_PENDING")
}

func TestStaffApprovalAndTakeFlow(t *testing.T) {
	env := newRouterEnv(t)
	adminToken := env.login(t, "Admin1", "admin1pass")

	// Staff attempt queues a request.
	rec := env.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"name": "Staff1", "pin": "staff1pass"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/api/v1/login-requests", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var pending []struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	require.Equal(t, "Staff1", pending[0].Username)

	rec = env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/v1/login-requests/%d/approve", pending[0].ID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	staffToken := env.login(t, "Staff1", "staff1pass")

	// Admin provisions a category and an item.
	rec = env.doJSON(t, http.MethodPost, "/api/v1/categories", adminToken, gin.H{"name": "Electrical"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/api/v1/items", adminToken,
		gin.H{"category": "Electrical", "name": "Bulb", "quantity": 10, "threshold": 5})
	require.Equal(t, http.StatusCreated, rec.Code)

	var item struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))

	// Staff takes stock down past the threshold.
	rec = env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/v1/items/%d/take", item.ID), staffToken, gin.H{"amount": 8})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"new_quantity":2`)

	rec = env.doJSON(t, http.MethodGet, "/api/v1/alerts/low-stock", staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Bulb"`)

	// Overdrawing answers 409 with the stock code.
	rec = env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/v1/items/%d/take", item.ID), staffToken, gin.H{"amount": 5})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "INSUFFICIENT_STOCK")

	// The take shows up in the admin report, joined with names.
	rec = env.doJSON(t, http.MethodGet, "/api/v1/reports/transactions?window=daily", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Staff1"`)
	require.Contains(t, rec.Body.String(), `"Bulb"`)
}

func TestRoleEnforcement(t *testing.T) {
	env := newRouterEnv(t)
	adminToken := env.login(t, "Admin1", "admin1pass")

	// Approve Staff1 so we can get a staff token.
	env.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"name": "Staff1", "pin": "staff1pass"})
	rec := env.doJSON(t, http.MethodGet, "/api/v1/login-requests", adminToken, nil)
	var pending []struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/v1/login-requests/%d/approve", pending[0].ID), adminToken, nil)
	staffToken := env.login(t, "Staff1", "staff1pass")

	// Staff cannot reach admin surfaces.
	for _, path := range []string{"/api/v1/users", "/api/v1/login-requests", "/api/v1/login-log"} {
		rec := env.doJSON(t, http.MethodGet, path, staffToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code, path)
	}
	rec = env.doJSON(t, http.MethodPost, "/api/v1/categories", staffToken, gin.H{"name": "Sneaky"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// And nothing is reachable without a token.
	rec = env.doJSON(t, http.MethodGet, "/api/v1/items", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
