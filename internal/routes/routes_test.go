package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/kindredhq/kindred/internal/app"
	"github.com/kindredhq/kindred/internal/config"
	"github.com/kindredhq/kindred/internal/db"
	"github.com/kindredhq/kindred/internal/repository"
	"github.com/kindredhq/kindred/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close()
	})
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	accounts := repository.NewAccountRepository(database)
	authService := service.NewAuthService("test-secret", 6*time.Hour, bcrypt.MinCost)

	return &app.App{
		Cfg:            &config.Config{AppEnv: "development"},
		DB:             database,
		Accounts:       accounts,
		AuthService:    authService,
		AccountService: service.NewAccountService(accounts, authService),
	}
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body map[string]any, headers map[string]string) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func adultBirthdate() string {
	return time.Now().AddDate(-30, 0, 0).Format("2006-01-02")
}

func minorBirthdate() string {
	return time.Now().AddDate(-10, 0, 0).Format("2006-01-02")
}

func TestHealth(t *testing.T) {
	handler := SetupRoutes(newTestApp(t))

	status, body := doJSON(t, handler, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterValidation(t *testing.T) {
	handler := SetupRoutes(newTestApp(t))

	// First violated rule only
	status, body := doJSON(t, handler, http.MethodPost, "/auth/register", map[string]any{
		"username":  "ab",
		"email":     "bad",
		"password":  "short",
		"role":      "wizard",
		"birthdate": "nope",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "username")
}

func TestAccountLifecycle(t *testing.T) {
	a := newTestApp(t)
	handler := SetupRoutes(a)

	// Parent registration issues a linkage code
	status, body := doJSON(t, handler, http.MethodPost, "/auth/register", map[string]any{
		"username":  "pat",
		"email":     "pat@example.com",
		"password":  "Sup3rSecret!",
		"role":      "parent",
		"birthdate": adultBirthdate(),
	}, nil)
	require.Equal(t, http.StatusCreated, status, "body: %v", body)
	parentCode, _ := body["parent_code"].(string)
	require.Len(t, parentCode, 6)

	// Minor without a code is rejected
	status, body = doJSON(t, handler, http.MethodPost, "/auth/register", map[string]any{
		"username":  "kim",
		"email":     "kim@example.com",
		"password":  "Sup3rSecret!",
		"role":      "child",
		"birthdate": minorBirthdate(),
	}, nil)
	assert.Equal(t, http.StatusForbidden, status, "body: %v", body)

	// Minor with an unknown code is rejected
	status, _ = doJSON(t, handler, http.MethodPost, "/auth/register", map[string]any{
		"username":    "kim",
		"email":       "kim@example.com",
		"password":    "Sup3rSecret!",
		"role":        "child",
		"birthdate":   minorBirthdate(),
		"parent_code": "ZZZZZZ",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Minor with the parent's code is created
	status, body = doJSON(t, handler, http.MethodPost, "/auth/register", map[string]any{
		"username":    "kim",
		"email":       "kim@example.com",
		"password":    "Sup3rSecret!",
		"role":        "child",
		"birthdate":   minorBirthdate(),
		"parent_code": parentCode,
	}, nil)
	require.Equal(t, http.StatusCreated, status, "body: %v", body)
	assert.Equal(t, parentCode, body["parent_code"])

	// Duplicate email
	status, _ = doJSON(t, handler, http.MethodPost, "/auth/register", map[string]any{
		"username":  "kim2",
		"email":     "kim@example.com",
		"password":  "Sup3rSecret!",
		"role":      "admin",
		"birthdate": adultBirthdate(),
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Wrong password
	status, _ = doJSON(t, handler, http.MethodPost, "/auth/login", map[string]any{
		"email":    "pat@example.com",
		"password": "WrongPass1!",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Minor login without the code is gated
	status, _ = doJSON(t, handler, http.MethodPost, "/auth/login", map[string]any{
		"email":    "kim@example.com",
		"password": "Sup3rSecret!",
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Minor login with the exact stored code succeeds
	status, body = doJSON(t, handler, http.MethodPost, "/auth/login", map[string]any{
		"email":       "kim@example.com",
		"password":    "Sup3rSecret!",
		"parent_code": parentCode,
	}, nil)
	require.Equal(t, http.StatusOK, status, "body: %v", body)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "kim", user["username"])
	assert.Equal(t, "child", user["role"])

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// Token subject matches the account that logged in
	claims, err := a.AuthService.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user["id"], claims["sub"])
	assert.Equal(t, "child", claims["role"])

	// Deletion requires a verified token
	status, _ = doJSON(t, handler, http.MethodDelete, "/account", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = doJSON(t, handler, http.MethodDelete, "/account", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, status, "body: %v", body)

	// The deleted account can no longer log in
	status, _ = doJSON(t, handler, http.MethodPost, "/auth/login", map[string]any{
		"email":       "kim@example.com",
		"password":    "Sup3rSecret!",
		"parent_code": parentCode,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// The parent account is untouched
	status, _ = doJSON(t, handler, http.MethodPost, "/auth/login", map[string]any{
		"email":    "pat@example.com",
		"password": "Sup3rSecret!",
	}, nil)
	assert.Equal(t, http.StatusOK, status)
}
