package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/crossplay/mcwgen/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestHandlers(t *testing.T, authService *auth.AuthService) *Handlers {
	t.Helper()
	hash, err := authService.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &Handlers{
		authService: authService,
		adminUser:   "admin",
		adminHash:   hash,
	}
}

func doLogin(h *Handlers, body map[string]string) *httptest.ResponseRecorder {
	router := gin.New()
	router.POST("/api/admin/login", h.AdminLogin)

	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminLogin_CorrectCredentials(t *testing.T) {
	authService := auth.NewAuthService("test-secret")
	h := newTestHandlers(t, authService)

	w := doLogin(h, map[string]string{"username": "admin", "password": "correct-horse"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := authService.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("Username = %q, want admin", claims.Username)
	}
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	authService := auth.NewAuthService("test-secret")
	h := newTestHandlers(t, authService)

	w := doLogin(h, map[string]string{"username": "admin", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAdminLogin_WrongUsername(t *testing.T) {
	authService := auth.NewAuthService("test-secret")
	h := newTestHandlers(t, authService)

	w := doLogin(h, map[string]string{"username": "someone-else", "password": "correct-horse"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAdminLogin_MissingFields(t *testing.T) {
	authService := auth.NewAuthService("test-secret")
	h := newTestHandlers(t, authService)

	w := doLogin(h, map[string]string{"username": "admin"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
