package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/snackshop/internal/domain/model"
	pkgAuth "github.com/polkiloo/snackshop/internal/pkg/auth"
	"github.com/polkiloo/snackshop/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/snackshop/internal/test"
)

func newTestEngine(role model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.ShopFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{
			ParseFn: func(token string) (pkgAuth.TokenClaims, error) {
				return pkgAuth.TokenClaims{UserID: 1, Role: string(role)}, nil
			},
		},
	}
	return Setup(facade, logger)
}

func TestSetupRoutes(t *testing.T) {
	engine := newTestEngine(model.RoleCustomer)

	body, _ := json.Marshal(map[string]string{"email": "user@shop.test", "name": "User", "password": "secret1"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for items, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for orders, got %d", resp.Code)
	}
}

func TestSetupRequiresAuth(t *testing.T) {
	engine := newTestEngine(model.RoleCustomer)

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/items", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
}

func TestSetupGuardsAdminRoutes(t *testing.T) {
	engine := newTestEngine(model.RoleCustomer)

	adminPaths := []struct {
		method string
		path   string
	}{
		{method: http.MethodGet, path: "/api/users"},
		{method: http.MethodGet, path: "/api/reports/stats"},
		{method: http.MethodGet, path: "/api/items/low-stock"},
		{method: http.MethodPut, path: "/api/orders/1/status"},
	}
	for _, route := range adminPaths {
		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer token")
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for customer on %s %s, got %d", route.method, route.path, resp.Code)
		}
	}

	adminEngine := newTestEngine(model.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/api/reports/stats", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp := httptest.NewRecorder()
	adminEngine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin dashboard, got %d", resp.Code)
	}
}

var _ handlers.ShopFacade = (*testhelpers.ShopFacadeStub)(nil)
