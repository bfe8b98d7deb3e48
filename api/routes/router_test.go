package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nvteo/bakeshop-backend/pkg/auth"
	"github.com/nvteo/bakeshop-backend/pkg/config"
	"github.com/nvteo/bakeshop-backend/pkg/enums"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "bakeshop-test",
			ExpirationMinutes: 60,
		},
	}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Config: testConfig(),
		Logger: logger.New(logger.Options{ServiceName: "test"}),
	})
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := testRouter(t)
	for _, tc := range []struct {
		method string
		path   string
	}{
		{"GET", "/api/Orders/my-orders"},
		{"GET", "/api/Orders/admin/all"},
		{"GET", "/api/Dashboard/summary"},
		{"GET", "/api/Notifications"},
		{"POST", "/api/Products"},
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	cfg := testConfig()
	router := NewRouter(Deps{
		Config: cfg,
		Logger: logger.New(logger.Options{ServiceName: "test"}),
	})

	token, err := auth.MintAccessToken(cfg.JWT, time.Now(), auth.AccessTokenPayload{
		UserID:   4,
		Username: "linh",
		FullName: "Linh Pham",
		Role:     enums.UserRoleCustomer,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/Dashboard/summary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestNotificationHubRequiresAdmin(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/hub/notification", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for anonymous stream, got %d", rec.Code)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/api/Nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
