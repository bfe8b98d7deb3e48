package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/nvteo/bakeshop-backend/pkg/auth"
	"github.com/nvteo/bakeshop-backend/pkg/config"
	"github.com/nvteo/bakeshop-backend/pkg/enums"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "unit-test-secret", Issuer: "bakeshop", ExpirationMinutes: 60}
}

func mintToken(t *testing.T, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now(), pkgauth.AccessTokenPayload{
		UserID:   1,
		Username: "teonv",
		FullName: "Teo Nguyen",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func echoIdentity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Username", UsernameFromContext(r.Context()))
		w.Header().Set("X-Role", RoleFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "mw-test", Output: io.Discard})
	handler := Auth(testJWTConfig(), logg)(echoIdentity())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/Orders/my-orders", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthSeedsContext(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "mw-test", Output: io.Discard})
	handler := Auth(testJWTConfig(), logg)(echoIdentity())

	req := httptest.NewRequest("GET", "/api/Orders/my-orders", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.UserRoleCustomer))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Username") != "teonv" {
		t.Fatalf("expected username seeded, got %q", rec.Header().Get("X-Username"))
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	handler := Auth(testJWTConfig(), nil)(echoIdentity())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuthLetsGuestsThrough(t *testing.T) {
	handler := OptionalAuth(testJWTConfig(), nil)(echoIdentity())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/Cart", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Username") != "" {
		t.Fatal("guest request must not carry a username")
	}
}

func TestOptionalAuthAcceptsQueryToken(t *testing.T) {
	handler := OptionalAuth(testJWTConfig(), nil)(echoIdentity())

	req := httptest.NewRequest("GET", "/hub/notification?access_token="+mintToken(t, enums.UserRoleAdmin), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Role") != string(enums.UserRoleAdmin) {
		t.Fatalf("expected admin role from query token, got %q", rec.Header().Get("X-Role"))
	}
}

func TestRequireRoleBlocksWrongRole(t *testing.T) {
	handler := Auth(testJWTConfig(), nil)(RequireRole(string(enums.UserRoleAdmin), nil)(echoIdentity()))

	req := httptest.NewRequest("GET", "/api/Orders/admin/all", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.UserRoleCustomer))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
