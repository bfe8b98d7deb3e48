package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/nvteo/bakeshop-backend/api/middleware"
	ordersvc "github.com/nvteo/bakeshop-backend/internal/orders"
	"github.com/nvteo/bakeshop-backend/pkg/db/models"
	"github.com/nvteo/bakeshop-backend/pkg/enums"
	pkgerrors "github.com/nvteo/bakeshop-backend/pkg/errors"
)

type stubOrderService struct {
	created      *models.Order
	lastUsername string
	lastStatus   string
	statusErr    error
}

func (s *stubOrderService) Create(_ context.Context, username string, _ ordersvc.CreateOrderInput) (*models.Order, error) {
	s.lastUsername = username
	return s.created, nil
}

func (s *stubOrderService) ListMine(context.Context, string) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (s *stubOrderService) ListAll(context.Context) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (s *stubOrderService) GetByID(context.Context, int64) (*models.Order, error) {
	return s.created, nil
}

func (s *stubOrderService) UpdateStatus(_ context.Context, _ int64, status string) (*models.Order, error) {
	s.lastStatus = status
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return s.created, nil
}

func TestAdminUpdateOrderStatusAcceptsBareJSONString(t *testing.T) {
	svc := &stubOrderService{created: &models.Order{ID: 7, Status: enums.OrderStatusShipped}}

	r := chi.NewRouter()
	r.Put("/api/Orders/admin/{id}/status", AdminUpdateOrderStatus(svc, nil))

	req := httptest.NewRequest("PUT", "/api/Orders/admin/7/status", strings.NewReader(`"Shipped"`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastStatus != "Shipped" {
		t.Fatalf("expected raw string body to reach service, got %q", svc.lastStatus)
	}
}

func TestAdminUpdateOrderStatusRejectsObjectBody(t *testing.T) {
	svc := &stubOrderService{}

	r := chi.NewRouter()
	r.Put("/api/Orders/admin/{id}/status", AdminUpdateOrderStatus(svc, nil))

	req := httptest.NewRequest("PUT", "/api/Orders/admin/7/status", strings.NewReader(`{"status":"Shipped"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminUpdateOrderStatusSurfacesValidationError(t *testing.T) {
	svc := &stubOrderService{statusErr: pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")}

	r := chi.NewRouter()
	r.Put("/api/Orders/admin/{id}/status", AdminUpdateOrderStatus(svc, nil))

	req := httptest.NewRequest("PUT", "/api/Orders/admin/7/status", strings.NewReader(`"Teleported"`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateOrderRequiresIdentity(t *testing.T) {
	svc := &stubOrderService{}
	handler := CreateOrder(svc, nil)

	req := httptest.NewRequest("POST", "/api/Orders", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateOrderUsesContextIdentity(t *testing.T) {
	svc := &stubOrderService{created: &models.Order{ID: 1}}
	handler := CreateOrder(svc, nil)

	body := `{"shippingAddress":"12 Hang Bong","phoneNumber":"0901234567","items":[{"productId":1,"quantity":2}]}`
	req := httptest.NewRequest("POST", "/api/Orders", strings.NewReader(body))
	req = req.WithContext(middleware.WithUsername(req.Context(), "teonv"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastUsername != "teonv" {
		t.Fatalf("expected username from context, got %q", svc.lastUsername)
	}
}
