package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/nvteo/bakeshop-backend/internal/products"
	"github.com/nvteo/bakeshop-backend/internal/users"
	"github.com/nvteo/bakeshop-backend/pkg/db"
	"github.com/nvteo/bakeshop-backend/pkg/db/models"
	"github.com/nvteo/bakeshop-backend/pkg/enums"
	pkgerrors "github.com/nvteo/bakeshop-backend/pkg/errors"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

// CreateOrderItemInput is one requested line of a new order.
type CreateOrderItemInput struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderInput carries the checkout form of the storefront.
type CreateOrderInput struct {
	ShippingAddress string                 `json:"shippingAddress" validate:"required"`
	PhoneNumber     string                 `json:"phoneNumber" validate:"required"`
	Items           []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// AlertPublisher receives a human-readable alert after an order is stored.
// Publish failures must be handled by the publisher, not the order flow.
type AlertPublisher interface {
	PublishOrderAlert(ctx context.Context, message string)
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	Client      *db.Client
	OrderRepo   *Repository
	ProductRepo *products.Repository
	UserRepo    *users.Repository
	Logger      *logger.Logger
	Alerts      AlertPublisher
}

// Service exposes business rules for order management.
type Service interface {
	Create(ctx context.Context, username string, input CreateOrderInput) (*models.Order, error)
	ListMine(ctx context.Context, username string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error)
}

type service struct {
	client      *db.Client
	orderRepo   *Repository
	productRepo *products.Repository
	userRepo    *users.Repository
	logg        *logger.Logger
	alerts      AlertPublisher
}

// NewService builds an orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		client:      params.Client,
		orderRepo:   params.OrderRepo,
		productRepo: params.ProductRepo,
		userRepo:    params.UserRepo,
		logg:        params.Logger,
		alerts:      params.Alerts,
	}, nil
}

// Create prices the requested items from the catalog, persists the order
// atomically and then publishes the new-order alert.
func (s *service) Create(ctx context.Context, username string, input CreateOrderInput) (*models.Order, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "unknown user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	merged, err := mergeItems(input.Items)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(merged))
	for _, item := range merged {
		ids = append(ids, item.ProductID)
	}
	catalog, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	byID := make(map[int64]models.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	order := &models.Order{
		UserID:          user.ID,
		CustomerName:    user.FullName,
		CustomerEmail:   user.Email,
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		PhoneNumber:     strings.TrimSpace(input.PhoneNumber),
		Status:          enums.OrderStatusPending,
	}
	for _, item := range merged {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product %d does not exist", item.ProductID))
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.ImageURL,
			UnitPrice:    product.Price,
			Quantity:     item.Quantity,
		})
		order.TotalAmount += product.Price * int64(item.Quantity)
	}

	if err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(ctx, order)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store order")
	}

	if s.alerts != nil {
		message := fmt.Sprintf("New order #%d from %s", order.ID, user.Username)
		s.alerts.PublishOrderAlert(ctx, message)
	}

	return s.orderRepo.FindByID(ctx, order.ID)
}

func (s *service) ListMine(ctx context.Context, username string) ([]models.Order, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "unknown user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	rows, err := s.orderRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.Order, error) {
	rows, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	row, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return row, nil
}

// UpdateStatus validates the raw status string and applies it.
func (s *service) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	parsed, err := enums.ParseOrderStatus(strings.TrimSpace(status))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
	}

	affected, err := s.orderRepo.UpdateStatus(ctx, id, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.GetByID(ctx, id)
}

// mergeItems collapses duplicate product ids and validates quantities.
func mergeItems(items []CreateOrderItemInput) ([]CreateOrderItemInput, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one item")
	}
	index := map[int64]int{}
	merged := make([]CreateOrderItemInput, 0, len(items))
	for _, item := range items {
		if item.ProductID <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		if pos, ok := index[item.ProductID]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}
