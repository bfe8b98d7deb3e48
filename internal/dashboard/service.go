package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nvteo/bakeshop-backend/internal/orders"
	"github.com/nvteo/bakeshop-backend/internal/products"
	"github.com/nvteo/bakeshop-backend/internal/users"
	pkgerrors "github.com/nvteo/bakeshop-backend/pkg/errors"
)

// Summary is the admin dashboard headline block.
type Summary struct {
	TotalProducts int64           `json:"totalProducts"`
	TotalOrders   int64           `json:"totalOrders"`
	TotalUsers    int64           `json:"totalUsers"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// ServiceParams groups dependencies for the dashboard service.
type ServiceParams struct {
	ProductRepo *products.Repository
	OrderRepo   *orders.Repository
	UserRepo    *users.Repository
}

// Service exposes the dashboard summary.
type Service interface {
	Summary(ctx context.Context) (Summary, error)
}

type service struct {
	productRepo *products.Repository
	orderRepo   *orders.Repository
	userRepo    *users.Repository
}

// NewService builds a dashboard service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{
		productRepo: params.ProductRepo,
		orderRepo:   params.OrderRepo,
		userRepo:    params.UserRepo,
	}, nil
}

// Summary aggregates the admin headline counters. Revenue is stored in minor
// units and reported as a decimal major-unit amount.
func (s *service) Summary(ctx context.Context) (Summary, error) {
	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	totalOrders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}
	revenueMinor, err := s.orderRepo.SumRevenue(ctx)
	if err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}

	return Summary{
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		TotalUsers:    totalUsers,
		TotalRevenue:  decimal.NewFromInt(revenueMinor).Shift(-2),
	}, nil
}
