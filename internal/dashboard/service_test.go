package dashboard

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nvteo/bakeshop-backend/internal/orders"
	"github.com/nvteo/bakeshop-backend/internal/products"
	"github.com/nvteo/bakeshop-backend/internal/users"
	"github.com/nvteo/bakeshop-backend/pkg/db/models"
	"github.com/nvteo/bakeshop-backend/pkg/enums"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{},
	))

	svc, err := NewService(ServiceParams{
		ProductRepo: products.NewRepository(conn),
		OrderRepo:   orders.NewRepository(conn),
		UserRepo:    users.NewRepository(conn),
	})
	require.NoError(t, err)
	return svc, conn
}

func TestSummaryCountsAndRevenue(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	require.NoError(t, conn.Create(&models.User{Username: "teonv", PasswordHash: "x"}).Error)
	require.NoError(t, conn.Create(&models.Product{Name: "Flan", Price: 25000}).Error)
	require.NoError(t, conn.Create(&models.Product{Name: "Eclair", Price: 40000}).Error)
	require.NoError(t, conn.Create(&models.Order{UserID: 1, TotalAmount: 650000, Status: enums.OrderStatusDelivered}).Error)
	require.NoError(t, conn.Create(&models.Order{UserID: 1, TotalAmount: 90000, Status: enums.OrderStatusCancelled}).Error)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, summary.TotalProducts)
	require.EqualValues(t, 2, summary.TotalOrders)
	require.EqualValues(t, 1, summary.TotalUsers)
	// cancelled orders are excluded; 650000 minor units = 6500.00
	require.True(t, summary.TotalRevenue.Equal(decimal.RequireFromString("6500")))
}

func TestSummaryOnEmptyDatabase(t *testing.T) {
	svc, _ := newTestService(t)
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Zero(t, summary.TotalProducts)
	require.True(t, summary.TotalRevenue.IsZero())
}
