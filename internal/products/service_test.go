package products

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nvteo/bakeshop-backend/internal/categories"
	"github.com/nvteo/bakeshop-backend/pkg/db/models"
	pkgerrors "github.com/nvteo/bakeshop-backend/pkg/errors"
	"github.com/nvteo/bakeshop-backend/pkg/pagination"
)

type noopStorage struct {
	saved   []string
	removed []string
}

func (s *noopStorage) SaveImage(_ context.Context, _ multipart.File, header *multipart.FileHeader) (string, error) {
	url := "/uploads/" + header.Filename
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *noopStorage) Remove(_ context.Context, publicURL string) error {
	s.removed = append(s.removed, publicURL)
	return nil
}

func newTestService(t *testing.T) (Service, *categories.Repository, *noopStorage) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Category{}, &models.Product{}))

	categoryRepo := categories.NewRepository(conn)
	storage := &noopStorage{}
	svc, err := NewService(ServiceParams{
		ProductRepo:  NewRepository(conn),
		CategoryRepo: categoryRepo,
		Storage:      storage,
	})
	require.NoError(t, err)
	return svc, categoryRepo, storage
}

func seedCategory(t *testing.T, repo *categories.Repository, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, repo.Create(context.Background(), category))
	return category
}

func TestCreateAndGet(t *testing.T) {
	svc, categoryRepo, _ := newTestService(t)
	ctx := context.Background()
	cakes := seedCategory(t, categoryRepo, "Cakes")

	created, err := svc.Create(ctx, ProductInput{
		Name:         " Tiramisu ",
		Price:        450000,
		Description:  "Classic Italian layered cake",
		CategoryID:   &cakes.ID,
		IsBestSeller: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Tiramisu", created.Name)
	require.NotNil(t, created.Category)
	require.Equal(t, "Cakes", created.Category.Name)

	loaded, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, loaded.IsBestSeller)
}

func TestCreateRejectsMissingCategory(t *testing.T) {
	svc, _, _ := newTestService(t)
	missing := int64(404)
	_, err := svc.Create(context.Background(), ProductInput{Name: "Banh mi", CategoryID: &missing})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestListFilters(t *testing.T) {
	svc, categoryRepo, _ := newTestService(t)
	ctx := context.Background()
	cakes := seedCategory(t, categoryRepo, "Cakes")
	breads := seedCategory(t, categoryRepo, "Breads")

	for _, p := range []ProductInput{
		{Name: "Chocolate Cake", Price: 300000, CategoryID: &cakes.ID, IsBestSeller: true},
		{Name: "Cheese Cake", Price: 350000, CategoryID: &cakes.ID},
		{Name: "Sourdough", Price: 90000, CategoryID: &breads.ID, IsBestSeller: true},
	} {
		_, err := svc.Create(ctx, p)
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, ListFilter{Search: "cake"})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	require.Len(t, page.Data, 2)

	best := true
	page, err = svc.List(ctx, ListFilter{IsBestSeller: &best})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)

	page, err = svc.List(ctx, ListFilter{CategoryID: &breads.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, "Sourdough", page.Data[0].Name)
}

func TestListPaginates(t *testing.T) {
	svc, categoryRepo, _ := newTestService(t)
	ctx := context.Background()
	cakes := seedCategory(t, categoryRepo, "Cakes")

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		_, err := svc.Create(ctx, ProductInput{Name: name, Price: 1000, CategoryID: &cakes.ID})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, ListFilter{Page: pagination.Params{Page: 2, PageSize: 2}})
	require.NoError(t, err)
	require.EqualValues(t, 5, page.Total)
	require.Len(t, page.Data, 2)
	// newest first
	require.Equal(t, "C", page.Data[0].Name)
}

func TestUpdateReplacesFields(t *testing.T) {
	svc, categoryRepo, _ := newTestService(t)
	ctx := context.Background()
	cakes := seedCategory(t, categoryRepo, "Cakes")

	created, err := svc.Create(ctx, ProductInput{Name: "Flan", Price: 25000, CategoryID: &cakes.ID})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, ProductInput{
		Name:         "Creme Caramel",
		Price:        30000,
		CategoryID:   &cakes.ID,
		IsBestSeller: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Creme Caramel", updated.Name)
	require.EqualValues(t, 30000, updated.Price)
	require.True(t, updated.IsBestSeller)
}

func TestDeleteRemovesRowAndImage(t *testing.T) {
	svc, categoryRepo, storage := newTestService(t)
	ctx := context.Background()
	cakes := seedCategory(t, categoryRepo, "Cakes")

	created, err := svc.Create(ctx, ProductInput{Name: "Eclair", Price: 40000, CategoryID: &cakes.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
	require.Empty(t, storage.removed) // no image was attached

	err = svc.Delete(ctx, created.ID)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}
