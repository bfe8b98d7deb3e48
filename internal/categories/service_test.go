package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nvteo/bakeshop-backend/pkg/db/models"
	pkgerrors "github.com/nvteo/bakeshop-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Category{}))
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func TestCreateAndList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "  Birthday Cakes ")
	require.NoError(t, err)
	require.Equal(t, "Birthday Cakes", created.Name)
	require.NotZero(t, created.ID)

	_, err = svc.Create(ctx, "Cookies")
	require.NoError(t, err)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Birthday Cakes", rows[0].Name)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create(context.Background(), "   ")
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestCreateDuplicateConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Cookies")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Cookies")
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	svc := newTestService(t)
	err := svc.Delete(context.Background(), 9999)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestDeleteExisting(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Seasonal")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, rows)
}
