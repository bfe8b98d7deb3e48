package siteinfo

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nvteo/bakeshop-backend/internal/media"
	"github.com/nvteo/bakeshop-backend/pkg/config"
	"github.com/nvteo/bakeshop-backend/pkg/db/models"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

type memoryCache struct {
	entries map[string]string
	sets    int
	dels    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	return c.entries[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	c.entries[key] = value.(string)
	return nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) error {
	c.dels++
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func newTestService(t *testing.T, cache Cache) Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.WebsiteInfo{}))

	storage, err := media.NewDiskStorage(config.MediaConfig{
		UploadDir:   t.TempDir(),
		PublicBase:  "/uploads",
		MaxUploadMB: 1,
	})
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		Repo:    NewRepository(conn),
		Cache:   cache,
		Storage: storage,
		Logger:  logger.New(logger.Options{ServiceName: "siteinfo-test", Output: io.Discard}),
		TTL:     config.SiteCacheConfig{TTL: time.Minute},
	})
	require.NoError(t, err)
	return svc
}

func TestGetEmptySingletonIsNotAnError(t *testing.T) {
	svc := newTestService(t, nil)
	info, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Zero(t, info.ID)
	require.Empty(t, info.ShopName)
}

func TestUpdateCreatesThenEditsSingleton(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	first, err := svc.Update(ctx, UpdateInput{ShopName: "Banh Ngot Nha Teo", Slogan: "Fresh every morning"})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := svc.Update(ctx, UpdateInput{ShopName: "Banh Ngot Nha Teo", Slogan: "Baked twice a day"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Baked twice a day", second.Slogan)
}

func TestGetUsesCacheSnapshot(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(t, cache)
	ctx := context.Background()

	_, err := svc.Update(ctx, UpdateInput{ShopName: "Banh Ngot Nha Teo"})
	require.NoError(t, err)
	require.Contains(t, cache.entries, "site_info_cache")

	info, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "Banh Ngot Nha Teo", info.ShopName)
}

func TestCorruptCacheFallsBackToDatabase(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(t, cache)
	ctx := context.Background()

	_, err := svc.Update(ctx, UpdateInput{ShopName: "Banh Ngot Nha Teo"})
	require.NoError(t, err)

	cache.entries["site_info_cache"] = "{not-json"
	info, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "Banh Ngot Nha Teo", info.ShopName)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(t, cache)
	ctx := context.Background()

	_, err := svc.Update(ctx, UpdateInput{ShopName: "Before"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, UpdateInput{ShopName: "After"})
	require.NoError(t, err)
	require.GreaterOrEqual(t, cache.dels, 1)

	info, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "After", info.ShopName)
}
