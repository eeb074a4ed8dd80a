package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/s0ld1err/MagazinOnline/internal/models"
)

func setupCachedLookup(t *testing.T) (Lookup, *gorm.DB, *redis.Client) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(&models.Category{}, &models.Product{}))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	lookup := NewCachedLookup(NewGormLookup(testDB), client, zap.NewNop().Sugar())
	return lookup, testDB, client
}

func TestCachedLookup(t *testing.T) {
	lookup, testDB, client := setupCachedLookup(t)
	ctx := context.Background()

	category := models.Category{Name: "Phones"}
	require.NoError(t, testDB.Create(&category).Error)
	product := models.Product{Name: "Handset", Price: 199.99, CategoryID: category.ID}
	require.NoError(t, testDB.Create(&product).Error)

	t.Run("miss populates the cache", func(t *testing.T) {
		got, err := lookup.Lookup(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Handset", got.Name)
		assert.Equal(t, 199.99, got.Price)

		exists, err := client.Exists(ctx, fmt.Sprintf("product:%d", product.ID)).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("hit serves the cached entry even after a db change", func(t *testing.T) {
		require.NoError(t, testDB.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", 149.99).Error)

		got, err := lookup.Lookup(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 199.99, got.Price)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		require.NoError(t, Invalidate(ctx, client, product.ID))

		got, err := lookup.Lookup(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 149.99, got.Price)
	})

	t.Run("unknown products are not cached", func(t *testing.T) {
		_, err := lookup.Lookup(ctx, 99999)
		assert.ErrorIs(t, err, ErrProductNotFound)

		exists, err := client.Exists(ctx, "product:99999").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), exists)
	})
}

func TestGormLookupNotFound(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(&models.Category{}, &models.Product{}))

	_, lookupErr := NewGormLookup(testDB).Lookup(context.Background(), 1)
	assert.ErrorIs(t, lookupErr, ErrProductNotFound)
}
