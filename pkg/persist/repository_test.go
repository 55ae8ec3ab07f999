package persist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type snapshot struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

func backends(t *testing.T) map[string]Repository {
	t.Helper()

	fileRepo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return map[string]Repository{
		"memory":  NewMemoryRepository(),
		"file":    fileRepo,
		"redis":   NewRedisRepository(client, ""),
		"gorm":    newGormRepository(t),
		"tracing": NewTracingRepository(NewMemoryRepository(), "memory"),
	}
}

// newGormRepository runs the gorm backend against an SQLite file.
func newGormRepository(t *testing.T) *GormRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "state.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	repo := NewGormRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

func TestRepository_LoadMissing(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got := snapshot{Count: 7}
			found, err := repo.Load(context.Background(), "cart-storage", &got)
			require.NoError(t, err)
			assert.False(t, found)
			assert.Equal(t, 7, got.Count, "target must be untouched")
		})
	}
}

func TestRepository_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			in := snapshot{Items: []string{"a", "b"}, Count: 2}
			require.NoError(t, repo.Save(ctx, "wishlist-storage", in))

			var out snapshot
			found, err := repo.Load(ctx, "wishlist-storage", &out)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, in, out)

			require.NoError(t, repo.Save(ctx, "wishlist-storage", snapshot{Count: 9}))
			out = snapshot{}
			_, err = repo.Load(ctx, "wishlist-storage", &out)
			require.NoError(t, err)
			assert.Equal(t, 9, out.Count)
			assert.Empty(t, out.Items)

			require.NoError(t, repo.Delete(ctx, "wishlist-storage"))
			found, err = repo.Load(ctx, "wishlist-storage", &out)
			require.NoError(t, err)
			assert.False(t, found)

			// deleting twice is fine
			require.NoError(t, repo.Delete(ctx, "wishlist-storage"))
		})
	}
}

func TestRepository_NamespacesAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Save(ctx, "cart-storage", snapshot{Count: 1}))
			require.NoError(t, repo.Save(ctx, "order-storage", snapshot{Count: 2}))

			var cart, orders snapshot
			_, err := repo.Load(ctx, "cart-storage", &cart)
			require.NoError(t, err)
			_, err = repo.Load(ctx, "order-storage", &orders)
			require.NoError(t, err)

			assert.Equal(t, 1, cart.Count)
			assert.Equal(t, 2, orders.Count)
		})
	}
}

func TestRepository_EmptyNamespace(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := repo.Save(context.Background(), "", snapshot{})
			assert.ErrorIs(t, err, ErrInvalidNamespace)
		})
	}
}

func TestMemoryRepository_SnapshotIsolation(t *testing.T) {
	repo := NewMemoryRepository()
	in := snapshot{Items: []string{"a"}}
	require.NoError(t, repo.Save(context.Background(), "cart-storage", in))

	in.Items[0] = "mutated"

	raw, ok := repo.Raw("cart-storage")
	require.True(t, ok)
	assert.JSONEq(t, `{"items":["a"],"count":0}`, string(raw))
}

func TestRedisRepository_UsesPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	repo := NewRedisRepository(client, "shop:")
	require.NoError(t, repo.Save(context.Background(), "auth-storage", snapshot{Count: 3}))

	assert.True(t, mr.Exists("shop:auth-storage"))
	val, err := mr.Get("shop:auth-storage")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":null,"count":3}`, val)
}

func TestFileRepository_CorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), "cart-storage", snapshot{}))
	require.NoError(t, os.WriteFile(repo.path("cart-storage"), []byte("{not json"), 0o644))

	var out snapshot
	_, err = repo.Load(context.Background(), "cart-storage", &out)
	assert.Error(t, err)
}

func TestGormRepository_UpsertKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	repo := newGormRepository(t)

	require.NoError(t, repo.Save(ctx, "order-storage", snapshot{Count: 1}))
	var first StateSnapshot
	require.NoError(t, repo.db.Where("namespace = ?", "order-storage").First(&first).Error)

	require.NoError(t, repo.Save(ctx, "order-storage", snapshot{Count: 2}))

	var rows []StateSnapshot
	require.NoError(t, repo.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "order-storage", rows[0].Namespace)
	assert.JSONEq(t, `{"items":null,"count":2}`, rows[0].Payload)
	assert.False(t, rows[0].UpdatedAt.Before(first.UpdatedAt))
}

func TestGormRepository_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	repo := newGormRepository(t)

	require.NoError(t, repo.db.Create(&StateSnapshot{Namespace: "cart-storage", Payload: "{not json"}).Error)

	var out snapshot
	found, err := repo.Load(ctx, "cart-storage", &out)
	assert.Error(t, err)
	assert.False(t, found)
}
