package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_buddy/internal/feature/portfolio/domain/entity"
	"stock_buddy/internal/feature/portfolio/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&HoldingModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func holding(userID uint, symbol string, quantity, avgCost float64) *entity.Holding {
	return &entity.Holding{UserID: userID, Symbol: symbol, Quantity: quantity, AvgCost: avgCost}
}

func TestHoldingMySQL_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts a new holding", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewHoldingRepository(db)

		err := repo.Upsert(ctx, holding(1, "7203.T", 100, 2500))

		require.NoError(t, err)
		var count int64
		db.Model(&HoldingModel{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("updates on (user_id, symbol) conflict", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewHoldingRepository(db)

		require.NoError(t, repo.Upsert(ctx, holding(1, "7203.T", 100, 2500)))
		require.NoError(t, repo.Upsert(ctx, holding(1, "7203.T", 200, 2600)))

		var rows []HoldingModel
		require.NoError(t, db.Find(&rows).Error)
		require.Len(t, rows, 1, "duplicate row was inserted instead of updated")
		assert.Equal(t, 200.0, rows[0].Quantity)
		assert.Equal(t, 2600.0, rows[0].AvgCost)
	})

	t.Run("same symbol for different users creates separate rows", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewHoldingRepository(db)

		require.NoError(t, repo.Upsert(ctx, holding(1, "7203.T", 100, 2500)))
		require.NoError(t, repo.Upsert(ctx, holding(2, "7203.T", 50, 2400)))

		var count int64
		db.Model(&HoldingModel{}).Count(&count)
		assert.Equal(t, int64(2), count)
	})
}

func TestHoldingMySQL_FindByUserID(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewHoldingRepository(db)

	// シンボルの逆順で保存し、取得時のソートを検証する
	require.NoError(t, repo.Upsert(ctx, holding(1, "9984.T", 10, 9000)))
	require.NoError(t, repo.Upsert(ctx, holding(1, "6758.T", 50, 3000)))
	require.NoError(t, repo.Upsert(ctx, holding(2, "7203.T", 100, 2500)))

	got, err := repo.FindByUserID(ctx, 1)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "6758.T", got[0].Symbol)
	assert.Equal(t, "9984.T", got[1].Symbol)

	t.Run("user with no holdings returns empty slice", func(t *testing.T) {
		got, err := repo.FindByUserID(ctx, 99)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestHoldingMySQL_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates quantity and avg_cost", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewHoldingRepository(db)
		require.NoError(t, repo.Upsert(ctx, holding(1, "7203.T", 100, 2500)))

		err := repo.Update(ctx, holding(1, "7203.T", 150, 2550))

		require.NoError(t, err)
		got, err := repo.FindByUserID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 150.0, got[0].Quantity)
		assert.Equal(t, 2550.0, got[0].AvgCost)
	})

	t.Run("unknown holding returns ErrHoldingNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewHoldingRepository(db)

		err := repo.Update(ctx, holding(1, "0000.T", 1, 1))

		assert.ErrorIs(t, err, usecase.ErrHoldingNotFound)
	})

	t.Run("cannot update another user's holding", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewHoldingRepository(db)
		require.NoError(t, repo.Upsert(ctx, holding(1, "7203.T", 100, 2500)))

		err := repo.Update(ctx, holding(2, "7203.T", 1, 1))

		assert.ErrorIs(t, err, usecase.ErrHoldingNotFound)
	})
}

func TestHoldingMySQL_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the holding", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewHoldingRepository(db)
		require.NoError(t, repo.Upsert(ctx, holding(1, "7203.T", 100, 2500)))

		err := repo.Delete(ctx, 1, "7203.T")

		require.NoError(t, err)
		got, err := repo.FindByUserID(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown holding returns ErrHoldingNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewHoldingRepository(db)

		err := repo.Delete(ctx, 1, "0000.T")

		assert.ErrorIs(t, err, usecase.ErrHoldingNotFound)
	})
}
