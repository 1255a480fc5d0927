package usecase_test

import (
	"context"
	"testing"

	"inventario/internal/domain/model"
	"inventario/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLowStock_BoundaryInclusive(t *testing.T) {
	items := []model.InventoryItem{
		{ID: "a", Quantity: 3, MinStock: int64p(5)}, // 下回っている
		{ID: "b", Quantity: 5, MinStock: int64p(5)}, // ちょうど
		{ID: "c", Quantity: 6, MinStock: int64p(5)}, // 上回っている
		{ID: "d", Quantity: 0},                      // 閾値未設定
	}

	low := usecase.LowStock(items)
	if assert.Len(t, low, 2) {
		assert.Equal(t, "a", low[0].ID)
		assert.Equal(t, "b", low[1].ID)
	}
}

func TestCountByCategory(t *testing.T) {
	items := []model.InventoryItem{
		{Category: model.CategoryTools},
		{Category: model.CategoryTools},
		{Category: model.CategoryPaints},
	}

	assert.Equal(t, 2, usecase.CountByCategory(items, model.CategoryTools))
	assert.Equal(t, 1, usecase.CountByCategory(items, model.CategoryPaints))
	assert.Equal(t, 0, usecase.CountByCategory(items, model.CategoryMaterials))
}

func TestTotalQuantity(t *testing.T) {
	items := []model.InventoryItem{
		{Quantity: 8},
		{Quantity: 12},
		{Quantity: 0},
	}
	assert.Equal(t, int64(20), usecase.TotalQuantity(items))
}

func TestBuildStats_Empty(t *testing.T) {
	stats := usecase.BuildStats(nil)
	assert.Equal(t, 0, stats.TotalItems)
	assert.Equal(t, int64(0), stats.TotalQuantity)
	assert.Equal(t, 0, stats.LowStockCount)
	assert.Equal(t, 0, stats.ByCategory[model.CategoryTools])
}

func TestStatsSnapshot(t *testing.T) {
	itemRepo := new(ItemRepoMock)
	itemRepo.On("List", mock.Anything).Return([]model.InventoryItem{
		{ID: "a", Quantity: 3, MinStock: int64p(5), Category: model.CategoryTools},
		{ID: "b", Quantity: 12, Category: model.CategoryPaints},
	}, nil)

	uc := usecase.NewStatsUsecase(itemRepo)
	stats, err := uc.Snapshot(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.TotalItems)
	assert.Equal(t, int64(15), stats.TotalQuantity)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, 1, stats.ByCategory[model.CategoryTools])
	assert.Equal(t, 1, stats.ByCategory[model.CategoryPaints])
	assert.Equal(t, 0, stats.ByCategory[model.CategoryMaterials])
}
