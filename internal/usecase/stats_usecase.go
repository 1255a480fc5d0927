package usecase

import (
	"context"
	"net/http"

	"inventario/internal/domain/model"
	repo "inventario/internal/repository"
)

// ダッシュボードの集計。スナップショットから毎回計算する純関数で、キャッシュしない。

// LowStockは閾値を下回った（ちょうども含む）アイテムを返す。
func LowStock(items []model.InventoryItem) []model.InventoryItem {
	low := []model.InventoryItem{}
	for _, it := range items {
		if it.IsLowStock() {
			low = append(low, it)
		}
	}
	return low
}

// CountByCategoryはカテゴリ一致のアイテム数を返す。
func CountByCategory(items []model.InventoryItem, c model.Category) int {
	n := 0
	for _, it := range items {
		if it.Category == c {
			n++
		}
	}
	return n
}

// TotalQuantityは数量の合計を返す。
func TotalQuantity(items []model.InventoryItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

type Stats struct {
	TotalItems    int                    `json:"total_items"`
	TotalQuantity int64                  `json:"total_quantity"`
	LowStockCount int                    `json:"low_stock_count"`
	ByCategory    map[model.Category]int `json:"by_category"`
}

func BuildStats(items []model.InventoryItem) Stats {
	byCategory := map[model.Category]int{}
	for _, c := range model.Categories() {
		byCategory[c] = CountByCategory(items, c)
	}
	return Stats{
		TotalItems:    len(items),
		TotalQuantity: TotalQuantity(items),
		LowStockCount: len(LowStock(items)),
		ByCategory:    byCategory,
	}
}

type StatsUsecase struct {
	itemRepo repo.ItemRepository
}

// DI
func NewStatsUsecase(itemRepo repo.ItemRepository) *StatsUsecase {
	return &StatsUsecase{itemRepo: itemRepo}
}

// Snapshotは最新の一覧から集計を計算する。
func (u *StatsUsecase) Snapshot(ctx context.Context) (Stats, error) {
	items, err := u.itemRepo.List(ctx)
	if err != nil {
		return Stats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return BuildStats(items), nil
}
