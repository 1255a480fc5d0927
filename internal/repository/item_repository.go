package repository

import (
	"context"
	"errors"

	"inventario/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// アイテムの永続化（保存・取得）だけを約束。履歴のことは知らない。
type ItemRepository interface {
	// 削除されていないアイテムを作成日時の新しい順で返す（空ならemptyスライス）
	List(ctx context.Context) ([]model.InventoryItem, error)

	// 削除済みも含めてIDで取得（履歴の参照解決用）
	FindByID(ctx context.Context, id string) (model.InventoryItem, error)

	// 削除されていないアイテムをIDで取得
	FindLiveByID(ctx context.Context, id string) (model.InventoryItem, error)

	Create(ctx context.Context, item model.InventoryItem) (model.InventoryItem, error)

	// 削除されていないアイテムのみ更新対象。対象が無ければErrNotFound
	Update(ctx context.Context, item model.InventoryItem) (model.InventoryItem, error)

	// deletedフラグを立てる。既に削除済みならErrNotFound
	SoftDelete(ctx context.Context, id string) error
}
