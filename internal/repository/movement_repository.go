package repository

import (
	"context"

	"inventario/internal/domain/model"
)

// 移動履歴の絞り込み条件。
// Limitが0以下なら全件。Offsetは古い履歴をたどるためのページング用
type MovementFilter struct {
	ItemID     *string
	EmployeeID *string
	Action     *model.MovementAction
	Limit      int
	Offset     int
}

// 移動履歴の保存・一覧取得の約束。
// Appendのみで更新・削除は無い。参照先（actor/item）の存在確認もしない —
// 履歴は過去の事実であり、アイテムが後から削除されても記録は残る。
type MovementRepository interface {
	Append(ctx context.Context, mv model.StockMovement) (model.StockMovement, error)

	// timestampの新しい順（同時刻は追記の新しい順）
	List(ctx context.Context, filter MovementFilter) ([]model.StockMovement, error)
}
