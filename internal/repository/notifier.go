package repository

import "context"

// 履歴追記の通知イベント。受け取った側は差分マージせず一覧を取り直す。
type MovementEvent struct {
	Action     string `json:"action"` // 今はcreateのみ
	MovementID int64  `json:"movement_id"`
	ItemID     string `json:"item_id"`
}

// 履歴のリアルタイム通知の約束。配送はbest-effort（プロセス再起動をまたぐ保証なし）。
type MovementNotifier interface {
	Publish(ctx context.Context, ev MovementEvent) error

	// 購読チャネルと購読解除関数を返す。解除後はチャネルがcloseされる。
	Subscribe(ctx context.Context) (<-chan MovementEvent, func(), error)
}
