package model

import (
	"errors"
	"time"
)

// 在庫移動の種類
type MovementAction string

const (
	//数量が増えた
	ActionEntry MovementAction = "entry"

	//数量が減った
	ActionExit MovementAction = "exit"

	//アイテムをソフトデリートした
	ActionDeletion MovementAction = "deletion"
)

var ErrUnknownAction = errors.New("unknown movement action")

// 旧クライアントのアクションコード
var legacyActionCodes = map[string]MovementAction{
	"entrada":     ActionEntry,
	"salida":      ActionExit,
	"eliminacion": ActionDeletion,
}

// ParseMovementActionはコードをアクションに解決する。未知のコードはエラー。
func ParseMovementAction(code string) (MovementAction, error) {
	if a := MovementAction(code); a.Valid() {
		return a, nil
	}
	if a, ok := legacyActionCodes[code]; ok {
		return a, nil
	}
	return "", ErrUnknownAction
}

func (a MovementAction) Valid() bool {
	switch a {
	case ActionEntry, ActionExit, ActionDeletion:
		return true
	}
	return false
}

// LegacyCodeは旧クライアント向けのコードを返す。
func (a MovementAction) LegacyCode() string {
	for code, canonical := range legacyActionCodes {
		if canonical == a {
			return code
		}
	}
	return string(a)
}

// 在庫移動の履歴（台帳）。
// 「誰が」「どのアイテムを」「どちら向きに」「いくつ」動かしたかを残す。
// 追記専用。作成後の更新・削除はしない。
type StockMovement struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID string         `gorm:"type:varchar(36);not null;index" json:"employee_id"`
	ItemID     string         `gorm:"type:varchar(36);not null;index" json:"item_id"`
	Action     MovementAction `gorm:"type:varchar(20);not null;index" json:"action"`

	//変化量の絶対値（deletionは削除時点の数量）。0の移動は記録しない。
	QuantityChange int64 `gorm:"not null" json:"quantity_change"`

	//移動時点の単位ラベルのコピー。アイテム側が変わっても履歴は当時のまま。
	Unit string `gorm:"type:varchar(50);not null" json:"unit"`

	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}
