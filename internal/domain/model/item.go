package model

import (
	"errors"
	"time"
)

// 在庫カテゴリ（閉じた3種類）
type Category string

const (
	//工具
	CategoryTools Category = "tools"

	//塗料
	CategoryPaints Category = "paints"

	//建材
	CategoryMaterials Category = "materials"
)

// 未知のカテゴリコード
var ErrUnknownCategory = errors.New("unknown category code")

// 旧クライアントが送ってくるスペイン語コードとの対応表
var legacyCategoryCodes = map[string]Category{
	"herramientas": CategoryTools,
	"pinturas":     CategoryPaints,
	"materiales":   CategoryMaterials,
}

// ParseCategoryはコードをカテゴリに解決する。
// 正規コードと旧コードのみ受け付け、未知のコードはエラー（黙ってデフォルトにしない）。
func ParseCategory(code string) (Category, error) {
	if c := Category(code); c.Valid() {
		return c, nil
	}
	if c, ok := legacyCategoryCodes[code]; ok {
		return c, nil
	}
	return "", ErrUnknownCategory
}

func (c Category) Valid() bool {
	switch c {
	case CategoryTools, CategoryPaints, CategoryMaterials:
		return true
	}
	return false
}

// LegacyCodeは旧クライアント向けのコードを返す。
func (c Category) LegacyCode() string {
	for code, canonical := range legacyCategoryCodes {
		if canonical == c {
			return code
		}
	}
	return string(c)
}

// Categoriesは全カテゴリ（表示順）。
func Categories() []Category {
	return []Category{CategoryTools, CategoryPaints, CategoryMaterials}
}

// 在庫アイテム。
// 削除はdeletedフラグのソフトデリート。履歴からの参照を残すため物理削除はしない。
type InventoryItem struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	Unit        string    `gorm:"type:varchar(50);not null" json:"unit"`
	Category    Category  `gorm:"type:varchar(20);not null;index" json:"category"`
	MinStock    *int64    `json:"min_stock,omitempty"`
	Image       string    `gorm:"type:varchar(255)" json:"image,omitempty"`
	Deleted     bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 低在庫か（閾値ちょうども含む）
func (i InventoryItem) IsLowStock() bool {
	return i.MinStock != nil && i.Quantity <= *i.MinStock
}
