package repository

import (
	"context"
	"errors"

	"inventario/internal/domain/model"
	repo "inventario/internal/repository"

	"gorm.io/gorm"
)

type ItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewItemGormRepository(db *gorm.DB) *ItemGormRepository {
	return &ItemGormRepository{db: db}
}

// 削除されていないアイテムを作成日時の新しい順で返す
func (r *ItemGormRepository) List(ctx context.Context) ([]model.InventoryItem, error) {
	items := []model.InventoryItem{}
	err := r.db.WithContext(ctx).
		Where("deleted = ?", false).
		Order("created_at desc").Order("id desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// IDで取得（削除済みも返す。履歴表示の参照解決に使う）
func (r *ItemGormRepository) FindByID(ctx context.Context, id string) (model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.InventoryItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.InventoryItem{}, err
	}
	return item, nil
}

// 削除されていないアイテムをIDで取得
func (r *ItemGormRepository) FindLiveByID(ctx context.Context, id string) (model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "id = ? AND deleted = ?", id, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.InventoryItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.InventoryItem{}, err
	}
	return item, nil
}

// アイテムの作成
func (r *ItemGormRepository) Create(ctx context.Context, item model.InventoryItem) (model.InventoryItem, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.InventoryItem{}, err
	}
	return item, nil
}

// アイテムの更新（削除済みは対象外）
func (r *ItemGormRepository) Update(ctx context.Context, item model.InventoryItem) (model.InventoryItem, error) {
	res := r.db.WithContext(ctx).Model(&model.InventoryItem{}).
		Where("id = ? AND deleted = ?", item.ID, false).
		Updates(map[string]interface{}{
			"name":        item.Name,
			"description": item.Description,
			"quantity":    item.Quantity,
			"unit":        item.Unit,
			"category":    item.Category,
			"min_stock":   item.MinStock,
			"image":       item.Image,
		})
	if res.Error != nil {
		return model.InventoryItem{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.InventoryItem{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, item.ID)
}

// deletedフラグを立てる。既に削除済みの行は対象にならずErrNotFound
func (r *ItemGormRepository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&model.InventoryItem{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
