package repository

import (
	"context"

	"inventario/internal/domain/model"
	repo "inventario/internal/repository"

	"gorm.io/gorm"
)

type MovementGormRepository struct {
	db *gorm.DB
}

func NewMovementGormRepository(db *gorm.DB) *MovementGormRepository {
	return &MovementGormRepository{db: db}
}

// 履歴を1件追記
func (r *MovementGormRepository) Append(ctx context.Context, mv model.StockMovement) (model.StockMovement, error) {
	if err := r.db.WithContext(ctx).Create(&mv).Error; err != nil {
		return model.StockMovement{}, err
	}
	return mv, nil
}

// 履歴を条件で一覧取得
func (r *MovementGormRepository) List(ctx context.Context, filter repo.MovementFilter) ([]model.StockMovement, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{})

	if filter.ItemID != nil {
		q = q.Where("item_id = ?", *filter.ItemID)
	}
	if filter.EmployeeID != nil {
		q = q.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Action != nil {
		q = q.Where("action = ?", *filter.Action)
	}

	//新しい順。同時刻は追記の新しい順
	q = q.Order("timestamp DESC").Order("id DESC")

	// limit/offset。limit未指定（0以下）は全件 — 台帳は末尾まで読めること
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	movements := []model.StockMovement{}
	if err := q.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
