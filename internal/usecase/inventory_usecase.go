package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"inventario/internal/domain/model"
	repo "inventario/internal/repository"

	"github.com/sirupsen/logrus"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 台帳への追記の約束。実装はMovementUsecase
type MovementAppender interface {
	Append(ctx context.Context, d MovementDraft) (model.StockMovement, error)
}

// 在庫の主たる書き込みと台帳追記をひとつの操作として調停する。
// 方針: 主たる書き込みが先、台帳はbest-effort。台帳の失敗で在庫操作は巻き戻さない
// （現物はもう動いているので、記録の失敗で業務を止めない）。
type InventoryUsecase struct {
	itemRepo repo.ItemRepository
	ledger   MovementAppender
	idGen    IDGenerator
	clock    Clock
	logger   *logrus.Logger
}

// DI
func NewInventoryUsecase(
	itemRepo repo.ItemRepository,
	ledger MovementAppender,
	idGen IDGenerator,
	clock Clock,
	logger *logrus.Logger,
) *InventoryUsecase {
	return &InventoryUsecase{
		itemRepo: itemRepo,
		ledger:   ledger,
		idGen:    idGen,
		clock:    clock,
		logger:   logger,
	}
}

type CreateItemInput struct {
	Name        string
	Description string
	Quantity    int64
	Unit        string
	Category    string
	MinStock    *int64
	Image       string
}

// 部分更新。nilのフィールドは触らない
type UpdateItemInput struct {
	Name        *string
	Description *string
	Quantity    *int64
	Unit        *string
	Category    *string
	MinStock    *int64
	Image       *string
}

// HistoryLoggedは台帳に記録が残ったかどうか。
// falseでも主たる操作は成功している（記録対象外か、追記に失敗してログ済み）。
type MutationOutput struct {
	Item          model.InventoryItem `json:"item"`
	HistoryLogged bool                `json:"history_logged"`
}

func (u *InventoryUsecase) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	items, err := u.itemRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// アイテムを作成し、初期数量があれば台帳にentryを追記する。
func (u *InventoryUsecase) CreateItemWithHistory(ctx context.Context, actorID string, in CreateItemInput) (MutationOutput, error) {
	if strings.TrimSpace(in.Name) == "" {
		return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "description required")
	}
	if strings.TrimSpace(in.Unit) == "" {
		return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "unit required")
	}
	if in.Quantity < 0 {
		return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "min_stock must be >= 0")
	}
	category, err := model.ParseCategory(in.Category)
	if err != nil {
		return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category")
	}

	now := u.clock.Now()
	created, err := u.itemRepo.Create(ctx, model.InventoryItem{
		ID:          u.idGen.NewID(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Category:    category,
		MinStock:    in.MinStock,
		Image:       in.Image,
		Deleted:     false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return MutationOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 初期数量があればentryとして記録。失敗しても作成は成立済みなので返さない
	logged := false
	if actorID != "" && in.Quantity > 0 {
		logged = u.appendBestEffort(ctx, MovementDraft{
			EmployeeID:     actorID,
			ItemID:         created.ID,
			Action:         model.ActionEntry,
			QuantityChange: in.Quantity,
			Unit:           created.Unit,
		})
	}

	return MutationOutput{Item: created, HistoryLogged: logged}, nil
}

// アイテムを更新し、数量が変わっていれば差分を台帳に追記する。
func (u *InventoryUsecase) UpdateItemWithHistory(ctx context.Context, actorID string, itemID string, in UpdateItemInput) (MutationOutput, error) {
	if strings.TrimSpace(itemID) == "" {
		return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "description required")
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) == "" {
		return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "unit required")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "min_stock must be >= 0")
	}

	var category *model.Category
	if in.Category != nil {
		c, err := model.ParseCategory(*in.Category)
		if err != nil {
			return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category")
		}
		category = &c
	}

	// 差分計算のため更新前の状態を読む
	current, err := u.itemRepo.FindLiveByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return MutationOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return MutationOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	next := current
	if in.Name != nil {
		next.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Quantity != nil {
		next.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		next.Unit = *in.Unit
	}
	if category != nil {
		next.Category = *category
	}
	if in.MinStock != nil {
		next.MinStock = in.MinStock
	}
	if in.Image != nil {
		next.Image = *in.Image
	}
	next.UpdatedAt = u.clock.Now()

	updated, err := u.itemRepo.Update(ctx, next)
	if err == repo.ErrNotFound {
		return MutationOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return MutationOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 数量が変わっていないか、数量を触っていないなら台帳には書かない（0の移動は記録しない）
	if in.Quantity == nil || *in.Quantity == current.Quantity {
		return MutationOutput{Item: updated, HistoryLogged: false}, nil
	}

	delta := *in.Quantity - current.Quantity
	action := model.ActionEntry
	change := delta
	if delta < 0 {
		action = model.ActionExit
		change = -delta
	}

	logged := false
	if actorID != "" {
		logged = u.appendBestEffort(ctx, MovementDraft{
			EmployeeID:     actorID,
			ItemID:         itemID,
			Action:         action,
			QuantityChange: change,
			Unit:           updated.Unit,
		})
	}

	return MutationOutput{Item: updated, HistoryLogged: logged}, nil
}

// アイテムをソフトデリートし、削除時点の数量を台帳に追記する。
// actorが取れないときは記録なしで削除だけ成立させる（外部ID基盤の都合で起こり得る縮退）。
func (u *InventoryUsecase) DeleteItemWithHistory(ctx context.Context, actorID string, itemID string) (MutationOutput, error) {
	if strings.TrimSpace(itemID) == "" {
		return MutationOutput{}, NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	// 削除前の数量・単位が記録に要る
	current, err := u.itemRepo.FindLiveByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return MutationOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return MutationOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.itemRepo.SoftDelete(ctx, itemID); err != nil {
		if err == repo.ErrNotFound {
			return MutationOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return MutationOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 数量0の削除は台帳対象外（0の移動は記録しない）
	logged := false
	if actorID != "" && current.Quantity > 0 {
		logged = u.appendBestEffort(ctx, MovementDraft{
			EmployeeID:     actorID,
			ItemID:         itemID,
			Action:         model.ActionDeletion,
			QuantityChange: current.Quantity,
			Unit:           current.Unit,
		})
	}

	current.Deleted = true
	return MutationOutput{Item: current, HistoryLogged: logged}, nil
}

// 台帳追記のbest-effort版。失敗はWarnログに落とすだけで呼び出し元を失敗させない。
func (u *InventoryUsecase) appendBestEffort(ctx context.Context, d MovementDraft) bool {
	if _, err := u.ledger.Append(ctx, d); err != nil {
		u.logger.WithFields(logrus.Fields{
			"item_id":     d.ItemID,
			"employee_id": d.EmployeeID,
			"action":      d.Action,
			"change":      d.QuantityChange,
		}).WithError(err).Warn("stock movement append failed")
		return false
	}
	return true
}
