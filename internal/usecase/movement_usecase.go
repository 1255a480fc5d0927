package usecase

import (
	"context"
	"net/http"
	"strings"

	"inventario/internal/domain/model"
	repo "inventario/internal/repository"

	"github.com/sirupsen/logrus"
)

// 台帳へ追記する下書き。IDとtimestampは台帳側が付ける
type MovementDraft struct {
	EmployeeID     string
	ItemID         string
	Action         model.MovementAction
	QuantityChange int64
	Unit           string
}

// 一覧の絞り込み（コードは正規・旧どちらも可）。
// Limit 0 は全件、Offsetで古い履歴へページング
type ListMovementsInput struct {
	ItemID     string
	EmployeeID string
	Action     string
	Limit      int
	Offset     int
}

// 表示用に参照を解決した履歴1件
type MovementView struct {
	model.StockMovement
	EmployeeName string `json:"employee_name,omitempty"`
	ItemName     string `json:"item_name,omitempty"`
}

// 追記専用の台帳。参照先の存在は確認しない（過去の事実のため）。
type MovementUsecase struct {
	movementRepo repo.MovementRepository
	itemRepo     repo.ItemRepository
	employeeRepo repo.EmployeeRepository
	notifier     repo.MovementNotifier
	clock        Clock
	logger       *logrus.Logger
}

// DI
func NewMovementUsecase(
	movementRepo repo.MovementRepository,
	itemRepo repo.ItemRepository,
	employeeRepo repo.EmployeeRepository,
	notifier repo.MovementNotifier,
	clock Clock,
	logger *logrus.Logger,
) *MovementUsecase {
	return &MovementUsecase{
		movementRepo: movementRepo,
		itemRepo:     itemRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		clock:        clock,
		logger:       logger,
	}
}

// Appendは検証して1件追記し、購読者へ通知する。
// 通知はbest-effortで、失敗しても追記は成立する。
func (u *MovementUsecase) Append(ctx context.Context, d MovementDraft) (model.StockMovement, error) {
	if strings.TrimSpace(d.EmployeeID) == "" {
		return model.StockMovement{}, NewHTTPError(http.StatusBadRequest, "actor required")
	}
	if strings.TrimSpace(d.ItemID) == "" {
		return model.StockMovement{}, NewHTTPError(http.StatusBadRequest, "item required")
	}
	if !d.Action.Valid() {
		return model.StockMovement{}, NewHTTPError(http.StatusBadRequest, "invalid action")
	}
	// 0の移動は記録しない。呼び出し側が抑止する契約だが、ここでも弾く
	if d.QuantityChange < 1 {
		return model.StockMovement{}, NewHTTPError(http.StatusBadRequest, "quantity_change must be >= 1")
	}
	if strings.TrimSpace(d.Unit) == "" {
		return model.StockMovement{}, NewHTTPError(http.StatusBadRequest, "unit required")
	}

	saved, err := u.movementRepo.Append(ctx, model.StockMovement{
		EmployeeID:     d.EmployeeID,
		ItemID:         d.ItemID,
		Action:         d.Action,
		QuantityChange: d.QuantityChange,
		Unit:           d.Unit,
		Timestamp:      u.clock.Now(),
	})
	if err != nil {
		return model.StockMovement{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if u.notifier != nil {
		ev := repo.MovementEvent{Action: "create", MovementID: saved.ID, ItemID: saved.ItemID}
		if err := u.notifier.Publish(ctx, ev); err != nil {
			u.logger.WithError(err).Warn("movement notify failed")
		}
	}

	return saved, nil
}

// ListMovementsは履歴を新しい順で返し、表示用に従業員名・アイテム名を解決する。
// 参照先が消えていても（削除済みアイテム等）履歴自体は返す。
func (u *MovementUsecase) ListMovements(ctx context.Context, in ListMovementsInput) ([]MovementView, error) {
	filter := repo.MovementFilter{Limit: in.Limit, Offset: in.Offset}

	if s := strings.TrimSpace(in.ItemID); s != "" {
		filter.ItemID = &s
	}
	if s := strings.TrimSpace(in.EmployeeID); s != "" {
		filter.EmployeeID = &s
	}
	if s := strings.TrimSpace(in.Action); s != "" {
		action, err := model.ParseMovementAction(s)
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid action")
		}
		filter.Action = &action
	}
	if in.Limit < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}

	movements, err := u.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 同じ参照を二度引かないための小さなキャッシュ
	employeeNames := map[string]string{}
	itemNames := map[string]string{}

	views := make([]MovementView, 0, len(movements))
	for _, mv := range movements {
		v := MovementView{StockMovement: mv}

		if name, ok := employeeNames[mv.EmployeeID]; ok {
			v.EmployeeName = name
		} else if e, err := u.employeeRepo.FindByID(ctx, mv.EmployeeID); err == nil {
			employeeNames[mv.EmployeeID] = e.Name
			v.EmployeeName = e.Name
		}

		if name, ok := itemNames[mv.ItemID]; ok {
			v.ItemName = name
		} else if item, err := u.itemRepo.FindByID(ctx, mv.ItemID); err == nil {
			// 削除済みアイテムもFindByIDは解決できる
			itemNames[mv.ItemID] = item.Name
			v.ItemName = item.Name
		}

		views = append(views, v)
	}

	return views, nil
}
