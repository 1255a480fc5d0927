package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"inventario/internal/domain/model"
	repo "inventario/internal/repository"
	"inventario/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MovementRepoMock struct{ mock.Mock }

func (m *MovementRepoMock) Append(ctx context.Context, mv model.StockMovement) (model.StockMovement, error) {
	args := m.Called(ctx, mv)
	saved, _ := args.Get(0).(model.StockMovement)
	return saved, args.Error(1)
}

func (m *MovementRepoMock) List(ctx context.Context, filter repo.MovementFilter) ([]model.StockMovement, error) {
	args := m.Called(ctx, filter)
	movements, _ := args.Get(0).([]model.StockMovement)
	return movements, args.Error(1)
}

var _ repo.MovementRepository = (*MovementRepoMock)(nil)

type EmployeeRepoMock struct{ mock.Mock }

func (m *EmployeeRepoMock) FindByEmail(ctx context.Context, email string) (*model.Employee, error) {
	args := m.Called(ctx, email)
	e, _ := args.Get(0).(*model.Employee)
	return e, args.Error(1)
}

func (m *EmployeeRepoMock) FindByID(ctx context.Context, id string) (*model.Employee, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*model.Employee)
	return e, args.Error(1)
}

func (m *EmployeeRepoMock) Create(ctx context.Context, e *model.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EmployeeRepoMock) Update(ctx context.Context, e *model.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EmployeeRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.EmployeeRepository = (*EmployeeRepoMock)(nil)

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) Publish(ctx context.Context, ev repo.MovementEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *NotifierMock) Subscribe(ctx context.Context) (<-chan repo.MovementEvent, func(), error) {
	args := m.Called(ctx)
	ch, _ := args.Get(0).(<-chan repo.MovementEvent)
	fn, _ := args.Get(1).(func())
	return ch, fn, args.Error(2)
}

var _ repo.MovementNotifier = (*NotifierMock)(nil)

func newMovementUC(movementRepo *MovementRepoMock, itemRepo *ItemRepoMock, employeeRepo *EmployeeRepoMock, notifier *NotifierMock) *usecase.MovementUsecase {
	return usecase.NewMovementUsecase(
		movementRepo,
		itemRepo,
		employeeRepo,
		notifier,
		&stubClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		silentLogger(),
	)
}

// =====================
// Append
// =====================

func TestMovementAppend_Success(t *testing.T) {
	movementRepo := new(MovementRepoMock)
	notifier := new(NotifierMock)
	uc := newMovementUC(movementRepo, new(ItemRepoMock), new(EmployeeRepoMock), notifier)

	expected := model.StockMovement{
		EmployeeID:     "E1",
		ItemID:         "item-1",
		Action:         model.ActionEntry,
		QuantityChange: 8,
		Unit:           "units",
		Timestamp:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	saved := expected
	saved.ID = 1
	movementRepo.On("Append", mock.Anything, expected).Return(saved, nil)
	notifier.On("Publish", mock.Anything, repo.MovementEvent{
		Action: "create", MovementID: 1, ItemID: "item-1",
	}).Return(nil)

	mv, err := uc.Append(context.Background(), usecase.MovementDraft{
		EmployeeID: "E1", ItemID: "item-1", Action: model.ActionEntry, QuantityChange: 8, Unit: "units",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), mv.ID)
	movementRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

// 0の移動は記録させない
func TestMovementAppend_ZeroChangeRejected(t *testing.T) {
	movementRepo := new(MovementRepoMock)
	uc := newMovementUC(movementRepo, new(ItemRepoMock), new(EmployeeRepoMock), new(NotifierMock))

	_, err := uc.Append(context.Background(), usecase.MovementDraft{
		EmployeeID: "E1", ItemID: "item-1", Action: model.ActionEntry, QuantityChange: 0, Unit: "units",
	})
	assertHTTPStatus(t, err, 400)
	movementRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestMovementAppend_InvalidAction(t *testing.T) {
	movementRepo := new(MovementRepoMock)
	uc := newMovementUC(movementRepo, new(ItemRepoMock), new(EmployeeRepoMock), new(NotifierMock))

	_, err := uc.Append(context.Background(), usecase.MovementDraft{
		EmployeeID: "E1", ItemID: "item-1", Action: "transfer", QuantityChange: 2, Unit: "units",
	})
	assertHTTPStatus(t, err, 400)
}

func TestMovementAppend_MissingActor(t *testing.T) {
	movementRepo := new(MovementRepoMock)
	uc := newMovementUC(movementRepo, new(ItemRepoMock), new(EmployeeRepoMock), new(NotifierMock))

	_, err := uc.Append(context.Background(), usecase.MovementDraft{
		ItemID: "item-1", Action: model.ActionEntry, QuantityChange: 2, Unit: "units",
	})
	assertHTTPStatus(t, err, 400)
}

// 通知の失敗は追記を失敗させない
func TestMovementAppend_NotifyFailureIgnored(t *testing.T) {
	movementRepo := new(MovementRepoMock)
	notifier := new(NotifierMock)
	uc := newMovementUC(movementRepo, new(ItemRepoMock), new(EmployeeRepoMock), notifier)

	movementRepo.On("Append", mock.Anything, mock.Anything).
		Return(model.StockMovement{ID: 7, ItemID: "item-1"}, nil)
	notifier.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	mv, err := uc.Append(context.Background(), usecase.MovementDraft{
		EmployeeID: "E1", ItemID: "item-1", Action: model.ActionExit, QuantityChange: 3, Unit: "units",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), mv.ID)
}

// =====================
// List
// =====================

func TestListMovements_ExpandsNames(t *testing.T) {
	movementRepo := new(MovementRepoMock)
	itemRepo := new(ItemRepoMock)
	employeeRepo := new(EmployeeRepoMock)
	uc := newMovementUC(movementRepo, itemRepo, employeeRepo, new(NotifierMock))

	movementRepo.On("List", mock.Anything, mock.Anything).Return([]model.StockMovement{
		{ID: 2, EmployeeID: "E1", ItemID: "item-1", Action: model.ActionExit, QuantityChange: 3, Unit: "units"},
		{ID: 1, EmployeeID: "E1", ItemID: "item-1", Action: model.ActionEntry, QuantityChange: 8, Unit: "units"},
	}, nil)
	employeeRepo.On("FindByID", mock.Anything, "E1").Return(&model.Employee{ID: "E1", Name: "Ana"}, nil).Once()
	// 削除済みアイテムでも名前は解決できる
	itemRepo.On("FindByID", mock.Anything, "item-1").Return(model.InventoryItem{ID: "item-1", Name: "Hammer", Deleted: true}, nil).Once()

	views, err := uc.ListMovements(context.Background(), usecase.ListMovementsInput{})
	assert.NoError(t, err)
	if assert.Len(t, views, 2) {
		assert.Equal(t, "Ana", views[0].EmployeeName)
		assert.Equal(t, "Hammer", views[0].ItemName)
		assert.Equal(t, "Ana", views[1].EmployeeName)
	}
	// 参照解決は1回ずつで足りる
	employeeRepo.AssertNumberOfCalls(t, "FindByID", 1)
	itemRepo.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestListMovements_UnresolvedRefsTolerated(t *testing.T) {
	movementRepo := new(MovementRepoMock)
	itemRepo := new(ItemRepoMock)
	employeeRepo := new(EmployeeRepoMock)
	uc := newMovementUC(movementRepo, itemRepo, employeeRepo, new(NotifierMock))

	movementRepo.On("List", mock.Anything, mock.Anything).Return([]model.StockMovement{
		{ID: 1, EmployeeID: "ghost", ItemID: "gone", Action: model.ActionDeletion, QuantityChange: 5, Unit: "units"},
	}, nil)
	employeeRepo.On("FindByID", mock.Anything, "ghost").Return(nil, repo.ErrNotFound)
	itemRepo.On("FindByID", mock.Anything, "gone").Return(model.InventoryItem{}, repo.ErrNotFound)

	views, err := uc.ListMovements(context.Background(), usecase.ListMovementsInput{})
	assert.NoError(t, err)
	if assert.Len(t, views, 1) {
		assert.Empty(t, views[0].EmployeeName)
		assert.Empty(t, views[0].ItemName)
	}
}

func TestListMovements_LegacyActionFilter(t *testing.T) {
	movementRepo := new(MovementRepoMock)
	uc := newMovementUC(movementRepo, new(ItemRepoMock), new(EmployeeRepoMock), new(NotifierMock))

	action := model.ActionEntry
	movementRepo.On("List", mock.Anything, repo.MovementFilter{Action: &action}).
		Return([]model.StockMovement{}, nil)

	_, err := uc.ListMovements(context.Background(), usecase.ListMovementsInput{Action: "entrada"})
	assert.NoError(t, err)
	movementRepo.AssertExpectations(t)
}

// limit省略（0）は全件指定としてそのまま渡す — 台帳が途中で切れてはいけない
func TestListMovements_NoLimitMeansAll(t *testing.T) {
	movementRepo := new(MovementRepoMock)
	uc := newMovementUC(movementRepo, new(ItemRepoMock), new(EmployeeRepoMock), new(NotifierMock))

	movementRepo.On("List", mock.Anything, repo.MovementFilter{Limit: 0, Offset: 0}).
		Return([]model.StockMovement{}, nil)

	_, err := uc.ListMovements(context.Background(), usecase.ListMovementsInput{})
	assert.NoError(t, err)
	movementRepo.AssertExpectations(t)
}

func TestListMovements_LimitOffsetPassedThrough(t *testing.T) {
	movementRepo := new(MovementRepoMock)
	uc := newMovementUC(movementRepo, new(ItemRepoMock), new(EmployeeRepoMock), new(NotifierMock))

	movementRepo.On("List", mock.Anything, repo.MovementFilter{Limit: 20, Offset: 40}).
		Return([]model.StockMovement{}, nil)

	_, err := uc.ListMovements(context.Background(), usecase.ListMovementsInput{Limit: 20, Offset: 40})
	assert.NoError(t, err)
	movementRepo.AssertExpectations(t)
}

func TestListMovements_NegativeOffsetRejected(t *testing.T) {
	movementRepo := new(MovementRepoMock)
	uc := newMovementUC(movementRepo, new(ItemRepoMock), new(EmployeeRepoMock), new(NotifierMock))

	_, err := uc.ListMovements(context.Background(), usecase.ListMovementsInput{Offset: -1})
	assertHTTPStatus(t, err, 400)
	movementRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListMovements_UnknownActionRejected(t *testing.T) {
	movementRepo := new(MovementRepoMock)
	uc := newMovementUC(movementRepo, new(ItemRepoMock), new(EmployeeRepoMock), new(NotifierMock))

	_, err := uc.ListMovements(context.Background(), usecase.ListMovementsInput{Action: "transfer"})
	assertHTTPStatus(t, err, 400)
	movementRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
