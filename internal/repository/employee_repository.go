package repository

import (
	"context"

	"inventario/internal/domain/model"
)

type EmployeeRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.Employee, error)
	FindByID(ctx context.Context, id string) (*model.Employee, error)
	Create(ctx context.Context, e *model.Employee) error
	Update(ctx context.Context, e *model.Employee) error
	Count(ctx context.Context) (int64, error)
}
