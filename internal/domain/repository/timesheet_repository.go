package repository

import (
	"context"

	"github.com/tu-usuario/office-pro/internal/domain/entity"
)

// TimesheetRepository puerto de persistencia de hojas de tiempo.
type TimesheetRepository interface {
	Create(ctx context.Context, ts *entity.Timesheet) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Timesheet, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Timesheet, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Timesheet, error)
	Update(ctx context.Context, ts *entity.Timesheet) error
}
