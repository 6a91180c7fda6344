package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/office-pro/internal/application/dto"
	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/authz"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// TimesheetUseCase casos de uso de hojas de tiempo. Segundo recurso con gate
// de módulo: demuestra que la fachada es genérica, no un caso especial de
// facturación.
type TimesheetUseCase struct {
	authorizer *Authorizer
	timesheets repository.TimesheetRepository
	clients    repository.ClientRepository
}

// NewTimesheetUseCase construye el caso de uso de hojas de tiempo.
func NewTimesheetUseCase(authorizer *Authorizer, timesheets repository.TimesheetRepository, clients repository.ClientRepository) *TimesheetUseCase {
	return &TimesheetUseCase{authorizer: authorizer, timesheets: timesheets, clients: clients}
}

// Create reporta horas de una semana contra un cliente de la empresa.
func (uc *TimesheetUseCase) Create(ctx context.Context, userID, companyID string, in dto.CreateTimesheetRequest) (*dto.TimesheetResponse, error) {
	if in.ClientID == "" || !in.Hours.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	authCtx, err := uc.authorizer.Authorize(ctx, userID, companyID, authz.ResourceTimesheets, authz.ActionCreate)
	if err != nil {
		return nil, err
	}
	client, err := uc.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	ts := &entity.Timesheet{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    authCtx.UserID,
		ClientID:  in.ClientID,
		WeekStart: in.WeekStart,
		Hours:     in.Hours,
		Rate:      in.Rate,
		Notes:     in.Notes,
		Status:    entity.TimesheetStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.timesheets.Create(ctx, ts); err != nil {
		return nil, err
	}
	return toTimesheetResponse(ts), nil
}

// List lista hojas de tiempo: los member ven solo las suyas, los
// administradores las de toda la empresa.
func (uc *TimesheetUseCase) List(ctx context.Context, userID, companyID string, page dto.PageRequest) ([]*dto.TimesheetResponse, error) {
	authCtx, err := uc.authorizer.Authorize(ctx, userID, companyID, authz.ResourceTimesheets, authz.ActionRead)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	var list []*entity.Timesheet
	if authCtx.Role == entity.RoleMember {
		list, err = uc.timesheets.ListByUser(ctx, authCtx.UserID, page.Limit, page.Offset)
	} else {
		list, err = uc.timesheets.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TimesheetResponse, 0, len(list))
	for _, ts := range list {
		out = append(out, toTimesheetResponse(ts))
	}
	return out, nil
}

// Approve aprueba una hoja pendiente. Exige rol administrador: un member
// puede corregir sus horas (update) pero no aprobar, ni siquiera las propias.
func (uc *TimesheetUseCase) Approve(ctx context.Context, userID, timesheetID string) (*dto.TimesheetResponse, error) {
	ts, err := uc.timesheets.GetByID(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	if ts == nil {
		return nil, domain.ErrNotFound
	}
	authCtx, err := uc.authorizer.Authorize(ctx, userID, ts.CompanyID, authz.ResourceTimesheets, authz.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if authCtx.Role == entity.RoleMember {
		return nil, domain.ErrForbidden
	}
	if ts.Status != entity.TimesheetStatusPending {
		return nil, domain.ErrConflict
	}
	ts.Status = entity.TimesheetStatusApproved
	ts.ApprovedBy = authCtx.UserID
	ts.UpdatedAt = time.Now()
	if err := uc.timesheets.Update(ctx, ts); err != nil {
		return nil, err
	}
	return toTimesheetResponse(ts), nil
}

func toTimesheetResponse(ts *entity.Timesheet) *dto.TimesheetResponse {
	return &dto.TimesheetResponse{
		ID:         ts.ID,
		CompanyID:  ts.CompanyID,
		UserID:     ts.UserID,
		ClientID:   ts.ClientID,
		WeekStart:  ts.WeekStart,
		Hours:      ts.Hours,
		Rate:       ts.Rate,
		Notes:      ts.Notes,
		Status:     ts.Status,
		ApprovedBy: ts.ApprovedBy,
		CreatedAt:  ts.CreatedAt,
		UpdatedAt:  ts.UpdatedAt,
	}
}
