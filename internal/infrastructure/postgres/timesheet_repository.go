package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// Ensure TimesheetRepo implements the interface.
var _ repository.TimesheetRepository = (*TimesheetRepo)(nil)

// TimesheetRepo implementación PostgreSQL del repositorio de hojas de tiempo.
type TimesheetRepo struct {
	q Querier
}

// NewTimesheetRepository crea el repositorio sobre un pool o una tx.
func NewTimesheetRepository(q Querier) *TimesheetRepo {
	return &TimesheetRepo{q: q}
}

func (r *TimesheetRepo) Create(ctx context.Context, ts *entity.Timesheet) error {
	query := `
		INSERT INTO timesheets (id, company_id, user_id, client_id, week_start,
			hours, rate, notes, status, approved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.q.Exec(ctx, query,
		ts.ID, ts.CompanyID, ts.UserID, ts.ClientID, ts.WeekStart,
		ts.Hours, ts.Rate, ts.Notes, ts.Status, nullableID(ts.ApprovedBy),
		ts.CreatedAt, ts.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert timesheet: %w", err)
	}
	return nil
}

func (r *TimesheetRepo) GetByID(ctx context.Context, id string) (*entity.Timesheet, error) {
	query := `
		SELECT id, company_id, user_id, client_id, week_start,
		       hours, rate, notes, status, approved_by, created_at, updated_at
		FROM timesheets
		WHERE id = $1`

	var (
		ts         entity.Timesheet
		approvedBy *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&ts.ID, &ts.CompanyID, &ts.UserID, &ts.ClientID, &ts.WeekStart,
		&ts.Hours, &ts.Rate, &ts.Notes, &ts.Status, &approvedBy,
		&ts.CreatedAt, &ts.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan timesheet: %w", err)
	}
	if approvedBy != nil {
		ts.ApprovedBy = *approvedBy
	}
	return &ts, nil
}

func (r *TimesheetRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Timesheet, error) {
	query := `
		SELECT id, company_id, user_id, client_id, week_start,
		       hours, rate, notes, status, approved_by, created_at, updated_at
		FROM timesheets
		WHERE company_id = $1
		ORDER BY week_start DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list timesheets by company: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *TimesheetRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Timesheet, error) {
	query := `
		SELECT id, company_id, user_id, client_id, week_start,
		       hours, rate, notes, status, approved_by, created_at, updated_at
		FROM timesheets
		WHERE user_id = $1
		ORDER BY week_start DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list timesheets by user: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *TimesheetRepo) Update(ctx context.Context, ts *entity.Timesheet) error {
	query := `
		UPDATE timesheets
		SET hours = $2, rate = $3, notes = $4, status = $5, approved_by = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query,
		ts.ID, ts.Hours, ts.Rate, ts.Notes, ts.Status,
		nullableID(ts.ApprovedBy), ts.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update timesheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TimesheetRepo) scanAll(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.Timesheet, error) {
	var sheets []*entity.Timesheet
	for rows.Next() {
		var (
			ts         entity.Timesheet
			approvedBy *string
		)
		if err := rows.Scan(&ts.ID, &ts.CompanyID, &ts.UserID, &ts.ClientID,
			&ts.WeekStart, &ts.Hours, &ts.Rate, &ts.Notes, &ts.Status,
			&approvedBy, &ts.CreatedAt, &ts.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan timesheet: %w", err)
		}
		if approvedBy != nil {
			ts.ApprovedBy = *approvedBy
		}
		sheets = append(sheets, &ts)
	}
	return sheets, rows.Err()
}
