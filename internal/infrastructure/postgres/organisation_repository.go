package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// Ensure OrganisationRepo implements the interface.
var _ repository.OrganisationRepository = (*OrganisationRepo)(nil)

// OrganisationRepo implementación PostgreSQL del repositorio de organizaciones.
type OrganisationRepo struct {
	q Querier
}

// NewOrganisationRepository crea el repositorio sobre un pool o una tx.
func NewOrganisationRepository(q Querier) *OrganisationRepo {
	return &OrganisationRepo{q: q}
}

func (r *OrganisationRepo) Create(ctx context.Context, org *entity.Organisation) error {
	query := `
		INSERT INTO organisations (id, name, slug, active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.q.Exec(ctx, query,
		org.ID, org.Name, org.Slug, org.Active, nullableID(org.CreatedBy),
		org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organisation: %w", err)
	}
	return nil
}

func (r *OrganisationRepo) GetByID(ctx context.Context, id string) (*entity.Organisation, error) {
	query := `
		SELECT id, name, slug, active, created_by, created_at, updated_at
		FROM organisations
		WHERE id = $1`

	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

func (r *OrganisationRepo) GetBySlug(ctx context.Context, slug string) (*entity.Organisation, error) {
	query := `
		SELECT id, name, slug, active, created_by, created_at, updated_at
		FROM organisations
		WHERE slug = $1`

	return r.scanOne(r.q.QueryRow(ctx, query, slug))
}

func (r *OrganisationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Organisation, error) {
	query := `
		SELECT id, name, slug, active, created_by, created_at, updated_at
		FROM organisations
		ORDER BY name
		LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list organisations: %w", err)
	}
	defer rows.Close()

	var orgs []*entity.Organisation
	for rows.Next() {
		var (
			org       entity.Organisation
			createdBy *string
		)
		if err := rows.Scan(&org.ID, &org.Name, &org.Slug, &org.Active,
			&createdBy, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan organisation: %w", err)
		}
		if createdBy != nil {
			org.CreatedBy = *createdBy
		}
		orgs = append(orgs, &org)
	}
	return orgs, rows.Err()
}

func (r *OrganisationRepo) Update(ctx context.Context, org *entity.Organisation) error {
	query := `
		UPDATE organisations
		SET name = $2, slug = $3, active = $4, updated_at = $5
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, org.ID, org.Name, org.Slug, org.Active, org.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update organisation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *OrganisationRepo) scanOne(row rowScanner) (*entity.Organisation, error) {
	var (
		org       entity.Organisation
		createdBy *string
	)
	err := row.Scan(&org.ID, &org.Name, &org.Slug, &org.Active,
		&createdBy, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan organisation: %w", err)
	}
	if createdBy != nil {
		org.CreatedBy = *createdBy
	}
	return &org, nil
}

// nullableID convierte "" en NULL para columnas UUID opcionales.
func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
