package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// Ensure CompanyRepo implements the interface.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación PostgreSQL del repositorio de empresas.
// Settings se persiste como JSONB; NULL significa configuración por defecto
// (todos los módulos activos).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository crea el repositorio sobre un pool o una tx.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	settings, err := marshalSettings(company.Settings)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO companies (id, organisation_id, name, slug, active, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.q.Exec(ctx, query,
		company.ID, company.OrganisationID, company.Name, company.Slug,
		company.Active, settings, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `
		SELECT id, organisation_id, name, slug, active, settings, created_at, updated_at
		FROM companies
		WHERE id = $1`

	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

func (r *CompanyRepo) GetBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	query := `
		SELECT id, organisation_id, name, slug, active, settings, created_at, updated_at
		FROM companies
		WHERE slug = $1`

	return r.scanOne(r.q.QueryRow(ctx, query, slug))
}

func (r *CompanyRepo) ListByOrganisation(ctx context.Context, organisationID string, onlyActive bool) ([]*entity.Company, error) {
	// Con onlyActive la organización desactivada vacía el listado completo:
	// la resolución de alcance no debe ver empresas de tenants apagados.
	query := `
		SELECT c.id, c.organisation_id, c.name, c.slug, c.active, c.settings, c.created_at, c.updated_at
		FROM companies c
		JOIN organisations o ON o.id = c.organisation_id
		WHERE c.organisation_id = $1
		  AND (NOT $2 OR (c.active AND o.active))
		ORDER BY c.name`

	rows, err := r.q.Query(ctx, query, organisationID, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list companies by organisation: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT id, organisation_id, name, slug, active, settings, created_at, updated_at
		FROM companies
		ORDER BY name
		LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, slug = $3, active = $4, updated_at = $5
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.Slug, company.Active, company.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CompanyRepo) UpdateSettings(ctx context.Context, companyID string, settings *entity.CompanySettings) error {
	blob, err := marshalSettings(settings)
	if err != nil {
		return err
	}

	query := `
		UPDATE companies
		SET settings = $2, updated_at = now()
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, companyID, blob)
	if err != nil {
		return fmt.Errorf("update company settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CompanyRepo) scanOne(row rowScanner) (*entity.Company, error) {
	var (
		company entity.Company
		blob    []byte
	)
	err := row.Scan(&company.ID, &company.OrganisationID, &company.Name,
		&company.Slug, &company.Active, &blob, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan company: %w", err)
	}
	if company.Settings, err = unmarshalSettings(blob); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepo) scanAll(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.Company, error) {
	var companies []*entity.Company
	for rows.Next() {
		var (
			company entity.Company
			blob    []byte
		)
		if err := rows.Scan(&company.ID, &company.OrganisationID, &company.Name,
			&company.Slug, &company.Active, &blob, &company.CreatedAt, &company.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		settings, err := unmarshalSettings(blob)
		if err != nil {
			return nil, err
		}
		company.Settings = settings
		companies = append(companies, &company)
	}
	return companies, rows.Err()
}

func marshalSettings(settings *entity.CompanySettings) ([]byte, error) {
	if settings == nil {
		return nil, nil // NULL = configuración por defecto
	}
	blob, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	return blob, nil
}

func unmarshalSettings(blob []byte) (*entity.CompanySettings, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	var settings entity.CompanySettings
	if err := json.Unmarshal(blob, &settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return &settings, nil
}
