package repository

import (
	"context"

	"github.com/tu-usuario/office-pro/internal/domain/entity"
)

// CompanyRepository puerto de persistencia de empresas.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Company, error)
	// ListByOrganisation lista las empresas de una organización.
	// Con onlyActive se excluyen las empresas desactivadas y las de
	// organizaciones desactivadas (resolución de alcance).
	ListByOrganisation(ctx context.Context, organisationID string, onlyActive bool) ([]*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	// UpdateSettings reescribe solo el blob de configuración.
	UpdateSettings(ctx context.Context, companyID string, settings *entity.CompanySettings) error
}
