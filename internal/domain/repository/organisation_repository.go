package repository

import (
	"context"

	"github.com/tu-usuario/office-pro/internal/domain/entity"
)

// OrganisationRepository puerto de persistencia de organizaciones.
type OrganisationRepository interface {
	Create(ctx context.Context, org *entity.Organisation) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Organisation, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Organisation, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Organisation, error)
	Update(ctx context.Context, org *entity.Organisation) error
}
