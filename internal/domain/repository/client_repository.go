package repository

import (
	"context"

	"github.com/tu-usuario/office-pro/internal/domain/entity"
)

// ClientRepository puerto de persistencia de clientes.
type ClientRepository interface {
	// Create devuelve domain.ErrDuplicateCode si el par (company_id, ref_code)
	// ya existe. El constraint único de la base cierra la ventana entre el
	// sondeo del código y el insert.
	Create(ctx context.Context, client *entity.Client) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// GetByCompanyAndCode busca por código dentro de la empresa (sondeo).
	GetByCompanyAndCode(ctx context.Context, companyID, refCode string) (*entity.Client, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Client, error)
	// ListByCompanies listado filtrado por alcance. companyIDs nil = sin
	// filtro (alcance de plataforma).
	ListByCompanies(ctx context.Context, companyIDs []string, limit, offset int) ([]*entity.Client, error)
	// Update devuelve domain.ErrDuplicateCode si el nuevo ref_code choca.
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
}
