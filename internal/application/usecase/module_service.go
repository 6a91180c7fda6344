package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// ModuleService verifica qué módulos tiene activos una empresa.
// Es el único punto de la aplicación que conoce la lógica de activación.
// Es un gate independiente de la matriz de permisos: un company_admin con
// derechos plenos sobre facturas sigue bloqueado si el operador de la
// plataforma desactivó el módulo de facturación para su empresa.
type ModuleService struct {
	companies repository.CompanyRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(companies repository.CompanyRepository) *ModuleService {
	return &ModuleService{companies: companies}
}

// IsModuleEnabled informa si la empresa tiene el módulo activo según su blob
// de configuración (sin configuración = todos activos, por compatibilidad).
// Devuelve error solo ante fallos de infraestructura o empresa inexistente.
func (s *ModuleService) IsModuleEnabled(ctx context.Context, companyID string, key entity.ModuleKey) (bool, error) {
	if companyID == "" || key == "" {
		return false, fmt.Errorf("module: companyID y moduleKey son obligatorios")
	}
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return false, fmt.Errorf("consultar empresa %s: %w", companyID, err)
	}
	if company == nil {
		return false, domain.ErrNotFound
	}
	return company.ModuleEnabled(key), nil
}

// RequireModule falla con domain.ErrModuleDisabled si el módulo no está activo.
func (s *ModuleService) RequireModule(ctx context.Context, companyID string, key entity.ModuleKey) error {
	enabled, err := s.IsModuleEnabled(ctx, companyID, key)
	if err != nil {
		return err
	}
	if !enabled {
		return fmt.Errorf("%w: %s", domain.ErrModuleDisabled, key)
	}
	return nil
}
