package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/office-pro/internal/application/dto"
	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/authz"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// CompanyUseCase casos de uso de empresas, incluida la cara de escritura del
// gate de módulos (UpdateSettings).
type CompanyUseCase struct {
	authorizer *Authorizer
	companies  repository.CompanyRepository
	orgs       repository.OrganisationRepository
}

// NewCompanyUseCase construye el caso de uso de empresas.
func NewCompanyUseCase(authorizer *Authorizer, companies repository.CompanyRepository, orgs repository.OrganisationRepository) *CompanyUseCase {
	return &CompanyUseCase{authorizer: authorizer, companies: companies, orgs: orgs}
}

// Create da de alta una empresa bajo una organización. El caller debe tener
// la organización destino dentro de su alcance.
func (uc *CompanyUseCase) Create(ctx context.Context, userID, homeCompanyID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.OrganisationID == "" || in.Name == "" || in.Slug == "" {
		return nil, domain.ErrInvalidInput
	}
	authCtx, err := uc.authorizer.Authorize(ctx, userID, homeCompanyID, authz.ResourceCompanies, authz.ActionCreate)
	if err != nil {
		return nil, err
	}
	if !authCtx.Scope.Unbounded() && authCtx.Scope.OrganisationID != in.OrganisationID {
		return nil, fmt.Errorf("%w: organización %s", domain.ErrOutOfScope, in.OrganisationID)
	}
	org, err := uc.orgs.GetByID(ctx, in.OrganisationID)
	if err != nil {
		return nil, err
	}
	if org == nil || !org.Active {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	company := &entity.Company{
		ID:             uuid.New().String(),
		OrganisationID: in.OrganisationID,
		Name:           in.Name,
		Slug:           strings.ToLower(strings.TrimSpace(in.Slug)),
		Active:         true,
		Settings:       nil, // sin configuración = todos los módulos activos
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Get devuelve una empresa si está dentro del alcance del usuario.
func (uc *CompanyUseCase) Get(ctx context.Context, userID, companyID string) (*dto.CompanyResponse, error) {
	if _, err := uc.authorizer.Authorize(ctx, userID, companyID, authz.ResourceCompanies, authz.ActionRead); err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// List lista las empresas del alcance del usuario.
func (uc *CompanyUseCase) List(ctx context.Context, userID, homeCompanyID string, page dto.PageRequest) ([]*dto.CompanyResponse, error) {
	authCtx, err := uc.authorizer.Authorize(ctx, userID, homeCompanyID, authz.ResourceCompanies, authz.ActionRead)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()

	var list []*entity.Company
	switch {
	case authCtx.Scope.Unbounded():
		list, err = uc.companies.List(ctx, page.Limit, page.Offset)
	case authCtx.Scope.OrganisationID != "":
		list, err = uc.companies.ListByOrganisation(ctx, authCtx.Scope.OrganisationID, false)
	default:
		var home *entity.Company
		home, err = uc.companies.GetByID(ctx, homeCompanyID)
		if home != nil {
			list = []*entity.Company{home}
		}
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

// UpdateSettings reescribe la lista de módulos activos de la empresa.
// EnabledModules nil vuelve al defecto (todos activos); lista vacía
// deshabilita todos los módulos activables.
func (uc *CompanyUseCase) UpdateSettings(ctx context.Context, userID, companyID string, in dto.UpdateCompanySettingsRequest) (*dto.CompanyResponse, error) {
	if _, err := uc.authorizer.Authorize(ctx, userID, companyID, authz.ResourceCompanies, authz.ActionUpdate); err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	var settings *entity.CompanySettings
	if in.EnabledModules != nil {
		keys := make([]entity.ModuleKey, 0, len(*in.EnabledModules))
		for _, raw := range *in.EnabledModules {
			key := entity.ModuleKey(raw)
			if !entity.ValidModuleKey(key) {
				return nil, fmt.Errorf("%w: módulo desconocido %q", domain.ErrInvalidInput, raw)
			}
			keys = append(keys, key)
		}
		settings = &entity.CompanySettings{EnabledModules: keys}
	}
	if err := uc.companies.UpdateSettings(ctx, companyID, settings); err != nil {
		return nil, err
	}
	company.Settings = settings
	company.UpdatedAt = time.Now()
	return toCompanyResponse(company), nil
}

// Deactivate desactiva la empresa (exclusión lógica de los alcances activos).
func (uc *CompanyUseCase) Deactivate(ctx context.Context, userID, companyID string) error {
	if _, err := uc.authorizer.Authorize(ctx, userID, companyID, authz.ResourceCompanies, authz.ActionDelete); err != nil {
		return err
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	company.Active = false
	company.UpdatedAt = time.Now()
	return uc.companies.Update(ctx, company)
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	resp := &dto.CompanyResponse{
		ID:             c.ID,
		OrganisationID: c.OrganisationID,
		Name:           c.Name,
		Slug:           c.Slug,
		Active:         c.Active,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if c.Settings != nil && c.Settings.EnabledModules != nil {
		mods := make([]string, 0, len(c.Settings.EnabledModules))
		for _, m := range c.Settings.EnabledModules {
			mods = append(mods, string(m))
		}
		resp.EnabledModules = mods
	}
	return resp
}
