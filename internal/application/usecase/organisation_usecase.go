package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/office-pro/internal/application/dto"
	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/authz"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// OrganisationUseCase casos de uso de organizaciones. Las organizaciones
// nunca se eliminan físicamente: solo se desactivan.
type OrganisationUseCase struct {
	authorizer *Authorizer
	orgs       repository.OrganisationRepository
}

// NewOrganisationUseCase construye el caso de uso de organizaciones.
func NewOrganisationUseCase(authorizer *Authorizer, orgs repository.OrganisationRepository) *OrganisationUseCase {
	return &OrganisationUseCase{authorizer: authorizer, orgs: orgs}
}

// Create da de alta una organización (solo rol de plataforma según la matriz).
// homeCompanyID es la empresa de origen del caller, usada para la fachada.
func (uc *OrganisationUseCase) Create(ctx context.Context, userID, homeCompanyID string, in dto.CreateOrganisationRequest) (*dto.OrganisationResponse, error) {
	if in.Name == "" || in.Slug == "" {
		return nil, domain.ErrInvalidInput
	}
	authCtx, err := uc.authorizer.Authorize(ctx, userID, homeCompanyID, authz.ResourceOrganisations, authz.ActionCreate)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	org := &entity.Organisation{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Slug:      strings.ToLower(strings.TrimSpace(in.Slug)),
		Active:    true,
		CreatedBy: authCtx.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.orgs.Create(ctx, org); err != nil {
		return nil, err
	}
	return toOrganisationResponse(org), nil
}

// Get devuelve una organización por id.
func (uc *OrganisationUseCase) Get(ctx context.Context, userID, homeCompanyID, orgID string) (*dto.OrganisationResponse, error) {
	if _, err := uc.authorizer.Authorize(ctx, userID, homeCompanyID, authz.ResourceOrganisations, authz.ActionRead); err != nil {
		return nil, err
	}
	org, err := uc.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return toOrganisationResponse(org), nil
}

// List lista organizaciones con paginación.
func (uc *OrganisationUseCase) List(ctx context.Context, userID, homeCompanyID string, page dto.PageRequest) ([]*dto.OrganisationResponse, error) {
	if _, err := uc.authorizer.Authorize(ctx, userID, homeCompanyID, authz.ResourceOrganisations, authz.ActionRead); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.orgs.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrganisationResponse, 0, len(list))
	for _, org := range list {
		out = append(out, toOrganisationResponse(org))
	}
	return out, nil
}

// Deactivate desactiva la organización: sus empresas quedan fuera de los
// alcances "todas" pero nada se borra.
func (uc *OrganisationUseCase) Deactivate(ctx context.Context, userID, homeCompanyID, orgID string) error {
	if _, err := uc.authorizer.Authorize(ctx, userID, homeCompanyID, authz.ResourceOrganisations, authz.ActionDelete); err != nil {
		return err
	}
	org, err := uc.orgs.GetByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org == nil {
		return domain.ErrNotFound
	}
	org.Active = false
	org.UpdatedAt = time.Now()
	return uc.orgs.Update(ctx, org)
}

func toOrganisationResponse(o *entity.Organisation) *dto.OrganisationResponse {
	return &dto.OrganisationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Slug:      o.Slug,
		Active:    o.Active,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
