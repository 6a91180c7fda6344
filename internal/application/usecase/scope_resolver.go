package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/authz"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// ScopeResolver calcula el conjunto de empresas que un usuario puede tocar
// según la jerarquía de roles. Puro respecto a sus entradas: mismo estado del
// usuario, mismo alcance. Se invoca fresco en cada request; no se cachea
// porque rol y empresa de origen pueden cambiar entre requests.
type ScopeResolver struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
}

// NewScopeResolver construye el resolutor de alcance.
func NewScopeResolver(users repository.UserRepository, companies repository.CompanyRepository) *ScopeResolver {
	return &ScopeResolver{users: users, companies: companies}
}

// ResolveScope resuelve el alcance del usuario. Devuelve
// domain.ErrUserNotFound si el id no corresponde a un usuario activo.
func (r *ScopeResolver) ResolveScope(ctx context.Context, userID string) (authz.Scope, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return authz.Scope{}, fmt.Errorf("resolver usuario %s: %w", userID, err)
	}
	if user == nil || !user.Active {
		return authz.Scope{}, domain.ErrUserNotFound
	}
	return r.ScopeFor(ctx, user)
}

// ScopeFor calcula el alcance para un usuario ya cargado y validado.
//
// Las empresas y organizaciones desactivadas quedan fuera de los alcances
// "todas"; la empresa de origen del propio usuario se incluye aunque esté
// desactivada (la desactivación es asunto de flujo, no de identidad; el
// caller revisa el flag Active de la empresa donde importe).
func (r *ScopeResolver) ScopeFor(ctx context.Context, user *entity.User) (authz.Scope, error) {
	switch user.Role {
	case entity.RolePlatformAdmin:
		return authz.AllCompanies(), nil

	case entity.RoleOrgAdmin:
		home, err := r.companies.GetByID(ctx, user.CompanyID)
		if err != nil {
			return authz.Scope{}, fmt.Errorf("empresa de origen %s: %w", user.CompanyID, err)
		}
		if home == nil {
			// Usuario apuntando a una empresa inexistente: defecto de datos.
			return authz.Scope{}, fmt.Errorf("empresa de origen %s del usuario %s: %w", user.CompanyID, user.ID, domain.ErrNotFound)
		}
		siblings, err := r.companies.ListByOrganisation(ctx, home.OrganisationID, true)
		if err != nil {
			return authz.Scope{}, fmt.Errorf("empresas de la organización %s: %w", home.OrganisationID, err)
		}
		ids := make([]string, 0, len(siblings)+1)
		homeIncluded := false
		for _, c := range siblings {
			ids = append(ids, c.ID)
			if c.ID == home.ID {
				homeIncluded = true
			}
		}
		if !homeIncluded {
			ids = append(ids, home.ID)
		}
		return authz.OrganisationScope(home.OrganisationID, ids), nil

	default:
		// company_admin y member: exactamente la empresa de origen.
		return authz.CompanyScope(user.CompanyID), nil
	}
}
