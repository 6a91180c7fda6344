package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/authz"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// AuthorizedContext resultado de una autorización exitosa. Lleva el alcance
// resuelto para que los listados puedan filtrar ("clientes en mi alcance")
// sin resolver dos veces.
type AuthorizedContext struct {
	UserID    string
	Role      entity.Role
	CompanyID string
	Scope     authz.Scope
	Resource  authz.Resource
	Action    authz.Action
}

// Authorizer puerta de entrada única de toda acción de negocio:
// resolver alcance → gate de módulo → matriz de permisos, en ese orden.
// Solo lee estado actual de identidad/roles/configuración; sin efectos.
type Authorizer struct {
	users    repository.UserRepository
	resolver *ScopeResolver
	modules  *ModuleService
}

// NewAuthorizer construye la fachada de autorización.
func NewAuthorizer(users repository.UserRepository, resolver *ScopeResolver, modules *ModuleService) *Authorizer {
	return &Authorizer{users: users, resolver: resolver, modules: modules}
}

// Authorize decide si userID puede ejecutar action sobre resource dentro de
// companyID. Fallos, en orden de verificación:
//
//   - domain.ErrUserNotFound   → el usuario no existe o está inactivo.
//   - domain.ErrOutOfScope     → la empresa queda fuera del alcance del rol.
//   - domain.ErrModuleDisabled → el módulo del recurso no está activo en la
//     empresa. Se verifica antes que el permiso para dar el error más
//     específico cuando ambos fallarían; el orden no cambia el resultado.
//   - domain.ErrForbidden      → la matriz deniega (rol, recurso, acción).
func (a *Authorizer) Authorize(ctx context.Context, userID, companyID string, resource authz.Resource, action authz.Action) (*AuthorizedContext, error) {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("autorizar usuario %s: %w", userID, err)
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUserNotFound
	}

	scope, err := a.resolver.ScopeFor(ctx, user)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(companyID) {
		return nil, fmt.Errorf("%w: empresa %s", domain.ErrOutOfScope, companyID)
	}

	if key, gated := authz.ModuleFor(resource); gated {
		if err := a.modules.RequireModule(ctx, companyID, key); err != nil {
			return nil, err
		}
	}

	if !authz.IsAllowed(user.Role, resource, action) {
		return nil, fmt.Errorf("%w: %s no puede %s sobre %s", domain.ErrForbidden, user.Role, action, resource)
	}

	return &AuthorizedContext{
		UserID:    user.ID,
		Role:      user.Role,
		CompanyID: companyID,
		Scope:     scope,
		Resource:  resource,
		Action:    action,
	}, nil
}
