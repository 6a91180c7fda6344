package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/authz"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
)

func TestAuthorize_Exito(t *testing.T) {
	f := newTwoOrgFixture()
	f.addUser("cadmin", "c1", entity.RoleCompanyAdmin, true)

	authCtx, err := f.authorizer.Authorize(context.Background(), "cadmin", "c1", authz.ResourceClients, authz.ActionCreate)
	require.NoError(t, err)

	assert.Equal(t, "cadmin", authCtx.UserID)
	assert.Equal(t, entity.RoleCompanyAdmin, authCtx.Role)
	assert.Equal(t, "c1", authCtx.CompanyID)
	assert.True(t, authCtx.Scope.Contains("c1"), "el contexto lleva el alcance para filtrar listados")
}

func TestAuthorize_FueraDeAlcance(t *testing.T) {
	f := newTwoOrgFixture()
	f.addUser("orgadmin", "c1", entity.RoleOrgAdmin, true)

	// c4 pertenece a la organización o2: fuera del alcance de un admin de o1,
	// aunque su rol tenga derechos plenos sobre clientes.
	_, err := f.authorizer.Authorize(context.Background(), "orgadmin", "c4", authz.ResourceClients, authz.ActionCreate)
	assert.ErrorIs(t, err, domain.ErrOutOfScope)
}

func TestAuthorize_AlcanceAntesQueModulo(t *testing.T) {
	f := newTwoOrgFixture()
	f.addUser("orgadmin", "c1", entity.RoleOrgAdmin, true)
	// c4 además tiene todos los módulos apagados.
	f.companies.companies["c4"].Settings = &entity.CompanySettings{EnabledModules: []entity.ModuleKey{}}

	_, err := f.authorizer.Authorize(context.Background(), "orgadmin", "c4", authz.ResourceInvoices, authz.ActionRead)
	assert.ErrorIs(t, err, domain.ErrOutOfScope,
		"cuando fallan alcance y módulo, gana el alcance: se verifica primero")
	assert.NotErrorIs(t, err, domain.ErrModuleDisabled)
}

func TestAuthorize_ModuloAntesQuePermiso(t *testing.T) {
	f := newTwoOrgFixture()
	f.addUser("member", "c1", entity.RoleMember, true)
	// Facturación apagada en c1. Un member tampoco puede crear facturas por
	// matriz, pero el gate de módulo se verifica primero: error más específico.
	f.companies.companies["c1"].Settings = &entity.CompanySettings{
		EnabledModules: []entity.ModuleKey{entity.ModuleClients},
	}

	_, err := f.authorizer.Authorize(context.Background(), "member", "c1", authz.ResourceInvoices, authz.ActionCreate)
	assert.ErrorIs(t, err, domain.ErrModuleDisabled)
	assert.NotErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthorize_MatrizDeniega(t *testing.T) {
	f := newTwoOrgFixture()
	f.addUser("member", "c1", entity.RoleMember, true)

	// Módulo activo (sin configuración = todos), empresa en alcance:
	// lo único que falla es el permiso.
	_, err := f.authorizer.Authorize(context.Background(), "member", "c1", authz.ResourceClients, authz.ActionCreate)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthorize_RecursoDeIdentidadIgnoraModulos(t *testing.T) {
	f := newTwoOrgFixture()
	f.addUser("cadmin", "c1", entity.RoleCompanyAdmin, true)
	// Todos los módulos apagados: la empresa igual puede administrarse a sí
	// misma, si no quedaría sin forma de reactivarlos.
	f.companies.companies["c1"].Settings = &entity.CompanySettings{EnabledModules: []entity.ModuleKey{}}

	_, err := f.authorizer.Authorize(context.Background(), "cadmin", "c1", authz.ResourceCompanies, authz.ActionUpdate)
	assert.NoError(t, err)
}

func TestAuthorize_UsuarioInactivo(t *testing.T) {
	f := newTwoOrgFixture()
	f.addUser("apagado", "c1", entity.RoleCompanyAdmin, false)

	_, err := f.authorizer.Authorize(context.Background(), "apagado", "c1", authz.ResourceClients, authz.ActionRead)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
