package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/office-pro/internal/application/dto"
	"github.com/tu-usuario/office-pro/internal/application/usecase"
	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
)

func newCompanyUC(f *fixture) *usecase.CompanyUseCase {
	return usecase.NewCompanyUseCase(f.authorizer, f.companies, f.orgs)
}

func TestCompanyCreate_OrgAdminSoloEnSuOrganizacion(t *testing.T) {
	f := newTwoOrgFixture()
	f.addUser("orgadmin", "c1", entity.RoleOrgAdmin, true)
	uc := newCompanyUC(f)

	resp, err := uc.Create(context.Background(), "orgadmin", "c1", dto.CreateCompanyRequest{
		OrganisationID: "o1", Name: "Nueva", Slug: "Nueva-SL",
	})
	require.NoError(t, err)
	assert.Equal(t, "o1", resp.OrganisationID)
	assert.Equal(t, "nueva-sl", resp.Slug, "el slug se normaliza a minúsculas")
	assert.Empty(t, resp.EnabledModules, "empresa nueva sin configuración: todos los módulos activos")

	_, err = uc.Create(context.Background(), "orgadmin", "c1", dto.CreateCompanyRequest{
		OrganisationID: "o2", Name: "Intrusa", Slug: "intrusa",
	})
	assert.ErrorIs(t, err, domain.ErrOutOfScope, "la organización destino debe estar en alcance")
}

func TestCompanyCreate_OrganizacionInactiva(t *testing.T) {
	f := newTwoOrgFixture()
	f.addUser("admin", "c1", entity.RolePlatformAdmin, true)
	f.orgs.orgs["o2"].Active = false
	uc := newCompanyUC(f)

	_, err := uc.Create(context.Background(), "admin", "c1", dto.CreateCompanyRequest{
		OrganisationID: "o2", Name: "Tarde", Slug: "tarde",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "no se crean empresas bajo organizaciones desactivadas")
}

func TestCompanyUpdateSettings_ModuloDesconocido(t *testing.T) {
	f := newTwoOrgFixture()
	f.addUser("cadmin", "c1", entity.RoleCompanyAdmin, true)
	uc := newCompanyUC(f)

	mods := []string{"clients", "teleportation"}
	_, err := uc.UpdateSettings(context.Background(), "cadmin", "c1", dto.UpdateCompanySettingsRequest{
		EnabledModules: &mods,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una clave de módulo desconocida rechaza todo el request")
}

func TestCompanyUpdateSettings_SubconjuntoYGate(t *testing.T) {
	f := newTwoOrgFixture()
	f.addUser("cadmin", "c1", entity.RoleCompanyAdmin, true)
	uc := newCompanyUC(f)

	mods := []string{"clients", "timesheets"}
	resp, err := uc.UpdateSettings(context.Background(), "cadmin", "c1", dto.UpdateCompanySettingsRequest{
		EnabledModules: &mods,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, mods, resp.EnabledModules)

	// El gate refleja la nueva configuración de inmediato.
	enabled, err := f.modules.IsModuleEnabled(context.Background(), "c1", entity.ModuleInvoicing)
	require.NoError(t, err)
	assert.False(t, enabled)
	enabled, err = f.modules.IsModuleEnabled(context.Background(), "c1", entity.ModuleClients)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestCompanyUpdateSettings_NullVuelveAlDefecto(t *testing.T) {
	f := newTwoOrgFixture()
	f.addUser("cadmin", "c1", entity.RoleCompanyAdmin, true)
	f.companies.companies["c1"].Settings = &entity.CompanySettings{EnabledModules: []entity.ModuleKey{}}
	uc := newCompanyUC(f)

	resp, err := uc.UpdateSettings(context.Background(), "cadmin", "c1", dto.UpdateCompanySettingsRequest{
		EnabledModules: nil,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.EnabledModules)

	enabled, err := f.modules.IsModuleEnabled(context.Background(), "c1", entity.ModuleBanking)
	require.NoError(t, err)
	assert.True(t, enabled, "null borra la configuración: vuelve el defecto todo-activo")
}

func TestCompanyDeactivate_SaleDeLosAlcances(t *testing.T) {
	f := newTwoOrgFixture()
	f.addUser("admin", "c1", entity.RolePlatformAdmin, true)
	f.addUser("orgadmin", "c1", entity.RoleOrgAdmin, true)
	uc := newCompanyUC(f)

	require.NoError(t, uc.Deactivate(context.Background(), "admin", "c2"))

	scope, err := f.resolver.ResolveScope(context.Background(), "orgadmin")
	require.NoError(t, err)
	assert.False(t, scope.Contains("c2"), "la empresa desactivada desaparece del alcance de organización")

	// Nada se borra: la empresa sigue consultable.
	c2, err := f.companies.GetByID(context.Background(), "c2")
	require.NoError(t, err)
	require.NotNil(t, c2)
	assert.False(t, c2.Active)
}
