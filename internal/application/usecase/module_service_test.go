package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
)

func TestIsModuleEnabled_SinConfiguracionTodoActivo(t *testing.T) {
	f := newTwoOrgFixture()
	// c1 no tiene Settings: compatibilidad con empresas previas al gate.
	for _, key := range entity.AllModules() {
		enabled, err := f.modules.IsModuleEnabled(context.Background(), "c1", key)
		require.NoError(t, err)
		assert.True(t, enabled, "sin configuración el módulo %s está activo", key)
	}
}

func TestIsModuleEnabled_ListaVaciaApagaTodo(t *testing.T) {
	f := newTwoOrgFixture()
	f.companies.companies["c1"].Settings = &entity.CompanySettings{EnabledModules: []entity.ModuleKey{}}

	enabled, err := f.modules.IsModuleEnabled(context.Background(), "c1", entity.ModuleInvoicing)
	require.NoError(t, err)
	assert.False(t, enabled, "lista vacía no es lo mismo que lista ausente: apaga todo")
}

func TestIsModuleEnabled_Subconjunto(t *testing.T) {
	f := newTwoOrgFixture()
	f.companies.companies["c1"].Settings = &entity.CompanySettings{
		EnabledModules: []entity.ModuleKey{entity.ModuleClients, entity.ModuleTimesheets},
	}

	enabled, err := f.modules.IsModuleEnabled(context.Background(), "c1", entity.ModuleClients)
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = f.modules.IsModuleEnabled(context.Background(), "c1", entity.ModuleInvoicing)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestIsModuleEnabled_EmpresaInexistente(t *testing.T) {
	f := newTwoOrgFixture()

	_, err := f.modules.IsModuleEnabled(context.Background(), "fantasma", entity.ModuleClients)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIsModuleEnabled_ArgumentosVacios(t *testing.T) {
	f := newTwoOrgFixture()

	_, err := f.modules.IsModuleEnabled(context.Background(), "", entity.ModuleClients)
	assert.Error(t, err)
	_, err = f.modules.IsModuleEnabled(context.Background(), "c1", "")
	assert.Error(t, err)
}

func TestRequireModule_Desactivado(t *testing.T) {
	f := newTwoOrgFixture()
	f.companies.companies["c1"].Settings = &entity.CompanySettings{EnabledModules: []entity.ModuleKey{}}

	err := f.modules.RequireModule(context.Background(), "c1", entity.ModuleBanking)
	assert.ErrorIs(t, err, domain.ErrModuleDisabled)

	assert.NoError(t, f.modules.RequireModule(context.Background(), "c2", entity.ModuleBanking),
		"c2 sin configuración: todo activo")
}
