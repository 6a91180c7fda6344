package entity

import "time"

// ModuleKey identifica un módulo funcional activable por empresa.
// Tipo cerrado: un módulo desconocido no compila o falla en ParseModuleKey.
type ModuleKey string

const (
	ModuleClients        ModuleKey = "clients"
	ModuleInvoicing      ModuleKey = "invoicing"
	ModuleTimesheets     ModuleKey = "timesheets"
	ModuleBanking        ModuleKey = "banking"
	ModuleSubcontractors ModuleKey = "subcontractors"
	ModulePricing        ModuleKey = "pricing"
	ModuleReports        ModuleKey = "reports"
)

// AllModules devuelve los módulos conocidos (orden estable).
func AllModules() []ModuleKey {
	return []ModuleKey{
		ModuleClients, ModuleInvoicing, ModuleTimesheets, ModuleBanking,
		ModuleSubcontractors, ModulePricing, ModuleReports,
	}
}

// ValidModuleKey informa si la clave corresponde a un módulo conocido.
func ValidModuleKey(key ModuleKey) bool {
	for _, m := range AllModules() {
		if m == key {
			return true
		}
	}
	return false
}

// CompanySettings blob de configuración por empresa (columna JSONB).
// EnabledModules nil significa "todos los módulos activos": compatibilidad
// con empresas creadas antes de la activación por módulo.
type CompanySettings struct {
	EnabledModules []ModuleKey `json:"enabled_modules,omitempty"`
}

// ModuleEnabled informa si el módulo está activo según la configuración.
func (s *CompanySettings) ModuleEnabled(key ModuleKey) bool {
	if s == nil || s.EnabledModules == nil {
		return true
	}
	for _, m := range s.EnabledModules {
		if m == key {
			return true
		}
	}
	return false
}

// Company unidad operativa dentro de una Organisation. Es la frontera de
// aislamiento de datos del día a día: usuarios y clientes cuelgan de ella.
// La desactivación es lógica (se excluye de los alcances activos), nunca física.
type Company struct {
	ID             string
	OrganisationID string
	Name           string
	Slug           string // único a nivel global
	Active         bool
	Settings       *CompanySettings // nil = sin configuración, todos los módulos activos
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ModuleEnabled atajo sobre Settings.
func (c *Company) ModuleEnabled(key ModuleKey) bool {
	return c.Settings.ModuleEnabled(key)
}
