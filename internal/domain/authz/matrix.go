package authz

import "github.com/tu-usuario/office-pro/internal/domain/entity"

// Resource área de datos sobre la que se autoriza una acción.
type Resource string

const (
	ResourceClients        Resource = "clients"
	ResourceInvoices       Resource = "invoices"
	ResourceTimesheets     Resource = "timesheets"
	ResourceBanking        Resource = "banking"
	ResourceSubcontractors Resource = "subcontractors"
	ResourcePricing        Resource = "pricing"
	ResourceReports        Resource = "reports"
	ResourceUsers          Resource = "users"
	ResourceCompanies      Resource = "companies"
	ResourceOrganisations  Resource = "organisations"
)

// Action acción CRUD sobre un recurso.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type actionSet map[Action]bool

func actions(as ...Action) actionSet {
	set := make(actionSet, len(as))
	for _, a := range as {
		set[a] = true
	}
	return set
}

var (
	crud     = actions(ActionCreate, ActionRead, ActionUpdate, ActionDelete)
	readOnly = actions(ActionRead)
	noDelete = actions(ActionCreate, ActionRead, ActionUpdate)
)

// matrix tabla estática rol × recurso × acción. Los derechos son datos, no
// condicionales repartidos por los handlers: ajustar un rol es editar esta
// tabla. Un par (rol, recurso) ausente deniega.
//
// platform_admin y org_admin son supraconjuntos de company_admin;
// member es mayormente de lectura.
var matrix = map[entity.Role]map[Resource]actionSet{
	entity.RolePlatformAdmin: {
		ResourceClients:        crud,
		ResourceInvoices:       crud,
		ResourceTimesheets:     crud,
		ResourceBanking:        crud,
		ResourceSubcontractors: crud,
		ResourcePricing:        crud,
		ResourceReports:        crud,
		ResourceUsers:          crud,
		ResourceCompanies:      crud,
		ResourceOrganisations:  crud,
	},
	entity.RoleOrgAdmin: {
		ResourceClients:        crud,
		ResourceInvoices:       crud,
		ResourceTimesheets:     crud,
		ResourceBanking:        crud,
		ResourceSubcontractors: crud,
		ResourcePricing:        crud,
		ResourceReports:        crud,
		ResourceUsers:          crud,
		ResourceCompanies:      noDelete,
		ResourceOrganisations:  readOnly,
	},
	entity.RoleCompanyAdmin: {
		ResourceClients:        crud,
		ResourceInvoices:       crud,
		ResourceTimesheets:     crud,
		ResourceBanking:        crud,
		ResourceSubcontractors: crud,
		ResourcePricing:        crud,
		ResourceReports:        readOnly,
		ResourceUsers:          noDelete,
		ResourceCompanies:      actions(ActionRead, ActionUpdate),
	},
	entity.RoleMember: {
		ResourceClients:    readOnly,
		ResourceInvoices:   readOnly,
		ResourceTimesheets: noDelete, // reporta y corrige sus horas
		ResourceReports:    readOnly,
		ResourceCompanies:  readOnly,
	},
}

// IsAllowed consulta la matriz de permisos. Nunca falla: un par
// (rol, recurso) desconocido deniega por definición.
func IsAllowed(role entity.Role, resource Resource, action Action) bool {
	perms, ok := matrix[role]
	if !ok {
		return false
	}
	set, ok := perms[resource]
	if !ok {
		return false
	}
	return set[action]
}

// gateable mapea recursos a su módulo activable por empresa. Los recursos de
// identidad (users, companies, organisations) no pasan por el gate: de lo
// contrario una empresa podría quedar sin forma de reactivar sus módulos.
var gateable = map[Resource]entity.ModuleKey{
	ResourceClients:        entity.ModuleClients,
	ResourceInvoices:       entity.ModuleInvoicing,
	ResourceTimesheets:     entity.ModuleTimesheets,
	ResourceBanking:        entity.ModuleBanking,
	ResourceSubcontractors: entity.ModuleSubcontractors,
	ResourcePricing:        entity.ModulePricing,
	ResourceReports:        entity.ModuleReports,
}

// ModuleFor devuelve el módulo que controla el recurso, si lo hay.
func ModuleFor(resource Resource) (entity.ModuleKey, bool) {
	key, ok := gateable[resource]
	return key, ok
}
