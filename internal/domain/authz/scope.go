package authz

// ScopeKind clase de alcance resuelto para un usuario.
type ScopeKind string

const (
	// ScopeAllCompanies todas las empresas del sistema (rol de plataforma).
	ScopeAllCompanies ScopeKind = "all"
	// ScopeOrganisation las empresas de una organización (rol org_admin).
	ScopeOrganisation ScopeKind = "organisation"
	// ScopeCompany exactamente la empresa de origen (roles de empresa).
	ScopeCompany ScopeKind = "company"
)

// Scope conjunto de empresas que un usuario puede tocar. Es un valor
// inmutable calculado por request; no se cachea entre requests porque el rol
// o la empresa de origen pueden cambiar entre uno y otro.
type Scope struct {
	Kind           ScopeKind
	OrganisationID string   // poblado con ScopeOrganisation
	CompanyIDs     []string // empresas resueltas; vacío con ScopeAllCompanies
}

// AllCompanies alcance total de plataforma.
func AllCompanies() Scope {
	return Scope{Kind: ScopeAllCompanies}
}

// OrganisationScope alcance sobre las empresas listadas de una organización.
func OrganisationScope(organisationID string, companyIDs []string) Scope {
	return Scope{Kind: ScopeOrganisation, OrganisationID: organisationID, CompanyIDs: companyIDs}
}

// CompanyScope alcance sobre una única empresa.
func CompanyScope(companyID string) Scope {
	return Scope{Kind: ScopeCompany, CompanyIDs: []string{companyID}}
}

// Contains informa si la empresa está dentro del alcance.
func (s Scope) Contains(companyID string) bool {
	if companyID == "" {
		return false
	}
	if s.Kind == ScopeAllCompanies {
		return true
	}
	for _, id := range s.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// Filter devuelve la intersección entre las empresas pedidas y el alcance.
// Con lista vacía devuelve todo el alcance (nil para plataforma = sin filtro).
// Útil para armar el "WHERE company_id IN (...)" de listados y reportes.
func (s Scope) Filter(requested []string) []string {
	if s.Kind == ScopeAllCompanies {
		return requested
	}
	if len(requested) == 0 {
		out := make([]string, len(s.CompanyIDs))
		copy(out, s.CompanyIDs)
		return out
	}
	var out []string
	for _, id := range requested {
		if s.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// Unbounded informa si el alcance no restringe por empresa (plataforma).
func (s Scope) Unbounded() bool {
	return s.Kind == ScopeAllCompanies
}
