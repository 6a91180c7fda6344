package entity

import "time"

// Role rol único del usuario. Tipo cerrado: los roles inválidos se rechazan
// en ParseRole en lugar de denegar en silencio en tiempo de ejecución.
type Role string

const (
	// RolePlatformAdmin opera sobre todas las organizaciones (rol de plataforma).
	RolePlatformAdmin Role = "platform_admin"
	// RoleOrgAdmin opera sobre todas las empresas de su organización.
	RoleOrgAdmin Role = "org_admin"
	// RoleCompanyAdmin administra únicamente su empresa de origen.
	RoleCompanyAdmin Role = "company_admin"
	// RoleMember usuario estándar de la empresa, mayormente de lectura.
	RoleMember Role = "member"
)

// Valid informa si el rol es uno de los cuatro conocidos.
func (r Role) Valid() bool {
	switch r {
	case RolePlatformAdmin, RoleOrgAdmin, RoleCompanyAdmin, RoleMember:
		return true
	}
	return false
}

// ParseRole convierte un string externo (JWT, request) en Role.
// Devuelve false si el valor no corresponde a un rol conocido.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// User usuario del sistema. Tiene exactamente una empresa de origen
// (CompanyID); los roles de organización y plataforma amplían la visibilidad
// más allá de ella pero no la cambian.
type User struct {
	ID           string
	CompanyID    string // empresa de origen
	Email        string // único a nivel global
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
