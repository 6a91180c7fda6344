package dto

import "time"

// CreateCompanyRequest alta de empresa bajo una organización.
type CreateCompanyRequest struct {
	OrganisationID string `json:"organisation_id" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Slug           string `json:"slug" validate:"required"`
}

// UpdateCompanySettingsRequest reescribe la lista de módulos activos.
// Lista vacía deshabilita todo; null vuelve al defecto (todos activos).
type UpdateCompanySettingsRequest struct {
	EnabledModules *[]string `json:"enabled_modules"`
}

// CompanyResponse empresa para respuestas.
type CompanyResponse struct {
	ID             string    `json:"id"`
	OrganisationID string    `json:"organisation_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Active         bool      `json:"active"`
	EnabledModules []string  `json:"enabled_modules,omitempty"` // omitido = todos activos
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
