package dto

import "time"

// CreateOrganisationRequest alta de organización (solo rol de plataforma).
type CreateOrganisationRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

// OrganisationResponse organización para respuestas.
type OrganisationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
