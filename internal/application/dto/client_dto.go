package dto

import "time"

// CreateClientRequest alta de cliente. RefCode es opcional: vacío hace que el
// asignador derive uno a partir del nombre.
type CreateClientRequest struct {
	Name        string `json:"name" validate:"required"`
	CompanyName string `json:"company_name"`
	RefCode     string `json:"ref_code"` // opcional; se normaliza a mayúsculas
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// UpdateClientRequest modificación de cliente. Cambiar RefCode reescribe el
// prefijo del contador; los consecutivos ya emitidos no cambian.
type UpdateClientRequest struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	RefCode     string `json:"ref_code"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// ClientResponse cliente para respuestas.
type ClientResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	RefCode     string    `json:"ref_code"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
