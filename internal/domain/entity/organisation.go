package entity

import "time"

// Organisation tenant raíz del sistema. Agrupa una o más Companies.
// Nunca se elimina físicamente: solo se desactiva (Active = false).
type Organisation struct {
	ID        string
	Name      string
	Slug      string // único a nivel global
	Active    bool
	CreatedBy string // ID del usuario plataforma que la creó
	CreatedAt time.Time
	UpdatedAt time.Time
}
