package entity

import "time"

// Client cliente facturable de una empresa. RefCode es único dentro de su
// Company (no a nivel global) y se usa como prefijo de los consecutivos.
type Client struct {
	ID          string
	CompanyID   string
	RefCode     string // ej. "BS1"; letras + dígitos, único por empresa
	Name        string // nombre de la persona de contacto
	CompanyName string // razón social; preferida al derivar el código
	Email       string
	Phone       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
