package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTimesheetRequest reporte de horas de una semana contra un cliente.
type CreateTimesheetRequest struct {
	ClientID  string          `json:"client_id" validate:"required"`
	WeekStart time.Time       `json:"week_start" validate:"required"`
	Hours     decimal.Decimal `json:"hours" validate:"required"`
	Rate      decimal.Decimal `json:"rate"`
	Notes     string          `json:"notes"`
}

// TimesheetResponse hoja de tiempo para respuestas.
type TimesheetResponse struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	UserID     string          `json:"user_id"`
	ClientID   string          `json:"client_id"`
	WeekStart  time.Time       `json:"week_start"`
	Hours      decimal.Decimal `json:"hours"`
	Rate       decimal.Decimal `json:"rate"`
	Notes      string          `json:"notes,omitempty"`
	Status     string          `json:"status"`
	ApprovedBy string          `json:"approved_by,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
