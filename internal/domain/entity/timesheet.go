package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una hoja de tiempo.
const (
	TimesheetStatusPending  = "pending"
	TimesheetStatusApproved = "approved"
	TimesheetStatusRejected = "rejected"
)

// Timesheet horas reportadas por un usuario contra un cliente en una semana.
type Timesheet struct {
	ID         string
	CompanyID  string
	UserID     string
	ClientID   string
	WeekStart  time.Time // lunes de la semana reportada
	Hours      decimal.Decimal
	Rate       decimal.Decimal
	Notes      string
	Status     string
	ApprovedBy string // vacío mientras esté pendiente
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
