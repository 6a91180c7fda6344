package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura.
const (
	InvoiceStatusDraft  = "draft"
	InvoiceStatusIssued = "issued"
	InvoiceStatusPaid   = "paid"
	InvoiceStatusVoid   = "void"
)

// Invoice factura emitida a un cliente. Number sale del SequenceCounter del
// cliente (prefijo + consecutivo con ceros) y es inmutable una vez emitido.
type Invoice struct {
	ID         string
	CompanyID  string
	ClientID   string
	Number     string // ej. "BS1000042"; único por empresa
	IssuedBy   string // usuario que la creó
	Date       time.Time
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	Status     string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceLine línea de detalle de una factura.
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // fracción, ej. 0.19
	Subtotal    decimal.Decimal
}
