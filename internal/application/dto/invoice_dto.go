package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLineRequest línea de una factura nueva.
type InvoiceLineRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
	TaxRate     decimal.Decimal `json:"tax_rate"` // fracción o porcentaje; >1 se interpreta como %
}

// CreateInvoiceRequest alta de factura. El número NO viene del caller: lo
// emite el contador del cliente.
type CreateInvoiceRequest struct {
	ClientID string               `json:"client_id" validate:"required"`
	Lines    []InvoiceLineRequest `json:"lines" validate:"required,min=1"`
	Notes    string               `json:"notes"`
}

// InvoiceLineResponse línea para respuestas.
type InvoiceLineResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse factura para respuestas.
type InvoiceResponse struct {
	ID         string                `json:"id"`
	CompanyID  string                `json:"company_id"`
	ClientID   string                `json:"client_id"`
	Number     string                `json:"number"`
	Date       time.Time             `json:"date"`
	NetTotal   decimal.Decimal       `json:"net_total"`
	TaxTotal   decimal.Decimal       `json:"tax_total"`
	GrandTotal decimal.Decimal       `json:"grand_total"`
	Status     string                `json:"status"`
	Notes      string                `json:"notes,omitempty"`
	Lines      []InvoiceLineResponse `json:"lines,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}
