package repository

import (
	"context"

	"github.com/tu-usuario/office-pro/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia de facturas.
type InvoiceRepository interface {
	// Create devuelve domain.ErrDuplicate si el número ya existe en la empresa.
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateLine(ctx context.Context, line *entity.InvoiceLine) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*entity.Invoice, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error)
	ListLines(ctx context.Context, invoiceID string) ([]*entity.InvoiceLine, error)
}
