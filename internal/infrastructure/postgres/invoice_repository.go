package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// Ensure InvoiceRepo implements the interface.
var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación PostgreSQL del repositorio de facturas.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository crea el repositorio sobre un pool o una tx.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, company_id, client_id, number, issued_by, date,
			net_total, tax_total, grand_total, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.CompanyID, invoice.ClientID, invoice.Number,
		invoice.IssuedBy, invoice.Date, invoice.NetTotal, invoice.TaxTotal,
		invoice.GrandTotal, invoice.Status, invoice.Notes,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) CreateLine(ctx context.Context, line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, description, quantity, unit_price, tax_rate, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.q.Exec(ctx, query,
		line.ID, line.InvoiceID, line.Description, line.Quantity,
		line.UnitPrice, line.TaxRate, line.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `
		SELECT id, company_id, client_id, number, issued_by, date,
		       net_total, tax_total, grand_total, status, notes, created_at, updated_at
		FROM invoices
		WHERE id = $1`

	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.ClientID, &inv.Number, &inv.IssuedBy,
		&inv.Date, &inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
		&inv.Status, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return &inv, nil
}

func (r *InvoiceRepo) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT id, company_id, client_id, number, issued_by, date,
		       net_total, tax_total, grand_total, status, notes, created_at, updated_at
		FROM invoices
		WHERE client_id = $1
		ORDER BY number DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices by client: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *InvoiceRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT id, company_id, client_id, number, issued_by, date,
		       net_total, tax_total, grand_total, status, notes, created_at, updated_at
		FROM invoices
		WHERE company_id = $1
		ORDER BY number DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices by company: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *InvoiceRepo) ListLines(ctx context.Context, invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, description, quantity, unit_price, tax_rate, subtotal
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY id`

	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.InvoiceLine
	for rows.Next() {
		var line entity.InvoiceLine
		if err := rows.Scan(&line.ID, &line.InvoiceID, &line.Description,
			&line.Quantity, &line.UnitPrice, &line.TaxRate, &line.Subtotal); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, &line)
	}
	return lines, rows.Err()
}

func (r *InvoiceRepo) scanAll(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.Invoice, error) {
	var invoices []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.ClientID, &inv.Number,
			&inv.IssuedBy, &inv.Date, &inv.NetTotal, &inv.TaxTotal,
			&inv.GrandTotal, &inv.Status, &inv.Notes,
			&inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}
