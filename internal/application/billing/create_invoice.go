package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/office-pro/internal/application/dto"
	"github.com/tu-usuario/office-pro/internal/application/sequence"
	"github.com/tu-usuario/office-pro/internal/application/usecase"
	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/authz"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
	"github.com/tu-usuario/office-pro/pkg/logger"
)

// CreateInvoiceUseCase crea una factura numerándola desde el contador del
// cliente, todo en una sola transacción.
type CreateInvoiceUseCase struct {
	authorizer *usecase.Authorizer
	allocator  *sequence.Allocator
	clients    repository.ClientRepository
	invoices   repository.InvoiceRepository
	txRunner   BillingTxRunner
	log        *logger.Logger
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	authorizer *usecase.Authorizer,
	allocator *sequence.Allocator,
	clients repository.ClientRepository,
	invoices repository.InvoiceRepository,
	txRunner BillingTxRunner,
	log *logger.Logger,
) *CreateInvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CreateInvoiceUseCase{
		authorizer: authorizer,
		allocator:  allocator,
		clients:    clients,
		invoices:   invoices,
		txRunner:   txRunner,
		log:        log,
	}
}

// taxRateDecimal normaliza la tasa: >1 se interpreta como porcentaje.
func taxRateDecimal(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate.Div(decimal.NewFromInt(100))
	}
	return rate
}

// CreateInvoice crea la factura. El número NO lo elige el caller: sale del
// incremento atómico del contador del cliente dentro de la transacción, así
// dos operadores facturando al mismo cliente a la vez nunca repiten número.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, userID, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ClientID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	authCtx, err := uc.authorizer.Authorize(ctx, userID, companyID, authz.ResourceInvoices, authz.ActionCreate)
	if err != nil {
		return nil, err
	}

	// Validar cliente y que sea de la empresa
	client, err := uc.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	// Totales (fuera de la tx, solo cálculo)
	var netTotal, taxTotal decimal.Decimal
	for _, line := range in.Lines {
		if line.Description == "" || !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		subtotal := line.Quantity.Mul(line.UnitPrice)
		netTotal = netTotal.Add(subtotal)
		taxTotal = taxTotal.Add(subtotal.Mul(taxRateDecimal(line.TaxRate)))
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		ClientID:   in.ClientID,
		IssuedBy:   authCtx.UserID,
		Date:       now,
		NetTotal:   netTotal,
		TaxTotal:   taxTotal,
		GrandTotal: netTotal.Add(taxTotal),
		Status:     entity.InvoiceStatusIssued,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	var lines []*entity.InvoiceLine

	err = uc.txRunner.RunBilling(ctx, func(
		invoices repository.InvoiceRepository,
		counters repository.SequenceCounterRepository,
	) error {
		// 1) Consecutivo desde el contador del cliente (incremento atómico).
		number, err := uc.allocator.IssueIdentifierIn(ctx, counters, in.ClientID)
		if err != nil {
			return err
		}
		inv.Number = number

		// 2) Cabecera y líneas en la misma tx.
		if err := invoices.Create(ctx, inv); err != nil {
			return err
		}
		for _, line := range in.Lines {
			rate := taxRateDecimal(line.TaxRate)
			l := &entity.InvoiceLine{
				ID:          uuid.New().String(),
				InvoiceID:   inv.ID,
				Description: line.Description,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				TaxRate:     rate,
				Subtotal:    line.Quantity.Mul(line.UnitPrice),
			}
			if err := invoices.CreateLine(ctx, l); err != nil {
				return err
			}
			lines = append(lines, l)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("client_id", in.ClientID).
		Str("number", inv.Number).
		Msg("factura creada")
	return toInvoiceResponse(inv, lines), nil
}

// GetInvoice devuelve la factura con sus líneas si está dentro del alcance.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, userID, invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.authorizer.Authorize(ctx, userID, inv.CompanyID, authz.ResourceInvoices, authz.ActionRead); err != nil {
		return nil, err
	}
	lines, err := uc.invoices.ListLines(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, lines), nil
}

// ListByClient lista las facturas de un cliente dentro del alcance.
func (uc *CreateInvoiceUseCase) ListByClient(ctx context.Context, userID, clientID string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.authorizer.Authorize(ctx, userID, client.CompanyID, authz.ResourceInvoices, authz.ActionRead); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.invoices.ListByClient(ctx, clientID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv, nil))
	}
	return out, nil
}

func toInvoiceResponse(inv *entity.Invoice, lines []*entity.InvoiceLine) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:         inv.ID,
		CompanyID:  inv.CompanyID,
		ClientID:   inv.ClientID,
		Number:     inv.Number,
		Date:       inv.Date,
		NetTotal:   inv.NetTotal,
		TaxTotal:   inv.TaxTotal,
		GrandTotal: inv.GrandTotal,
		Status:     inv.Status,
		Notes:      inv.Notes,
		CreatedAt:  inv.CreatedAt,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:          l.ID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			Subtotal:    l.Subtotal,
		})
	}
	return resp
}
