package billing

import (
	"context"

	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// BillingTxRunner ejecuta callbacks con repos de facturas y contadores atados
// a una misma transacción: la emisión del consecutivo y el insert de la
// factura comparten tx para que un fallo haga rollback de ambos.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoices repository.InvoiceRepository,
		counters repository.SequenceCounterRepository,
	) error) error
}

// DocumentRenderer puerto del generador de documentos (PDF u otros).
// La generación de documentos es un colaborador externo al núcleo: aquí solo
// vive el contrato.
type DocumentRenderer interface {
	RenderInvoice(ctx context.Context, invoice *entity.Invoice, lines []*entity.InvoiceLine) ([]byte, error)
}
