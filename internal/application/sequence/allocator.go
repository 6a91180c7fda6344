// Package sequence asignador de códigos de referencia y consecutivos.
// Dueño de los dos algoritmos con invariantes reales del sistema: reserva de
// códigos únicos por empresa y emisión de consecutivos sin duplicados bajo
// concurrencia.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/refcode"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
	"github.com/tu-usuario/office-pro/pkg/logger"
)

// MaxProbes tope del sondeo de sufijos. Existe para cortar bucles con nombres
// degenerados o adversarios, no porque se esperen tantas colisiones.
const MaxProbes = 999

// Allocator reserva códigos de referencia y emite consecutivos.
type Allocator struct {
	clients  repository.ClientRepository
	counters repository.SequenceCounterRepository
	log      *logger.Logger
}

// NewAllocator construye el asignador.
func NewAllocator(clients repository.ClientRepository, counters repository.SequenceCounterRepository, log *logger.Logger) *Allocator {
	if log == nil {
		log = logger.Nop()
	}
	return &Allocator{clients: clients, counters: counters, log: log}
}

// ReserveReferenceCode valida el código pedido por el caller o, si viene
// vacío, deriva un prefijo del nombre y sondea sufijos crecientes desde 1
// hasta encontrar uno libre en la empresa.
//
// El sondeo tiene una ventana leer-luego-escribir: el ganador real lo decide
// el constraint único (company_id, ref_code) al insertar el cliente. Un
// perdedor concurrente recibe domain.ErrDuplicateCode y vuelve a sondear.
func (a *Allocator) ReserveReferenceCode(ctx context.Context, companyID, name, companyName, requested string) (string, error) {
	if requested != "" {
		code := refcode.Normalize(requested)
		if err := refcode.Validate(code); err != nil {
			return "", err
		}
		taken, err := a.codeTaken(ctx, companyID, code)
		if err != nil {
			return "", err
		}
		if taken {
			return "", fmt.Errorf("%w: %s", domain.ErrDuplicateCode, code)
		}
		return code, nil
	}

	prefix := refcode.DerivePrefix(name, companyName)
	for n := 1; n <= MaxProbes; n++ {
		code := refcode.Format(prefix, n)
		taken, err := a.codeTaken(ctx, companyID, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: prefijo %s tras %d sondeos", domain.ErrCodeGenerationExhausted, prefix, MaxProbes)
}

func (a *Allocator) codeTaken(ctx context.Context, companyID, code string) (bool, error) {
	existing, err := a.clients.GetByCompanyAndCode(ctx, companyID, code)
	if err != nil {
		return false, fmt.Errorf("sondear código %s: %w", code, err)
	}
	return existing != nil, nil
}

// NewCounter arma el contador inicial de un cliente recién aceptado:
// prefijo = código aceptado, last_issued = 0. Se persiste en la misma
// transacción que el cliente.
func NewCounter(companyID, clientID, code string, now time.Time) *entity.SequenceCounter {
	return &entity.SequenceCounter{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		ClientID:   clientID,
		Prefix:     code,
		LastIssued: 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IssueIdentifier emite el siguiente consecutivo del cliente. El incremento
// es una sola operación atómica contra la fila del contador; dos emisiones
// concurrentes para el mismo cliente nunca devuelven el mismo número.
func (a *Allocator) IssueIdentifier(ctx context.Context, clientID string) (string, error) {
	return a.IssueIdentifierIn(ctx, a.counters, clientID)
}

// IssueIdentifierIn igual que IssueIdentifier pero contra un repositorio de
// contadores atado a una transacción, para que la emisión y el insert de la
// factura compartan tx.
func (a *Allocator) IssueIdentifierIn(ctx context.Context, counters repository.SequenceCounterRepository, clientID string) (string, error) {
	prefix, value, err := counters.Increment(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrCounterNotFound) {
			// Cliente creado sin contador: defecto de integridad de datos.
			a.log.Error().Str("client_id", clientID).Err(err).
				Msg("cliente sin contador de secuencia")
		}
		return "", err
	}
	return refcode.Identifier(prefix, value), nil
}

// RenamePrefix reescribe el prefijo del contador tras renombrar el código del
// cliente. last_issued no se toca: los consecutivos ya emitidos siguen
// válidos y los futuros continúan la numeración con el prefijo nuevo.
func (a *Allocator) RenamePrefix(ctx context.Context, clientID, newCode string) error {
	if err := a.counters.UpdatePrefix(ctx, clientID, newCode); err != nil {
		if errors.Is(err, domain.ErrCounterNotFound) {
			a.log.Error().Str("client_id", clientID).Err(err).
				Msg("cliente sin contador de secuencia al renombrar")
		}
		return err
	}
	return nil
}
