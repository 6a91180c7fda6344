package repository

import (
	"context"

	"github.com/tu-usuario/office-pro/internal/domain/entity"
)

// SequenceCounterRepository puerto del estado del asignador de consecutivos.
type SequenceCounterRepository interface {
	// Create inserta el contador del cliente (uno por cliente, last_issued 0).
	Create(ctx context.Context, counter *entity.SequenceCounter) error
	// GetByClient devuelve nil, nil si no existe.
	GetByClient(ctx context.Context, clientID string) (*entity.SequenceCounter, error)
	// Increment incrementa last_issued en 1 de forma atómica en el datastore
	// (UPDATE ... SET last_issued = last_issued + 1 ... RETURNING) y devuelve
	// el prefijo vigente y el nuevo valor. Nunca leer-y-reescribir en memoria:
	// hay emisiones concurrentes contra el mismo cliente.
	// Devuelve domain.ErrCounterNotFound si el cliente no tiene contador.
	Increment(ctx context.Context, clientID string) (prefix string, value int64, err error)
	// UpdatePrefix reescribe solo el prefijo (renombre del código del
	// cliente). last_issued no se toca.
	UpdatePrefix(ctx context.Context, clientID, prefix string) error
}
