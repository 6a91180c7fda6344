package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// Ensure SequenceCounterRepo implements the interface.
var _ repository.SequenceCounterRepository = (*SequenceCounterRepo)(nil)

// SequenceCounterRepo implementación PostgreSQL del estado del asignador.
// El incremento ocurre en el UPDATE, no en memoria: dos emisiones
// concurrentes contra el mismo cliente serializan en el lock de fila y
// reciben valores distintos y contiguos.
type SequenceCounterRepo struct {
	q Querier
}

// NewSequenceCounterRepository crea el repositorio sobre un pool o una tx.
func NewSequenceCounterRepository(q Querier) *SequenceCounterRepo {
	return &SequenceCounterRepo{q: q}
}

func (r *SequenceCounterRepo) Create(ctx context.Context, counter *entity.SequenceCounter) error {
	query := `
		INSERT INTO sequence_counters (id, company_id, client_id, prefix, last_issued, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.q.Exec(ctx, query,
		counter.ID, counter.CompanyID, counter.ClientID, counter.Prefix,
		counter.LastIssued, counter.CreatedAt, counter.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sequence counter: %w", err)
	}
	return nil
}

func (r *SequenceCounterRepo) GetByClient(ctx context.Context, clientID string) (*entity.SequenceCounter, error) {
	query := `
		SELECT id, company_id, client_id, prefix, last_issued, created_at, updated_at
		FROM sequence_counters
		WHERE client_id = $1`

	var counter entity.SequenceCounter
	err := r.q.QueryRow(ctx, query, clientID).Scan(
		&counter.ID, &counter.CompanyID, &counter.ClientID, &counter.Prefix,
		&counter.LastIssued, &counter.CreatedAt, &counter.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan sequence counter: %w", err)
	}
	return &counter, nil
}

func (r *SequenceCounterRepo) Increment(ctx context.Context, clientID string) (string, int64, error) {
	query := `
		UPDATE sequence_counters
		SET last_issued = last_issued + 1, updated_at = now()
		WHERE client_id = $1
		RETURNING prefix, last_issued`

	var (
		prefix string
		value  int64
	)
	err := r.q.QueryRow(ctx, query, clientID).Scan(&prefix, &value)
	if err != nil {
		if isNoRows(err) {
			return "", 0, domain.ErrCounterNotFound
		}
		return "", 0, fmt.Errorf("increment sequence counter: %w", err)
	}
	return prefix, value, nil
}

func (r *SequenceCounterRepo) UpdatePrefix(ctx context.Context, clientID, prefix string) error {
	query := `
		UPDATE sequence_counters
		SET prefix = $2, updated_at = now()
		WHERE client_id = $1`

	tag, err := r.q.Exec(ctx, query, clientID, prefix)
	if err != nil {
		return fmt.Errorf("update sequence counter prefix: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCounterNotFound
	}
	return nil
}
