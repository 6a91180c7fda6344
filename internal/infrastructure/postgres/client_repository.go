package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// Ensure ClientRepo implements the interface.
var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación PostgreSQL del repositorio de clientes.
// El constraint UNIQUE (company_id, ref_code) es la última línea de defensa
// del asignador de códigos: aquí el 23505 se traduce a ErrDuplicateCode.
type ClientRepo struct {
	q Querier
}

// NewClientRepository crea el repositorio sobre un pool o una tx.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (id, company_id, ref_code, name, company_name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.q.Exec(ctx, query,
		client.ID, client.CompanyID, client.RefCode, client.Name,
		client.CompanyName, client.Email, client.Phone,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `
		SELECT id, company_id, ref_code, name, company_name, email, phone, created_at, updated_at
		FROM clients
		WHERE id = $1`

	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

func (r *ClientRepo) GetByCompanyAndCode(ctx context.Context, companyID, refCode string) (*entity.Client, error) {
	query := `
		SELECT id, company_id, ref_code, name, company_name, email, phone, created_at, updated_at
		FROM clients
		WHERE company_id = $1 AND ref_code = $2`

	return r.scanOne(r.q.QueryRow(ctx, query, companyID, refCode))
}

func (r *ClientRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT id, company_id, ref_code, name, company_name, email, phone, created_at, updated_at
		FROM clients
		WHERE company_id = $1
		ORDER BY ref_code
		LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *ClientRepo) ListByCompanies(ctx context.Context, companyIDs []string, limit, offset int) ([]*entity.Client, error) {
	// companyIDs nil = alcance de plataforma, sin filtro.
	query := `
		SELECT id, company_id, ref_code, name, company_name, email, phone, created_at, updated_at
		FROM clients
		WHERE $1::uuid[] IS NULL OR company_id = ANY($1)
		ORDER BY company_id, ref_code
		LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, companyIDs, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients by companies: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	query := `
		UPDATE clients
		SET ref_code = $2, name = $3, company_name = $4, email = $5, phone = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query,
		client.ID, client.RefCode, client.Name, client.CompanyName,
		client.Email, client.Phone, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	// El contador del cliente cae en cascada (ON DELETE CASCADE).
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) scanOne(row rowScanner) (*entity.Client, error) {
	var client entity.Client
	err := row.Scan(&client.ID, &client.CompanyID, &client.RefCode, &client.Name,
		&client.CompanyName, &client.Email, &client.Phone,
		&client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan client: %w", err)
	}
	return &client, nil
}

func (r *ClientRepo) scanAll(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.Client, error) {
	var clients []*entity.Client
	for rows.Next() {
		var client entity.Client
		if err := rows.Scan(&client.ID, &client.CompanyID, &client.RefCode, &client.Name,
			&client.CompanyName, &client.Email, &client.Phone,
			&client.CreatedAt, &client.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, &client)
	}
	return clients, rows.Err()
}
