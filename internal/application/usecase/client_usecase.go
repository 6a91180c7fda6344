package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/office-pro/internal/application/dto"
	"github.com/tu-usuario/office-pro/internal/application/sequence"
	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/authz"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/refcode"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
	"github.com/tu-usuario/office-pro/pkg/logger"
)

// ClientTxRunner ejecuta callbacks con repos de clientes y contadores atados
// a una misma transacción (alta de cliente + contador, renombre de código).
type ClientTxRunner interface {
	RunClient(ctx context.Context, fn func(
		clients repository.ClientRepository,
		counters repository.SequenceCounterRepository,
	) error) error
}

// maxCodeConflictRetries reintentos transparentes cuando un escritor
// concurrente gana la carrera del sondeo. Agotarlos es fallo de integridad.
const maxCodeConflictRetries = 3

// ClientUseCase casos de uso de clientes. Toda entrada pasa por el Authorizer.
type ClientUseCase struct {
	authorizer *Authorizer
	allocator  *sequence.Allocator
	clients    repository.ClientRepository
	txRunner   ClientTxRunner
	log        *logger.Logger
}

// NewClientUseCase construye el caso de uso de clientes.
func NewClientUseCase(authorizer *Authorizer, allocator *sequence.Allocator, clients repository.ClientRepository, txRunner ClientTxRunner, log *logger.Logger) *ClientUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ClientUseCase{authorizer: authorizer, allocator: allocator, clients: clients, txRunner: txRunner, log: log}
}

// Create da de alta un cliente reservando su código de referencia y creando
// su contador de secuencia en la misma transacción.
//
// Si el código fue derivado (no suministrado) y el insert pierde la carrera
// contra otro request (constraint único), se vuelve a sondear y reintentar.
func (uc *ClientUseCase) Create(ctx context.Context, userID, companyID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.authorizer.Authorize(ctx, userID, companyID, authz.ResourceClients, authz.ActionCreate); err != nil {
		return nil, err
	}

	var client *entity.Client
	for attempt := 0; ; attempt++ {
		code, err := uc.allocator.ReserveReferenceCode(ctx, companyID, in.Name, in.CompanyName, in.RefCode)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		client = &entity.Client{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			RefCode:     code,
			Name:        in.Name,
			CompanyName: in.CompanyName,
			Email:       in.Email,
			Phone:       in.Phone,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		err = uc.txRunner.RunClient(ctx, func(
			clients repository.ClientRepository,
			counters repository.SequenceCounterRepository,
		) error {
			if err := clients.Create(ctx, client); err != nil {
				return err
			}
			return counters.Create(ctx, sequence.NewCounter(companyID, client.ID, code, now))
		})
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicateCode) && in.RefCode == "" {
			// Perdimos la carrera del sondeo: otro request tomó el código
			// entre el sondeo y el insert. Con código derivado se re-sondea.
			if attempt < maxCodeConflictRetries {
				continue
			}
			uc.log.Error().
				Str("company_id", companyID).
				Str("code", code).
				Msg("reintentos agotados reservando código de referencia")
			return nil, fmt.Errorf("reservar código de referencia: %w", domain.ErrConflict)
		}
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("client_id", client.ID).
		Str("ref_code", client.RefCode).
		Msg("cliente creado")
	return toClientResponse(client), nil
}

// Get devuelve un cliente si está dentro del alcance del usuario.
func (uc *ClientUseCase) Get(ctx context.Context, userID, clientID string) (*dto.ClientResponse, error) {
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.authorizer.Authorize(ctx, userID, client.CompanyID, authz.ResourceClients, authz.ActionRead); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista los clientes de todas las empresas del alcance del usuario.
func (uc *ClientUseCase) List(ctx context.Context, userID, companyID string, page dto.PageRequest) ([]*dto.ClientResponse, error) {
	authCtx, err := uc.authorizer.Authorize(ctx, userID, companyID, authz.ResourceClients, authz.ActionRead)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	// nil con alcance de plataforma = sin filtro por empresa
	list, err := uc.clients.ListByCompanies(ctx, authCtx.Scope.Filter(nil), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Update modifica un cliente. Renombrar el código reescribe también el
// prefijo del contador; los consecutivos ya emitidos no cambian y la
// numeración continúa donde iba.
func (uc *ClientUseCase) Update(ctx context.Context, userID, clientID string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.authorizer.Authorize(ctx, userID, client.CompanyID, authz.ResourceClients, authz.ActionUpdate); err != nil {
		return nil, err
	}

	if in.Name != "" {
		client.Name = in.Name
	}
	if in.CompanyName != "" {
		client.CompanyName = in.CompanyName
	}
	if in.Email != "" {
		client.Email = in.Email
	}
	if in.Phone != "" {
		client.Phone = in.Phone
	}

	renamed := false
	if in.RefCode != "" {
		code := refcode.Normalize(in.RefCode)
		if code != client.RefCode {
			if err := refcode.Validate(code); err != nil {
				return nil, err
			}
			client.RefCode = code
			renamed = true
		}
	}
	client.UpdatedAt = time.Now()

	err = uc.txRunner.RunClient(ctx, func(
		clients repository.ClientRepository,
		counters repository.SequenceCounterRepository,
	) error {
		if err := clients.Update(ctx, client); err != nil {
			return err
		}
		if renamed {
			return counters.UpdatePrefix(ctx, client.ID, client.RefCode)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCounterNotFound) {
			uc.log.Error().Str("client_id", client.ID).Err(err).
				Msg("cliente sin contador de secuencia al renombrar")
		}
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina un cliente (el contador cae en cascada).
func (uc *ClientUseCase) Delete(ctx context.Context, userID, clientID string) error {
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	if _, err := uc.authorizer.Authorize(ctx, userID, client.CompanyID, authz.ResourceClients, authz.ActionDelete); err != nil {
		return err
	}
	return uc.clients.Delete(ctx, clientID)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		RefCode:     c.RefCode,
		Name:        c.Name,
		CompanyName: c.CompanyName,
		Email:       c.Email,
		Phone:       c.Phone,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
