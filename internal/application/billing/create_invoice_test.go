package billing_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/office-pro/internal/application/billing"
	"github.com/tu-usuario/office-pro/internal/application/dto"
	"github.com/tu-usuario/office-pro/internal/application/sequence"
	"github.com/tu-usuario/office-pro/internal/application/usecase"
	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos del paquete
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct{ users map[string]*entity.User }

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error { m.users[u.ID] = u; return nil }
func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.users[id], nil
}
func (m *memUserRepo) GetByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (m *memUserRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]*entity.User, error) {
	return nil, nil
}
func (m *memUserRepo) Update(_ context.Context, u *entity.User) error { m.users[u.ID] = u; return nil }

type memCompanyRepo struct{ companies map[string]*entity.Company }

func (m *memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	m.companies[c.ID] = c
	return nil
}
func (m *memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return m.companies[id], nil
}
func (m *memCompanyRepo) GetBySlug(_ context.Context, _ string) (*entity.Company, error) {
	return nil, nil
}
func (m *memCompanyRepo) ListByOrganisation(_ context.Context, _ string, _ bool) ([]*entity.Company, error) {
	return nil, nil
}
func (m *memCompanyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	return nil, nil
}
func (m *memCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	m.companies[c.ID] = c
	return nil
}
func (m *memCompanyRepo) UpdateSettings(_ context.Context, id string, s *entity.CompanySettings) error {
	m.companies[id].Settings = s
	return nil
}

type memClientRepo struct{ clients map[string]*entity.Client }

func (m *memClientRepo) Create(_ context.Context, c *entity.Client) error {
	m.clients[c.ID] = c
	return nil
}
func (m *memClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return m.clients[id], nil
}
func (m *memClientRepo) GetByCompanyAndCode(_ context.Context, _, _ string) (*entity.Client, error) {
	return nil, nil
}
func (m *memClientRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]*entity.Client, error) {
	return nil, nil
}
func (m *memClientRepo) ListByCompanies(_ context.Context, _ []string, _, _ int) ([]*entity.Client, error) {
	return nil, nil
}
func (m *memClientRepo) Update(_ context.Context, _ *entity.Client) error { return nil }
func (m *memClientRepo) Delete(_ context.Context, _ string) error         { return nil }

type memCounterRepo struct {
	mu       sync.Mutex
	byClient map[string]*entity.SequenceCounter
}

func (m *memCounterRepo) Create(_ context.Context, c *entity.SequenceCounter) error {
	m.byClient[c.ClientID] = c
	return nil
}
func (m *memCounterRepo) GetByClient(_ context.Context, id string) (*entity.SequenceCounter, error) {
	return m.byClient[id], nil
}
func (m *memCounterRepo) Increment(_ context.Context, clientID string) (string, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byClient[clientID]
	if !ok {
		return "", 0, domain.ErrCounterNotFound
	}
	c.LastIssued++
	return c.Prefix, c.LastIssued, nil
}
func (m *memCounterRepo) UpdatePrefix(_ context.Context, clientID, prefix string) error {
	c, ok := m.byClient[clientID]
	if !ok {
		return domain.ErrCounterNotFound
	}
	c.Prefix = prefix
	return nil
}

type memInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*entity.Invoice
	lines    map[string][]*entity.InvoiceLine
	byNumber map[string]bool // companyID + "/" + number
}

func (m *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := inv.CompanyID + "/" + inv.Number
	if m.byNumber[key] {
		return domain.ErrDuplicate
	}
	m.byNumber[key] = true
	m.invoices[inv.ID] = inv
	return nil
}
func (m *memInvoiceRepo) CreateLine(_ context.Context, l *entity.InvoiceLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines[l.InvoiceID] = append(m.lines[l.InvoiceID], l)
	return nil
}
func (m *memInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	return m.invoices[id], nil
}
func (m *memInvoiceRepo) ListByClient(_ context.Context, clientID string, _, _ int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range m.invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out, nil
}
func (m *memInvoiceRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range m.invoices {
		if inv.CompanyID == companyID {
			out = append(out, inv)
		}
	}
	return out, nil
}
func (m *memInvoiceRepo) ListLines(_ context.Context, invoiceID string) ([]*entity.InvoiceLine, error) {
	return m.lines[invoiceID], nil
}

type memTxRunner struct {
	invoices repository.InvoiceRepository
	counters repository.SequenceCounterRepository
}

func (m *memTxRunner) RunBilling(ctx context.Context, fn func(
	invoices repository.InvoiceRepository,
	counters repository.SequenceCounterRepository,
) error) error {
	return fn(m.invoices, m.counters)
}

var (
	_ repository.UserRepository            = (*memUserRepo)(nil)
	_ repository.CompanyRepository         = (*memCompanyRepo)(nil)
	_ repository.ClientRepository          = (*memClientRepo)(nil)
	_ repository.SequenceCounterRepository = (*memCounterRepo)(nil)
	_ repository.InvoiceRepository         = (*memInvoiceRepo)(nil)
	_ billing.BillingTxRunner              = (*memTxRunner)(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: una empresa, un cliente BS1 con contador, un company_admin.
// ──────────────────────────────────────────────────────────────────────────────

type invoiceFixture struct {
	counters *memCounterRepo
	invoices *memInvoiceRepo
	company  *entity.Company
	uc       *billing.CreateInvoiceUseCase
}

func newInvoiceFixture() *invoiceFixture {
	users := &memUserRepo{users: make(map[string]*entity.User)}
	companies := &memCompanyRepo{companies: make(map[string]*entity.Company)}
	clients := &memClientRepo{clients: make(map[string]*entity.Client)}
	counters := &memCounterRepo{byClient: make(map[string]*entity.SequenceCounter)}
	invoices := &memInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		lines:    make(map[string][]*entity.InvoiceLine),
		byNumber: make(map[string]bool),
	}

	company := &entity.Company{ID: "c1", OrganisationID: "o1", Name: "c1", Slug: "c1", Active: true}
	companies.companies["c1"] = company
	users.users["cadmin"] = &entity.User{
		ID: "cadmin", CompanyID: "c1", Email: "cadmin@test.local",
		Role: entity.RoleCompanyAdmin, Active: true,
	}
	clients.clients["client-1"] = &entity.Client{
		ID: "client-1", CompanyID: "c1", RefCode: "BS1", Name: "Bob Smith",
	}
	clients.clients["ajeno"] = &entity.Client{
		ID: "ajeno", CompanyID: "c99", RefCode: "ZZ1", Name: "De otra empresa",
	}
	counters.byClient["client-1"] = &entity.SequenceCounter{
		ID: "ctr-1", CompanyID: "c1", ClientID: "client-1", Prefix: "BS1",
	}

	resolver := usecase.NewScopeResolver(users, companies)
	modules := usecase.NewModuleService(companies)
	authorizer := usecase.NewAuthorizer(users, resolver, modules)
	allocator := sequence.NewAllocator(clients, counters, nil)
	txRunner := &memTxRunner{invoices: invoices, counters: counters}

	return &invoiceFixture{
		counters: counters,
		invoices: invoices,
		company:  company,
		uc: billing.NewCreateInvoiceUseCase(
			authorizer, allocator, clients, invoices, txRunner, nil,
		),
	}
}

func lineReq(desc string, qty, price, tax float64) dto.InvoiceLineRequest {
	return dto.InvoiceLineRequest{
		Description: desc,
		Quantity:    decimal.NewFromFloat(qty),
		UnitPrice:   decimal.NewFromFloat(price),
		TaxRate:     decimal.NewFromFloat(tax),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice_NumeraDesdeElContador(t *testing.T) {
	f := newInvoiceFixture()

	first, err := f.uc.CreateInvoice(context.Background(), "cadmin", "c1", dto.CreateInvoiceRequest{
		ClientID: "client-1",
		Lines:    []dto.InvoiceLineRequest{lineReq("Servicio", 1, 100, 0.19)},
	})
	require.NoError(t, err)
	second, err := f.uc.CreateInvoice(context.Background(), "cadmin", "c1", dto.CreateInvoiceRequest{
		ClientID: "client-1",
		Lines:    []dto.InvoiceLineRequest{lineReq("Servicio", 1, 100, 0.19)},
	})
	require.NoError(t, err)

	assert.Equal(t, "BS1000001", first.Number)
	assert.Equal(t, "BS1000002", second.Number, "números consecutivos, nunca repetidos")
	assert.Equal(t, entity.InvoiceStatusIssued, first.Status)
}

func TestCreateInvoice_Totales(t *testing.T) {
	f := newInvoiceFixture()

	resp, err := f.uc.CreateInvoice(context.Background(), "cadmin", "c1", dto.CreateInvoiceRequest{
		ClientID: "client-1",
		Lines: []dto.InvoiceLineRequest{
			lineReq("Horas de consultoría", 10, 50, 0.19),
			// Tasa como porcentaje: 19 se interpreta como 19%.
			lineReq("Licencia", 1, 200, 19),
		},
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(700).Equal(resp.NetTotal), "neto = 10*50 + 1*200")
	assert.True(t, decimal.NewFromInt(133).Equal(resp.TaxTotal), "IVA del 19 por ciento sobre ambas líneas")
	assert.True(t, decimal.NewFromInt(833).Equal(resp.GrandTotal))
	require.Len(t, resp.Lines, 2)
}

func TestCreateInvoice_ClienteDeOtraEmpresa(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.uc.CreateInvoice(context.Background(), "cadmin", "c1", dto.CreateInvoiceRequest{
		ClientID: "ajeno",
		Lines:    []dto.InvoiceLineRequest{lineReq("Servicio", 1, 100, 0)},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateInvoice_ModuloFacturacionApagado(t *testing.T) {
	f := newInvoiceFixture()
	f.company.Settings = &entity.CompanySettings{EnabledModules: []entity.ModuleKey{entity.ModuleClients}}

	_, err := f.uc.CreateInvoice(context.Background(), "cadmin", "c1", dto.CreateInvoiceRequest{
		ClientID: "client-1",
		Lines:    []dto.InvoiceLineRequest{lineReq("Servicio", 1, 100, 0)},
	})
	assert.ErrorIs(t, err, domain.ErrModuleDisabled)
}

func TestCreateInvoice_SinLineasNiCliente(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.uc.CreateInvoice(context.Background(), "cadmin", "c1", dto.CreateInvoiceRequest{ClientID: "client-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateInvoice(context.Background(), "cadmin", "c1", dto.CreateInvoiceRequest{
		Lines: []dto.InvoiceLineRequest{lineReq("Servicio", 1, 100, 0)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetInvoice_DevuelveCabeceraYLineas(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.uc.CreateInvoice(context.Background(), "cadmin", "c1", dto.CreateInvoiceRequest{
		ClientID: "client-1",
		Lines:    []dto.InvoiceLineRequest{lineReq("Servicio", 1, 100, 0)},
	})
	require.NoError(t, err)

	counter, err := f.counters.GetByClient(context.Background(), "client-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, counter.LastIssued)

	inv, err := f.uc.GetInvoice(context.Background(), "cadmin", mustOnlyInvoiceID(t, f.invoices))
	require.NoError(t, err)
	assert.Equal(t, "BS1000001", inv.Number)
	require.Len(t, inv.Lines, 1)
}

func mustOnlyInvoiceID(t *testing.T, repo *memInvoiceRepo) string {
	t.Helper()
	require.Len(t, repo.invoices, 1)
	for id := range repo.invoices {
		return id
	}
	return ""
}
