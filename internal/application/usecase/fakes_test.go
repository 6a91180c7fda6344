package usecase_test

import (
	"context"
	"sync"

	"github.com/tu-usuario/office-pro/internal/application/usecase"
	"github.com/tu-usuario/office-pro/internal/domain"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
	"github.com/tu-usuario/office-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

type fakeOrgRepo struct {
	orgs map[string]*entity.Organisation
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[string]*entity.Organisation)}
}

func (f *fakeOrgRepo) Create(_ context.Context, o *entity.Organisation) error {
	f.orgs[o.ID] = o
	return nil
}

func (f *fakeOrgRepo) GetByID(_ context.Context, id string) (*entity.Organisation, error) {
	return f.orgs[id], nil
}

func (f *fakeOrgRepo) GetBySlug(_ context.Context, slug string) (*entity.Organisation, error) {
	for _, o := range f.orgs {
		if o.Slug == slug {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrgRepo) List(_ context.Context, _, _ int) ([]*entity.Organisation, error) {
	out := make([]*entity.Organisation, 0, len(f.orgs))
	for _, o := range f.orgs {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrgRepo) Update(_ context.Context, o *entity.Organisation) error {
	f.orgs[o.ID] = o
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
	orgs      *fakeOrgRepo
}

func newFakeCompanyRepo(orgs *fakeOrgRepo) *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*entity.Company), orgs: orgs}
}

func (f *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	f.companies[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.companies[id], nil
}

func (f *fakeCompanyRepo) GetBySlug(_ context.Context, slug string) (*entity.Company, error) {
	for _, c := range f.companies {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyRepo) ListByOrganisation(_ context.Context, organisationID string, onlyActive bool) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range f.companies {
		if c.OrganisationID != organisationID {
			continue
		}
		if onlyActive {
			if !c.Active {
				continue
			}
			if org := f.orgs.orgs[c.OrganisationID]; org == nil || !org.Active {
				continue
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCompanyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	out := make([]*entity.Company, 0, len(f.companies))
	for _, c := range f.companies {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	f.companies[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) UpdateSettings(_ context.Context, companyID string, settings *entity.CompanySettings) error {
	c, ok := f.companies[companyID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Settings = settings
	return nil
}

type fakeClientRepo struct {
	mu     sync.Mutex
	byID   map[string]*entity.Client
	byCode map[string]*entity.Client // companyID + "/" + refCode
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		byID:   make(map[string]*entity.Client),
		byCode: make(map[string]*entity.Client),
	}
}

func codeKey(companyID, refCode string) string { return companyID + "/" + refCode }

func (f *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, taken := f.byCode[codeKey(c.CompanyID, c.RefCode)]; taken {
		return domain.ErrDuplicateCode
	}
	f.byID[c.ID] = c
	f.byCode[codeKey(c.CompanyID, c.RefCode)] = c
	return nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id], nil
}

func (f *fakeClientRepo) GetByCompanyAndCode(_ context.Context, companyID, refCode string) (*entity.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byCode[codeKey(companyID, refCode)], nil
}

func (f *fakeClientRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Client
	for _, c := range f.byID {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClientRepo) ListByCompanies(_ context.Context, companyIDs []string, _, _ int) ([]*entity.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Client
	for _, c := range f.byID {
		if companyIDs == nil {
			out = append(out, c)
			continue
		}
		for _, id := range companyIDs {
			if c.CompanyID == id {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeClientRepo) Update(_ context.Context, c *entity.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.byID[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if old.RefCode != c.RefCode {
		if _, taken := f.byCode[codeKey(c.CompanyID, c.RefCode)]; taken {
			return domain.ErrDuplicateCode
		}
		delete(f.byCode, codeKey(old.CompanyID, old.RefCode))
		f.byCode[codeKey(c.CompanyID, c.RefCode)] = c
	}
	f.byID[c.ID] = c
	return nil
}

func (f *fakeClientRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(f.byCode, codeKey(c.CompanyID, c.RefCode))
	delete(f.byID, id)
	return nil
}

type fakeCounterRepo struct {
	mu       sync.Mutex
	byClient map[string]*entity.SequenceCounter
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{byClient: make(map[string]*entity.SequenceCounter)}
}

func (f *fakeCounterRepo) Create(_ context.Context, c *entity.SequenceCounter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byClient[c.ClientID]; exists {
		return domain.ErrDuplicate
	}
	f.byClient[c.ClientID] = c
	return nil
}

func (f *fakeCounterRepo) GetByClient(_ context.Context, clientID string) (*entity.SequenceCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byClient[clientID], nil
}

func (f *fakeCounterRepo) Increment(_ context.Context, clientID string) (string, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counter, ok := f.byClient[clientID]
	if !ok {
		return "", 0, domain.ErrCounterNotFound
	}
	counter.LastIssued++
	return counter.Prefix, counter.LastIssued, nil
}

func (f *fakeCounterRepo) UpdatePrefix(_ context.Context, clientID, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	counter, ok := f.byClient[clientID]
	if !ok {
		return domain.ErrCounterNotFound
	}
	counter.Prefix = prefix
	return nil
}

// fakeTxRunner ejecuta el callback directamente contra los fakes, sin
// semántica transaccional: los fakes fallan antes de mutar estado.
type fakeTxRunner struct {
	clients  repository.ClientRepository
	counters repository.SequenceCounterRepository
	runs     int
}

func (f *fakeTxRunner) RunClient(ctx context.Context, fn func(
	clients repository.ClientRepository,
	counters repository.SequenceCounterRepository,
) error) error {
	f.runs++
	return fn(f.clients, f.counters)
}

// flakyClientRepo falla Create con ErrDuplicateCode las primeras N veces,
// simulando un escritor concurrente que gana la carrera del sondeo.
type flakyClientRepo struct {
	repository.ClientRepository
	failures int
}

func (f *flakyClientRepo) Create(ctx context.Context, c *entity.Client) error {
	if f.failures > 0 {
		f.failures--
		return domain.ErrDuplicateCode
	}
	return f.ClientRepository.Create(ctx, c)
}

var (
	_ repository.UserRepository            = (*fakeUserRepo)(nil)
	_ repository.OrganisationRepository    = (*fakeOrgRepo)(nil)
	_ repository.CompanyRepository         = (*fakeCompanyRepo)(nil)
	_ repository.ClientRepository          = (*fakeClientRepo)(nil)
	_ repository.SequenceCounterRepository = (*fakeCounterRepo)(nil)
	_ usecase.ClientTxRunner               = (*fakeTxRunner)(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: el mundo de dos organizaciones usado por la mayoría de los tests.
//
//	org o1 (activa):  c1 (activa), c2 (activa), c3 (inactiva)
//	org o2 (activa):  c4 (activa)
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	users      *fakeUserRepo
	orgs       *fakeOrgRepo
	companies  *fakeCompanyRepo
	resolver   *usecase.ScopeResolver
	modules    *usecase.ModuleService
	authorizer *usecase.Authorizer
}

func newFixture() *fixture {
	users := newFakeUserRepo()
	orgs := newFakeOrgRepo()
	companies := newFakeCompanyRepo(orgs)
	resolver := usecase.NewScopeResolver(users, companies)
	modules := usecase.NewModuleService(companies)
	return &fixture{
		users:      users,
		orgs:       orgs,
		companies:  companies,
		resolver:   resolver,
		modules:    modules,
		authorizer: usecase.NewAuthorizer(users, resolver, modules),
	}
}

func (f *fixture) addOrg(id string, active bool) {
	f.orgs.orgs[id] = &entity.Organisation{ID: id, Name: id, Slug: id, Active: active}
}

func (f *fixture) addCompany(id, orgID string, active bool) *entity.Company {
	c := &entity.Company{ID: id, OrganisationID: orgID, Name: id, Slug: id, Active: active}
	f.companies.companies[id] = c
	return c
}

func (f *fixture) addUser(id, companyID string, role entity.Role, active bool) {
	f.users.users[id] = &entity.User{
		ID: id, CompanyID: companyID, Email: id + "@test.local",
		Name: id, Role: role, Active: active,
	}
}

func newTwoOrgFixture() *fixture {
	f := newFixture()
	f.addOrg("o1", true)
	f.addOrg("o2", true)
	f.addCompany("c1", "o1", true)
	f.addCompany("c2", "o1", true)
	f.addCompany("c3", "o1", false)
	f.addCompany("c4", "o2", true)
	return f
}
