package http_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/repository"
)

// store base en memoria compartida por los repos falsos.
type store struct {
	mu        sync.Mutex
	companies map[string]*entity.Company
	users     map[string]*entity.User
	clients   map[string]*entity.Client
	audit     []*entity.AuditEvent
}

func newStore() *store {
	return &store{
		companies: map[string]*entity.Company{},
		users:     map[string]*entity.User{},
		clients:   map[string]*entity.Client{},
	}
}

// ── empresas ──

type companyRepo struct{ s *store }

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.companies {
		if e.RFC == c.RFC {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r companyRepo) GetByIDForShare(ctx context.Context, id string) (*entity.Company, error) {
	return r.GetByID(ctx, id)
}

func (r companyRepo) GetByRFC(_ context.Context, rfc string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.RFC == rfc {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r companyRepo) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r companyRepo) UpdateStatus(_ context.Context, id, estado string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Estado = estado
	c.UpdatedAt = at
	return nil
}

func (r companyRepo) List(_ context.Context, f repository.CompanyFilter) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Company, 0)
	for _, c := range r.s.companies {
		if f.Estado == "" || c.Estado == f.Estado {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── usuarios ──

type userRepo struct{ s *store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.users {
		if strings.EqualFold(e.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) ListByEmpresa(_ context.Context, empresaID string, _, _ int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.users {
		if empresaID == "" || u.EmpresaID == empresaID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r userRepo) SetActive(_ context.Context, id string, activo bool, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Activo = activo
	u.UpdatedAt = at
	return nil
}

func (r userRepo) ExistsWithRole(_ context.Context, rol string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Rol == rol {
			return true, nil
		}
	}
	return false, nil
}

// ── clientes ──

type clientRepo struct{ s *store }

func (r clientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r clientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.clients[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r clientRepo) GetByEmpresaAndRFC(_ context.Context, empresaID, rfc string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.clients {
		if c.EmpresaID == empresaID && c.RFC == rfc {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r clientRepo) List(_ context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Client, 0)
	for _, c := range r.s.clients {
		if (f.EmpresaID == "" || c.EmpresaID == f.EmpresaID) && (f.TipoCliente == "" || c.TipoCliente == f.TipoCliente) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── bitácora ──

type auditRepo struct{ s *store }

func (r auditRepo) Append(_ context.Context, e *entity.AuditEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audit = append(r.s.audit, e)
	return nil
}

func (r auditRepo) List(_ context.Context, limit, offset int) ([]*entity.AuditEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if offset >= len(r.s.audit) {
		return []*entity.AuditEvent{}, nil
	}
	end := offset + limit
	if end > len(r.s.audit) {
		end = len(r.s.audit)
	}
	return append([]*entity.AuditEvent(nil), r.s.audit[offset:end]...), nil
}

func (s *store) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.audit))
	for _, e := range s.audit {
		out = append(out, e.Accion)
	}
	return out
}

// ── transacción ──

type txRunner struct{ s *store }

func (t txRunner) RunRegistration(_ context.Context, fn func(repository.CompanyRepository, repository.ClientRepository) error) error {
	return fn(companyRepo{t.s}, clientRepo{t.s})
}

// ── base de datos para /health ──

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

var errDBDown = errors.New("conexión rechazada")
