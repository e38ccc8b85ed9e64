package usecase_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/repository"
)

type memCompanies struct {
	mu   sync.Mutex
	byID map[string]*entity.Company
}

func newMemCompanies(list ...*entity.Company) *memCompanies {
	m := &memCompanies{byID: map[string]*entity.Company{}}
	for _, c := range list {
		m.byID[c.ID] = c
	}
	return m
}

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byID {
		if e.RFC == c.RFC {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *memCompanies) GetByIDForShare(ctx context.Context, id string) (*entity.Company, error) {
	return m.GetByID(ctx, id)
}

func (m *memCompanies) GetByRFC(_ context.Context, rfc string) (*entity.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byID {
		if c.RFC == rfc {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCompanies) Update(_ context.Context, c *entity.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCompanies) UpdateStatus(_ context.Context, id, estado string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Estado = estado
	c.UpdatedAt = at
	return nil
}

func (m *memCompanies) List(_ context.Context, f repository.CompanyFilter) ([]*entity.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Company, 0)
	for _, c := range m.byID {
		if f.Estado == "" || c.Estado == f.Estado {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newMemUsers(list ...*entity.User) *memUsers {
	m := &memUsers{byID: map[string]*entity.User{}}
	for _, u := range list {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byID {
		if strings.EqualFold(e.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) ListByEmpresa(_ context.Context, empresaID string, _, _ int) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, u := range m.byID {
		if empresaID == "" || u.EmpresaID == empresaID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memUsers) SetActive(_ context.Context, id string, activo bool, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Activo = activo
	u.UpdatedAt = at
	return nil
}

func (m *memUsers) ExistsWithRole(_ context.Context, rol string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Rol == rol {
			return true, nil
		}
	}
	return false, nil
}
