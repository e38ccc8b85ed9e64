package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/audit"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/auth"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/dto"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/jwt"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/logger"
)

const testSecret = "secreto-de-prueba"

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) ListByEmpresa(ctx context.Context, empresaID string, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, empresaID, limit, offset)
	list, _ := args.Get(0).([]*entity.User)
	return list, args.Error(1)
}

func (m *mockUserRepo) SetActive(ctx context.Context, id string, activo bool, at time.Time) error {
	return m.Called(ctx, id, activo, at).Error(0)
}

func (m *mockUserRepo) ExistsWithRole(ctx context.Context, rol string) (bool, error) {
	args := m.Called(ctx, rol)
	return args.Bool(0), args.Error(1)
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newUseCase(repo *mockUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, audit.NewPublisher(nil, logger.Nop()))
}

func TestLogin_CredencialesValidasFirmaClaims(t *testing.T) {
	repo := &mockUserRepo{}
	user := &entity.User{ID: "u1", Email: "ana@example.com", PasswordHash: hashed(t, "secreta123"), Rol: entity.RoleCliente, EmpresaID: "e1", Activo: true}
	repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(user, nil)

	out, err := newUseCase(repo).Login(context.Background(), dto.LoginRequest{Email: " ana@example.com ", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, "u1", out.Usuario.ID)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCliente, claims.Rol)
	assert.Equal(t, "e1", claims.EmpresaID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestLogin_EmailDesconocidoYPasswordIncorrectoSonIguales(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, "nadie@example.com").Return(nil, nil)
	repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(&entity.User{ID: "u1", PasswordHash: hashed(t, "correcta1"), Activo: true}, nil)
	uc := newUseCase(repo)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(&entity.User{ID: "u1", PasswordHash: hashed(t, "correcta1"), Activo: false}, nil)

	_, err := newUseCase(repo).Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "correcta1"})
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}

func TestMe(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1", Email: "a@b.mx", Rol: entity.RoleAdmin, Activo: true}, nil)
	repo.On("GetByID", mock.Anything, "u2").Return(nil, nil)
	uc := newUseCase(repo)

	me, err := uc.Me(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, me.Rol)

	_, err = uc.Me(context.Background(), "u2")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	t.Run("sin configuración no hace nada", func(t *testing.T) {
		repo := &mockUserRepo{}
		created, err := newUseCase(repo).EnsureAdmin(context.Background(), "", "")
		require.NoError(t, err)
		assert.False(t, created)
		repo.AssertNotCalled(t, "ExistsWithRole", mock.Anything, mock.Anything)
	})

	t.Run("ya existe un admin", func(t *testing.T) {
		repo := &mockUserRepo{}
		repo.On("ExistsWithRole", mock.Anything, entity.RoleAdmin).Return(true, nil)
		created, err := newUseCase(repo).EnsureAdmin(context.Background(), "admin@example.com", "secreta123")
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("crea el admin", func(t *testing.T) {
		repo := &mockUserRepo{}
		repo.On("ExistsWithRole", mock.Anything, entity.RoleAdmin).Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.Rol == entity.RoleAdmin && u.Activo && u.EmpresaID == "" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreta123")) == nil
		})).Return(nil).Once()
		created, err := newUseCase(repo).EnsureAdmin(context.Background(), "admin@example.com", "secreta123")
		require.NoError(t, err)
		assert.True(t, created)
		repo.AssertExpectations(t)
	})
}
