package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/audit"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/dto"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/repository"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, usuario actual y admin inicial.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	audit    *audit.Publisher
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, pub *audit.Publisher) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, audit: pub}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Activo {
		return nil, domain.ErrInactiveAccount
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.EmpresaID, user.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.audit.Emit(ctx, audit.Event{
		UsuarioID: user.ID,
		EmpresaID: user.EmpresaID,
		Accion:    entity.AccionLogin,
		Entidad:   "usuario",
		EntidadID: user.ID,
	})
	return &dto.LoginResponse{
		Token:   token,
		Usuario: *ToUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado. Un usuario desactivado después de emitir el token
// recibe ErrInactiveAccount.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.Activo {
		return nil, domain.ErrInactiveAccount
	}
	return ToUserResponse(user), nil
}

// EnsureAdmin crea el admin inicial si no existe ningún usuario admin.
// Devuelve true si lo creó. Con email o password vacíos no hace nada.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}
	exists, err := uc.userRepo.ExistsWithRole(ctx, entity.RoleAdmin)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password admin: %w", err)
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Rol:          entity.RoleAdmin,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

// ToUserResponse convierte la entidad a DTO sin el hash de password.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Rol:       u.Rol,
		EmpresaID: u.EmpresaID,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
