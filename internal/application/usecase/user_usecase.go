package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/audit"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/auth"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/dto"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/repository"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/validation"
)

// UserUseCase alta y administración de usuarios (solo admin).
type UserUseCase struct {
	repo        repository.UserRepository
	companyRepo repository.CompanyRepository
	val         *validation.Validator
	audit       *audit.Publisher
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, companyRepo repository.CompanyRepository, val *validation.Validator, pub *audit.Publisher) *UserUseCase {
	return &UserUseCase{repo: repo, companyRepo: companyRepo, val: val, audit: pub}
}

// Create crea un usuario con password hasheado (bcrypt). Un usuario cliente requiere empresa existente.
func (uc *UserUseCase) Create(ctx context.Context, actorID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := uc.val.Struct(in, ""); err != nil {
		return nil, err
	}
	if in.Rol == entity.RoleCliente && in.EmpresaID == "" {
		return nil, validation.NewError("empresa_id", "es obligatorio para usuarios con rol cliente")
	}
	if in.EmpresaID != "" {
		company, err := uc.companyRepo.GetByID(ctx, in.EmpresaID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, validation.NewError("empresa_id", "la empresa no existe")
		}
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Rol:          in.Rol,
		EmpresaID:    in.EmpresaID,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.audit.Emit(ctx, audit.Event{
		UsuarioID: actorID,
		EmpresaID: user.EmpresaID,
		Accion:    entity.AccionUsuarioCreado,
		Entidad:   "usuario",
		EntidadID: user.ID,
		Detalle:   map[string]any{"email": user.Email, "rol": user.Rol},
	})
	return auth.ToUserResponse(user), nil
}

// List lista usuarios, opcionalmente de una empresa.
func (uc *UserUseCase) List(ctx context.Context, empresaID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	empresaID = strings.TrimSpace(empresaID)
	if empresaID != "" {
		if _, err := uuid.Parse(empresaID); err != nil {
			return nil, validation.NewError("empresa_id", "no es un UUID válido")
		}
	}
	list, err := uc.repo.ListByEmpresa(ctx, empresaID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// SetActive activa o desactiva un usuario. Un admin no puede desactivarse a sí mismo.
func (uc *UserUseCase) SetActive(ctx context.Context, actorID, id string, in dto.UpdateUserStatusRequest) (*dto.UserResponse, error) {
	if err := uc.val.Struct(in, ""); err != nil {
		return nil, err
	}
	if id == actorID && !*in.Activo {
		return nil, domain.ErrConflict
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	now := time.Now()
	if err := uc.repo.SetActive(ctx, id, *in.Activo, now); err != nil {
		return nil, err
	}
	uc.audit.Emit(ctx, audit.Event{
		UsuarioID: actorID,
		EmpresaID: user.EmpresaID,
		Accion:    entity.AccionUsuarioEstado,
		Entidad:   "usuario",
		EntidadID: id,
		Detalle:   map[string]any{"activo": *in.Activo},
	})
	user.Activo = *in.Activo
	user.UpdatedAt = now
	return auth.ToUserResponse(user), nil
}
